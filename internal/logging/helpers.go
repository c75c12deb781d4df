package logging

import (
	"maps"

	"github.com/goliatone/go-recipes/pkg/interfaces"
)

// WithFields attaches fields when logger supports interfaces.FieldsLogger.
// A nil logger becomes a no-op one.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	if len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}
