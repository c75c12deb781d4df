package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-recipes/pkg/interfaces"
)

type contextKey struct{}

// ContextWithFields returns ctx annotated with log fields. Fields already on
// ctx are kept unless fields overrides them.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextKey{}, merged)
}

// ContextFields returns a copy of the log fields carried by ctx.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(contextKey{}).(map[string]any)
	if len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// ForContext binds logger to ctx so entries carry the recipe and command
// fields recorded on it.
func ForContext(logger interfaces.Logger, ctx context.Context) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	if ctx == nil {
		return logger
	}
	return logger.WithContext(ctx)
}
