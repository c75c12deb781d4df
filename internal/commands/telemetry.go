package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-recipes/internal/logging"
	"github.com/goliatone/go-recipes/pkg/interfaces"
)

// TelemetryStatus is the outcome of one command run.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a finished command run. Logger already carries the
// command and message fields.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry replaces the handler's outcome logging.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs outcomes through logger instead of the handler's own
// logger, keeping the command fields.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(ctx context.Context, _ T, info TelemetryInfo) {
		info.Logger = logging.WithFields(logging.ForContext(logger, ctx), info.Fields)
		logOutcome(info)
	}
}

// logOutcome records completions at info, cancellations at warn and failures
// at error.
func logOutcome(info TelemetryInfo) {
	logger := info.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	args := []any{"status", string(info.Status), "duration_ms", info.Duration.Milliseconds()}
	switch info.Status {
	case TelemetryStatusSuccess:
		logger.Info("recipes.command.completed", args...)
	case TelemetryStatusContextError:
		logger.Warn("recipes.command.cancelled", append(args, "error", info.Error)...)
	default:
		logger.Error("recipes.command.failed", append(args, "error", info.Error)...)
	}
}
