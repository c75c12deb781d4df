package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-recipes/internal/logging"
	"github.com/goliatone/go-recipes/pkg/interfaces"
)

type testMessage struct{}

func (testMessage) Type() string { return "recipes.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "recipes.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerTelemetryReceivesMessageFields(t *testing.T) {
	var got TelemetryInfo
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithOperation[testMessage]("recipes.test"),
		WithMessageFields(func(testMessage) map[string]any {
			return map[string]any{"directory": "recipes"}
		}),
		WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) {
			got = info
		}),
	)

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.Status != TelemetryStatusSuccess {
		t.Fatalf("expected success status, got %q", got.Status)
	}
	if got.Command != "recipes.test.message" {
		t.Fatalf("expected command type recorded, got %q", got.Command)
	}
	if got.Operation != "recipes.test" {
		t.Fatalf("expected operation recorded, got %q", got.Operation)
	}
	if got.Fields["directory"] != "recipes" {
		t.Fatalf("expected message fields merged, got %#v", got.Fields)
	}
}

func TestHandlerTelemetryReportsFailure(t *testing.T) {
	execErr := errors.New("boom")
	var got TelemetryInfo
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	}, WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) {
		got = info
	}))

	if err := h.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected error")
	}
	if got.Status != TelemetryStatusFailed {
		t.Fatalf("expected failed status, got %q", got.Status)
	}
	if !errors.Is(got.Error, execErr) {
		t.Fatalf("expected original error reported, got %v", got.Error)
	}
}

type outcomeLogger struct {
	entries []string
	fields  map[string]any
}

func (l *outcomeLogger) Trace(string, ...any)      {}
func (l *outcomeLogger) Debug(string, ...any)      {}
func (l *outcomeLogger) Info(msg string, _ ...any) { l.entries = append(l.entries, "info "+msg) }
func (l *outcomeLogger) Warn(msg string, _ ...any) { l.entries = append(l.entries, "warn "+msg) }
func (l *outcomeLogger) Error(msg string, _ ...any) {
	l.entries = append(l.entries, "error "+msg)
}
func (l *outcomeLogger) Fatal(string, ...any) {}

func (l *outcomeLogger) WithFields(fields map[string]any) interfaces.Logger {
	if l.fields == nil {
		l.fields = map[string]any{}
	}
	for k, v := range fields {
		l.fields[k] = v
	}
	return l
}

func (l *outcomeLogger) WithContext(ctx context.Context) interfaces.Logger {
	return l.WithFields(logging.ContextFields(ctx))
}

func TestHandlerErrorsCarryTextCodeAndCommand(t *testing.T) {
	cases := []struct {
		name string
		run  func() error
		code string
	}{
		{
			name: "validation",
			run: func() error {
				h := NewHandler[invalidMessage](func(context.Context, invalidMessage) error { return nil })
				return h.Execute(context.Background(), invalidMessage{})
			},
			code: commandValidationCode,
		},
		{
			name: "execution",
			run: func() error {
				h := NewHandler[testMessage](func(context.Context, testMessage) error { return errors.New("boom") })
				return h.Execute(context.Background(), testMessage{})
			},
			code: commandExecuteFailed,
		},
		{
			name: "timeout",
			run: func() error {
				h := NewHandler[testMessage](func(ctx context.Context, _ testMessage) error {
					<-ctx.Done()
					return ctx.Err()
				}, WithTimeout[testMessage](5*time.Millisecond))
				return h.Execute(context.Background(), testMessage{})
			},
			code: commandContextTimeout,
		},
		{
			name: "cancelled",
			run: func() error {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				h := NewHandler[testMessage](func(context.Context, testMessage) error { return nil })
				return h.Execute(ctx, testMessage{})
			},
			code: commandContextCanceled,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			var cerr *goerrors.Error
			if !errors.As(err, &cerr) {
				t.Fatalf("expected go-errors error, got %T %v", err, err)
			}
			if cerr.TextCode != tc.code {
				t.Fatalf("expected text code %s, got %s", tc.code, cerr.TextCode)
			}
			if cerr.Metadata["command"] == nil {
				t.Fatalf("expected command metadata, got %#v", cerr.Metadata)
			}
		})
	}
}

func TestHandlerPassesCategorisedErrorsThrough(t *testing.T) {
	compileErr := goerrors.New("recipe category is not recognised", goerrors.CategoryValidation).
		WithTextCode("RECIPE_CATEGORY_UNKNOWN")
	h := NewHandler[testMessage](func(context.Context, testMessage) error { return compileErr })

	err := h.Execute(context.Background(), testMessage{})
	var cerr *goerrors.Error
	if !errors.As(err, &cerr) || cerr.TextCode != "RECIPE_CATEGORY_UNKNOWN" {
		t.Fatalf("expected compile error to pass through, got %v", err)
	}
}

func TestHandlerRecordsCommandOnContext(t *testing.T) {
	var seen map[string]any
	h := NewHandler[testMessage](func(ctx context.Context, _ testMessage) error {
		seen = logging.ContextFields(ctx)
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if seen["command"] != "recipes.test.message" {
		t.Fatalf("expected command on context, got %#v", seen)
	}
}

func TestHandlerDefaultOutcomeLogging(t *testing.T) {
	cases := []struct {
		name string
		exec func(context.Context, testMessage) error
		opts []HandlerOption[testMessage]
		want string
	}{
		{name: "success", exec: func(context.Context, testMessage) error { return nil }, want: "info recipes.command.completed"},
		{name: "failure", exec: func(context.Context, testMessage) error { return errors.New("boom") }, want: "error recipes.command.failed"},
		{
			name: "timeout",
			exec: func(ctx context.Context, _ testMessage) error {
				<-ctx.Done()
				return ctx.Err()
			},
			opts: []HandlerOption[testMessage]{WithTimeout[testMessage](5 * time.Millisecond)},
			want: "warn recipes.command.cancelled",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger := &outcomeLogger{}
			opts := append([]HandlerOption[testMessage]{WithLogger[testMessage](logger)}, tc.opts...)
			_ = NewHandler[testMessage](tc.exec, opts...).Execute(context.Background(), testMessage{})

			if len(logger.entries) != 1 || logger.entries[0] != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, logger.entries)
			}
			if logger.fields["command"] != "recipes.test.message" {
				t.Fatalf("expected command field, got %#v", logger.fields)
			}
		})
	}
}

func TestDefaultTelemetryUsesSuppliedLogger(t *testing.T) {
	handlerLogger := &outcomeLogger{}
	telemetryLogger := &outcomeLogger{}
	h := NewHandler[testMessage](func(context.Context, testMessage) error { return nil },
		WithLogger[testMessage](handlerLogger),
		WithMessageFields(func(testMessage) map[string]any { return map[string]any{"directory": "recipes"} }),
		WithTelemetry(DefaultTelemetry[testMessage](telemetryLogger)),
	)

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(handlerLogger.entries) != 0 {
		t.Fatalf("expected handler logger silent, got %v", handlerLogger.entries)
	}
	if len(telemetryLogger.entries) != 1 || telemetryLogger.entries[0] != "info recipes.command.completed" {
		t.Fatalf("unexpected telemetry entries %v", telemetryLogger.entries)
	}
	if telemetryLogger.fields["directory"] != "recipes" || telemetryLogger.fields["command"] != "recipes.test.message" {
		t.Fatalf("expected message and command fields, got %#v", telemetryLogger.fields)
	}
}
