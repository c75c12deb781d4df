package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
)

type failureStage int

const (
	stageValidate failureStage = iota
	stageContext
	stageExecute
)

// commandError tags err with a category, a text code and the command type.
// Errors that already carry a category, such as recipe compile errors, pass
// through unchanged so their codes reach the caller.
func commandError(err error, stage failureStage, commandType string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	category, code, message := goerrors.CategoryCommand, commandExecuteFailed, "command execution failed"
	switch {
	case stage == stageValidate:
		category, code, message = goerrors.CategoryValidation, commandValidationCode, "command validation failed"
	case errors.Is(err, context.Canceled):
		code, message = commandContextCanceled, "command execution cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		code, message = commandContextTimeout, "command execution deadline exceeded"
	case stage == stageContext:
		code, message = commandContextErrorCode, "command context error"
	}

	return goerrors.Wrap(err, category, message).
		WithTextCode(code).
		WithMetadata(map[string]any{"command": commandType})
}
