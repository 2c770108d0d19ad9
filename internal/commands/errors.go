package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-lessons/internal/contents"
	"github.com/goliatone/go-lessons/internal/editor"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
	commandLockConflict     = "COMMAND_LOCK_CONFLICT"
	commandContentInvalid   = "COMMAND_CONTENT_INVALID"
	commandSyncIncomplete   = "COMMAND_SYNC_INCOMPLETE"
)

// WrapValidationError tags err as a validation failure unless it is already wrapped.
func WrapValidationError(err error) error {
	return wrapValidationError(err)
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	var partial *PartialSyncError
	// A partial sync unwraps to its per-item failures, which may themselves be
	// rejected content, so it is matched before the content checks.
	switch {
	case errors.As(err, &partial):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "lesson synchronized partially").
			WithTextCode(commandSyncIncomplete)
	case errors.Is(err, editor.ErrInvalidContent), errors.Is(err, contents.ErrContentInvalid):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "content failed validation").
			WithTextCode(commandContentInvalid)
	case errors.Is(err, editor.ErrLockConflict):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "lesson is locked by another edit").
			WithTextCode(commandLockConflict)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrapContextError(err)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}

// PartialSyncError carries the report of a synchronize pass that left
// failures behind.
type PartialSyncError struct {
	Report editor.SyncReport
}

func (e *PartialSyncError) Error() string {
	return "lesson " + e.Report.LessonID + " synchronized partially: " + e.Report.String()
}

func (e *PartialSyncError) Unwrap() []error {
	errs := make([]error, 0, len(e.Report.Failures))
	for _, failure := range e.Report.Failures {
		errs = append(errs, failure)
	}
	return errs
}
