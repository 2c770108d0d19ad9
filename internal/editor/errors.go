package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrLockConflict is the umbrella for operations refused because of the
	// edit lock or an in-flight synchronize.
	ErrLockConflict = errors.New("editor: lock conflict")
	ErrLockHeld     = fmt.Errorf("%w: another item is being edited", ErrLockConflict)
	ErrNotLocked    = fmt.Errorf("%w: item is not being edited", ErrLockConflict)
	ErrSyncInFlight = fmt.Errorf("%w: synchronize in progress", ErrLockConflict)

	ErrInvalidContent  = errors.New("editor: invalid content")
	ErrItemNotFound    = errors.New("editor: item not found")
	ErrInvalidIndex    = errors.New("editor: index out of range")
	ErrUnknownField    = errors.New("editor: unknown field")
	ErrKindMismatch    = errors.New("editor: action not supported for item kind")
	ErrNoRenderer      = errors.New("editor: markdown renderer not configured")
	ErrUnknownAction   = errors.New("editor: unknown action")
	ErrUnsavedChanges  = errors.New("editor: unsynchronized local changes")
	ErrLessonRequired  = errors.New("editor: lesson id required")
	ErrStoreRequired   = errors.New("editor: store required")
	ErrMissingResponse = errors.New("editor: store did not acknowledge item")
)

// ValidationError reports why an item cannot be committed.
type ValidationError struct {
	ItemID string
	Kind   Kind
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("editor: %s %s %s: %s", e.Kind, e.ItemID, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidContent
}

// Op identifies the remote call that failed.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Reason classifies a remote failure.
type Reason string

const (
	// ReasonNetwork covers an unreachable store or a timeout.
	ReasonNetwork Reason = "network"
	// ReasonRejected means the store refused the payload.
	ReasonRejected Reason = "rejected"
)

// RemoteSyncError is a per-item store failure. Local state is never rolled
// back because of one.
type RemoteSyncError struct {
	ItemID string
	Op     Op
	Reason Reason
	Err    error
}

func (e *RemoteSyncError) Error() string {
	return fmt.Sprintf("editor: %s %s failed (%s): %v", e.Op, e.ItemID, e.Reason, e.Err)
}

func (e *RemoteSyncError) Unwrap() error {
	return e.Err
}

// RejectedError lets a Store mark a failure as a refusal of the payload
// rather than a transport problem.
type RejectedError struct {
	Err error
}

func (e *RejectedError) Error() string {
	return "rejected: " + e.Err.Error()
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

func classify(err error) Reason {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return ReasonRejected
	}
	return ReasonNetwork
}

func remoteError(itemID string, op Op, err error) *RemoteSyncError {
	return &RemoteSyncError{ItemID: itemID, Op: op, Reason: classify(err), Err: err}
}
