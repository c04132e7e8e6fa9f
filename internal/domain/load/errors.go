package load

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrLoadNotFound       = errors.New("load not found")
	ErrStopNotFound       = errors.New("load stop not found")
	ErrCargoNotFound      = errors.New("load cargo not found")
	ErrOfferNotFound      = errors.New("load offer not found")
	ErrAssignmentNotFound = errors.New("load assignment not found")

	ErrUnknownStatus       = errors.New("unknown load status")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrStatusImmutable     = errors.New("status cannot be written directly, use the transition endpoint")
	ErrConcurrencyConflict = errors.New("load was modified concurrently, re-read and retry")

	ErrDuplicateLoadNumber = errors.New("load number already in use")
	ErrDuplicateStopNumber = errors.New("stop number already in use on this load")
	ErrStopLoadMismatch    = errors.New("referenced stop belongs to a different load")
	ErrStopReferenced      = errors.New("stop is referenced by cargo")

	ErrOfferAlreadyAccepted = errors.New("another offer is already accepted for this load")
	ErrOfferClosed          = errors.New("offer is no longer open")
	ErrAssignmentClosed     = errors.New("assignment is already closed")
	ErrAssignmentOpen       = errors.New("load already has an open assignment")
)

// TransitionError carries the (current, requested) pair of a rejected
// transition so the boundary can report both sides.
type TransitionError struct {
	From   Status
	To     Status
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot transition from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NewTransitionError builds a TransitionError for a graph-illegal or
// precondition-failing move.
func NewTransitionError(from, to Status, reason string) *TransitionError {
	return &TransitionError{From: from, To: to, Reason: reason}
}

// ReferentialConflictError reports cargo rows blocking a stop deletion.
type ReferentialConflictError struct {
	StopID   uuid.UUID
	CargoIDs []uuid.UUID
}

func (e *ReferentialConflictError) Error() string {
	return fmt.Sprintf("stop %s is referenced by %d cargo line(s)", e.StopID, len(e.CargoIDs))
}

func (e *ReferentialConflictError) Unwrap() error {
	return ErrStopReferenced
}
