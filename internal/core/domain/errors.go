package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange means a search or booking range whose check-out
	// is not strictly after its check-in.
	ErrInvalidRange = errors.New("check-out must be after check-in")

	// ErrUnknownRoom means the referenced room id is not in the inventory.
	ErrUnknownRoom = errors.New("room not found")

	// ErrRoomUnavailable means an active booking overlaps the requested
	// nights. This is the authoritative commit-time answer; any earlier
	// search result is advisory.
	ErrRoomUnavailable = errors.New("room is not available for the requested dates")

	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)

// PaymentDeclinedError aborts a booking before any state changes.
type PaymentDeclinedError struct {
	Reason string
}

func (e *PaymentDeclinedError) Error() string {
	return fmt.Sprintf("payment declined: %s", e.Reason)
}

// RefundDeclinedError aborts a cancellation before any state changes.
type RefundDeclinedError struct {
	Reason string
}

func (e *RefundDeclinedError) Error() string {
	return fmt.Sprintf("refund declined: %s", e.Reason)
}

// PersistenceWarning reports that a mutation succeeded in memory but
// the durable write failed. The logical operation stands; the caller
// is informed so it can surface the degraded durability.
type PersistenceWarning struct {
	Err error
}

func (e *PersistenceWarning) Error() string {
	return fmt.Sprintf("state changed but could not be persisted: %v", e.Err)
}

func (e *PersistenceWarning) Unwrap() error {
	return e.Err
}
