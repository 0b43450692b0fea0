package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAvailability is the expected business outcome when at least one night
	// of the requested stay has no remaining inventory.
	ErrNoAvailability = errors.New("no availability for the selected dates")

	// ErrLedgerCorruption signals an availability-ledger invariant violation
	// (duplicate day coverage, release past capacity). It must abort the
	// operation and be escalated, never repaired in place.
	ErrLedgerCorruption = errors.New("availability ledger corruption")

	ErrRoomNotFound        = errors.New("room not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrUserNotFound        = errors.New("user not found")

	// ErrCurrencyMismatch is a configuration fault: arithmetic between two
	// Money values of different currencies, or a pricing rule priced in a
	// currency other than the room's.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	ErrInvalidTransition = errors.New("invalid reservation status transition")
)

// InvalidTransitionError names both states of a rejected transition. It is
// surfaced, never swallowed: a rejected edge means a caller bug or a
// double-processed event such as a duplicate payment webhook.
type InvalidTransitionError struct {
	From ReservationStatus
	To   ReservationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid reservation status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
