package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Reservation is the lifecycle aggregate. Stay and TotalAmount are frozen at
// creation; only Status changes afterwards, and only through TransitionTo.
type Reservation struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	RoomID      uuid.UUID         `json:"room_id"`
	Stay        DateRange         `json:"stay"`
	TotalAmount Money             `json:"total_amount"`
	Status      ReservationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`

	// Breakdown is the pricing snapshot captured when the total was frozen.
	// Display/audit only; the total never depends on it afterwards.
	Breakdown *PriceBreakdown `json:"breakdown,omitempty"`
}

// NewReservation creates the aggregate in DRAFT. Payment initiation is a
// separate, explicit transition.
func NewReservation(userID, roomID uuid.UUID, stay DateRange, total Money, now time.Time) (*Reservation, error) {
	if stay.Nights() < 1 {
		return nil, errors.New("reservation stay must be at least one night")
	}

	if userID == uuid.Nil || roomID == uuid.Nil {
		return nil, errors.New("reservation requires user and room identifiers")
	}

	return &Reservation{
		ID:          uuid.New(),
		UserID:      userID,
		RoomID:      roomID,
		Stay:        stay,
		TotalAmount: total,
		Status:      StatusDraft,
		CreatedAt:   now.UTC(),
	}, nil
}

// TransitionTo mutates the status after validating the edge against the
// transition table. Callers never assign Status directly.
func (r *Reservation) TransitionTo(target ReservationStatus) error {
	if err := ValidateTransition(r.Status, target); err != nil {
		return err
	}

	r.Status = target

	return nil
}

// HoldsInventory reports whether the reservation currently owns ledger
// decrements that a cancel or expire must give back.
func (r *Reservation) HoldsInventory() bool {
	switch r.Status {
	case StatusDraft, StatusPendingPayment, StatusConfirmed:
		return true
	default:
		return false
	}
}
