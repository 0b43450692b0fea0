package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AvailabilityDay is one ledger row: remaining inventory for a room on a
// single calendar date. Capacity is the seeded maximum; Remaining never goes
// below zero and Release never pushes it past Capacity.
type AvailabilityDay struct {
	RoomID    uuid.UUID `json:"room_id"`
	Date      time.Time `json:"date"`
	Remaining int       `json:"remaining"`
	Capacity  int       `json:"capacity"`
}

// AvailabilitySlot is the administrative seeding input: a ranged quantity that
// the ledger expands into per-date rows.
type AvailabilitySlot struct {
	RoomID   uuid.UUID `json:"room_id"`
	Range    DateRange `json:"range"`
	Quantity int       `json:"quantity"`
}

func NewAvailabilitySlot(roomID uuid.UUID, r DateRange, quantity int) (AvailabilitySlot, error) {
	if roomID == uuid.Nil {
		return AvailabilitySlot{}, errors.New("availability slot requires a room identifier")
	}

	if quantity < 0 {
		return AvailabilitySlot{}, errors.New("availability quantity must be non-negative")
	}

	if r.Nights() < 1 {
		return AvailabilitySlot{}, errors.New("availability slot must cover at least one date")
	}

	return AvailabilitySlot{RoomID: roomID, Range: r, Quantity: quantity}, nil
}

// ExpandDays turns the ranged slot into one ledger row per covered date.
func (s AvailabilitySlot) ExpandDays() []AvailabilityDay {
	days := make([]AvailabilityDay, 0, s.Range.Nights())
	for _, d := range s.Range.Dates() {
		days = append(days, AvailabilityDay{
			RoomID:    s.RoomID,
			Date:      d,
			Remaining: s.Quantity,
			Capacity:  s.Quantity,
		})
	}

	return days
}
