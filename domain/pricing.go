package domain

import (
	"errors"

	"github.com/google/uuid"
)

// PricingRule overrides a room's base nightly rate inside its date range.
// Rules for the same room may overlap; the resolver picks the most specific
// one per night. Rules are immutable once a reservation has been priced from
// them: a reservation's total is a frozen snapshot, never recomputed.
type PricingRule struct {
	ID          uuid.UUID `json:"id"`
	RoomID      uuid.UUID `json:"room_id"`
	Range       DateRange `json:"range"`
	Price       Money     `json:"price"`
	Description string    `json:"description,omitempty"`
}

func NewPricingRule(roomID uuid.UUID, r DateRange, price Money, description string) (PricingRule, error) {
	if roomID == uuid.Nil {
		return PricingRule{}, errors.New("pricing rule requires a room identifier")
	}

	if r.Nights() < 1 {
		return PricingRule{}, errors.New("pricing rule must cover at least one night")
	}

	return PricingRule{
		ID:          uuid.New(),
		RoomID:      roomID,
		Range:       r,
		Price:       price,
		Description: description,
	}, nil
}

// PriceBreakdown exposes which rules fired, for display and audit.
type PriceBreakdown struct {
	BasePrice    Money    `json:"base_price"`
	Nights       int      `json:"nights"`
	Subtotal     Money    `json:"subtotal"`
	AppliedRules []string `json:"applied_rules"`
	Total        Money    `json:"total"`
}
