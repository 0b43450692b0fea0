package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/repository"
)

// PricingService resolves a stay to a total price. Resolution is per night:
// among the rules overlapping a night, the one whose range starts latest wins
// (ties broken by the earliest end) — the most specific window governs. Nights
// no rule covers fall back to the room's base rate.
type PricingService struct {
	uow repository.UnitOfWork
}

func NewPricingService(uow repository.UnitOfWork) *PricingService {
	return &PricingService{uow: uow}
}

func (s *PricingService) ResolvePrice(ctx context.Context, roomID uuid.UUID, stay domain.DateRange) (domain.Money, error) {
	total, _, err := resolvePrice(ctx, s.uow, roomID, stay)

	return total, err
}

func (s *PricingService) PriceBreakdown(ctx context.Context, roomID uuid.UUID, stay domain.DateRange) (domain.PriceBreakdown, error) {
	_, breakdown, err := resolvePrice(ctx, s.uow, roomID, stay)

	return breakdown, err
}

// CreateRule registers a pricing rule for a room. The rule must be priced in
// the room's currency; mixing currencies is a configuration fault caught here
// rather than at resolution time.
func (s *PricingService) CreateRule(ctx context.Context, roomID uuid.UUID, start, end time.Time, priceAmount int64, currency, description string) (domain.PricingRule, error) {
	r, err := domain.NewDateRange(start, end)
	if err != nil {
		return domain.PricingRule{}, err
	}

	price, err := domain.NewMoney(priceAmount, currency)
	if err != nil {
		return domain.PricingRule{}, err
	}

	var rule domain.PricingRule

	err = s.uow.Atomic(ctx, func(st repository.Stores) error {
		room, err := st.Rooms().FindByID(ctx, roomID)
		if err != nil {
			return err
		}

		if price.Currency != room.BaseRate.Currency {
			return domain.ErrCurrencyMismatch
		}

		rule, err = domain.NewPricingRule(roomID, r, price, description)
		if err != nil {
			return err
		}

		return st.PricingRules().Save(ctx, rule)
	})
	if err != nil {
		return domain.PricingRule{}, err
	}

	return rule, nil
}

// resolvePrice runs against whatever store view the caller holds, so the
// orchestrator can price inside the same unit of work that reserves
// inventory.
func resolvePrice(ctx context.Context, st repository.Stores, roomID uuid.UUID, stay domain.DateRange) (domain.Money, domain.PriceBreakdown, error) {
	var breakdown domain.PriceBreakdown

	room, err := st.Rooms().FindByID(ctx, roomID)
	if err != nil {
		return domain.Money{}, breakdown, err
	}

	rules, err := st.PricingRules().FindByRoom(ctx, roomID)
	if err != nil {
		return domain.Money{}, breakdown, err
	}

	nights := stay.Nights()
	total := domain.Money{Amount: 0, Currency: room.BaseRate.Currency}

	var applied []string

	seen := make(map[uuid.UUID]bool)

	for _, d := range stay.Dates() {
		rule := mostSpecificRule(rules, d)
		if rule == nil {
			total, err = total.Add(room.BaseRate)
			if err != nil {
				return domain.Money{}, breakdown, err
			}

			continue
		}

		if rule.Price.Currency != room.BaseRate.Currency {
			return domain.Money{}, breakdown, fmt.Errorf(
				"pricing rule %s priced in %s, room %s priced in %s: %w",
				rule.ID, rule.Price.Currency, roomID, room.BaseRate.Currency, domain.ErrCurrencyMismatch)
		}

		total, err = total.Add(rule.Price)
		if err != nil {
			return domain.Money{}, breakdown, err
		}

		if !seen[rule.ID] {
			seen[rule.ID] = true
			applied = append(applied, describeRule(*rule))
		}
	}

	breakdown = domain.PriceBreakdown{
		BasePrice:    room.BaseRate,
		Nights:       nights,
		Subtotal:     room.BaseRate.MulNights(nights),
		AppliedRules: applied,
		Total:        total,
	}

	return total, breakdown, nil
}

// mostSpecificRule picks the governing rule for one night: latest start wins,
// ties go to the earliest end.
func mostSpecificRule(rules []domain.PricingRule, d time.Time) *domain.PricingRule {
	night := domain.NightRange(d)

	var best *domain.PricingRule

	for i := range rules {
		rule := &rules[i]
		if !rule.Range.Overlaps(night) {
			continue
		}

		if best == nil || moreSpecific(rule.Range, best.Range) {
			best = rule
		}
	}

	return best
}

func moreSpecific(a, b domain.DateRange) bool {
	if !a.Start.Equal(b.Start) {
		return a.Start.After(b.Start)
	}

	return a.End.Before(b.End)
}

func describeRule(rule domain.PricingRule) string {
	if rule.Description != "" {
		return rule.Description
	}

	return fmt.Sprintf("%s to %s: %s",
		rule.Range.Start.Format("2006-01-02"),
		rule.Range.End.Format("2006-01-02"),
		rule.Price)
}
