// Package services holds the reservation core: the availability ledger, the
// pricing resolver, and the lifecycle orchestrator. Services depend on the
// repository ports only; storage technology is chosen at wiring time.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/repository"
)

// AvailabilityService is the authoritative per-room per-date inventory
// ledger. Reserve and Release are all-or-nothing across the whole stay.
type AvailabilityService struct {
	uow repository.UnitOfWork
}

func NewAvailabilityService(uow repository.UnitOfWork) *AvailabilityService {
	return &AvailabilityService{uow: uow}
}

// Query returns the stored ledger rows overlapping the range. No side effects.
func (s *AvailabilityService) Query(ctx context.Context, roomID uuid.UUID, r domain.DateRange) ([]domain.AvailabilityDay, error) {
	days, err := s.uow.Availability().DaysInRange(ctx, roomID, r)
	if err != nil {
		return nil, err
	}

	if _, err := ledgerByDate(roomID, days); err != nil {
		return nil, err
	}

	return days, nil
}

// IsFullyAvailable reports whether every night in the range is covered by a
// ledger row with remaining inventory. A plain "no" is (false, nil); a non-nil
// error means the ledger itself is unreadable or corrupt.
func (s *AvailabilityService) IsFullyAvailable(ctx context.Context, roomID uuid.UUID, r domain.DateRange) (bool, error) {
	days, err := s.uow.Availability().DaysInRange(ctx, roomID, r)
	if err != nil {
		return false, err
	}

	byDate, err := ledgerByDate(roomID, days)
	if err != nil {
		return false, err
	}

	for _, d := range r.Dates() {
		day, covered := byDate[d]
		if !covered || day.Remaining < 1 {
			return false, nil
		}
	}

	return true, nil
}

// Reserve decrements every night of the range by one unit as a single unit of
// work. Orchestrator code already inside a unit of work uses reserveDays.
func (s *AvailabilityService) Reserve(ctx context.Context, roomID uuid.UUID, r domain.DateRange) error {
	return s.uow.Atomic(ctx, func(st repository.Stores) error {
		return reserveDays(ctx, st, roomID, r)
	})
}

// Release gives back one unit for every night of the range.
func (s *AvailabilityService) Release(ctx context.Context, roomID uuid.UUID, r domain.DateRange) error {
	return s.uow.Atomic(ctx, func(st repository.Stores) error {
		return releaseDays(ctx, st, roomID, r)
	})
}

// SeedSlot is the administrative seeding operation: it expands a ranged
// quantity into day rows. Seeding a date twice is rejected, which keeps day
// coverage unique by construction.
func (s *AvailabilityService) SeedSlot(ctx context.Context, slot domain.AvailabilitySlot) error {
	return s.uow.Atomic(ctx, func(st repository.Stores) error {
		return st.Availability().SeedSlot(ctx, slot)
	})
}

// ledgerByDate indexes rows by date and fails on duplicate coverage, the
// data-integrity fault the ledger must never proceed past.
func ledgerByDate(roomID uuid.UUID, days []domain.AvailabilityDay) (map[time.Time]domain.AvailabilityDay, error) {
	byDate := make(map[time.Time]domain.AvailabilityDay, len(days))

	for _, day := range days {
		date := domain.Date(day.Date)
		if _, dup := byDate[date]; dup {
			return nil, fmt.Errorf("room %s has overlapping ledger rows for %s: %w",
				roomID, date.Format("2006-01-02"), domain.ErrLedgerCorruption)
		}

		byDate[date] = day
	}

	return byDate, nil
}

// reserveDays runs inside an existing unit of work. It validates every night
// before mutating anything, so a failure leaves the ledger untouched even
// without the surrounding rollback.
func reserveDays(ctx context.Context, st repository.Stores, roomID uuid.UUID, r domain.DateRange) error {
	days, err := st.Availability().DaysForUpdate(ctx, roomID, r)
	if err != nil {
		return err
	}

	byDate, err := ledgerByDate(roomID, days)
	if err != nil {
		return err
	}

	for _, d := range r.Dates() {
		day, covered := byDate[d]
		if !covered || day.Remaining < 1 {
			return fmt.Errorf("room %s on %s: %w", roomID, d.Format("2006-01-02"), domain.ErrNoAvailability)
		}
	}

	for _, d := range r.Dates() {
		day := byDate[d]
		day.Remaining--

		if err := st.Availability().SaveDay(ctx, day); err != nil {
			return err
		}
	}

	return nil
}

// releaseDays is the inverse of reserveDays. Restocking past the seeded
// capacity means a double release or a corrupted ledger and is refused.
func releaseDays(ctx context.Context, st repository.Stores, roomID uuid.UUID, r domain.DateRange) error {
	days, err := st.Availability().DaysForUpdate(ctx, roomID, r)
	if err != nil {
		return err
	}

	byDate, err := ledgerByDate(roomID, days)
	if err != nil {
		return err
	}

	for _, d := range r.Dates() {
		day, covered := byDate[d]
		if !covered {
			return fmt.Errorf("room %s missing ledger row for held date %s: %w",
				roomID, d.Format("2006-01-02"), domain.ErrLedgerCorruption)
		}

		if day.Remaining+1 > day.Capacity {
			return fmt.Errorf("room %s release past capacity on %s: %w",
				roomID, d.Format("2006-01-02"), domain.ErrLedgerCorruption)
		}
	}

	for _, d := range r.Dates() {
		day := byDate[d]
		day.Remaining++

		if err := st.Availability().SaveDay(ctx, day); err != nil {
			return err
		}
	}

	return nil
}
