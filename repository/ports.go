// Package repository defines the storage ports the reservation core depends
// on. Adapters (gormstore, memstore) satisfy these interfaces; the services
// never see a concrete storage technology.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
)

type RoomStore interface {
	Save(ctx context.Context, room domain.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Room, error)
	FindAll(ctx context.Context) ([]domain.Room, error)
}

type ReservationStore interface {
	Save(ctx context.Context, reservation *domain.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reservation, error)
	FindByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error)
}

// AvailabilityStore persists the ledger as per-(room, date) counter rows.
type AvailabilityStore interface {
	// DaysInRange returns every stored row whose date falls in [r.Start, r.End),
	// including duplicates if the backing store has lost its uniqueness
	// invariant, so callers can detect corruption.
	DaysInRange(ctx context.Context, roomID uuid.UUID, r domain.DateRange) ([]domain.AvailabilityDay, error)
	// DaysForUpdate is DaysInRange with writer intent: inside a unit of work
	// the SQL adapter takes row locks here so concurrent reserves on the same
	// room serialize at the database. The in-memory adapter is already
	// serialized by its unit-of-work mutex.
	DaysForUpdate(ctx context.Context, roomID uuid.UUID, r domain.DateRange) ([]domain.AvailabilityDay, error)
	SaveDay(ctx context.Context, day domain.AvailabilityDay) error
	// SeedSlot expands the slot into day rows. It fails if any covered date is
	// already seeded for the room.
	SeedSlot(ctx context.Context, slot domain.AvailabilitySlot) error
}

type PricingRuleStore interface {
	Save(ctx context.Context, rule domain.PricingRule) error
	FindByRoom(ctx context.Context, roomID uuid.UUID) ([]domain.PricingRule, error)
}

type PaymentStore interface {
	Save(ctx context.Context, payment *domain.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	FindByReservation(ctx context.Context, reservationID uuid.UUID) ([]*domain.Payment, error)
}

type UserStore interface {
	Save(ctx context.Context, user domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// Stores bundles every port inside one unit-of-work boundary.
type Stores interface {
	Rooms() RoomStore
	Reservations() ReservationStore
	Availability() AvailabilityStore
	PricingRules() PricingRuleStore
	Payments() PaymentStore
	Users() UserStore
}

// UnitOfWork runs fn atomically: if fn returns an error (or panics), no
// mutation made through the passed Stores remains observable. Every
// orchestrator entry point is exactly one Atomic call, which is what keeps
// the reservation record and the ledger moving together or not at all.
type UnitOfWork interface {
	Stores
	Atomic(ctx context.Context, fn func(s Stores) error) error
}

// Clock lets tests pin reservation timestamps; production wiring passes
// time.Now.
type Clock func() time.Time
