package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/repository/memstore"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateRange(t *testing.T, start, end time.Time) domain.DateRange {
	t.Helper()

	r, err := domain.NewDateRange(start, end)
	require.NoError(t, err)

	return r
}

// fixture wires the full service stack over a fresh in-memory store with a
// pinned clock and one registered guest.
type fixture struct {
	store        *memstore.Store
	rooms        *RoomService
	availability *AvailabilityService
	pricing      *PricingService
	reservations *ReservationService
	payments     *PaymentService
	userID       uuid.UUID
	now          time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	now := day(2026, time.January, 15).Add(10 * time.Hour)

	user := domain.User{
		ID:        uuid.New(),
		Email:     "guest@example.com",
		FullName:  "Test Guest",
		CreatedAt: now,
	}
	require.NoError(t, store.Users().Save(context.Background(), user))

	return &fixture{
		store:        store,
		rooms:        NewRoomService(store),
		availability: NewAvailabilityService(store),
		pricing:      NewPricingService(store),
		reservations: NewReservationService(store, func() time.Time { return now }),
		payments:     NewPaymentService(store),
		userID:       user.ID,
		now:          now,
	}
}

func (f *fixture) createRoom(t *testing.T, nightlyCents int64) domain.Room {
	t.Helper()

	room, err := f.rooms.CreateRoom(context.Background(), uuid.New(), "101", domain.RoomDouble, nightlyCents, "USD")
	require.NoError(t, err)

	return room
}

func (f *fixture) seed(t *testing.T, roomID uuid.UUID, start, end time.Time, quantity int) {
	t.Helper()

	slot, err := domain.NewAvailabilitySlot(roomID, dateRange(t, start, end), quantity)
	require.NoError(t, err)
	require.NoError(t, f.availability.SeedSlot(context.Background(), slot))
}

func (f *fixture) remaining(t *testing.T, roomID uuid.UUID, d time.Time) int {
	t.Helper()

	days, err := f.availability.Query(context.Background(), roomID, dateRange(t, d, d.AddDate(0, 0, 1)))
	require.NoError(t, err)
	require.Len(t, days, 1)

	return days[0].Remaining
}
