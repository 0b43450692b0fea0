package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-reservation-backend/domain"
)

func TestSeedAndQuery(t *testing.T) {
	f := newFixture(t)
	roomID := uuid.New()
	ctx := context.Background()

	f.seed(t, roomID, day(2026, time.February, 1), day(2026, time.February, 4), 2)

	days, err := f.availability.Query(ctx, roomID, dateRange(t, day(2026, time.February, 1), day(2026, time.February, 4)))
	require.NoError(t, err)
	require.Len(t, days, 3)

	for _, d := range days {
		assert.Equal(t, 2, d.Remaining)
		assert.Equal(t, 2, d.Capacity)
	}
}

func TestSeedRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	roomID := uuid.New()
	ctx := context.Background()

	f.seed(t, roomID, day(2026, time.February, 1), day(2026, time.February, 10), 2)

	slot, err := domain.NewAvailabilitySlot(roomID,
		dateRange(t, day(2026, time.February, 9), day(2026, time.February, 12)), 5)
	require.NoError(t, err)

	err = f.availability.SeedSlot(ctx, slot)
	require.ErrorIs(t, err, domain.ErrLedgerCorruption)

	// The rejected slot must not have touched the dates beyond the overlap.
	days, err := f.availability.Query(ctx, roomID, dateRange(t, day(2026, time.February, 10), day(2026, time.February, 12)))
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestIsFullyAvailable(t *testing.T) {
	f := newFixture(t)
	roomID := uuid.New()
	ctx := context.Background()

	f.seed(t, roomID, day(2026, time.February, 1), day(2026, time.February, 5), 1)

	ok, err := f.availability.IsFullyAvailable(ctx, roomID, dateRange(t, day(2026, time.February, 1), day(2026, time.February, 5)))
	require.NoError(t, err)
	assert.True(t, ok)

	// A range reaching past the seeded horizon is simply not available.
	ok, err = f.availability.IsFullyAvailable(ctx, roomID, dateRange(t, day(2026, time.February, 3), day(2026, time.February, 7)))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReserveAllOrNothing(t *testing.T) {
	f := newFixture(t)
	roomID := uuid.New()
	ctx := context.Background()

	// Seeded Feb 1-3 only; a stay through Feb 5 must fail without touching
	// the covered nights.
	f.seed(t, roomID, day(2026, time.February, 1), day(2026, time.February, 3), 2)

	err := f.availability.Reserve(ctx, roomID, dateRange(t, day(2026, time.February, 1), day(2026, time.February, 5)))
	require.ErrorIs(t, err, domain.ErrNoAvailability)

	assert.Equal(t, 2, f.remaining(t, roomID, day(2026, time.February, 1)))
	assert.Equal(t, 2, f.remaining(t, roomID, day(2026, time.February, 2)))
}

func TestReserveUntilSoldOut(t *testing.T) {
	f := newFixture(t)
	roomID := uuid.New()
	ctx := context.Background()

	f.seed(t, roomID, day(2026, time.February, 1), day(2026, time.February, 3), 2)
	stay := dateRange(t, day(2026, time.February, 1), day(2026, time.February, 3))

	require.NoError(t, f.availability.Reserve(ctx, roomID, stay))
	require.NoError(t, f.availability.Reserve(ctx, roomID, stay))

	err := f.availability.Reserve(ctx, roomID, stay)
	require.ErrorIs(t, err, domain.ErrNoAvailability)
	assert.Equal(t, 0, f.remaining(t, roomID, day(2026, time.February, 1)))
}

func TestReleaseRestoresInventory(t *testing.T) {
	f := newFixture(t)
	roomID := uuid.New()
	ctx := context.Background()

	f.seed(t, roomID, day(2026, time.February, 1), day(2026, time.February, 3), 2)
	stay := dateRange(t, day(2026, time.February, 1), day(2026, time.February, 3))

	require.NoError(t, f.availability.Reserve(ctx, roomID, stay))
	require.NoError(t, f.availability.Release(ctx, roomID, stay))

	assert.Equal(t, 2, f.remaining(t, roomID, day(2026, time.February, 1)))
	assert.Equal(t, 2, f.remaining(t, roomID, day(2026, time.February, 2)))
}

func TestReleasePastCapacityIsCorruption(t *testing.T) {
	f := newFixture(t)
	roomID := uuid.New()
	ctx := context.Background()

	f.seed(t, roomID, day(2026, time.February, 1), day(2026, time.February, 3), 1)
	stay := dateRange(t, day(2026, time.February, 1), day(2026, time.February, 3))

	err := f.availability.Release(ctx, roomID, stay)
	require.ErrorIs(t, err, domain.ErrLedgerCorruption)
	assert.Equal(t, 1, f.remaining(t, roomID, day(2026, time.February, 1)))
}

func TestReleaseUncoveredDateIsCorruption(t *testing.T) {
	f := newFixture(t)
	roomID := uuid.New()

	err := f.availability.Release(context.Background(), roomID, dateRange(t, day(2026, time.February, 1), day(2026, time.February, 2)))
	require.ErrorIs(t, err, domain.ErrLedgerCorruption)
}

func TestConcurrentReservesNeverOversell(t *testing.T) {
	f := newFixture(t)
	roomID := uuid.New()
	ctx := context.Background()

	f.seed(t, roomID, day(2026, time.February, 1), day(2026, time.February, 4), 3)
	stay := dateRange(t, day(2026, time.February, 1), day(2026, time.February, 4))

	const attempts = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if err := f.availability.Reserve(ctx, roomID, stay); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 3, succeeded, "exactly capacity reserves may win")

	for _, d := range stay.Dates() {
		assert.Equal(t, 0, f.remaining(t, roomID, d))
	}
}
