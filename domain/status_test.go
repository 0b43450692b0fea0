package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allowedEdges mirrors the lifecycle contract: any pair not listed here must
// be rejected.
var allowedEdges = map[ReservationStatus][]ReservationStatus{
	StatusDraft:          {StatusPendingPayment, StatusCancelled},
	StatusPendingPayment: {StatusConfirmed, StatusExpired, StatusCancelled},
	StatusConfirmed:      {StatusCancelled},
	StatusCancelled:      {StatusRefunded},
	StatusExpired:        nil,
	StatusRefunded:       nil,
}

func edgeAllowed(from, to ReservationStatus) bool {
	for _, t := range allowedEdges[from] {
		if t == to {
			return true
		}
	}

	return false
}

func TestTransitionTableComplete(t *testing.T) {
	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			err := ValidateTransition(from, to)
			if edgeAllowed(from, to) {
				assert.NoErrorf(t, err, "%s -> %s should be allowed", from, to)

				continue
			}

			require.Errorf(t, err, "%s -> %s should be rejected", from, to)
			assert.ErrorIs(t, err, ErrInvalidTransition)

			var ite *InvalidTransitionError
			require.ErrorAs(t, err, &ite)
			assert.Equal(t, from, ite.From)
			assert.Equal(t, to, ite.To)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusExpired.IsTerminal())
	assert.True(t, StatusRefunded.IsTerminal())
	assert.False(t, StatusDraft.IsTerminal())
	assert.False(t, StatusPendingPayment.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusCancelled.IsTerminal())
}

func TestReservationTransitionTo(t *testing.T) {
	stay, err := NewStay(day(2026, time.April, 1), day(2026, time.April, 3))
	require.NoError(t, err)

	res, err := NewReservation(uuid.New(), uuid.New(), stay, MustMoney(20000, "USD"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, res.Status)

	require.NoError(t, res.TransitionTo(StatusPendingPayment))
	assert.Equal(t, StatusPendingPayment, res.Status)

	// A rejected edge leaves the status untouched.
	err = res.TransitionTo(StatusRefunded)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusPendingPayment, res.Status)
}

func TestHoldsInventory(t *testing.T) {
	stay, err := NewStay(day(2026, time.April, 1), day(2026, time.April, 2))
	require.NoError(t, err)

	res, err := NewReservation(uuid.New(), uuid.New(), stay, MustMoney(10000, "USD"), time.Now())
	require.NoError(t, err)

	holding := map[ReservationStatus]bool{
		StatusDraft:          true,
		StatusPendingPayment: true,
		StatusConfirmed:      true,
		StatusCancelled:      false,
		StatusExpired:        false,
		StatusRefunded:       false,
	}

	for status, want := range holding {
		res.Status = status
		assert.Equalf(t, want, res.HoldsInventory(), "status %s", status)
	}
}
