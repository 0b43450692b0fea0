package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-reservation-backend/domain"
)

func TestCreateDraftHappyPath(t *testing.T) {
	f := newFixture(t)
	room := f.createRoom(t, 10000)
	ctx := context.Background()

	f.seed(t, room.ID, day(2026, time.February, 1), day(2026, time.February, 5), 2)

	res, err := f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 1), day(2026, time.February, 3))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDraft, res.Status)
	assert.Equal(t, domain.MustMoney(20000, "USD"), res.TotalAmount)
	assert.Equal(t, f.now.UTC(), res.CreatedAt)
	require.NotNil(t, res.Breakdown)
	assert.Equal(t, 2, res.Breakdown.Nights)

	// Inventory held for both nights, untouched after check-out.
	assert.Equal(t, 1, f.remaining(t, room.ID, day(2026, time.February, 1)))
	assert.Equal(t, 1, f.remaining(t, room.ID, day(2026, time.February, 2)))
	assert.Equal(t, 2, f.remaining(t, room.ID, day(2026, time.February, 3)))
}

func TestCreateDraftNoAvailabilityPersistsNothing(t *testing.T) {
	f := newFixture(t)
	room := f.createRoom(t, 10000)
	ctx := context.Background()

	// Only the first night is open.
	f.seed(t, room.ID, day(2026, time.February, 1), day(2026, time.February, 2), 1)

	_, err := f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 1), day(2026, time.February, 3))
	require.ErrorIs(t, err, domain.ErrNoAvailability)

	assert.Equal(t, 1, f.remaining(t, room.ID, day(2026, time.February, 1)), "covered night must not be decremented")

	list, err := f.reservations.ListByUser(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateDraftUnknownUser(t *testing.T) {
	f := newFixture(t)
	room := f.createRoom(t, 10000)

	f.seed(t, room.ID, day(2026, time.February, 1), day(2026, time.February, 5), 1)

	_, err := f.reservations.CreateDraft(context.Background(), uuid.New(), room.ID,
		day(2026, time.February, 1), day(2026, time.February, 3))
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestFullLifecycleConfirm(t *testing.T) {
	f := newFixture(t)
	room := f.createRoom(t, 10000)
	ctx := context.Background()

	f.seed(t, room.ID, day(2026, time.February, 1), day(2026, time.February, 5), 1)

	res, err := f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 1), day(2026, time.February, 3))
	require.NoError(t, err)

	res, payment, err := f.reservations.InitiatePayment(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingPayment, res.Status)
	assert.Equal(t, domain.PaymentInitiated, payment.Status)
	assert.Equal(t, res.TotalAmount, payment.Amount)

	res, err = f.reservations.ConfirmPayment(ctx, res.ID, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, res.Status)

	completed, err := f.payments.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, completed.Status)

	// Inventory stays held through confirmation.
	assert.Equal(t, 0, f.remaining(t, room.ID, day(2026, time.February, 1)))
}

func TestConfirmTwiceRejected(t *testing.T) {
	f := newFixture(t)
	room := f.createRoom(t, 10000)
	ctx := context.Background()

	f.seed(t, room.ID, day(2026, time.February, 1), day(2026, time.February, 5), 1)

	res, err := f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 1), day(2026, time.February, 3))
	require.NoError(t, err)

	res, payment, err := f.reservations.InitiatePayment(ctx, res.ID)
	require.NoError(t, err)

	_, err = f.reservations.ConfirmPayment(ctx, res.ID, payment.ID)
	require.NoError(t, err)

	// Duplicate webhook delivery.
	_, err = f.reservations.ConfirmPayment(ctx, res.ID, payment.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := f.reservations.GetReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
}

func TestConfirmForeignPaymentRejected(t *testing.T) {
	f := newFixture(t)
	room := f.createRoom(t, 10000)
	ctx := context.Background()

	f.seed(t, room.ID, day(2026, time.February, 1), day(2026, time.February, 10), 2)

	first, err := f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 1), day(2026, time.February, 3))
	require.NoError(t, err)

	second, err := f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 5), day(2026, time.February, 7))
	require.NoError(t, err)

	first, firstPayment, err := f.reservations.InitiatePayment(ctx, first.ID)
	require.NoError(t, err)

	_, _, err = f.reservations.InitiatePayment(ctx, second.ID)
	require.NoError(t, err)

	_, err = f.reservations.ConfirmPayment(ctx, second.ID, firstPayment.ID)
	require.ErrorIs(t, err, domain.ErrPaymentNotFound)

	// The failed confirm must not have moved the second reservation.
	got, err := f.reservations.GetReservation(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingPayment, got.Status)

	// The first payment was not completed either.
	p, err := f.payments.GetPayment(ctx, firstPayment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentInitiated, p.Status)
}

func TestCancelDraftReleasesInventory(t *testing.T) {
	f := newFixture(t)
	room := f.createRoom(t, 10000)
	ctx := context.Background()

	f.seed(t, room.ID, day(2026, time.February, 1), day(2026, time.February, 5), 2)

	res, err := f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 1), day(2026, time.February, 3))
	require.NoError(t, err)
	assert.Equal(t, 1, f.remaining(t, room.ID, day(2026, time.February, 1)))

	res, err = f.reservations.CancelReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, res.Status)

	assert.Equal(t, 2, f.remaining(t, room.ID, day(2026, time.February, 1)))
	assert.Equal(t, 2, f.remaining(t, room.ID, day(2026, time.February, 2)))
}

func TestExpireReleasesAndRetrySucceeds(t *testing.T) {
	f := newFixture(t)
	room := f.createRoom(t, 10000)
	ctx := context.Background()

	f.seed(t, room.ID, day(2026, time.February, 1), day(2026, time.February, 3), 1)

	res, err := f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 1), day(2026, time.February, 3))
	require.NoError(t, err)

	_, _, err = f.reservations.InitiatePayment(ctx, res.ID)
	require.NoError(t, err)

	// Room is sold out while the hold is live.
	_, err = f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 1), day(2026, time.February, 3))
	require.ErrorIs(t, err, domain.ErrNoAvailability)

	expired, err := f.reservations.ExpireReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, expired.Status)

	// The freed inventory makes the retry succeed.
	retry, err := f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 1), day(2026, time.February, 3))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, retry.Status)

	// Terminal: nothing moves an expired reservation.
	_, err = f.reservations.CancelReservation(ctx, res.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRefundAfterCancel(t *testing.T) {
	f := newFixture(t)
	room := f.createRoom(t, 10000)
	ctx := context.Background()

	f.seed(t, room.ID, day(2026, time.February, 1), day(2026, time.February, 5), 1)

	res, err := f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 1), day(2026, time.February, 3))
	require.NoError(t, err)

	res, payment, err := f.reservations.InitiatePayment(ctx, res.ID)
	require.NoError(t, err)

	_, err = f.reservations.ConfirmPayment(ctx, res.ID, payment.ID)
	require.NoError(t, err)

	res, err = f.reservations.CancelReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.remaining(t, room.ID, day(2026, time.February, 1)), "cancel releases confirmed hold")

	res, err = f.reservations.RefundReservation(ctx, res.ID, "rf_20260215_001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRefunded, res.Status)

	refunded, err := f.payments.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, refunded.Status)
	assert.Equal(t, "rf_20260215_001", refunded.ProviderRef)

	// Refund is terminal and releases nothing further.
	_, err = f.reservations.RefundReservation(ctx, res.ID, "rf_again")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 1, f.remaining(t, room.ID, day(2026, time.February, 1)))
}

func TestRefundWithoutCancelRejected(t *testing.T) {
	f := newFixture(t)
	room := f.createRoom(t, 10000)
	ctx := context.Background()

	f.seed(t, room.ID, day(2026, time.February, 1), day(2026, time.February, 5), 1)

	res, err := f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 1), day(2026, time.February, 3))
	require.NoError(t, err)

	_, err = f.reservations.RefundReservation(ctx, res.ID, "rf_x")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestFindOverdue(t *testing.T) {
	f := newFixture(t)
	room := f.createRoom(t, 10000)
	ctx := context.Background()

	f.seed(t, room.ID, day(2026, time.February, 1), day(2026, time.February, 10), 3)

	res, err := f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 1), day(2026, time.February, 3))
	require.NoError(t, err)

	_, _, err = f.reservations.InitiatePayment(ctx, res.ID)
	require.NoError(t, err)

	// Drafts are never overdue; only PENDING_PAYMENT past the cutoff is.
	_, err = f.reservations.CreateDraft(ctx, f.userID, room.ID,
		day(2026, time.February, 5), day(2026, time.February, 7))
	require.NoError(t, err)

	overdue, err := f.reservations.FindOverdue(ctx, f.now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, res.ID, overdue[0].ID)

	overdue, err = f.reservations.FindOverdue(ctx, f.now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Empty(t, overdue)
}
