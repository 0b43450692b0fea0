package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/repository"
)

// ReservationService is the lifecycle orchestrator. Every entry point is one
// unit of work: the status change and the ledger mutation land together or
// not at all. The service holds no timers; the expiration sweep calls in from
// outside.
type ReservationService struct {
	uow repository.UnitOfWork
	now repository.Clock
}

func NewReservationService(uow repository.UnitOfWork, clock repository.Clock) *ReservationService {
	if clock == nil {
		clock = time.Now
	}

	return &ReservationService{uow: uow, now: clock}
}

// CreateDraft prices the stay, holds inventory for every night, and persists
// the reservation in DRAFT. On any failure (unknown room or user, no
// availability, corrupt ledger) nothing is persisted or decremented.
func (s *ReservationService) CreateDraft(ctx context.Context, userID, roomID uuid.UUID, checkIn, checkOut time.Time) (*domain.Reservation, error) {
	stay, err := domain.NewStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	var reservation *domain.Reservation

	err = s.uow.Atomic(ctx, func(st repository.Stores) error {
		if _, err := st.Users().FindByID(ctx, userID); err != nil {
			return err
		}

		total, breakdown, err := resolvePrice(ctx, st, roomID, stay)
		if err != nil {
			return err
		}

		if err := reserveDays(ctx, st, roomID, stay); err != nil {
			return err
		}

		res, err := domain.NewReservation(userID, roomID, stay, total, s.now())
		if err != nil {
			return err
		}

		res.Breakdown = &breakdown

		if err := st.Reservations().Save(ctx, res); err != nil {
			return err
		}

		reservation = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// InitiatePayment moves DRAFT to PENDING_PAYMENT and records an initiated
// payment for the frozen total. The ledger is untouched; inventory was
// committed at creation.
func (s *ReservationService) InitiatePayment(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, *domain.Payment, error) {
	var (
		reservation *domain.Reservation
		payment     *domain.Payment
	)

	err := s.uow.Atomic(ctx, func(st repository.Stores) error {
		res, err := st.Reservations().FindByID(ctx, reservationID)
		if err != nil {
			return err
		}

		if err := res.TransitionTo(domain.StatusPendingPayment); err != nil {
			return err
		}

		pay := &domain.Payment{
			ID:            uuid.New(),
			ReservationID: res.ID,
			Amount:        res.TotalAmount,
			Status:        domain.PaymentInitiated,
			CreatedAt:     s.now().UTC(),
		}

		if err := st.Payments().Save(ctx, pay); err != nil {
			return err
		}

		if err := st.Reservations().Save(ctx, res); err != nil {
			return err
		}

		reservation, payment = res, pay

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return reservation, payment, nil
}

// ConfirmPayment moves PENDING_PAYMENT to CONFIRMED and marks the linked
// payment completed. A duplicate confirmation (webhook redelivery) fails the
// transition check and changes nothing.
func (s *ReservationService) ConfirmPayment(ctx context.Context, reservationID, paymentID uuid.UUID) (*domain.Reservation, error) {
	var reservation *domain.Reservation

	err := s.uow.Atomic(ctx, func(st repository.Stores) error {
		res, err := st.Reservations().FindByID(ctx, reservationID)
		if err != nil {
			return err
		}

		if err := res.TransitionTo(domain.StatusConfirmed); err != nil {
			return err
		}

		payment, err := st.Payments().FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		if payment.ReservationID != res.ID {
			return fmt.Errorf("payment %s does not belong to reservation %s: %w",
				paymentID, reservationID, domain.ErrPaymentNotFound)
		}

		payment.Status = domain.PaymentCompleted

		if err := st.Payments().Save(ctx, payment); err != nil {
			return err
		}

		if err := st.Reservations().Save(ctx, res); err != nil {
			return err
		}

		reservation = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// ExpireReservation moves PENDING_PAYMENT to EXPIRED and gives the held
// inventory back.
func (s *ReservationService) ExpireReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	return s.endWithRelease(ctx, reservationID, domain.StatusExpired)
}

// CancelReservation cancels a DRAFT, PENDING_PAYMENT, or CONFIRMED
// reservation and gives the held inventory back.
func (s *ReservationService) CancelReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	return s.endWithRelease(ctx, reservationID, domain.StatusCancelled)
}

func (s *ReservationService) endWithRelease(ctx context.Context, reservationID uuid.UUID, target domain.ReservationStatus) (*domain.Reservation, error) {
	var reservation *domain.Reservation

	err := s.uow.Atomic(ctx, func(st repository.Stores) error {
		res, err := st.Reservations().FindByID(ctx, reservationID)
		if err != nil {
			return err
		}

		held := res.HoldsInventory()

		if err := res.TransitionTo(target); err != nil {
			return err
		}

		if held {
			if err := releaseDays(ctx, st, res.RoomID, res.Stay); err != nil {
				return err
			}
		}

		if err := st.Reservations().Save(ctx, res); err != nil {
			return err
		}

		reservation = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// RefundReservation moves CANCELLED to REFUNDED and marks completed payments
// refunded, carrying the gateway's refund reference for correlation.
func (s *ReservationService) RefundReservation(ctx context.Context, reservationID uuid.UUID, refundRef string) (*domain.Reservation, error) {
	var reservation *domain.Reservation

	err := s.uow.Atomic(ctx, func(st repository.Stores) error {
		res, err := st.Reservations().FindByID(ctx, reservationID)
		if err != nil {
			return err
		}

		if err := res.TransitionTo(domain.StatusRefunded); err != nil {
			return err
		}

		payments, err := st.Payments().FindByReservation(ctx, res.ID)
		if err != nil {
			return err
		}

		for _, payment := range payments {
			if payment.Status != domain.PaymentCompleted {
				continue
			}

			payment.Status = domain.PaymentRefunded
			payment.ProviderRef = refundRef

			if err := st.Payments().Save(ctx, payment); err != nil {
				return err
			}
		}

		if err := st.Reservations().Save(ctx, res); err != nil {
			return err
		}

		reservation = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	return s.uow.Reservations().FindByID(ctx, reservationID)
}

func (s *ReservationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reservation, error) {
	return s.uow.Reservations().FindByUser(ctx, userID)
}

func (s *ReservationService) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error) {
	return s.uow.Reservations().FindByStatus(ctx, status)
}

// FindOverdue lists PENDING_PAYMENT reservations created before the cutoff.
// The expiration sweep feeds these back into ExpireReservation one by one.
func (s *ReservationService) FindOverdue(ctx context.Context, cutoff time.Time) ([]*domain.Reservation, error) {
	pending, err := s.uow.Reservations().FindByStatus(ctx, domain.StatusPendingPayment)
	if err != nil {
		return nil, err
	}

	var overdue []*domain.Reservation

	for _, res := range pending {
		if res.CreatedAt.Before(cutoff) {
			overdue = append(overdue, res)
		}
	}

	return overdue, nil
}
