package services

import (
	"context"

	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/repository"
)

// PaymentService is the read surface over payment linkage. Writes happen
// through the orchestrator (initiate/confirm/refund); the gateway protocol
// itself is outside this module.
type PaymentService struct {
	uow repository.UnitOfWork
}

func NewPaymentService(uow repository.UnitOfWork) *PaymentService {
	return &PaymentService{uow: uow}
}

func (s *PaymentService) GetPayment(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	return s.uow.Payments().FindByID(ctx, paymentID)
}

func (s *PaymentService) ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]*domain.Payment, error) {
	return s.uow.Payments().FindByReservation(ctx, reservationID)
}
