package models

import (
	"time"

	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
)

type Payment struct {
	ID            string `gorm:"primaryKey;type:char(36)" json:"id"`
	ReservationID string `gorm:"column:reservation_id;type:char(36);index" json:"reservation_id"`

	Amount   int64  `gorm:"column:amount" json:"amount"`
	Currency string `gorm:"column:currency;type:char(3)" json:"currency"`

	Status      string `gorm:"column:status;size:32" json:"status"`
	ProviderRef string `gorm:"column:provider_ref;size:128" json:"provider_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

func (m Payment) ToDomain() (*domain.Payment, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	reservationID, err := uuid.Parse(m.ReservationID)
	if err != nil {
		return nil, err
	}

	amount, err := domain.NewMoney(m.Amount, m.Currency)
	if err != nil {
		return nil, err
	}

	return &domain.Payment{
		ID:            id,
		ReservationID: reservationID,
		Amount:        amount,
		Status:        domain.PaymentStatus(m.Status),
		ProviderRef:   m.ProviderRef,
		CreatedAt:     m.CreatedAt,
	}, nil
}

func PaymentFromDomain(p *domain.Payment) Payment {
	return Payment{
		ID:            p.ID.String(),
		ReservationID: p.ReservationID.String(),
		Amount:        p.Amount.Amount,
		Currency:      p.Amount.Currency,
		Status:        string(p.Status),
		ProviderRef:   p.ProviderRef,
		CreatedAt:     p.CreatedAt,
	}
}
