package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"hotel-reservation-backend/domain"
)

type Reservation struct {
	ID     string `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID string `gorm:"column:user_id;type:char(36);index" json:"user_id"`
	RoomID string `gorm:"column:room_id;type:char(36);index" json:"room_id"`

	CheckIn  time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out" json:"check_out"`

	// Frozen at creation: the stored total is a snapshot, never recomputed
	// from the live rule set.
	TotalAmount int64  `gorm:"column:total_amount" json:"total_amount"`
	Currency    string `gorm:"column:currency;type:char(3)" json:"currency"`

	Status string `gorm:"column:status;size:32;index" json:"status"`

	// Breakdown captured at pricing time, kept for audit/display.
	PriceBreakdown datatypes.JSON `gorm:"column:price_breakdown" json:"price_breakdown,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Reservation) TableName() string { return "reservations" }

func (m Reservation) breakdown() (*domain.PriceBreakdown, error) {
	if len(m.PriceBreakdown) == 0 {
		return nil, nil
	}

	var bd domain.PriceBreakdown
	if err := json.Unmarshal(m.PriceBreakdown, &bd); err != nil {
		return nil, fmt.Errorf("decode price breakdown: %w", err)
	}

	return &bd, nil
}

func (m Reservation) ToDomain() (*domain.Reservation, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, err
	}

	roomID, err := uuid.Parse(m.RoomID)
	if err != nil {
		return nil, err
	}

	stay, err := domain.NewDateRange(m.CheckIn, m.CheckOut)
	if err != nil {
		return nil, err
	}

	total, err := domain.NewMoney(m.TotalAmount, m.Currency)
	if err != nil {
		return nil, err
	}

	bd, err := m.breakdown()
	if err != nil {
		return nil, err
	}

	return &domain.Reservation{
		ID:          id,
		UserID:      userID,
		RoomID:      roomID,
		Stay:        stay,
		TotalAmount: total,
		Status:      domain.ReservationStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		Breakdown:   bd,
	}, nil
}

func ReservationFromDomain(r *domain.Reservation) Reservation {
	var snapshot datatypes.JSON
	if r.Breakdown != nil {
		if raw, err := json.Marshal(r.Breakdown); err == nil {
			snapshot = datatypes.JSON(raw)
		}
	}

	return Reservation{
		ID:             r.ID.String(),
		UserID:         r.UserID.String(),
		RoomID:         r.RoomID.String(),
		CheckIn:        r.Stay.Start,
		CheckOut:       r.Stay.End,
		TotalAmount:    r.TotalAmount.Amount,
		Currency:       r.TotalAmount.Currency,
		Status:         string(r.Status),
		PriceBreakdown: snapshot,
		CreatedAt:      r.CreatedAt,
	}
}
