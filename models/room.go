package models

import (
	"time"

	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
)

type Room struct {
	ID      string `gorm:"primaryKey;type:char(36)" json:"id"`
	HotelID string `gorm:"column:hotel_id;type:char(36);index" json:"hotel_id"`

	RoomNumber string `gorm:"column:room_number;uniqueIndex;type:varchar(50)" json:"roomNumber"`
	Type       string `gorm:"column:type;size:32" json:"type"`

	// Base nightly rate in minor units of Currency.
	BaseRateAmount int64  `gorm:"column:base_rate_amount" json:"baseRateAmount"`
	Currency       string `gorm:"column:currency;type:char(3)" json:"currency"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Room) TableName() string { return "rooms" }

func (m Room) ToDomain() (domain.Room, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return domain.Room{}, err
	}

	hotelID, err := uuid.Parse(m.HotelID)
	if err != nil {
		return domain.Room{}, err
	}

	rate, err := domain.NewMoney(m.BaseRateAmount, m.Currency)
	if err != nil {
		return domain.Room{}, err
	}

	return domain.Room{
		ID:       id,
		HotelID:  hotelID,
		Number:   m.RoomNumber,
		Type:     domain.RoomType(m.Type),
		BaseRate: rate,
	}, nil
}

func RoomFromDomain(room domain.Room) Room {
	return Room{
		ID:             room.ID.String(),
		HotelID:        room.HotelID.String(),
		RoomNumber:     room.Number,
		Type:           string(room.Type),
		BaseRateAmount: room.BaseRate.Amount,
		Currency:       room.BaseRate.Currency,
	}
}
