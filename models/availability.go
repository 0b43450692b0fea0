package models

import (
	"time"

	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
)

// AvailabilityDay is one ledger row. The composite unique index is the
// storage-level guarantee that each (room, date) is covered at most once.
type AvailabilityDay struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	RoomID string    `gorm:"column:room_id;type:char(36);uniqueIndex:idx_room_date" json:"room_id"`
	Date   time.Time `gorm:"column:date;uniqueIndex:idx_room_date" json:"date"`

	Remaining int `gorm:"column:remaining" json:"remaining"`
	Capacity  int `gorm:"column:capacity" json:"capacity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AvailabilityDay) TableName() string { return "availability_days" }

func (m AvailabilityDay) ToDomain() (domain.AvailabilityDay, error) {
	roomID, err := uuid.Parse(m.RoomID)
	if err != nil {
		return domain.AvailabilityDay{}, err
	}

	return domain.AvailabilityDay{
		RoomID:    roomID,
		Date:      domain.Date(m.Date),
		Remaining: m.Remaining,
		Capacity:  m.Capacity,
	}, nil
}

func AvailabilityDayFromDomain(day domain.AvailabilityDay) AvailabilityDay {
	return AvailabilityDay{
		RoomID:    day.RoomID.String(),
		Date:      domain.Date(day.Date),
		Remaining: day.Remaining,
		Capacity:  day.Capacity,
	}
}
