package domain

import "github.com/google/uuid"

type RoomType string

const (
	RoomSingle RoomType = "SINGLE"
	RoomDouble RoomType = "DOUBLE"
	RoomSuite  RoomType = "SUITE"
)

// Room carries what the reservation core needs: identity and the base nightly
// rate in the room's currency. Hotel metadata lives outside the core.
type Room struct {
	ID       uuid.UUID `json:"id"`
	HotelID  uuid.UUID `json:"hotel_id"`
	Number   string    `json:"number"`
	Type     RoomType  `json:"type"`
	BaseRate Money     `json:"base_rate"`
}
