package services

import (
	"context"

	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/repository"
)

// RoomService covers the administrative room operations the reservation core
// reads from: base rate and currency come from here.
type RoomService struct {
	uow repository.UnitOfWork
}

func NewRoomService(uow repository.UnitOfWork) *RoomService {
	return &RoomService{uow: uow}
}

func (s *RoomService) CreateRoom(ctx context.Context, hotelID uuid.UUID, number string, roomType domain.RoomType, rateAmount int64, currency string) (domain.Room, error) {
	rate, err := domain.NewMoney(rateAmount, currency)
	if err != nil {
		return domain.Room{}, err
	}

	room := domain.Room{
		ID:       uuid.New(),
		HotelID:  hotelID,
		Number:   number,
		Type:     roomType,
		BaseRate: rate,
	}

	err = s.uow.Atomic(ctx, func(st repository.Stores) error {
		return st.Rooms().Save(ctx, room)
	})
	if err != nil {
		return domain.Room{}, err
	}

	return room, nil
}

func (s *RoomService) GetRoom(ctx context.Context, roomID uuid.UUID) (domain.Room, error) {
	return s.uow.Rooms().FindByID(ctx, roomID)
}

func (s *RoomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.uow.Rooms().FindAll(ctx)
}
