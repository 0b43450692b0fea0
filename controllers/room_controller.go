package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"
)

type RoomController struct {
	rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{rooms: rooms}
}

type createRoomRequest struct {
	HotelID    string `json:"hotel_id" binding:"required"`
	RoomNumber string `json:"room_number" binding:"required"`
	Type       string `json:"type" binding:"required"`
	RateAmount int64  `json:"rate_amount" binding:"min=0"`
	Currency   string `json:"currency" binding:"required"`
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	hotelID, err := uuid.Parse(req.HotelID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid hotel_id")

		return
	}

	room, err := rc.rooms.CreateRoom(c.Request.Context(), hotelID, req.RoomNumber, domain.RoomType(req.Type), req.RateAmount, req.Currency)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.rooms.ListRooms(c.Request.Context())
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (rc *RoomController) GetRoomByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	room, err := rc.rooms.GetRoom(c.Request.Context(), id)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusOK, room)
}
