package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"
)

type AvailabilityController struct {
	availability *services.AvailabilityService
}

func NewAvailabilityController(availability *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{availability: availability}
}

func queryRange(c *gin.Context) (uuid.UUID, domain.DateRange, bool) {
	roomID, err := uuid.Parse(c.Query("room_id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room_id")

		return uuid.Nil, domain.DateRange{}, false
	}

	from, err := utils.ParseDate(c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return uuid.Nil, domain.DateRange{}, false
	}

	to, err := utils.ParseDate(c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return uuid.Nil, domain.DateRange{}, false
	}

	r, err := domain.NewDateRange(from, to)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return uuid.Nil, domain.DateRange{}, false
	}

	return roomID, r, true
}

func (ac *AvailabilityController) QueryAvailability(c *gin.Context) {
	roomID, r, ok := queryRange(c)
	if !ok {
		return
	}

	days, err := ac.availability.Query(c.Request.Context(), roomID, r)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusOK, days)
}

func (ac *AvailabilityController) CheckAvailability(c *gin.Context) {
	roomID, r, ok := queryRange(c)
	if !ok {
		return
	}

	available, err := ac.availability.IsFullyAvailable(c.Request.Context(), roomID, r)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"available": available})
}

type seedSlotRequest struct {
	RoomID   string `json:"room_id" binding:"required"`
	Start    string `json:"start" binding:"required"`
	End      string `json:"end" binding:"required"`
	Quantity int    `json:"quantity" binding:"min=0"`
}

func (ac *AvailabilityController) SeedAvailability(c *gin.Context) {
	var req seedSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room_id")

		return
	}

	start, err := utils.ParseDate(req.Start)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	end, err := utils.ParseDate(req.End)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	r, err := domain.NewDateRange(start, end)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	slot, err := domain.NewAvailabilitySlot(roomID, r, req.Quantity)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	if err := ac.availability.SeedSlot(c.Request.Context(), slot); err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusCreated, slot)
}
