package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"
)

type PricingController struct {
	pricing *services.PricingService
}

func NewPricingController(pricing *services.PricingService) *PricingController {
	return &PricingController{pricing: pricing}
}

// GetQuote prices a prospective stay without creating anything. Response
// carries the full breakdown so the frontend can show which rules fired.
func (pc *PricingController) GetQuote(c *gin.Context) {
	roomID, err := uuid.Parse(c.Query("room_id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room_id")

		return
	}

	checkIn, err := utils.ParseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	checkOut, err := utils.ParseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	stay, err := domain.NewStay(checkIn, checkOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	breakdown, err := pc.pricing.PriceBreakdown(c.Request.Context(), roomID, stay)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusOK, breakdown)
}

type createRuleRequest struct {
	RoomID      string `json:"room_id" binding:"required"`
	Start       string `json:"start" binding:"required"`
	End         string `json:"end" binding:"required"`
	PriceAmount int64  `json:"price_amount" binding:"min=0"`
	Currency    string `json:"currency" binding:"required"`
	Description string `json:"description"`
}

func (pc *PricingController) CreateRule(c *gin.Context) {
	var req createRuleRequest
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

	rule, err := pc.pricing.CreateRule(c.Request.Context(), roomID, start, end, req.PriceAmount, req.Currency, req.Description)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusCreated, rule)
}
