package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"
)

type ReservationController struct {
	reservations *services.ReservationService
	payments     *services.PaymentService
}

func NewReservationController(reservations *services.ReservationService, payments *services.PaymentService) *ReservationController {
	return &ReservationController{reservations: reservations, payments: payments}
}

type createReservationRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	RoomID   string `json:"room_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid user_id")

		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room_id")

		return
	}

	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	reservation, err := rc.reservations.CreateDraft(c.Request.Context(), userID, roomID, checkIn, checkOut)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reservation, err := rc.reservations.GetReservation(c.Request.Context(), id)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (rc *ReservationController) ListReservations(c *gin.Context) {
	ctx := c.Request.Context()

	if rawUser := c.Query("user_id"); rawUser != "" {
		userID, err := uuid.Parse(rawUser)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid user_id")

			return
		}

		list, err := rc.reservations.ListByUser(ctx, userID)
		if err != nil {
			utils.JSONDomainError(c, err)

			return
		}

		utils.JSONSuccess(c, http.StatusOK, list)

		return
	}

	if status := c.Query("status"); status != "" {
		list, err := rc.reservations.ListByStatus(ctx, domain.ReservationStatus(status))
		if err != nil {
			utils.JSONDomainError(c, err)

			return
		}

		utils.JSONSuccess(c, http.StatusOK, list)

		return
	}

	utils.JSONError(c, http.StatusBadRequest, "provide user_id or status")
}

func (rc *ReservationController) InitiatePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reservation, payment, err := rc.reservations.InitiatePayment(c.Request.Context(), id)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"reservation": reservation, "payment": payment})
}

type confirmPaymentRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
}

func (rc *ReservationController) ConfirmPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payment_id")

		return
	}

	reservation, err := rc.reservations.ConfirmPayment(c.Request.Context(), id, paymentID)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reservation, err := rc.reservations.CancelReservation(c.Request.Context(), id)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (rc *ReservationController) ExpireReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reservation, err := rc.reservations.ExpireReservation(c.Request.Context(), id)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservation)
}

type refundRequest struct {
	RefundRef string `json:"refund_ref" binding:"required"`
}

func (rc *ReservationController) RefundReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	reservation, err := rc.reservations.RefundReservation(c.Request.Context(), id, req.RefundRef)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// ListPayments returns the payment history for a reservation, most useful
// after a refund to see the carried provider reference.
func (rc *ReservationController) ListPayments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := rc.reservations.GetReservation(c.Request.Context(), id); err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	payments, err := rc.payments.ListByReservation(c.Request.Context(), id)
	if err != nil {
		utils.JSONDomainError(c, err)

		return
	}

	utils.JSONSuccess(c, http.StatusOK, payments)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")

		return uuid.Nil, false
	}

	return id, true
}
