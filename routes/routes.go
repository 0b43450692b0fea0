package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"hotel-reservation-backend/controllers"
	"hotel-reservation-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	rc *controllers.ReservationController,
	ac *controllers.AvailabilityController,
	pc *controllers.PricingController,
	roomController *controllers.RoomController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	writeLimit := middleware.RateLimit(rate.Limit(50), 100)

	api := r.Group("/api")
	{
		reservations := api.Group("/reservations")
		{
			reservations.GET("", rc.ListReservations)
			reservations.POST("", writeLimit, rc.CreateReservation)
			reservations.GET("/:id", rc.GetReservation)
			reservations.POST("/:id/payment", writeLimit, rc.InitiatePayment)
			reservations.POST("/:id/confirm", writeLimit, rc.ConfirmPayment)
			reservations.POST("/:id/cancel", writeLimit, rc.CancelReservation)
			reservations.POST("/:id/expire", writeLimit, rc.ExpireReservation)
			reservations.POST("/:id/refund", writeLimit, rc.RefundReservation)
			reservations.GET("/:id/payments", rc.ListPayments)
		}

		availability := api.Group("/availability")
		{
			availability.GET("", ac.QueryAvailability)
			availability.GET("/check", ac.CheckAvailability)
			availability.POST("", writeLimit, ac.SeedAvailability)
		}

		pricing := api.Group("/pricing")
		{
			pricing.GET("/quote", pc.GetQuote)
			pricing.POST("/rules", writeLimit, pc.CreateRule)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomController.GetRooms)
			rooms.GET("/:id", roomController.GetRoomByID)
			rooms.POST("", writeLimit, roomController.CreateRoom)
		}
	}

	return r
}
