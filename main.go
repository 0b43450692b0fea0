package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-reservation-backend/config"
	"hotel-reservation-backend/controllers"
	"hotel-reservation-backend/jobs"
	"hotel-reservation-backend/repository"
	"hotel-reservation-backend/repository/gormstore"
	"hotel-reservation-backend/repository/memstore"
	"hotel-reservation-backend/routes"
	"hotel-reservation-backend/services"
)

func envMinutes(key string, def int) time.Duration {
	raw := config.EnvOrDefault(key, "")
	if raw == "" {
		return time.Duration(def) * time.Minute
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes < 1 {
		log.Printf("⚠️  invalid %s=%q, using %d minutes", key, raw, def)

		return time.Duration(def) * time.Minute
	}

	return time.Duration(minutes) * time.Minute
}

func buildUnitOfWork() repository.UnitOfWork {
	driver := config.EnvOrDefault("STORE_DRIVER", "mysql")

	switch driver {
	case "memory":
		log.Println("✅ Using in-memory store (STORE_DRIVER=memory)")

		return memstore.New()
	case "mysql":
		if err := config.ConnectDatabase(); err != nil {
			log.Fatalf("❌ Database connect failed: %v", err)
		}
		if config.DB == nil {
			log.Fatal("❌ config.DB is nil after ConnectDatabase()")
		}
		log.Println("✅ Database connection established and migrations applied.")

		return gormstore.New(config.DB)
	default:
		log.Fatalf("❌ Unknown STORE_DRIVER %q (want mysql or memory)", driver)

		return nil
	}
}

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	uow := buildUnitOfWork()

	if config.EnvOrDefault("SEED_DEMO_DATA", "true") == "true" {
		if err := config.SeedDemoData(context.Background(), uow); err != nil {
			log.Fatalf("❌ Demo data seed failed: %v", err)
		}
	}

	// Initialize services
	availabilityService := services.NewAvailabilityService(uow)
	pricingService := services.NewPricingService(uow)
	reservationService := services.NewReservationService(uow, time.Now)
	paymentService := services.NewPaymentService(uow)
	roomService := services.NewRoomService(uow)

	// Initialize controllers
	reservationController := controllers.NewReservationController(reservationService, paymentService)
	availabilityController := controllers.NewAvailabilityController(availabilityService)
	pricingController := controllers.NewPricingController(pricingService)
	roomController := controllers.NewRoomController(roomService)

	// Build router
	router := routes.SetupRouter(reservationController, availabilityController, pricingController, roomController)

	// Background expiration sweep: PENDING_PAYMENT reservations older than the
	// payment timeout are expired and their inventory released.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()

	sweeper := jobs.NewExpirationSweeper(
		reservationService,
		envMinutes("RESERVATION_PAYMENT_TIMEOUT_MIN", 30),
		envMinutes("EXPIRATION_SWEEP_INTERVAL_MIN", 1),
	)
	go sweeper.Run(sweepCtx)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	stopSweep()

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
