// Package jobs holds the background work that drives the reservation
// lifecycle from outside: the core itself has no timers.
package jobs

import (
	"context"
	"errors"
	"log"
	"time"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/services"
)

// ExpirationSweeper periodically expires PENDING_PAYMENT reservations older
// than the payment timeout, releasing their held inventory.
type ExpirationSweeper struct {
	reservations *services.ReservationService
	timeout      time.Duration
	interval     time.Duration
}

func NewExpirationSweeper(reservations *services.ReservationService, timeout, interval time.Duration) *ExpirationSweeper {
	return &ExpirationSweeper{
		reservations: reservations,
		timeout:      timeout,
		interval:     interval,
	}
}

// Run blocks until ctx is done. Each tick is best-effort: a failure on one
// reservation is logged and the sweep moves on, so one bad record cannot
// stall expiry for everything else.
func (j *ExpirationSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.SweepOnce(ctx)
		}
	}
}

// SweepOnce expires everything currently overdue and reports how many
// reservations were expired.
func (j *ExpirationSweeper) SweepOnce(ctx context.Context) int {
	cutoff := time.Now().UTC().Add(-j.timeout)

	overdue, err := j.reservations.FindOverdue(ctx, cutoff)
	if err != nil {
		log.Printf("expiration sweep: list overdue reservations: %v", err)

		return 0
	}

	expired := 0

	for _, res := range overdue {
		if _, err := j.reservations.ExpireReservation(ctx, res.ID); err != nil {
			// A concurrent confirm or cancel can win the race; that shows up
			// as an invalid transition and is not a sweep failure.
			if errors.Is(err, domain.ErrInvalidTransition) {
				continue
			}

			log.Printf("expiration sweep: expire reservation %s: %v", res.ID, err)

			continue
		}

		expired++
	}

	if expired > 0 {
		log.Printf("expiration sweep: expired %d overdue reservations", expired)
	}

	return expired
}
