package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/repository"
)

const demoUserEmail = "guest@example.com"

// SeedDemoData loads a demo guest, two rooms, ninety days of availability,
// and a seasonal pricing rule. It runs on every start but is a no-op once the
// demo guest exists, so restarts do not duplicate ledger rows.
func SeedDemoData(ctx context.Context, uow repository.UnitOfWork) error {
	if _, err := uow.Users().FindByEmail(ctx, demoUserEmail); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("guest-password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	today := domain.Date(now)
	horizon := today.AddDate(0, 0, 90)

	hotelID := uuid.New()

	return uow.Atomic(ctx, func(st repository.Stores) error {
		user := domain.User{
			ID:           uuid.New(),
			Email:        demoUserEmail,
			FullName:     "Demo Guest",
			PasswordHash: string(hash),
			CreatedAt:    now,
		}
		if err := st.Users().Save(ctx, user); err != nil {
			return err
		}

		rooms := []struct {
			number   string
			roomType domain.RoomType
			rate     int64
			capacity int
		}{
			{"101", domain.RoomDouble, 12000, 3},
			{"201", domain.RoomSuite, 25000, 1},
		}

		for _, r := range rooms {
			rate, err := domain.NewMoney(r.rate, "USD")
			if err != nil {
				return err
			}

			room := domain.Room{
				ID:       uuid.New(),
				HotelID:  hotelID,
				Number:   r.number,
				Type:     r.roomType,
				BaseRate: rate,
			}
			if err := st.Rooms().Save(ctx, room); err != nil {
				return err
			}

			seedRange, err := domain.NewDateRange(today, horizon)
			if err != nil {
				return err
			}

			slot, err := domain.NewAvailabilitySlot(room.ID, seedRange, r.capacity)
			if err != nil {
				return err
			}
			if err := st.Availability().SeedSlot(ctx, slot); err != nil {
				return err
			}

			highStart := today.AddDate(0, 0, 30)
			highRange, err := domain.NewDateRange(highStart, highStart.AddDate(0, 0, 14))
			if err != nil {
				return err
			}

			highRate, err := domain.NewMoney(r.rate+r.rate/2, "USD")
			if err != nil {
				return err
			}

			rule, err := domain.NewPricingRule(room.ID, highRange, highRate,
				fmt.Sprintf("high season, room %s", r.number))
			if err != nil {
				return err
			}
			if err := st.PricingRules().Save(ctx, rule); err != nil {
				return err
			}

			log.Printf("seeded room %s (%s) with %d units through %s",
				room.Number, room.ID, r.capacity, horizon.Format("2006-01-02"))
		}

		return nil
	})
}
