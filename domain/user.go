package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the minimal owner aggregate for reservations. Authentication and
// token issuance live outside this module.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
