package models

import (
	"time"

	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:char(36)" json:"id"`
	Email        string    `gorm:"column:email;uniqueIndex;type:varchar(191)" json:"email"`
	FullName     string    `gorm:"column:full_name;size:191" json:"full_name"`
	PasswordHash string    `gorm:"column:password_hash;size:191" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (m User) ToDomain() (domain.User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return domain.User{}, err
	}

	return domain.User{
		ID:           id,
		Email:        m.Email,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}, nil
}

func UserFromDomain(u domain.User) User {
	return User{
		ID:           u.ID.String(),
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}
