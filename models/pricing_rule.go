package models

import (
	"time"

	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
)

type PricingRule struct {
	ID     string `gorm:"primaryKey;type:char(36)" json:"id"`
	RoomID string `gorm:"column:room_id;type:char(36);index" json:"room_id"`

	StartDate time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date" json:"end_date"`

	PriceAmount int64  `gorm:"column:price_amount" json:"price_amount"`
	Currency    string `gorm:"column:currency;type:char(3)" json:"currency"`

	Description string `gorm:"column:description;type:text" json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PricingRule) TableName() string { return "pricing_rules" }

func (m PricingRule) ToDomain() (domain.PricingRule, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return domain.PricingRule{}, err
	}

	roomID, err := uuid.Parse(m.RoomID)
	if err != nil {
		return domain.PricingRule{}, err
	}

	r, err := domain.NewDateRange(m.StartDate, m.EndDate)
	if err != nil {
		return domain.PricingRule{}, err
	}

	price, err := domain.NewMoney(m.PriceAmount, m.Currency)
	if err != nil {
		return domain.PricingRule{}, err
	}

	return domain.PricingRule{
		ID:          id,
		RoomID:      roomID,
		Range:       r,
		Price:       price,
		Description: m.Description,
	}, nil
}

func PricingRuleFromDomain(rule domain.PricingRule) PricingRule {
	return PricingRule{
		ID:          rule.ID.String(),
		RoomID:      rule.RoomID.String(),
		StartDate:   rule.Range.Start,
		EndDate:     rule.Range.End,
		PriceAmount: rule.Price.Amount,
		Currency:    rule.Price.Currency,
		Description: rule.Description,
	}
}
