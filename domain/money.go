package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Money is an amount in minor units (cents, satang, ...) of an ISO 4217
// currency. Minor units keep nightly-rate arithmetic exact.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errors.New("money amount must be non-negative")
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return Money{}, fmt.Errorf("invalid currency code %q", currency)
	}

	return Money{Amount: amount, Currency: currency}, nil
}

// MustMoney is for wiring and tests where the inputs are constants.
func MustMoney(amount int64, currency string) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}

	return m
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("add %s to %s: %w", other.Currency, m.Currency, ErrCurrencyMismatch)
	}

	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// MulNights scales a nightly rate by a night count.
func (m Money) MulNights(nights int) Money {
	return Money{Amount: m.Amount * int64(nights), Currency: m.Currency}
}

func (m Money) IsZero() bool {
	return m.Amount == 0 && m.Currency == ""
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.Amount/100, m.Amount%100, m.Currency)
}
