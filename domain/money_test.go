package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(12050, "usd")
	require.NoError(t, err)
	assert.Equal(t, int64(12050), m.Amount)
	assert.Equal(t, "USD", m.Currency)

	_, err = NewMoney(-1, "USD")
	assert.Error(t, err)

	_, err = NewMoney(100, "DOLLARS")
	assert.Error(t, err)

	_, err = NewMoney(100, "")
	assert.Error(t, err)
}

func TestMoneyAdd(t *testing.T) {
	a := MustMoney(10000, "USD")
	b := MustMoney(2500, "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, MustMoney(12500, "USD"), sum)

	_, err = a.Add(MustMoney(100, "EUR"))
	require.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoneyMulNights(t *testing.T) {
	rate := MustMoney(9900, "THB")
	assert.Equal(t, MustMoney(29700, "THB"), rate.MulNights(3))
	assert.Equal(t, MustMoney(0, "THB"), rate.MulNights(0))
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "120.50 USD", MustMoney(12050, "USD").String())
	assert.Equal(t, "0.05 USD", MustMoney(5, "USD").String())
}

func TestMoneyIsZero(t *testing.T) {
	assert.True(t, Money{}.IsZero())
	assert.False(t, MustMoney(0, "USD").IsZero())
}
