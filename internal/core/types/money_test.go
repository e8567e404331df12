package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulInt_Exact(t *testing.T) {
	// 0.1 * 3 through float64 gives 0.30000000000000004. Money arithmetic
	// must stay exact.
	price := MustMoney("0.10")
	assert.True(t, MulInt(price, 3).Equal(MustMoney("0.30")))

	price = MustMoney("19.99")
	assert.True(t, MulInt(price, 1000).Equal(MustMoney("19990.00")))

	assert.True(t, MulInt(MustMoney("2.50"), 0).IsZero())
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("12.34")
	require.NoError(t, err)
	assert.True(t, m.Equal(MustMoney("12.34")))

	_, err = NewMoneyFromString("not a number")
	assert.Error(t, err)
}

func TestRoundMoney(t *testing.T) {
	assert.True(t, RoundMoney(MustMoney("1.005")).Equal(MustMoney("1.01")))
	assert.True(t, RoundMoney(MustMoney("1.004")).Equal(MustMoney("1.00")))
	assert.True(t, RoundMoney(MustMoney("2")).Equal(MustMoney("2")))
}

func TestZero(t *testing.T) {
	assert.True(t, Zero().IsZero())
	assert.True(t, Zero().Add(MustMoney("5.00")).Equal(MustMoney("5.00")))
}
