package lending

import (
	"testing"

	"lending/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuePerShare(t *testing.T) {
	_, err := ValuePerShare(100, 0)
	assert.ErrorIs(t, err, core.ErrPoolEmpty)

	price, err := ValuePerShare(1000000, 1000000)
	require.Nil(t, err)
	assert.True(t, price.Equal(decimal.New(1, 0)))

	price, err = ValuePerShare(10, 3)
	require.Nil(t, err)
	assert.Equal(t, "3.3333333333333333", price.String())
}

func TestSharesNeverExceedTotal(t *testing.T) {
	totals := []uint64{1, 7, 1000, 1000003, 999999999999, 18446744073709551615}
	shares := []uint64{1, 3, 999, 1000000, 123456789, 18446744073709551615}

	for _, total := range totals {
		for _, s := range shares {
			price, err := ValuePerShare(total, s)
			require.Nil(t, err)

			value, err := SharesToValue(s, price)
			require.Nil(t, err)
			assert.LessOrEqual(t, value, total, "total %d shares %d", total, s)
		}
	}
}

func TestRoundTripDust(t *testing.T) {
	price, err := ValuePerShare(1000003, 999999)
	require.Nil(t, err)

	for _, s := range []uint64{1, 2, 3, 17, 1000, 999999} {
		value, err := SharesToValue(s, price)
		require.Nil(t, err)

		back, err := ValueToShares(value, price)
		require.Nil(t, err)
		assert.LessOrEqual(t, back, s)

		again, err := SharesToValue(back, price)
		require.Nil(t, err)
		assert.LessOrEqual(t, again, value)
	}
}

func TestSharesToBurn(t *testing.T) {
	price, err := ValuePerShare(3, 2)
	require.Nil(t, err)

	shares, err := SharesToBurn(3, price)
	require.Nil(t, err)
	assert.Equal(t, uint64(2), shares)

	// 1 / 1.5 rounds up to a whole share
	shares, err = SharesToBurn(1, price)
	require.Nil(t, err)
	assert.Equal(t, uint64(1), shares)

	truncated, err := ValueToShares(1, price)
	require.Nil(t, err)
	assert.Equal(t, uint64(0), truncated)

	_, err = SharesToBurn(1, decimal.Zero)
	assert.ErrorIs(t, err, core.ErrPoolEmpty)
}
