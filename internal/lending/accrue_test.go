package lending

import (
	"testing"

	"lending/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccrueZeroElapsed(t *testing.T) {
	for _, rate := range []string{"0", "0.1", "0.0000001", "3"} {
		t.Run(rate, func(t *testing.T) {
			total, err := Accrue(1000000, decimal.RequireFromString(rate), 0)
			require.Nil(t, err)
			assert.Equal(t, uint64(1000000), total)
		})
	}
}

func TestAccrue(t *testing.T) {
	total, err := Accrue(1000000, decimal.RequireFromString("0.1"), 1)
	require.Nil(t, err)
	// floor(1,000,000 * e^0.1)
	assert.Equal(t, uint64(1105170), total)

	total, err = Accrue(1000000, decimal.Zero, 3600)
	require.Nil(t, err)
	assert.Equal(t, uint64(1000000), total)
}

func TestAccrueMonotonic(t *testing.T) {
	rate := RatePerSecond(decimal.RequireFromString("0.05"))
	require.True(t, rate.IsPositive())

	var last uint64
	for _, elapsed := range []int64{0, 1, 60, 3600, 86400, 86400 * 30, 86400 * 365} {
		total, err := Accrue(1000000000000, rate, elapsed)
		require.Nil(t, err)
		assert.GreaterOrEqual(t, total, last, "elapsed %d", elapsed)
		last = total
	}

	// one year at the truncated per second rate of 5% annual
	assert.Equal(t, uint64(1051271096369), last)
}

func TestAccrueErrors(t *testing.T) {
	_, err := Accrue(1, decimal.RequireFromString("-0.1"), 1)
	assert.ErrorIs(t, err, core.ErrInvalidInterestRate)

	_, err = Accrue(1, decimal.RequireFromString("0.1"), 1000)
	assert.ErrorIs(t, err, core.ErrArithmeticOverflow)

	_, err = Accrue(^uint64(0), decimal.RequireFromString("0.1"), 1)
	assert.ErrorIs(t, err, core.ErrArithmeticOverflow)
}

func TestElapsed(t *testing.T) {
	assert.Equal(t, int64(10), Elapsed(100, 110))
	assert.Equal(t, int64(0), Elapsed(110, 100), "clock behind the last update")
	assert.Equal(t, int64(0), Elapsed(0, 100), "never accrued")
	assert.Equal(t, int64(0), Elapsed(100, 100))
}
