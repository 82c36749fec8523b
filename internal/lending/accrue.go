package lending

import (
	"lending/core"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear seconds per year, annual rates are divided by it
	SecondsPerYear = decimal.NewFromInt(365 * 24 * 60 * 60)
	// MaxPricision max pricision of value per share
	MaxPricision int32 = 16
	// ExpPricision pricision of e^(rate*t)
	ExpPricision int32 = 30
	// maxExponent e^45 already exceeds math.MaxUint64
	maxExponent = decimal.NewFromInt(45)
)

// RatePerSecond convert an annual rate to the per second rate stored in the bank
func RatePerSecond(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(SecondsPerYear).Truncate(18)
}

// Elapsed seconds from last to now, zero when the clock reads earlier than last
// or the depositor never accrued before
func Elapsed(last, now int64) int64 {
	if last <= 0 || now <= last {
		return 0
	}

	return now - last
}

// Accrue continuously compounds total for elapsed seconds at rate per second:
// total * e^(rate*elapsed), truncated toward zero
func Accrue(total uint64, rate decimal.Decimal, elapsed int64) (uint64, error) {
	if rate.IsNegative() {
		return 0, core.ErrInvalidInterestRate
	}

	if elapsed <= 0 || rate.IsZero() || total == 0 {
		return total, nil
	}

	exponent := rate.Mul(decimal.NewFromInt(elapsed))
	if exponent.GreaterThan(maxExponent) {
		return 0, core.ErrArithmeticOverflow
	}

	multiplier, err := exponent.ExpTaylor(ExpPricision)
	if err != nil {
		return 0, core.ErrArithmeticOverflow
	}

	accrued, ok := number.ToUint64(number.FromUint64(total).Mul(multiplier))
	if !ok {
		return 0, core.ErrArithmeticOverflow
	}

	// rounding inside the exponent must never shrink the pool
	if accrued < total {
		accrued = total
	}

	return accrued, nil
}
