package number

import (
	"math/big"

	"github.com/shopspring/decimal"
)

var maxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)), 0)

// Decimal parse decimal, zero if invalid
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// Ceil round up at the given precision
func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// FromUint64 exact decimal of v
func FromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

// ToUint64 truncates d toward zero, ok is false if the result does not fit in uint64
func ToUint64(d decimal.Decimal) (v uint64, ok bool) {
	d = d.Truncate(0)
	if d.IsNegative() || d.GreaterThan(maxUint64) {
		return 0, false
	}

	return d.BigInt().Uint64(), true
}

// FromUnits smallest units to asset amount, 1500000 with 6 decimals is 1.5
func FromUnits(units uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(units), -decimals)
}

// ToUnits asset amount to smallest units, truncated
func ToUnits(amount decimal.Decimal, decimals int32) (uint64, bool) {
	return ToUint64(amount.Shift(decimals))
}
