package lending

import (
	"lending/core"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
)

var one = decimal.New(1, 0)

// ValuePerShare total / shares truncated to MaxPricision, so price * shares never exceeds total
func ValuePerShare(total, shares uint64) (decimal.Decimal, error) {
	if shares == 0 {
		return decimal.Zero, core.ErrPoolEmpty
	}

	q, _ := number.FromUint64(total).QuoRem(number.FromUint64(shares), MaxPricision)
	return q, nil
}

// SharesToValue shares * price, truncated
func SharesToValue(shares uint64, price decimal.Decimal) (uint64, error) {
	v, ok := number.ToUint64(number.FromUint64(shares).Mul(price))
	if !ok {
		return 0, core.ErrArithmeticOverflow
	}

	return v, nil
}

// ValueToShares value / price, truncated
func ValueToShares(value uint64, price decimal.Decimal) (uint64, error) {
	if !price.IsPositive() {
		return 0, core.ErrPoolEmpty
	}

	q, _ := number.FromUint64(value).QuoRem(price, 0)
	v, ok := number.ToUint64(q)
	if !ok {
		return 0, core.ErrArithmeticOverflow
	}

	return v, nil
}

// SharesToBurn value / price rounded up, the shares a withdrawal of value must burn.
// Unlike ValueToShares it never truncates, a withdrawal must not take value its burned shares do not cover.
func SharesToBurn(value uint64, price decimal.Decimal) (uint64, error) {
	if !price.IsPositive() {
		return 0, core.ErrPoolEmpty
	}

	q, r := number.FromUint64(value).QuoRem(price, 0)
	if !r.IsZero() {
		q = q.Add(one)
	}

	v, ok := number.ToUint64(q)
	if !ok {
		return 0, core.ErrArithmeticOverflow
	}

	return v, nil
}
