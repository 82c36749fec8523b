package views

import (
	"testing"

	"lending/core"
	"lending/internal/lending"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBankView(t *testing.T) {
	bank := &core.Bank{
		Asset:              core.AssetUSDC,
		Decimals:           6,
		TotalDeposits:      3000000,
		TotalDepositShares: 2000000,
		InterestRate:       lending.RatePerSecond(decimal.RequireFromString("0.05")),
	}

	v := BankView(bank)
	assert.Equal(t, "3", v.Amount.String())
	assert.Equal(t, "1.5", v.ValuePerShare.String())
	assert.Equal(t, "0.04999999", v.AnnualRate.String())

	empty := BankView(&core.Bank{Decimals: 9})
	assert.Equal(t, "1", empty.ValuePerShare.String())
}

func TestPositionView(t *testing.T) {
	bank := &core.Bank{Asset: core.AssetSOL, Symbol: "SOL", AssetID: "64692c23-8971-4cf4-84a7-4dd1271dd887", Decimals: 9}
	v := PositionView(&core.Position{Deposited: 1500000000, Shares: 10}, bank)
	assert.Equal(t, "1.5", v.Amount.String())
	assert.Equal(t, "SOL", v.Symbol)
	assert.Equal(t, uint64(10), v.Shares)
}
