package views

import (
	"lending/core"
	"lending/internal/lending"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
)

// Bank bank view
type Bank struct {
	core.Bank
	// total deposits in asset units
	Amount        decimal.Decimal `json:"amount"`
	ValuePerShare decimal.Decimal `json:"value_per_share"`
	AnnualRate    decimal.Decimal `json:"annual_rate"`
}

// BankView render a bank as of its last stored accrual
func BankView(bank *core.Bank) *Bank {
	price, err := lending.ValuePerShare(bank.TotalDeposits, bank.TotalDepositShares)
	if err != nil {
		price = decimal.New(1, 0)
	}

	return &Bank{
		Bank:          *bank,
		Amount:        number.FromUnits(bank.TotalDeposits, bank.Decimals),
		ValuePerShare: price,
		AnnualRate:    bank.InterestRate.Mul(lending.SecondsPerYear).Truncate(8),
	}
}
