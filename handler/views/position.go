package views

import (
	"lending/core"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
)

// Position position view, valued at request time
type Position struct {
	Asset   core.Asset      `json:"asset"`
	Symbol  string          `json:"symbol"`
	AssetID string          `json:"asset_id"`
	Shares  uint64          `json:"shares"`
	Value   uint64          `json:"value"`
	Amount  decimal.Decimal `json:"amount"`
}

// PositionView render position of bank's asset
func PositionView(position *core.Position, bank *core.Bank) *Position {
	return &Position{
		Asset:   bank.Asset,
		Symbol:  bank.Symbol,
		AssetID: bank.AssetID,
		Shares:  position.Shares,
		Value:   position.Deposited,
		Amount:  number.FromUnits(position.Deposited, bank.Decimals),
	}
}
