package core

import (
	"github.com/shopspring/decimal"
)

// Transfer custody transfer request, moves Amount of AssetID from the bank wallet to OpponentID
type Transfer struct {
	TraceID    string          `json:"trace_id,omitempty"`
	OpponentID string          `json:"opponent_id,omitempty"`
	AssetID    string          `json:"asset_id,omitempty"`
	Amount     decimal.Decimal `json:"amount,omitempty"`
	Memo       string          `json:"memo,omitempty"`
}
