package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Bank pool of one asset, shared by all depositors of that asset
type Bank struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Asset   Asset  `sql:"unique_index:bank_asset_idx" json:"asset"`
	Symbol  string `sql:"size:20" json:"symbol"`
	AssetID string `sql:"size:64;unique_index:bank_asset_id_idx" json:"asset_id"`
	// 最小单位的精度, 例如 USDC 为 6
	Decimals int32 `json:"decimals"`
	// 托管的资产数量 + 累计的利息, 最小单位
	TotalDeposits uint64 `json:"total_deposits"`
	// 所有存款人持有的份额之和
	TotalDepositShares uint64 `json:"total_deposit_shares"`
	// 每秒利率, 连续复利
	InterestRate decimal.Decimal `sql:"type:decimal(28,18)" json:"interest_rate"`
	// 最近一次计息的时间 (unix 秒)
	AccruedAt int64 `json:"accrued_at"`
	Version      int64           `sql:"default:0" json:"version"`
	CreatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Transactor runs fn in one database transaction, rolled back when fn returns an error
type Transactor interface {
	Tx(fn func(tx *db.DB) error) error
}

// IBankStore bank store interface
type IBankStore interface {
	Save(ctx context.Context, tx *db.DB, bank *Bank) error
	// Find find bank by asset id (mint), returns ErrBankNotFound if absent
	Find(ctx context.Context, assetID string) (*Bank, error)
	FindByAsset(ctx context.Context, asset Asset) (*Bank, error)
	All(ctx context.Context) ([]*Bank, error)
	Update(ctx context.Context, tx *db.DB, bank *Bank) error
}
