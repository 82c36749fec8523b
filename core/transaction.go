package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

const (
	// TransactionKeyShares shares minted or burned
	TransactionKeyShares = "shares"
	// TransactionKeyValuePerShare value per share after accrual
	TransactionKeyValuePerShare = "value_per_share"
	// TransactionKeyTotalDeposits bank total deposits after the operation
	TransactionKeyTotalDeposits = "total_deposits"
	// TransactionKeyTotalDepositShares bank total shares after the operation
	TransactionKeyTotalDepositShares = "total_deposit_shares"
	// TransactionKeyTransferTrace trace id of the custody transfer
	TransactionKeyTransferTrace = "transfer_trace"
)

// TransactionExtraData extra data
type TransactionExtraData map[string]interface{}

// NewTransactionExtra new transaction extra instance
func NewTransactionExtra() TransactionExtraData {
	d := make(TransactionExtraData)
	return d
}

// Put put data
func (t TransactionExtraData) Put(key string, value interface{}) {
	t[key] = value
}

// Format format as []byte by default
func (t TransactionExtraData) Format() []byte {
	bs, e := json.Marshal(t)
	if e != nil {
		return []byte("{}")
	}

	return bs
}

// Transaction ledger operation record, one per trace id
type Transaction struct {
	ID        int64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	Action    ActionType     `json:"action,omitempty"`
	TraceID   string         `sql:"size:36;unique_index:idx_transactions_trace_id" json:"trace_id,omitempty"`
	UserID    string         `sql:"size:36;index:idx_transactions_user_id" json:"user_id,omitempty"`
	AssetID   string         `sql:"size:64;index:idx_transactions_asset_id" json:"asset_id,omitempty"`
	Amount    uint64         `json:"amount,omitempty"`
	Shares    uint64         `json:"shares,omitempty"`
	Data      types.JSONText `sql:"type:TEXT" json:"data,omitempty"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP;index:idx_transactions_created_at" json:"created_at,omitempty"`
}

// SetExtraData set extra data
func (t *Transaction) SetExtraData(extra TransactionExtraData) {
	data := []byte("{}")
	if extra != nil {
		data = extra.Format()
	}

	t.Data = data
}

// TransactionStore transaction store interface
type TransactionStore interface {
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	// FindByTraceID returns an empty transaction (ID == 0) if absent
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	List(ctx context.Context, userID string, offset time.Time, limit int) ([]*Transaction, error)
}

// BuildTransaction build transaction from a ledger receipt, extra may be nil
func BuildTransaction(action ActionType, traceID, userID string, bank *Bank, receipt *Receipt, extra TransactionExtraData) *Transaction {
	if extra == nil {
		extra = NewTransactionExtra()
	}
	extra.Put(TransactionKeyShares, receipt.Shares)
	extra.Put(TransactionKeyValuePerShare, receipt.ValuePerShare.String())
	extra.Put(TransactionKeyTotalDeposits, bank.TotalDeposits)
	extra.Put(TransactionKeyTotalDepositShares, bank.TotalDepositShares)

	t := &Transaction{
		Action:  action,
		TraceID: traceID,
		UserID:  userID,
		AssetID: bank.AssetID,
		Amount:  receipt.Amount,
		Shares:  receipt.Shares,
	}
	t.SetExtraData(extra)
	return t
}

// Receipt result of one ledger operation
type Receipt struct {
	Asset         Asset           `json:"asset"`
	Amount        uint64          `json:"amount"`
	Shares        uint64          `json:"shares"`
	ValuePerShare decimal.Decimal `json:"value_per_share"`
	Elapsed       int64           `json:"elapsed"`
}
