package transaction

import (
	"context"
	"lending/core"
	"time"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type transactionStore struct {
	db *db.DB
}

// New new transaction store
func New(db *db.DB) core.TransactionStore {
	return &transactionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transaction{})
		if err := tx.AutoMigrate(core.Transaction{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Create inserts the transaction, a trace recorded in between fails on idx_transactions_trace_id
func (s *transactionStore) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	return tx.Update().Create(transaction).Error
}

func (s *transactionStore) FindByTraceID(ctx context.Context, traceID string) (*core.Transaction, error) {
	var transaction core.Transaction
	if err := s.db.View().Where("trace_id=?", traceID).First(&transaction).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Transaction{}, nil
		}

		return nil, err
	}

	return &transaction, nil
}

func (s *transactionStore) List(ctx context.Context, userID string, offset time.Time, limit int) ([]*core.Transaction, error) {
	var transactions []*core.Transaction
	if limit <= 0 {
		limit = 500
	}

	query := s.db.View().Where("created_at >=?", offset)
	if userID != "" {
		query = query.Where("user_id=?", userID)
	}

	if err := query.Order("created_at ASC").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}
