package bank

import (
	"context"
	"lending/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type bankStore struct {
	db *db.DB
}

// New new bank store
func New(db *db.DB) core.IBankStore {
	return &bankStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Bank{})
		if err := tx.AutoMigrate(core.Bank{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *bankStore) Save(ctx context.Context, tx *db.DB, bank *core.Bank) error {
	return tx.Update().Where("asset_id=?", bank.AssetID).FirstOrCreate(bank).Error
}

func (s *bankStore) Find(ctx context.Context, assetID string) (*core.Bank, error) {
	var bank core.Bank
	if err := s.db.View().Where("asset_id=?", assetID).First(&bank).Error; err != nil {
		if store.IsErrNotFound(err) {
			return nil, core.ErrBankNotFound
		}

		return nil, err
	}

	return &bank, nil
}

func (s *bankStore) FindByAsset(ctx context.Context, asset core.Asset) (*core.Bank, error) {
	var bank core.Bank
	if err := s.db.View().Where("asset=?", asset).First(&bank).Error; err != nil {
		if store.IsErrNotFound(err) {
			return nil, core.ErrBankNotFound
		}

		return nil, err
	}

	return &bank, nil
}

func (s *bankStore) All(ctx context.Context) ([]*core.Bank, error) {
	var banks []*core.Bank
	if err := s.db.View().Order("asset").Find(&banks).Error; err != nil {
		return nil, err
	}

	return banks, nil
}

// Update writes the totals back, guarded by the version read with the bank
func (s *bankStore) Update(ctx context.Context, tx *db.DB, bank *core.Bank) error {
	version := bank.Version
	bank.Version++

	updates := map[string]interface{}{
		"total_deposits":       bank.TotalDeposits,
		"total_deposit_shares": bank.TotalDepositShares,
		"interest_rate":        bank.InterestRate,
		"accrued_at":           bank.AccruedAt,
		"version":              bank.Version,
	}

	r := tx.Update().Model(core.Bank{}).Where("asset_id=? AND version=?", bank.AssetID, version).Updates(updates)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
