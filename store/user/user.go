package user

import (
	"context"
	"lending/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type userStore struct {
	db *db.DB
}

// New new user store
func New(db *db.DB) core.IUserStore {
	return &userStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.User{})

		if err := tx.AutoMigrate(core.User{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_users_user_id", "user_id").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *userStore) Find(ctx context.Context, userID string) (*core.User, error) {
	var user core.User

	err := s.db.View().Where("user_id = ?", userID).First(&user).Error
	if store.IsErrNotFound(err) {
		return &core.User{UserID: userID}, nil
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Create inserts the user, a user created in between fails on idx_users_user_id
func (s *userStore) Create(ctx context.Context, tx *db.DB, user *core.User) error {
	return tx.Update().Create(user).Error
}

// Update writes both positions and the accrual timestamp, guarded by version
func (s *userStore) Update(ctx context.Context, tx *db.DB, user *core.User) error {
	version := user.Version
	user.Version++

	r := tx.Update().Model(core.User{}).Where("user_id = ? AND version = ?", user.UserID, version).
		Updates(map[string]interface{}{
			"usdc_address":   user.USDC.Address,
			"usdc_deposited": user.USDC.Deposited,
			"usdc_shares":    user.USDC.Shares,
			"sol_address":    user.SOL.Address,
			"sol_deposited":  user.SOL.Deposited,
			"sol_shares":     user.SOL.Shares,
			"last_updated":   user.LastUpdated,
			"version":        gorm.Expr("version + 1"),
		})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
