package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Position deposits of one asset held by a user
type Position struct {
	// asset id (mint) the shares belong to
	Address string `sql:"size:64" json:"address,omitempty"`
	// last known withdrawable value, informational only
	Deposited uint64 `json:"deposited"`
	Shares    uint64 `json:"shares"`
}

// User depositor record
type User struct {
	ID          int64     `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	UserID      string    `sql:"size:36;UNIQUE_INDEX:idx_users_user_id" json:"user_id,omitempty"`
	USDC        Position  `gorm:"embedded;embedded_prefix:usdc_" json:"usdc"`
	SOL         Position  `gorm:"embedded;embedded_prefix:sol_" json:"sol"`
	LastUpdated int64     `json:"last_updated,omitempty"`
	Version     int64     `sql:"default:0" json:"version,omitempty"`
	CreatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`

	// not persisted, filled by the session
	Name        string `sql:"-" json:"name,omitempty"`
	AccessToken string `sql:"-" json:"-"`
}

// Position returns the user's position of the asset
func (u *User) Position(asset Asset) (*Position, error) {
	switch asset {
	case AssetUSDC:
		return &u.USDC, nil
	case AssetSOL:
		return &u.SOL, nil
	default:
		return nil, ErrUnknownAsset
	}
}

// IUserStore user store interface
type IUserStore interface {
	// Find find user by user id, returns an empty user (ID == 0) if absent
	Find(ctx context.Context, userID string) (*User, error)
	Create(ctx context.Context, tx *db.DB, user *User) error
	Update(ctx context.Context, tx *db.DB, user *User) error
}

// IUserService user service interface
type IUserService interface {
	Login(ctx context.Context, token string) (*User, error)
}
