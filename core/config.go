package core

import (
	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config lending config
type Config struct {
	App     App           `json:"app"`
	DB      db.Config     `json:"db"`
	Dapp    Dapp          `json:"dapp"`
	Banks   []BankConfig  `json:"banks"`
	Session SessionConfig `json:"session"`
}

// App app config
type App struct {
	Location string `json:"location"`
	// interval of the deposit snapshot worker, cron spec
	SnapshotSpec string `json:"snapshot_spec"`
}

// Dapp mixin dapp holding the bank custody
type Dapp struct {
	mixin.Keystore
	ClientSecret string `json:"client_secret"`
	Pin          string `json:"pin"`
}

// BankConfig bank seed config
type BankConfig struct {
	Symbol   string `json:"symbol"`
	AssetID  string `json:"asset_id"`
	Decimals int32  `json:"decimals"`
	// annual rate, converted to per second when the bank is created
	InterestRate decimal.Decimal `json:"interest_rate"`
}

// SessionConfig session config
type SessionConfig struct {
	Capacity int      `json:"capacity"`
	Issuers  []string `json:"issuers"`
}
