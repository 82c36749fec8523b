package core

import (
	"strings"
)

// Asset the fixed set of assets a bank can hold
type Asset int

const (
	_ Asset = iota
	// AssetUSDC usdc
	AssetUSDC
	// AssetSOL sol
	AssetSOL
)

var assetSymbols = map[Asset]string{
	AssetUSDC: "USDC",
	AssetSOL:  "SOL",
}

// Assets all supported assets
func Assets() []Asset {
	return []Asset{AssetUSDC, AssetSOL}
}

// ParseAsset parse asset from symbol, case insensitive
func ParseAsset(symbol string) (Asset, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for a, s := range assetSymbols {
		if s == symbol {
			return a, nil
		}
	}

	return 0, ErrUnknownAsset
}

// Valid check if the asset is supported
func (a Asset) Valid() bool {
	_, ok := assetSymbols[a]
	return ok
}

func (a Asset) String() string {
	if s, ok := assetSymbols[a]; ok {
		return s
	}

	return "UNKNOWN"
}
