package bank

import (
	"context"
	"fmt"
	"lending/core"
	"time"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wraps the store with a short lived cache for read paths. The ledger must use
// the store underneath, a cached bank may be behind by up to exp.
func Cache(store core.IBankStore, exp time.Duration) core.IBankStore {
	return &cacheBankStore{
		IBankStore: store,
		cache:      gcache.New(16).LRU().Expiration(exp).Build(),
		sf:         &singleflight.Group{},
	}
}

type cacheBankStore struct {
	core.IBankStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheBankStore) Find(ctx context.Context, assetID string) (*core.Bank, error) {
	key := fmt.Sprintf("bank:asset_id:%s", assetID)
	if v, err := s.cache.Get(key); err == nil {
		return v.(*core.Bank), nil
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		bank, err := s.IBankStore.Find(ctx, assetID)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(key, bank)
		return bank, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Bank), nil
}

func (s *cacheBankStore) All(ctx context.Context) ([]*core.Bank, error) {
	const key = "bank:all"
	if v, err := s.cache.Get(key); err == nil {
		return v.([]*core.Bank), nil
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		banks, err := s.IBankStore.All(ctx)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(key, banks)
		return banks, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*core.Bank), nil
}

func (s *cacheBankStore) Update(ctx context.Context, tx *db.DB, bank *core.Bank) error {
	if err := s.IBankStore.Update(ctx, tx, bank); err != nil {
		return err
	}

	s.cache.Purge()
	return nil
}
