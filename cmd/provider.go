package cmd

import (
	"time"

	"lending/core"
	"lending/service/ledger"
	"lending/service/session"
	"lending/service/user"
	"lending/service/wallet"
	"lending/store/bank"
	"lending/store/transaction"
	userstore "lending/store/user"

	"github.com/facebookgo/clock"
	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"

	// postgres driver
	_ "github.com/lib/pq"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

func provideDapp() *core.Wallet {
	c, err := mixin.NewFromKeystore(&cfg.Dapp.Keystore)
	if err != nil {
		panic(err)
	}

	return &core.Wallet{
		Client: c,
		Pin:    cfg.Dapp.Pin,
	}
}

// ---------------store-----------------------------------------

func provideBankStore(db *db.DB) core.IBankStore {
	return bank.New(db)
}

func provideUserStore(db *db.DB) core.IUserStore {
	return userstore.New(db)
}

func provideTransactionStore(db *db.DB) core.TransactionStore {
	return transaction.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// ------------------service------------------------------------

func provideWalletService(dapp *core.Wallet) core.IWalletService {
	return wallet.New(dapp)
}

func provideSession(users core.IUserStore) core.Session {
	return session.New(users, user.New(), cfg.Session.Capacity, cfg.Session.Issuers)
}

func provideLedgerService(
	db *db.DB,
	banks core.IBankStore,
	users core.IUserStore,
	transactions core.TransactionStore,
	walletz core.IWalletService,
) core.ILedgerService {
	return ledger.New(db, banks, users, transactions, walletz, clock.New())
}

func provideBankCache(banks core.IBankStore) core.IBankStore {
	return bank.Cache(banks, 3*time.Second)
}
