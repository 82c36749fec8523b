package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"lending/core"

	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	usdc    = "9b180ab6-6abe-3dc0-a13f-04169eb34bfa"
	alice   = "8017d200-7870-4b82-b53f-74bae1d2dad7"
	bob     = "e8e8cd79-cd40-4796-8c54-3a13cfe50115"
	traceID = "5ab9a3e1-9ca0-4e6c-9a9b-6b4c2a7b1d3e"
)

var errDuplicate = errors.New("duplicate key value violates unique constraint")

type snapshotter interface {
	snapshot() func()
}

// fakeTx restores every registered store when fn fails
type fakeTx struct {
	stores []snapshotter
}

func (f *fakeTx) Tx(fn func(tx *db.DB) error) error {
	restores := make([]func(), 0, len(f.stores))
	for _, s := range f.stores {
		restores = append(restores, s.snapshot())
	}

	if err := fn(nil); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}

	return nil
}

type fakeBanks struct {
	banks map[string]core.Bank
}

func (s *fakeBanks) snapshot() func() {
	saved := make(map[string]core.Bank, len(s.banks))
	for k, v := range s.banks {
		saved[k] = v
	}
	return func() { s.banks = saved }
}

func (s *fakeBanks) Save(_ context.Context, _ *db.DB, bank *core.Bank) error {
	s.banks[bank.AssetID] = *bank
	return nil
}

func (s *fakeBanks) Find(_ context.Context, assetID string) (*core.Bank, error) {
	bank, ok := s.banks[assetID]
	if !ok {
		return nil, core.ErrBankNotFound
	}
	return &bank, nil
}

func (s *fakeBanks) FindByAsset(_ context.Context, asset core.Asset) (*core.Bank, error) {
	for _, bank := range s.banks {
		if bank.Asset == asset {
			b := bank
			return &b, nil
		}
	}
	return nil, core.ErrBankNotFound
}

func (s *fakeBanks) All(_ context.Context) ([]*core.Bank, error) {
	var banks []*core.Bank
	for _, bank := range s.banks {
		b := bank
		banks = append(banks, &b)
	}
	return banks, nil
}

func (s *fakeBanks) Update(_ context.Context, _ *db.DB, bank *core.Bank) error {
	if s.banks[bank.AssetID].Version != bank.Version {
		return db.ErrOptimisticLock
	}
	bank.Version++
	s.banks[bank.AssetID] = *bank
	return nil
}

type fakeUsers struct {
	users map[string]core.User
	// stale makes Find miss existing users, as a read racing another insert would
	stale bool
}

func (s *fakeUsers) snapshot() func() {
	saved := make(map[string]core.User, len(s.users))
	for k, v := range s.users {
		saved[k] = v
	}
	return func() { s.users = saved }
}

func (s *fakeUsers) Find(_ context.Context, userID string) (*core.User, error) {
	user, ok := s.users[userID]
	if !ok || s.stale {
		return &core.User{UserID: userID}, nil
	}
	return &user, nil
}

func (s *fakeUsers) Create(_ context.Context, _ *db.DB, user *core.User) error {
	if _, ok := s.users[user.UserID]; ok {
		return errDuplicate
	}

	user.ID = int64(len(s.users) + 1)
	s.users[user.UserID] = *user
	return nil
}

func (s *fakeUsers) Update(_ context.Context, _ *db.DB, user *core.User) error {
	if s.users[user.UserID].Version != user.Version {
		return db.ErrOptimisticLock
	}
	user.Version++
	s.users[user.UserID] = *user
	return nil
}

type fakeTransactions struct {
	transactions map[string]core.Transaction
}

func (s *fakeTransactions) snapshot() func() {
	saved := make(map[string]core.Transaction, len(s.transactions))
	for k, v := range s.transactions {
		saved[k] = v
	}
	return func() { s.transactions = saved }
}

func (s *fakeTransactions) Create(_ context.Context, _ *db.DB, t *core.Transaction) error {
	if _, ok := s.transactions[t.TraceID]; ok {
		return errDuplicate
	}

	t.ID = int64(len(s.transactions) + 1)
	s.transactions[t.TraceID] = *t
	return nil
}

func (s *fakeTransactions) FindByTraceID(_ context.Context, traceID string) (*core.Transaction, error) {
	t := s.transactions[traceID]
	return &t, nil
}

func (s *fakeTransactions) List(_ context.Context, _ string, _ time.Time, _ int) ([]*core.Transaction, error) {
	return nil, nil
}

type fakeWallet struct {
	transfers []*core.Transfer
	err       error
}

func (w *fakeWallet) Transfer(_ context.Context, transfer *core.Transfer) error {
	if w.err != nil {
		return w.err
	}
	w.transfers = append(w.transfers, transfer)
	return nil
}

func (w *fakeWallet) PullSnapshots(_ context.Context, cursor string, _ int) ([]*core.Snapshot, string, error) {
	return nil, cursor, nil
}

func (w *fakeWallet) PaySchemaURL(_ decimal.Decimal, _, _, _ string) (string, error) {
	return "", nil
}

type fixture struct {
	banks        *fakeBanks
	users        *fakeUsers
	transactions *fakeTransactions
	wallet       *fakeWallet
	clock        *clock.Mock
	ledger       core.ILedgerService
}

func newFixture(rate string) *fixture {
	f := &fixture{
		banks: &fakeBanks{banks: map[string]core.Bank{
			usdc: {
				ID:           1,
				Asset:        core.AssetUSDC,
				Symbol:       "USDC",
				AssetID:      usdc,
				Decimals:     6,
				InterestRate: decimal.RequireFromString(rate),
			},
		}},
		users:        &fakeUsers{users: map[string]core.User{}},
		transactions: &fakeTransactions{transactions: map[string]core.Transaction{}},
		wallet:       &fakeWallet{},
		clock:        clock.NewMock(),
	}

	f.clock.Add(1000 * time.Second)
	tx := &fakeTx{stores: []snapshotter{f.banks, f.users, f.transactions}}
	f.ledger = New(tx, f.banks, f.users, f.transactions, f.wallet, f.clock)
	return f
}

// seed a pool of 1,000,000 units at price 1, alice holding shares of it
func (f *fixture) seed(shares uint64) {
	bank := f.banks.banks[usdc]
	bank.TotalDeposits = 1000000
	bank.TotalDepositShares = 1000000
	f.banks.banks[usdc] = bank

	f.users.users[alice] = core.User{
		ID:          1,
		UserID:      alice,
		USDC:        core.Position{Address: usdc, Deposited: shares, Shares: shares},
		LastUpdated: f.clock.Now().Unix(),
	}
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	f := newFixture("0")
	f.seed(500000)

	transaction, err := f.ledger.Withdraw(ctx, &core.Withdraw{
		TraceID: traceID,
		UserID:  alice,
		AssetID: usdc,
		Amount:  500000,
	})
	require.Nil(t, err)
	assert.Equal(t, core.ActionTypeWithdraw, transaction.Action)
	assert.Equal(t, uint64(500000), transaction.Amount)
	assert.Equal(t, uint64(500000), transaction.Shares)

	bank := f.banks.banks[usdc]
	assert.Equal(t, uint64(500000), bank.TotalDeposits)
	assert.Equal(t, uint64(500000), bank.TotalDepositShares)
	assert.Equal(t, uint64(0), f.users.users[alice].USDC.Shares)

	require.Len(t, f.wallet.transfers, 1)
	transfer := f.wallet.transfers[0]
	assert.Equal(t, uuid.Modify(traceID, "withdraw"), transfer.TraceID)
	assert.Equal(t, alice, transfer.OpponentID)
	assert.Equal(t, usdc, transfer.AssetID)
	assert.Equal(t, "0.5", transfer.Amount.String())
}

func TestWithdrawTransferFailed(t *testing.T) {
	ctx := context.Background()
	f := newFixture("0")
	f.seed(500000)
	f.wallet.err = errors.New("insufficient balance")

	_, err := f.ledger.Withdraw(ctx, &core.Withdraw{
		TraceID: traceID,
		UserID:  alice,
		AssetID: usdc,
		Amount:  500000,
	})
	assert.ErrorIs(t, err, core.ErrTransferFailed)

	bank := f.banks.banks[usdc]
	assert.Equal(t, uint64(1000000), bank.TotalDeposits)
	assert.Equal(t, uint64(1000000), bank.TotalDepositShares)
	assert.Equal(t, uint64(500000), f.users.users[alice].USDC.Shares)
	assert.Empty(t, f.transactions.transactions)

	// the same trace goes through once custody can pay
	f.wallet.err = nil
	_, err = f.ledger.Withdraw(ctx, &core.Withdraw{
		TraceID: traceID,
		UserID:  alice,
		AssetID: usdc,
		Amount:  500000,
	})
	require.Nil(t, err)
	assert.Len(t, f.wallet.transfers, 1)
}

func TestWithdrawReplay(t *testing.T) {
	ctx := context.Background()
	f := newFixture("0")
	f.seed(500000)

	w := core.Withdraw{TraceID: traceID, UserID: alice, AssetID: usdc, Amount: 100000}

	first, err := f.ledger.Withdraw(ctx, &w)
	require.Nil(t, err)

	again := w
	second, err := f.ledger.Withdraw(ctx, &again)
	require.Nil(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.wallet.transfers, 1)
	assert.Equal(t, uint64(400000), f.users.users[alice].USDC.Shares)

	other := w
	other.UserID = bob
	_, err = f.ledger.Withdraw(ctx, &other)
	assert.ErrorIs(t, err, core.ErrOperationForbidden)
}

func TestWithdrawRejected(t *testing.T) {
	ctx := context.Background()

	t.Run("insufficient funds", func(t *testing.T) {
		f := newFixture("0")
		f.seed(100)

		_, err := f.ledger.Withdraw(ctx, &core.Withdraw{UserID: alice, AssetID: usdc, Amount: 1000000})
		assert.ErrorIs(t, err, core.ErrInsufficientFunds)
		assert.Empty(t, f.wallet.transfers)
		assert.Equal(t, uint64(100), f.users.users[alice].USDC.Shares)
	})

	t.Run("pool empty", func(t *testing.T) {
		f := newFixture("0")
		f.users.users[alice] = core.User{ID: 1, UserID: alice, USDC: core.Position{Address: usdc}}

		_, err := f.ledger.Withdraw(ctx, &core.Withdraw{UserID: alice, AssetID: usdc, Amount: 1})
		assert.ErrorIs(t, err, core.ErrPoolEmpty)
		assert.Empty(t, f.wallet.transfers)
	})

	t.Run("no such user", func(t *testing.T) {
		f := newFixture("0")
		f.seed(100)

		_, err := f.ledger.Withdraw(ctx, &core.Withdraw{UserID: bob, AssetID: usdc, Amount: 1})
		assert.ErrorIs(t, err, core.ErrUnknownAsset)
	})

	t.Run("no such bank", func(t *testing.T) {
		f := newFixture("0")
		f.seed(100)

		_, err := f.ledger.Withdraw(ctx, &core.Withdraw{UserID: alice, AssetID: "c6d0c728-2624-429b-8e0d-d9d19b6592fa", Amount: 1})
		assert.ErrorIs(t, err, core.ErrBankNotFound)
	})

	t.Run("zero amount", func(t *testing.T) {
		f := newFixture("0")
		f.seed(100)

		_, err := f.ledger.Withdraw(ctx, &core.Withdraw{UserID: alice, AssetID: usdc})
		assert.ErrorIs(t, err, core.ErrInvalidAmount)
	})
}

func TestDepositAccrueWithdraw(t *testing.T) {
	ctx := context.Background()
	f := newFixture("0.1")

	deposit, err := f.ledger.Deposit(ctx, &core.Deposit{
		TraceID: traceID,
		UserID:  alice,
		AssetID: usdc,
		Amount:  1000000,
	})
	require.Nil(t, err)
	assert.Equal(t, uint64(1000000), deposit.Shares)

	user := f.users.users[alice]
	assert.True(t, user.ID > 0)
	assert.Equal(t, usdc, user.USDC.Address)
	assert.Equal(t, int64(1000), user.LastUpdated)

	f.clock.Add(time.Second)

	position, bank, err := f.ledger.Preview(ctx, alice, core.AssetUSDC)
	require.Nil(t, err)
	assert.Equal(t, uint64(1105170), position.Deposited)
	assert.Equal(t, uint64(1105170), bank.TotalDeposits)

	// preview persists nothing
	assert.Equal(t, uint64(1000000), f.banks.banks[usdc].TotalDeposits)

	_, err = f.ledger.Withdraw(ctx, &core.Withdraw{UserID: alice, AssetID: usdc, Amount: 1105170})
	require.Nil(t, err)
	assert.Equal(t, uint64(0), f.banks.banks[usdc].TotalDeposits)
	assert.Equal(t, uint64(0), f.users.users[alice].USDC.Shares)
	assert.Equal(t, "1.10517", f.wallet.transfers[0].Amount.String())
}

func TestDepositReplay(t *testing.T) {
	ctx := context.Background()
	f := newFixture("0")

	d := core.Deposit{TraceID: traceID, UserID: alice, AssetID: usdc, Amount: 300}
	_, err := f.ledger.Deposit(ctx, &d)
	require.Nil(t, err)

	_, err = f.ledger.Deposit(ctx, &d)
	require.Nil(t, err)
	assert.Equal(t, uint64(300), f.banks.banks[usdc].TotalDeposits)
	assert.Equal(t, uint64(300), f.users.users[alice].USDC.Shares)
}

func TestDepositUserCreatedConcurrently(t *testing.T) {
	ctx := context.Background()
	f := newFixture("0")
	f.seed(1000)
	f.users.stale = true

	_, err := f.ledger.Deposit(ctx, &core.Deposit{
		TraceID: traceID,
		UserID:  alice,
		AssetID: usdc,
		Amount:  500,
	})
	assert.ErrorIs(t, err, errDuplicate)

	// nothing minted to no one
	bank := f.banks.banks[usdc]
	assert.Equal(t, uint64(1000000), bank.TotalDeposits)
	assert.Equal(t, uint64(1000000), bank.TotalDepositShares)
	assert.Equal(t, uint64(1000), f.users.users[alice].USDC.Shares)
	assert.Empty(t, f.transactions.transactions)

	f.users.stale = false
	_, err = f.ledger.Deposit(ctx, &core.Deposit{
		TraceID: traceID,
		UserID:  alice,
		AssetID: usdc,
		Amount:  500,
	})
	require.Nil(t, err)
	assert.Equal(t, uint64(1500), f.users.users[alice].USDC.Shares)
	assert.Equal(t, uint64(1000500), f.banks.banks[usdc].TotalDepositShares)
}
