package snapshot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usdc = "9b180ab6-6abe-3dc0-a13f-04169eb34bfa"

type fakeBanks struct {
	core.IBankStore
	err error
}

func (s *fakeBanks) Find(_ context.Context, assetID string) (*core.Bank, error) {
	if s.err != nil {
		return nil, s.err
	}

	if assetID != usdc {
		return nil, core.ErrBankNotFound
	}

	return &core.Bank{AssetID: usdc, Decimals: 6}, nil
}

type fakeLedger struct {
	core.ILedgerService
	deposits []*core.Deposit
	err      error
}

func (l *fakeLedger) Deposit(_ context.Context, d *core.Deposit) (*core.Transaction, error) {
	if l.err != nil {
		return nil, l.err
	}

	l.deposits = append(l.deposits, d)
	return &core.Transaction{TraceID: d.TraceID}, nil
}

type fakeWallet struct {
	core.IWalletService
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

func newSnapshot(asset, amount string) *core.Snapshot {
	return &core.Snapshot{
		SnapshotID: "b4a3c1f0-2cf8-4d2a-9d1b-5e1f7c0a4a11",
		OpponentID: "8017d200-7870-4b82-b53f-74bae1d2dad7",
		AssetID:    asset,
		Amount:     decimal.RequireFromString(amount),
		CreatedAt:  time.Now(),
	}
}

func TestHandleSnapshot(t *testing.T) {
	ctx := context.Background()
	ledger := &fakeLedger{}
	wallet := &fakeWallet{}
	w := &Worker{banks: &fakeBanks{}, ledgerz: ledger, walletz: wallet}

	require.Nil(t, w.handleSnapshot(ctx, newSnapshot(usdc, "1.5")))
	require.Len(t, ledger.deposits, 1)

	d := ledger.deposits[0]
	assert.Equal(t, uint64(1500000), d.Amount)
	assert.Equal(t, "b4a3c1f0-2cf8-4d2a-9d1b-5e1f7c0a4a11", d.TraceID)
	assert.Equal(t, "8017d200-7870-4b82-b53f-74bae1d2dad7", d.UserID)
	assert.Empty(t, wallet.transfers)

	// outgoing transfers are ignored
	require.Nil(t, w.handleSnapshot(ctx, newSnapshot(usdc, "-1")))
	assert.Len(t, ledger.deposits, 1)
	assert.Empty(t, wallet.transfers)
}

func TestHandleSnapshotRefund(t *testing.T) {
	ctx := context.Background()

	for _, c := range []struct {
		name   string
		asset  string
		amount string
		err    error
	}{
		{"unsupported asset", "c6d0c728-2624-429b-8e0d-d9d19b6592fa", "1", nil},
		{"below one unit", usdc, "0.0000001", nil},
		{"buys no share", usdc, "0.000001", core.ErrInvalidAmount},
		{"unknown position", usdc, "1", fmt.Errorf("deposit: %w", core.ErrUnknownAsset)},
	} {
		t.Run(c.name, func(t *testing.T) {
			ledger := &fakeLedger{err: c.err}
			wallet := &fakeWallet{}
			w := &Worker{banks: &fakeBanks{}, ledgerz: ledger, walletz: wallet}

			snapshot := newSnapshot(c.asset, c.amount)
			require.Nil(t, w.handleSnapshot(ctx, snapshot))
			assert.Empty(t, ledger.deposits)

			require.Len(t, wallet.transfers, 1)
			refund := wallet.transfers[0]
			assert.Equal(t, uuid.Modify(snapshot.SnapshotID, "refund"), refund.TraceID)
			assert.Equal(t, snapshot.OpponentID, refund.OpponentID)
			assert.Equal(t, c.asset, refund.AssetID)
			assert.True(t, snapshot.Amount.Equal(refund.Amount))
		})
	}
}

func TestHandleSnapshotErrors(t *testing.T) {
	ctx := context.Background()

	walletErr := errors.New("insufficient balance")
	w := &Worker{banks: &fakeBanks{}, ledgerz: &fakeLedger{err: core.ErrInvalidAmount}, walletz: &fakeWallet{err: walletErr}}
	assert.ErrorIs(t, w.handleSnapshot(ctx, newSnapshot(usdc, "1")), walletErr, "failed refunds are retried")

	w = &Worker{banks: &fakeBanks{}, ledgerz: &fakeLedger{err: db.ErrOptimisticLock}, walletz: &fakeWallet{}}
	assert.ErrorIs(t, w.handleSnapshot(ctx, newSnapshot(usdc, "1")), db.ErrOptimisticLock)

	dbErr := errors.New("connection refused")
	w = &Worker{banks: &fakeBanks{err: dbErr}, ledgerz: &fakeLedger{}, walletz: &fakeWallet{}}
	assert.ErrorIs(t, w.handleSnapshot(ctx, newSnapshot(usdc, "1")), dbErr)
}
