package wallet

import (
	"context"
	"errors"
	"fmt"
	"lending/core"
	"net/url"
	"time"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// New new wallet service over the custody wallet
func New(mainWallet *core.Wallet) core.IWalletService {
	return &walletService{
		MainWallet: mainWallet,
	}
}

type walletService struct {
	MainWallet *core.Wallet
}

// Transfer is idempotent on transfer.TraceID, mixin returns the existing snapshot
// for a trace already paid
func (s *walletService) Transfer(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	input := &mixin.TransferInput{
		AssetID:    transfer.AssetID,
		OpponentID: transfer.OpponentID,
		Amount:     transfer.Amount,
		TraceID:    transfer.TraceID,
		Memo:       transfer.Memo,
	}

	snapshot, err := s.MainWallet.Client.Transfer(ctx, input, s.MainWallet.Pin)
	if err != nil {
		log.WithError(err).Errorln("wallet.Transfer")
		return err
	}

	log.Debugf("transfer %s %s to %s, snapshot %s", transfer.Amount, transfer.AssetID, transfer.OpponentID, snapshot.SnapshotID)
	return nil
}

func (s *walletService) PullSnapshots(ctx context.Context, cursor string, limit int) ([]*core.Snapshot, string, error) {
	offset, err := time.Parse(time.RFC3339Nano, cursor)
	if err != nil {
		offset = time.Now().UTC()
	}

	snapshots, err := s.MainWallet.Client.ReadSnapshots(ctx, "", offset, "ASC", limit)
	if err != nil {
		return nil, "", err
	}

	out := make([]*core.Snapshot, 0, len(snapshots))
	for _, snapshot := range snapshots {
		out = append(out, convertSnapshot(snapshot))
		offset = snapshot.CreatedAt
	}

	return out, offset.Format(time.RFC3339Nano), nil
}

func convertSnapshot(snapshot *mixin.Snapshot) *core.Snapshot {
	return &core.Snapshot{
		SnapshotID: snapshot.SnapshotID,
		TraceID:    snapshot.TraceID,
		UserID:     snapshot.UserID,
		OpponentID: snapshot.OpponentID,
		AssetID:    snapshot.AssetID,
		Amount:     snapshot.Amount,
		Memo:       snapshot.Memo,
		CreatedAt:  snapshot.CreatedAt,
	}
}

// PaySchemaURL build pay schema url, paying the custody wallet
func (s *walletService) PaySchemaURL(amount decimal.Decimal, asset, trace, memo string) (string, error) {
	if amount.LessThanOrEqual(decimal.Zero) || asset == "" || trace == "" {
		return "", errors.New("invalid paramaters")
	}

	recipient := s.MainWallet.Client.ClientID
	return fmt.Sprintf("mixin://pay?amount=%s&asset=%s&recipient=%s&trace=%s&memo=%s", amount.String(), asset, recipient, trace, url.QueryEscape(memo)), nil
}
