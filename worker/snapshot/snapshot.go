package snapshot

import (
	"context"
	"errors"
	"time"

	"lending/core"
	"lending/pkg/number"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
)

const (
	checkpointKey = "lending_snapshot_checkpoint"
	limit         = 500
)

// Worker credits transfers into the custody wallet as deposits
type Worker struct {
	worker.BaseJob
	propertyStore property.Store
	banks         core.IBankStore
	walletz       core.IWalletService
	ledgerz       core.ILedgerService
}

// New new snapshot worker
func New(
	location string,
	spec string,
	propertyStore property.Store,
	banks core.IBankStore,
	walletz core.IWalletService,
	ledgerz core.ILedgerService,
) *Worker {
	job := Worker{
		propertyStore: propertyStore,
		banks:         banks,
		walletz:       walletz,
		ledgerz:       ledgerz,
	}

	if spec == "" {
		spec = "@every 1s"
	}

	l, _ := time.LoadLocation(location)
	job.Cron = cron.New(cron.WithLocation(l))
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "snapshot")
	ctx = logger.WithContext(ctx, log)

	v, err := w.propertyStore.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	snapshots, next, err := w.walletz.PullSnapshots(ctx, v.String(), limit)
	if err != nil {
		log.WithError(err).Errorln("walletz.PullSnapshots")
		return err
	}

	if len(snapshots) == 0 {
		return errors.New("EOF")
	}

	for _, snapshot := range snapshots {
		if err := w.handleSnapshot(ctx, snapshot); err != nil {
			return err
		}
	}

	if err := w.propertyStore.Save(ctx, checkpointKey, next); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}

// handleSnapshot deposits an incoming transfer of a supported asset for its sender,
// anything the ledger cannot credit goes back to the sender.
// Only store and wallet failures are returned, the round then retries from the same checkpoint.
func (w *Worker) handleSnapshot(ctx context.Context, snapshot *core.Snapshot) error {
	log := logger.FromContext(ctx).WithField("snapshot", snapshot.SnapshotID)

	if !snapshot.Amount.IsPositive() || snapshot.OpponentID == "" {
		return nil
	}

	bank, err := w.banks.Find(ctx, snapshot.AssetID)
	if err != nil {
		if errors.Is(err, core.ErrBankNotFound) {
			return w.handleRefund(ctx, snapshot, core.ErrBankNotFound)
		}

		log.WithError(err).Errorln("banks.Find")
		return err
	}

	amount, ok := number.ToUnits(snapshot.Amount, bank.Decimals)
	if !ok || amount == 0 {
		return w.handleRefund(ctx, snapshot, core.ErrInvalidAmount)
	}

	_, err = w.ledgerz.Deposit(ctx, &core.Deposit{
		TraceID: snapshot.SnapshotID,
		UserID:  snapshot.OpponentID,
		AssetID: snapshot.AssetID,
		Amount:  amount,
	})

	var code core.ErrorCode
	if errors.As(err, &code) {
		log.WithError(err).Infoln("deposit rejected")
		return w.handleRefund(ctx, snapshot, code)
	}

	return err
}
