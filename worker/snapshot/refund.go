package snapshot

import (
	"context"
	"fmt"

	"lending/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
)

// handleRefund pays the snapshot back to its sender. The trace is derived from the
// snapshot id, a retried round repeats the same transfer.
func (w *Worker) handleRefund(ctx context.Context, snapshot *core.Snapshot, code core.ErrorCode) error {
	log := logger.FromContext(ctx).WithField("worker", "refund")

	transfer := &core.Transfer{
		TraceID:    uuid.Modify(snapshot.SnapshotID, "refund"),
		OpponentID: snapshot.OpponentID,
		AssetID:    snapshot.AssetID,
		Amount:     snapshot.Amount,
		Memo:       fmt.Sprintf("refund %d %s", int(code), code.Error()),
	}

	log.Infof("refund %s %s to %s, code %d", snapshot.Amount, snapshot.AssetID, snapshot.OpponentID, code)

	if err := w.walletz.Transfer(ctx, transfer); err != nil {
		log.WithError(err).Errorln("walletz.Transfer")
		return err
	}

	return nil
}
