package ledger

import (
	"context"
	"fmt"

	"lending/core"
	"lending/internal/lending"
	"lending/pkg/id"
	"lending/pkg/number"

	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
)

type service struct {
	tx           core.Transactor
	banks        core.IBankStore
	users        core.IUserStore
	transactions core.TransactionStore
	walletz      core.IWalletService
	clock        clock.Clock
}

// New new ledger service
func New(
	tx core.Transactor,
	banks core.IBankStore,
	users core.IUserStore,
	transactions core.TransactionStore,
	walletz core.IWalletService,
	clock clock.Clock,
) core.ILedgerService {
	return &service{
		tx:           tx,
		banks:        banks,
		users:        users,
		transactions: transactions,
		walletz:      walletz,
		clock:        clock,
	}
}

// Withdraw burns shares and pays the user from custody in one database transaction.
// The transfer runs last inside the transaction, a failed transfer rolls back the burn.
func (s *service) Withdraw(ctx context.Context, w *core.Withdraw) (*core.Transaction, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	if w.TraceID == "" {
		w.TraceID = id.GenTraceID()
	}

	log := logger.FromContext(ctx).WithField("trace", w.TraceID)

	if t, err := s.replay(ctx, w.TraceID, core.ActionTypeWithdraw, w.UserID, w.AssetID); err != nil || t != nil {
		return t, err
	}

	bank, err := s.banks.Find(ctx, w.AssetID)
	if err != nil {
		log.WithError(err).Errorln("banks.Find")
		return nil, err
	}

	user, err := s.users.Find(ctx, w.UserID)
	if err != nil {
		log.WithError(err).Errorln("users.Find")
		return nil, err
	}

	if user.ID == 0 {
		return nil, core.ErrUnknownAsset
	}

	now := s.clock.Now().Unix()
	receipt, err := lending.Open(bank, user).Withdraw(w.AssetID, w.Amount, now)
	if err != nil {
		log.WithError(err).Infoln("withdraw rejected")
		return nil, err
	}

	transfer := &core.Transfer{
		TraceID:    uuid.Modify(w.TraceID, "withdraw"),
		OpponentID: w.UserID,
		AssetID:    bank.AssetID,
		Amount:     number.FromUnits(w.Amount, bank.Decimals),
		Memo:       fmt.Sprintf("withdraw %s", bank.Symbol),
	}

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyTransferTrace, transfer.TraceID)
	transaction := core.BuildTransaction(core.ActionTypeWithdraw, w.TraceID, w.UserID, bank, receipt, extra)

	err = s.tx.Tx(func(tx *db.DB) error {
		if err := s.banks.Update(ctx, tx, bank); err != nil {
			return err
		}

		if err := s.users.Update(ctx, tx, user); err != nil {
			return err
		}

		if err := s.transactions.Create(ctx, tx, transaction); err != nil {
			return err
		}

		if err := s.walletz.Transfer(ctx, transfer); err != nil {
			return fmt.Errorf("%w: %v", core.ErrTransferFailed, err)
		}

		return nil
	})
	if err != nil {
		log.WithError(err).Errorln("withdraw")
		return nil, err
	}

	log.Infof("withdraw %d %s, burned %d shares", w.Amount, bank.Symbol, receipt.Shares)
	return transaction, nil
}

// Deposit mints shares for funds custody already received, keyed by the snapshot trace
func (s *service) Deposit(ctx context.Context, d *core.Deposit) (*core.Transaction, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).WithField("trace", d.TraceID)

	if t, err := s.replay(ctx, d.TraceID, core.ActionTypeDeposit, d.UserID, d.AssetID); err != nil || t != nil {
		return t, err
	}

	bank, err := s.banks.Find(ctx, d.AssetID)
	if err != nil {
		log.WithError(err).Errorln("banks.Find")
		return nil, err
	}

	user, err := s.users.Find(ctx, d.UserID)
	if err != nil {
		log.WithError(err).Errorln("users.Find")
		return nil, err
	}
	user.UserID = d.UserID

	now := s.clock.Now().Unix()
	receipt, err := lending.Open(bank, user).Deposit(d.AssetID, d.Amount, now)
	if err != nil {
		log.WithError(err).Infoln("deposit rejected")
		return nil, err
	}

	transaction := core.BuildTransaction(core.ActionTypeDeposit, d.TraceID, d.UserID, bank, receipt, nil)

	err = s.tx.Tx(func(tx *db.DB) error {
		if err := s.banks.Update(ctx, tx, bank); err != nil {
			return err
		}

		if user.ID == 0 {
			if err := s.users.Create(ctx, tx, user); err != nil {
				return err
			}
		} else if err := s.users.Update(ctx, tx, user); err != nil {
			return err
		}

		return s.transactions.Create(ctx, tx, transaction)
	})
	if err != nil {
		log.WithError(err).Errorln("deposit")
		return nil, err
	}

	log.Infof("deposit %d %s, minted %d shares", d.Amount, bank.Symbol, receipt.Shares)
	return transaction, nil
}

func (s *service) Preview(ctx context.Context, userID string, asset core.Asset) (*core.Position, *core.Bank, error) {
	bank, err := s.banks.FindByAsset(ctx, asset)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.Find(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return lending.Open(bank, user).Preview(s.clock.Now().Unix())
}

// replay returns the transaction already recorded under traceID, or nil if there is none.
// A trace reused for another action, user or asset is rejected.
func (s *service) replay(ctx context.Context, traceID string, action core.ActionType, userID, assetID string) (*core.Transaction, error) {
	t, err := s.transactions.FindByTraceID(ctx, traceID)
	if err != nil {
		return nil, err
	}

	if t.ID == 0 {
		return nil, nil
	}

	if t.Action != action || t.UserID != userID || t.AssetID != assetID {
		return nil, core.ErrOperationForbidden
	}

	return t, nil
}
