package core

import (
	"context"
)

// ILedgerService ledger service interface
type ILedgerService interface {
	// Withdraw burns the user's shares worth w.Amount and transfers the funds out of custody
	Withdraw(ctx context.Context, w *Withdraw) (*Transaction, error)
	// Deposit mints shares for funds already received in custody
	Deposit(ctx context.Context, d *Deposit) (*Transaction, error)
	// Preview the user's position valued at the current time, nothing is persisted
	Preview(ctx context.Context, userID string, asset Asset) (*Position, *Bank, error)
}
