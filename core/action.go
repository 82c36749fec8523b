package core

// ActionType ledger action type
type ActionType int

const (
	_ ActionType = iota
	// ActionTypeDeposit deposit, mints shares
	ActionTypeDeposit
	// ActionTypeWithdraw withdraw, burns shares
	ActionTypeWithdraw
)

func (a ActionType) String() string {
	switch a {
	case ActionTypeDeposit:
		return "deposit"
	case ActionTypeWithdraw:
		return "withdraw"
	default:
		return "unknown"
	}
}
