package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrBankNotFound no bank for the asset
	ErrBankNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrInsufficientFunds the amount exceeds the current value of the depositor's shares
	ErrInsufficientFunds ErrorCode = 100102
	// ErrPoolEmpty the bank has no shares outstanding, no price can be computed
	ErrPoolEmpty ErrorCode = 100103
	// ErrArithmeticOverflow result exceeds uint64
	ErrArithmeticOverflow ErrorCode = 100104
	// ErrArithmeticUnderflow result would go negative
	ErrArithmeticUnderflow ErrorCode = 100105
	// ErrUnknownAsset the asset matches no position of the depositor
	ErrUnknownAsset ErrorCode = 100106
	// ErrTransferFailed the custody transfer failed
	ErrTransferFailed ErrorCode = 100107
	// ErrInvalidInterestRate negative interest rate
	ErrInvalidInterestRate ErrorCode = 100108
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:             "unknown",
	ErrOperationForbidden:  "operation forbidden",
	ErrBankNotFound:        "bank not found",
	ErrInvalidAmount:       "invalid amount",
	ErrInsufficientFunds:   "insufficient funds",
	ErrPoolEmpty:           "pool empty",
	ErrArithmeticOverflow:  "arithmetic overflow",
	ErrArithmeticUnderflow: "arithmetic underflow",
	ErrUnknownAsset:        "unknown asset",
	ErrTransferFailed:      "transfer failed",
	ErrInvalidInterestRate: "invalid interest rate",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}
