package core

import (
	"github.com/asaskevich/govalidator"
)

// Withdraw withdraw request info
type Withdraw struct {
	TraceID string `json:"trace_id,omitempty" valid:"uuid,optional"`
	UserID  string `json:"user_id,omitempty" valid:"uuid,required"`
	AssetID string `json:"asset_id,omitempty" valid:"required"`
	Amount  uint64 `json:"amount,omitempty"`
}

// Validate validate the request
func (w *Withdraw) Validate() error {
	if _, err := govalidator.ValidateStruct(w); err != nil {
		return err
	}

	if w.Amount == 0 {
		return ErrInvalidAmount
	}

	return nil
}

// Deposit deposit request info, the funds already arrived in custody
type Deposit struct {
	TraceID string `json:"trace_id,omitempty" valid:"uuid,required"`
	UserID  string `json:"user_id,omitempty" valid:"uuid,required"`
	AssetID string `json:"asset_id,omitempty" valid:"required"`
	Amount  uint64 `json:"amount,omitempty"`
}

// Validate validate the request
func (d *Deposit) Validate() error {
	if _, err := govalidator.ValidateStruct(d); err != nil {
		return err
	}

	if d.Amount == 0 {
		return ErrInvalidAmount
	}

	return nil
}
