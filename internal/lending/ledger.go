package lending

import (
	"math/bits"

	"lending/core"
)

// Ledger holds exclusive access to one bank and one user for the length of an operation.
//
// Every operation runs on copies of both records and writes them back only when all
// steps succeeded, so a failed operation leaves bank and user untouched.
type Ledger struct {
	bank *core.Bank
	user *core.User
}

// Open open a ledger over the bank and the user
func Open(bank *core.Bank, user *core.User) *Ledger {
	return &Ledger{bank: bank, user: user}
}

// Withdraw accrues interest, validates amount against the user's current value,
// then burns the shares worth amount from both the user and the bank
func (l *Ledger) Withdraw(assetID string, amount uint64, now int64) (*core.Receipt, error) {
	if amount == 0 {
		return nil, core.ErrInvalidAmount
	}

	bank, user := *l.bank, *l.user
	position, err := l.position(&user, assetID, false)
	if err != nil {
		return nil, err
	}

	elapsed, err := accrue(&bank, &user, now)
	if err != nil {
		return nil, err
	}

	price, err := ValuePerShare(bank.TotalDeposits, bank.TotalDepositShares)
	if err != nil {
		return nil, err
	}

	value, err := SharesToValue(position.Shares, price)
	if err != nil {
		return nil, err
	}

	if value < amount {
		return nil, core.ErrInsufficientFunds
	}

	// computed once, the same shares leave the user and the bank
	shares, err := SharesToBurn(amount, price)
	if err != nil {
		return nil, err
	}

	position.Deposited = value
	if position.Deposited, err = sub(position.Deposited, amount); err != nil {
		return nil, err
	}
	if position.Shares, err = sub(position.Shares, shares); err != nil {
		return nil, err
	}
	if bank.TotalDeposits, err = sub(bank.TotalDeposits, amount); err != nil {
		return nil, err
	}
	if bank.TotalDepositShares, err = sub(bank.TotalDepositShares, shares); err != nil {
		return nil, err
	}

	*l.bank, *l.user = bank, user
	return &core.Receipt{
		Asset:         bank.Asset,
		Amount:        amount,
		Shares:        shares,
		ValuePerShare: price,
		Elapsed:       elapsed,
	}, nil
}

// Deposit accrues interest and mints the shares amount buys at the current price.
// The first deposit into a bank without shares mints one share per unit.
func (l *Ledger) Deposit(assetID string, amount uint64, now int64) (*core.Receipt, error) {
	if amount == 0 {
		return nil, core.ErrInvalidAmount
	}

	bank, user := *l.bank, *l.user
	position, err := l.position(&user, assetID, true)
	if err != nil {
		return nil, err
	}

	elapsed, err := accrue(&bank, &user, now)
	if err != nil {
		return nil, err
	}

	var (
		shares uint64
		value  uint64
	)

	price, err := ValuePerShare(bank.TotalDeposits, bank.TotalDepositShares)
	switch err {
	case nil:
		if value, err = SharesToValue(position.Shares, price); err != nil {
			return nil, err
		}
		if shares, err = ValueToShares(amount, price); err != nil {
			return nil, err
		}
	case core.ErrPoolEmpty:
		price = one
		shares = amount
	default:
		return nil, err
	}

	if shares == 0 {
		return nil, core.ErrInvalidAmount
	}

	position.Address = assetID
	if position.Deposited, err = add(value, amount); err != nil {
		return nil, err
	}
	if position.Shares, err = add(position.Shares, shares); err != nil {
		return nil, err
	}
	if bank.TotalDeposits, err = add(bank.TotalDeposits, amount); err != nil {
		return nil, err
	}
	if bank.TotalDepositShares, err = add(bank.TotalDepositShares, shares); err != nil {
		return nil, err
	}

	*l.bank, *l.user = bank, user
	return &core.Receipt{
		Asset:         bank.Asset,
		Amount:        amount,
		Shares:        shares,
		ValuePerShare: price,
		Elapsed:       elapsed,
	}, nil
}

// Preview values the user's position of the bank's asset as of now, nothing is changed.
// The returned bank carries the accrued total.
func (l *Ledger) Preview(now int64) (*core.Position, *core.Bank, error) {
	bank, user := *l.bank, *l.user
	position, err := user.Position(bank.Asset)
	if err != nil {
		return nil, nil, err
	}

	if _, err := accrue(&bank, &user, now); err != nil {
		return nil, nil, err
	}

	p := *position
	if p.Shares > 0 {
		price, err := ValuePerShare(bank.TotalDeposits, bank.TotalDepositShares)
		if err != nil {
			return nil, nil, err
		}

		if p.Deposited, err = SharesToValue(p.Shares, price); err != nil {
			return nil, nil, err
		}
	}

	return &p, &bank, nil
}

// position resolves the user's position for the bank's asset. The asset id must be
// the bank's and, unless the position is still empty and create is set, the one
// recorded on the position.
func (l *Ledger) position(user *core.User, assetID string, create bool) (*core.Position, error) {
	if assetID == "" || assetID != l.bank.AssetID {
		return nil, core.ErrUnknownAsset
	}

	position, err := user.Position(l.bank.Asset)
	if err != nil {
		return nil, err
	}

	if position.Address == assetID {
		return position, nil
	}

	if create && position.Address == "" && position.Shares == 0 {
		return position, nil
	}

	return nil, core.ErrUnknownAsset
}

// accrue compounds the bank from the later of the user's and the bank's last accrual,
// so an interval already accrued on behalf of another depositor is not accrued twice
func accrue(bank *core.Bank, user *core.User, now int64) (int64, error) {
	last := user.LastUpdated
	if bank.AccruedAt > last {
		last = bank.AccruedAt
	}

	elapsed := Elapsed(last, now)

	total, err := Accrue(bank.TotalDeposits, bank.InterestRate, elapsed)
	if err != nil {
		return 0, err
	}

	bank.TotalDeposits = total
	if now > user.LastUpdated {
		user.LastUpdated = now
	}
	if now > bank.AccruedAt {
		bank.AccruedAt = now
	}

	return elapsed, nil
}

func add(a, b uint64) (uint64, error) {
	v, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, core.ErrArithmeticOverflow
	}

	return v, nil
}

func sub(a, b uint64) (uint64, error) {
	v, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, core.ErrArithmeticUnderflow
	}

	return v, nil
}
