// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"github.com/bitmark-inc/logger"
	"github.com/holiman/uint256"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

// Ledger - balances and locks kept in the ledger database
type Ledger struct {
	log      *logger.L
	balances storage.Handle
	locks    storage.Handle
	clock    Clock
}

// New - a currency ledger over the balance and lock pools
func New(log *logger.L, balances storage.Handle, locks storage.Handle, clock Clock) *Ledger {
	return &Ledger{
		log:      log,
		balances: balances,
		locks:    locks,
		clock:    clock,
	}
}

// BalanceOf - total funds of an account, locked or not
func (l *Ledger) BalanceOf(trx storage.Transaction, who account.Account) *uint256.Int {
	buffer := get(trx, l.balances, who.Bytes())
	if nil == buffer {
		return new(uint256.Int)
	}
	return new(uint256.Int).SetBytes(buffer)
}

// Deposit - create funds, used for genesis endowment
func (l *Ledger) Deposit(trx storage.Transaction, who account.Account, amount *uint256.Int) error {
	balance, overflow := new(uint256.Int).AddOverflow(l.BalanceOf(trx, who), amount)
	if overflow {
		return fault.ErrAmountOverflow
	}
	l.putBalance(trx, who, balance)
	l.log.Debugf("deposit: %s to: %s", amount.Dec(), who)
	return nil
}

// Transfer - move funds that are not held by an active lock
func (l *Ledger) Transfer(trx storage.Transaction, from account.Account, to account.Account, amount *uint256.Int) error {
	if amount.IsZero() || from == to {
		return nil
	}

	fromBalance := l.BalanceOf(trx, from)

	locked, err := l.lockedAmount(trx, from, ReasonTransfer)
	if nil != err {
		return err
	}

	free, underflow := new(uint256.Int).SubOverflow(fromBalance, locked)
	if underflow || free.Lt(amount) {
		return fault.ErrInsufficientFunds
	}

	toBalance, overflow := new(uint256.Int).AddOverflow(l.BalanceOf(trx, to), amount)
	if overflow {
		return fault.ErrAmountOverflow
	}

	l.putBalance(trx, from, new(uint256.Int).Sub(fromBalance, amount))
	l.putBalance(trx, to, toBalance)

	l.log.Debugf("transfer: %s from: %s to: %s", amount.Dec(), from, to)
	return nil
}

// the largest unexpired lock covering a reason
//
// locks overlap rather than add up
func (l *Ledger) lockedAmount(trx storage.Transaction, who account.Account, reason Reasons) (*uint256.Int, error) {
	locks, err := l.LocksOf(trx, who)
	if nil != err {
		return nil, err
	}

	height := l.clock.Height()
	locked := new(uint256.Int)
	for i := range locks {
		lock := &locks[i]
		if lock.Until <= height || 0 == lock.Reasons&reason {
			continue
		}
		if lock.Amount.Gt(locked) {
			locked.Set(&lock.Amount)
		}
	}
	return locked, nil
}

func (l *Ledger) putBalance(trx storage.Transaction, who account.Account, amount *uint256.Int) {
	b := amount.Bytes32()
	trx.Put(l.balances, who.Bytes(), b[:])
}

// read through the transaction if one is open
func get(trx storage.Transaction, pool storage.Handle, key []byte) []byte {
	if nil == trx {
		return pool.Get(key)
	}
	return trx.Get(pool, key)
}
