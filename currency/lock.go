// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

// packed lock: id ++ amount ++ until ++ reasons
const (
	amountLength     = 32
	packedLockLength = LockIdLength + amountLength + 8 + 1
)

// CreateLock - set a lock, replacing any lock with the same id
func (l *Ledger) CreateLock(trx storage.Transaction, id LockId, who account.Account, amount *uint256.Int, until uint64, reasons Reasons) error {
	locks, err := l.LocksOf(trx, who)
	if nil != err {
		return err
	}

	if amount.Gt(l.BalanceOf(trx, who)) {
		return fault.ErrInsufficientFunds
	}

	lock := Lock{
		Id:      id,
		Until:   until,
		Reasons: reasons,
	}
	lock.Amount.Set(amount)

	replaced := false
	for i := range locks {
		if locks[i].Id == id {
			locks[i] = lock
			replaced = true
		}
	}
	if !replaced {
		locks = append(locks, lock)
	}

	l.putLocks(trx, who, locks)
	l.log.Debugf("lock: %s amount: %s until: %d for: %s", id, amount.Dec(), until, who)
	return nil
}

// ExtendLock - raise a lock to at least amount and until, creating it
// if it does not exist
func (l *Ledger) ExtendLock(trx storage.Transaction, id LockId, who account.Account, amount *uint256.Int, until uint64, reasons Reasons) error {
	locks, err := l.LocksOf(trx, who)
	if nil != err {
		return err
	}

	for i := range locks {
		if locks[i].Id != id {
			continue
		}
		lock := &locks[i]
		if amount.Gt(&lock.Amount) {
			if amount.Gt(l.BalanceOf(trx, who)) {
				return fault.ErrInsufficientFunds
			}
			lock.Amount.Set(amount)
		}
		if until > lock.Until {
			lock.Until = until
		}
		lock.Reasons |= reasons

		l.putLocks(trx, who, locks)
		l.log.Debugf("extend lock: %s amount: %s until: %d for: %s", id, lock.Amount.Dec(), lock.Until, who)
		return nil
	}

	return l.CreateLock(trx, id, who, amount, until, reasons)
}

// RemoveLock - release a lock, no error if it does not exist
func (l *Ledger) RemoveLock(trx storage.Transaction, id LockId, who account.Account) error {
	locks, err := l.LocksOf(trx, who)
	if nil != err {
		return err
	}

	kept := locks[:0]
	for _, lock := range locks {
		if lock.Id != id {
			kept = append(kept, lock)
		}
	}
	if len(kept) == len(locks) {
		return nil
	}

	l.putLocks(trx, who, kept)
	l.log.Debugf("remove lock: %s for: %s", id, who)
	return nil
}

// LocksOf - all locks held on an account
func (l *Ledger) LocksOf(trx storage.Transaction, who account.Account) ([]Lock, error) {
	buffer := get(trx, l.locks, who.Bytes())
	if 0 != len(buffer)%packedLockLength {
		return nil, fault.ErrInvalidRecord
	}

	locks := make([]Lock, 0, len(buffer)/packedLockLength)
	for n := 0; n < len(buffer); n += packedLockLength {
		record := buffer[n : n+packedLockLength]

		lock := Lock{}
		copy(lock.Id[:], record[:LockIdLength])
		record = record[LockIdLength:]
		lock.Amount.SetBytes(record[:amountLength])
		record = record[amountLength:]
		lock.Until = binary.BigEndian.Uint64(record[:8])
		lock.Reasons = Reasons(record[8])

		locks = append(locks, lock)
	}
	return locks, nil
}

func (l *Ledger) putLocks(trx storage.Transaction, who account.Account, locks []Lock) {
	if 0 == len(locks) {
		trx.Delete(l.locks, who.Bytes())
		return
	}

	buffer := make([]byte, 0, len(locks)*packedLockLength)
	for i := range locks {
		lock := &locks[i]
		amount := lock.Amount.Bytes32()
		until := make([]byte, 8)
		binary.BigEndian.PutUint64(until, lock.Until)

		buffer = append(buffer, lock.Id[:]...)
		buffer = append(buffer, amount[:]...)
		buffer = append(buffer, until...)
		buffer = append(buffer, byte(lock.Reasons))
	}
	trx.Put(l.locks, who.Bytes(), buffer)
}
