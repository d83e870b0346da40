// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashflow

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/counter"
	"github.com/kaonone/akropolis-c2fc-srml/currency"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

// lock funds of the promise owner against the promise
func (l *Ledger) stakeToPromise(s *state, promiseId digest.Digest, amount *uint256.Int) error {
	free, err := l.ownedPromise(s, promiseId)
	if nil != err {
		return err
	}

	until, err := l.stakeExpiry(s.trx, free)
	if nil != err {
		return err
	}

	lockId, found := l.lockOf(s.trx, promiseId)
	if found {
		current, _, err := l.lockAmount(s.trx, lockId, s.caller)
		if nil != err {
			return err
		}
		total, overflow := new(uint256.Int).AddOverflow(current, amount)
		if overflow {
			return fault.ErrAmountOverflow
		}
		err = l.currency.ExtendLock(s.trx, lockId, s.caller, total, until, currency.ReasonAll)
		if nil != err {
			return err
		}
	} else {
		n, _ := getN(s.trx, l.pool.counters, lockKey)
		next, err := counter.Add(n, 1)
		if nil != err {
			return err
		}
		lockId = currency.NewLockId(n)
		err = l.currency.CreateLock(s.trx, lockId, s.caller, amount, until, currency.ReasonAll)
		if nil != err {
			return err
		}
		s.trx.PutN(l.pool.counters, lockKey, next)
		s.trx.Put(l.pool.promiseLock, promiseId[:], lockId[:])
	}

	s.emit(Staked{
		Who:       s.caller,
		PromiseId: promiseId,
		Amount:    *new(uint256.Int).Set(amount),
		Until:     until,
	})
	return nil
}

// release the stake once it has expired, the promise must not have
// been accepted
func (l *Ledger) withdrawStaken(s *state, promiseId digest.Digest) error {
	if _, err := l.ownedPromise(s, promiseId); nil != err {
		return err
	}

	amount := new(uint256.Int)

	lockId, found := l.lockOf(s.trx, promiseId)
	if found {
		if _, accepted := l.acceptedBucket(s.trx, promiseId); accepted {
			return fault.ErrPromiseAlreadyAccepted
		}

		current, until, err := l.lockAmount(s.trx, lockId, s.caller)
		if nil != err {
			return err
		}
		if l.block.Height() < until {
			return fault.ErrLockNotExpired
		}

		err = l.currency.RemoveLock(s.trx, lockId, s.caller)
		if nil != err {
			return err
		}
		s.trx.Delete(l.pool.promiseLock, promiseId[:])
		amount.Set(current)
	}

	s.emit(Withdrawn{
		Who:       s.caller,
		PromiseId: promiseId,
		Amount:    *amount,
	})
	return nil
}

// the bound copy's expiry once accepted, else the free promise's,
// else open ended
func (l *Ledger) stakeExpiry(trx storage.Transaction, free *FreePromise) (uint64, error) {
	until := free.Until
	if bucketId, accepted := l.acceptedBucket(trx, free.Id); accepted {
		b, err := l.bucket(trx, bucketId)
		if nil != err {
			return 0, err
		}
		if nil != b.Promise {
			until = b.Promise.Until
		}
	}
	if nil == until {
		return math.MaxUint64, nil
	}
	return *until, nil
}

func (l *Ledger) lockOf(trx storage.Transaction, promiseId digest.Digest) (currency.LockId, bool) {
	var id currency.LockId
	buffer := get(trx, l.pool.promiseLock, promiseId[:])
	if len(buffer) != currency.LockIdLength {
		return id, false
	}
	copy(id[:], buffer)
	return id, true
}

// amount and expiry of a lock, zero if the currency module has no
// such lock
func (l *Ledger) lockAmount(trx storage.Transaction, id currency.LockId, who account.Account) (*uint256.Int, uint64, error) {
	locks, err := l.currency.LocksOf(trx, who)
	if nil != err {
		return nil, 0, err
	}
	for i := range locks {
		if locks[i].Id == id {
			return new(uint256.Int).Set(&locks[i].Amount), locks[i].Until, nil
		}
	}
	return new(uint256.Int), 0, nil
}
