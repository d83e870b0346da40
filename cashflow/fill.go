// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashflow

import (
	"github.com/holiman/uint256"

	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
)

// pay towards a bound promise, the deposit goes to the current bucket
// owner and not to the promise creator
func (l *Ledger) fillBucket(s *state, bucketId digest.Digest, deposit *uint256.Int) error {
	b, err := l.bucket(s.trx, bucketId)
	if nil != err {
		return err
	}

	owner, ok := l.buckets.OwnerOf(s.trx, bucketId)
	if !ok {
		return fault.ErrOwnerNotFound
	}
	if owner == s.caller {
		return fault.ErrSelfDealing
	}

	p := b.Promise
	if nil == p {
		return fault.ErrNoPromise
	}
	if p.Value.IsZero() {
		return fault.ErrZeroValue
	}

	// a fill may take filled past value but nothing is accepted after that
	if p.Filled.Gt(&p.Value) {
		return fault.ErrOverfilled
	}

	filled, overflow := new(uint256.Int).AddOverflow(&p.Filled, deposit)
	if overflow {
		return fault.ErrAmountOverflow
	}

	err = l.currency.Transfer(s.trx, s.caller, owner, deposit)
	if nil != err {
		return err
	}

	wasShort := p.Filled.Lt(&p.Value)
	p.Filled.Set(filled)
	l.putBucket(s.trx, b)

	s.emit(PromiseFilled{
		BucketId:  bucketId,
		PromiseId: p.Id,
		Deposit:   *new(uint256.Int).Set(deposit),
	})

	if wasShort && !p.Filled.Lt(&p.Value) {
		s.emit(PromiseFulfilled{
			BucketId:  bucketId,
			PromiseId: p.Id,
		})
	}
	return nil
}

// fill with exactly the amount still owed
func (l *Ledger) fullfillBucket(s *state, bucketId digest.Digest) error {
	b, err := l.bucket(s.trx, bucketId)
	if nil != err {
		return err
	}
	if nil == b.Promise {
		return fault.ErrNoPromise
	}

	remaining := b.Promise.Remaining()
	if remaining.IsZero() {
		return fault.ErrAlreadyFulfilled
	}
	return l.fillBucket(s, bucketId, remaining)
}
