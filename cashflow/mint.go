// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashflow

import (
	"github.com/holiman/uint256"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
)

func (l *Ledger) createBucket(s *state) error {
	id, err := l.nextId(s)
	if nil != err {
		return err
	}
	return l.mintBucket(s, s.caller, id)
}

func (l *Ledger) createPromise(s *state, value *uint256.Int, period uint64, until *uint64) error {
	if 0 == period {
		return fault.ErrZeroPeriod
	}
	id, err := l.nextId(s)
	if nil != err {
		return err
	}
	return l.mintPromise(s, s.caller, id, value, period, until)
}

// store an empty unpriced bucket and register it
func (l *Ledger) mintBucket(s *state, owner account.Account, id digest.Digest) error {
	if nil != get(s.trx, l.pool.buckets, id[:]) {
		l.log.Criticalf("bucket identifier collision: %v", id)
		return fault.ErrIdentifierCollision
	}

	err := l.buckets.Register(s.trx, id, owner)
	if nil != err {
		return err
	}

	l.putBucket(s.trx, &Bucket{Id: id})

	s.emit(BucketCreated{
		Owner:    owner,
		BucketId: id,
	})
	return nil
}

// store a free promise and register it
func (l *Ledger) mintPromise(s *state, owner account.Account, id digest.Digest, value *uint256.Int, period uint64, until *uint64) error {
	if nil != get(s.trx, l.pool.promises, id[:]) {
		l.log.Criticalf("promise identifier collision: %v", id)
		return fault.ErrIdentifierCollision
	}

	err := l.promises.Register(s.trx, id, owner)
	if nil != err {
		return err
	}

	p := &FreePromise{
		Id:      id,
		Creator: owner,
		Period:  period,
	}
	p.Value.Set(value)
	if nil != until {
		u := *until
		p.Until = &u
	}
	l.putFreePromise(s.trx, p)

	s.emit(PromiseCreated{
		Creator:   owner,
		PromiseId: id,
	})
	return nil
}

// edits stop at acceptance: the bound copy would not see them
func (l *Ledger) editPromise(s *state, id digest.Digest, value *uint256.Int, period uint64) error {
	p, err := l.ownedPromise(s, id)
	if nil != err {
		return err
	}
	if _, accepted := l.acceptedBucket(s.trx, id); accepted {
		return fault.ErrPromiseAlreadyAccepted
	}
	if 0 == period {
		return fault.ErrZeroPeriod
	}

	p.Value.Set(value)
	p.Period = period
	l.putFreePromise(s.trx, p)

	s.emit(PromiseChanged{
		PromiseId: id,
	})
	return nil
}
