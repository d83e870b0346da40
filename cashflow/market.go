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

func (l *Ledger) setPrice(s *state, bucketId digest.Digest, price *uint256.Int) error {
	b, err := l.ownedBucket(s, bucketId)
	if nil != err {
		return err
	}

	b.Price.Set(price)
	l.putBucket(s.trx, b)

	s.emit(PriceSet{
		Owner:    s.caller,
		BucketId: bucketId,
		Price:    *new(uint256.Int).Set(price),
	})
	return nil
}

func (l *Ledger) transfer(s *state, bucketId digest.Digest, to account.Account) error {
	if _, err := l.ownedBucket(s, bucketId); nil != err {
		return err
	}
	return l.move(s, bucketId, s.caller, to)
}

// retarget the bucket and report it
func (l *Ledger) move(s *state, bucketId digest.Digest, from account.Account, to account.Account) error {
	err := l.buckets.Retarget(s.trx, bucketId, from, to)
	if nil != err {
		return err
	}

	s.emit(Transferred{
		From:     from,
		To:       to,
		BucketId: bucketId,
	})
	return nil
}

// pay, then take ownership, then delist
func (l *Ledger) buyBucket(s *state, bucketId digest.Digest, maxPrice *uint256.Int) error {
	b, err := l.bucket(s.trx, bucketId)
	if nil != err {
		return err
	}

	seller, ok := l.buckets.OwnerOf(s.trx, bucketId)
	if !ok {
		return fault.ErrOwnerNotFound
	}
	if seller == s.caller {
		return fault.ErrSelfDealing
	}

	if b.Price.IsZero() {
		return fault.ErrNotForSale
	}
	if b.Price.Gt(maxPrice) {
		return fault.ErrPriceTooHigh
	}

	price := new(uint256.Int).Set(&b.Price)

	err = l.currency.Transfer(s.trx, s.caller, seller, price)
	if nil != err {
		return err
	}

	err = l.move(s, bucketId, seller, s.caller)
	if nil != err {
		return err
	}

	b.Price.Clear()
	l.putBucket(s.trx, b)

	s.emit(Bought{
		Buyer:    s.caller,
		Seller:   seller,
		BucketId: bucketId,
		Price:    *price,
	})
	return nil
}
