// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashflow

import (
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
)

// bind a free promise into the caller's bucket
//
// the free promise record is left registered to its creator
func (l *Ledger) acceptPromise(s *state, promiseId digest.Digest, bucketId digest.Digest) error {
	b, err := l.ownedBucket(s, bucketId)
	if nil != err {
		return err
	}

	free, err := l.freePromise(s.trx, promiseId)
	if nil != err {
		return err
	}

	if _, accepted := l.acceptedBucket(s.trx, promiseId); accepted {
		return fault.ErrPromiseAlreadyAccepted
	}

	creator, ok := l.promises.OwnerOf(s.trx, promiseId)
	if !ok {
		return fault.ErrOwnerNotFound
	}
	if creator == s.caller {
		return fault.ErrSelfDealing
	}

	if nil != b.Promise {
		return fault.ErrBucketHasPromise
	}

	_, err = l.accepted.Append(s.trx, promiseId)
	if nil != err {
		return err
	}

	bound := &Promise{
		Id:       promiseId,
		Creator:  free.Creator,
		Period:   free.Period,
		Until:    free.Until,
		Accepted: l.block.Height(),
	}
	bound.Value.Set(&free.Value)
	b.Promise = bound

	l.putBucket(s.trx, b)
	s.trx.Put(l.pool.acceptedBucket, promiseId[:], bucketId[:])
	s.trx.Put(l.pool.contributor, bucketId[:], free.Creator.Bytes())

	s.emit(PromiseAccepted{
		PromiseId: promiseId,
		BucketId:  bucketId,
	})
	return nil
}
