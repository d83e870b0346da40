// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/counter"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

// Register - record a new identifier for an owner
//
// all counts are checked before anything is written
func (r *Registry) Register(trx storage.Transaction, id digest.Digest, owner account.Account) error {

	// ensure single threaded
	r.Lock()
	defer r.Unlock()

	if nil != get(trx, r.owner, id[:]) {
		return fault.ErrAlreadyOwned
	}
	if r.Has(trx, id) {
		return fault.ErrAlreadyEnumerated
	}

	n := r.Count(trx)
	newCount, err := counter.Add(n, 1)
	if nil != err {
		return err
	}

	ownedCount := r.OwnedCount(trx, owner)
	newOwnedCount, err := counter.Add(ownedCount, 1)
	if nil != err {
		return err
	}

	r.append(trx, id, n, newCount)
	r.appendOwned(trx, id, owner, ownedCount, newOwnedCount)

	return nil
}

// Retarget - move an identifier from one owner to another
//
// the last item in the old owner's list is swapped into the vacated
// slot so both lists stay dense; the global list is not touched
func (r *Registry) Retarget(trx storage.Transaction, id digest.Digest, from account.Account, to account.Account) error {

	// ensure single threaded
	r.Lock()
	defer r.Unlock()

	current, ok := r.OwnerOf(trx, id)
	if !ok {
		return fault.ErrOwnerNotFound
	}
	if current != from {
		return fault.ErrWrongOwner
	}

	fromCount := r.OwnedCount(trx, from)
	newFromCount, err := counter.Sub(fromCount, 1)
	if nil != err {
		return err
	}

	toCount := newFromCount
	if to != from {
		toCount = r.OwnedCount(trx, to)
	}
	newToCount, err := counter.Add(toCount, 1)
	if nil != err {
		return err
	}

	index, ok := r.OwnedIndexOf(trx, id)
	if !ok {
		fault.Criticalf("ownership.Retarget: no owner index for: %v", id)
		fault.PanicIfError("ownership.Retarget", fault.ErrInvalidRecord)
	}

	// swap the last element into the vacated slot
	if index != newFromCount {
		last, ok := r.OwnedByIndex(trx, from, newFromCount)
		if !ok {
			fault.Criticalf("ownership.Retarget: no last element: %d for: %v", newFromCount, from)
			fault.PanicIfError("ownership.Retarget", fault.ErrInvalidRecord)
		}
		trx.Put(r.ownerList, ownerKey(from, index), last[:])
		trx.PutN(r.ownerIndex, last[:], index)
	}
	trx.Delete(r.ownerList, ownerKey(from, newFromCount))
	trx.PutN(r.ownerCount, from.Bytes(), newFromCount)

	r.appendOwned(trx, id, to, toCount, newToCount)

	return nil
}

// internal: counts already checked
func (r *Registry) appendOwned(trx storage.Transaction, id digest.Digest, owner account.Account, index uint64, newCount uint64) {
	trx.Put(r.ownerList, ownerKey(owner, index), id[:])
	trx.PutN(r.ownerIndex, id[:], index)
	trx.PutN(r.ownerCount, owner.Bytes(), newCount)
	trx.Put(r.owner, id[:], owner.Bytes())
}
