// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashflow

import (
	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/currency"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/ownership"
)

// queries read committed state only

// Bucket - a bucket and its bound promise
func (l *Ledger) Bucket(id digest.Digest) (*Bucket, error) {
	return l.bucket(nil, id)
}

// FreePromise - the free record of a promise, kept after acceptance
func (l *Ledger) FreePromise(id digest.Digest) (*FreePromise, error) {
	return l.freePromise(nil, id)
}

// BucketOwner - current owner of a bucket
func (l *Ledger) BucketOwner(id digest.Digest) (account.Account, error) {
	owner, ok := l.buckets.OwnerOf(nil, id)
	if !ok {
		return account.Account{}, fault.ErrBucketNotFound
	}
	return owner, nil
}

// PromiseOwner - creator of a free promise
func (l *Ledger) PromiseOwner(id digest.Digest) (account.Account, error) {
	owner, ok := l.promises.OwnerOf(nil, id)
	if !ok {
		return account.Account{}, fault.ErrPromiseNotFound
	}
	return owner, nil
}

// Contributor - creator of the promise accepted into a bucket
func (l *Ledger) Contributor(bucketId digest.Digest) (account.Account, bool) {
	buffer := l.pool.contributor.Get(bucketId[:])
	if nil == buffer {
		return account.Account{}, false
	}
	a, err := account.FromBytes(buffer)
	fault.PanicIfError("cashflow.Contributor", err)
	return a, true
}

// BucketOfPromise - bucket an accepted promise is bound to
func (l *Ledger) BucketOfPromise(promiseId digest.Digest) (digest.Digest, bool) {
	return l.acceptedBucket(nil, promiseId)
}

// IsPromiseAccepted - true once the promise is in the accepted set
func (l *Ledger) IsPromiseAccepted(promiseId digest.Digest) bool {
	return l.accepted.Has(nil, promiseId)
}

// LockOf - lock registered for a promise's stake
func (l *Ledger) LockOf(promiseId digest.Digest) (currency.LockId, bool) {
	return l.lockOf(nil, promiseId)
}

// BucketCount - total buckets minted
func (l *Ledger) BucketCount() uint64 {
	return l.buckets.Count(nil)
}

// PromiseCount - total promises minted
func (l *Ledger) PromiseCount() uint64 {
	return l.promises.Count(nil)
}

// AcceptedCount - size of the accepted set
func (l *Ledger) AcceptedCount() uint64 {
	return l.accepted.Count(nil)
}

// BucketsOf - page through an owner's buckets
func (l *Ledger) BucketsOf(owner account.Account, start uint64, count int) ([]ownership.Owned, error) {
	return l.buckets.ListFor(owner, start, count)
}

// PromisesOf - page through the free promises created by an account
func (l *Ledger) PromisesOf(owner account.Account, start uint64, count int) ([]ownership.Owned, error) {
	return l.promises.ListFor(owner, start, count)
}

// AcceptedPromises - page through the accepted set in acceptance order
func (l *Ledger) AcceptedPromises(start uint64, count int) ([]digest.Digest, error) {
	return l.accepted.Range(start, count)
}

// Nonce - identifiers minted so far
func (l *Ledger) Nonce() uint64 {
	n, _ := getN(nil, l.pool.counters, nonceKey)
	return n
}
