// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashflow

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/counter"
	"github.com/kaonone/akropolis-c2fc-srml/currency"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/ownership"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

// keys in the counters pool
const (
	bucketCountName   = "buckets"
	promiseCountName  = "promises"
	acceptedCountName = "accepted"
)

var (
	nonceKey = []byte("nonce")
	lockKey  = []byte("lock")
)

// BlockContext - the block the ledger is executing in
type BlockContext interface {
	Height() uint64
	Seed() digest.Digest
}

// pools used directly by the ledger, the registries hold the rest
type pools struct {
	buckets        storage.Handle
	contributor    storage.Handle
	promises       storage.Handle
	acceptedBucket storage.Handle
	promiseLock    storage.Handle
	counters       storage.Handle
}

// Ledger - bucket and promise state and the calls that change it
type Ledger struct {
	sync.Mutex // calls and the breach scan never interleave

	log *logger.L

	store    *storage.Store
	pool     pools
	currency currency.Module
	block    BlockContext
	emitter  Emitter

	buckets  *ownership.Registry
	promises *ownership.Registry
	accepted *ownership.Enumeration
}

// per call state
type state struct {
	trx    storage.Transaction
	caller account.Account
	events []Event
}

func (s *state) emit(e Event) {
	s.events = append(s.events, e)
}

// New - create a ledger over an open store
func New(store *storage.Store, currencyModule currency.Module, block BlockContext, emitter Emitter) *Ledger {
	if nil == emitter {
		emitter = NoopEmitter{}
	}

	p := &store.Pool

	return &Ledger{
		log:   logger.New("cashflow"),
		store: store,
		pool: pools{
			buckets:        p.Buckets,
			contributor:    p.BucketContributor,
			promises:       p.Promises,
			acceptedBucket: p.AcceptedBucket,
			promiseLock:    p.PromiseLock,
			counters:       p.Counters,
		},
		currency: currencyModule,
		block:    block,
		emitter:  emitter,
		buckets: ownership.New(ownership.Pools{
			Owner:      p.BucketOwner,
			List:       p.BucketList,
			Index:      p.BucketIndex,
			OwnerList:  p.BucketOwnerList,
			OwnerCount: p.BucketOwnerCount,
			OwnerIndex: p.BucketOwnerIndex,
			Counters:   p.Counters,
		}, bucketCountName),
		promises: ownership.New(ownership.Pools{
			Owner:      p.PromiseOwner,
			List:       p.PromiseList,
			Index:      p.PromiseIndex,
			OwnerList:  p.PromiseOwnerList,
			OwnerCount: p.PromiseOwnerCount,
			OwnerIndex: p.PromiseOwnerIndex,
			Counters:   p.Counters,
		}, promiseCountName),
		accepted: ownership.NewEnumeration(p.AcceptedList, p.AcceptedIndex, p.Counters, acceptedCountName),
	}
}

// Apply - run one call for an authenticated caller
//
// all changes of the call, including currency movements, are committed
// together or not at all; events are emitted only after the commit
func (l *Ledger) Apply(ctx context.Context, caller account.Account, call Call) error {
	if err := ctx.Err(); nil != err {
		return err
	}

	l.Lock()
	defer l.Unlock()

	name := call.CallName()

	trx, err := l.store.Begin()
	if nil != err {
		return err
	}

	s := &state{
		trx:    trx,
		caller: caller,
	}

	err = l.dispatch(s, call)
	if nil != err {
		trx.Abort()
		callTotal.WithLabelValues(name, resultError).Inc()
		l.log.Debugf("%s: caller: %s  error: %s", name, caller, err)
		return err
	}

	err = trx.Commit()
	if nil != err {
		callTotal.WithLabelValues(name, resultError).Inc()
		l.log.Errorf("%s: caller: %s  commit error: %s", name, caller, err)
		return err
	}

	callTotal.WithLabelValues(name, resultOk).Inc()
	l.log.Debugf("%s: caller: %s  events: %d", name, caller, len(s.events))

	l.publish(s.events)
	return nil
}

func (l *Ledger) publish(events []Event) {
	for _, e := range events {
		eventTotal.WithLabelValues(e.EventType()).Inc()
		l.emitter.Emit(e)
	}
}

func (l *Ledger) dispatch(s *state, call Call) error {
	switch c := call.(type) {
	case *CreateBucket:
		return l.createBucket(s)
	case *CreatePromise:
		return l.createPromise(s, &c.Value, c.Period, c.Until)
	case *EditPromise:
		return l.editPromise(s, c.PromiseId, &c.Value, c.Period)
	case *AcceptPromise:
		return l.acceptPromise(s, c.PromiseId, c.BucketId)
	case *SetPrice:
		return l.setPrice(s, c.BucketId, &c.Price)
	case *Transfer:
		return l.transfer(s, c.BucketId, c.To)
	case *BuyBucket:
		return l.buyBucket(s, c.BucketId, &c.MaxPrice)
	case *FillBucket:
		return l.fillBucket(s, c.BucketId, &c.Deposit)
	case *FullfillBucket:
		return l.fullfillBucket(s, c.BucketId)
	case *StakeToPromise:
		return l.stakeToPromise(s, c.PromiseId, &c.Amount)
	case *WithdrawStaken:
		return l.withdrawStaken(s, c.PromiseId)
	default:
		return fault.ErrUnknownCall
	}
}

// fresh identifier from the block seed, the caller and the nonce
func (l *Ledger) nextId(s *state) (digest.Digest, error) {
	nonce, _ := getN(s.trx, l.pool.counters, nonceKey)
	next, err := counter.Add(nonce, 1)
	if nil != err {
		return digest.Digest{}, err
	}

	n := make([]byte, 8)
	binary.BigEndian.PutUint64(n, nonce)
	seed := l.block.Seed()

	id := digest.NewDigest(seed[:], s.caller.Bytes(), n)
	s.trx.PutN(l.pool.counters, nonceKey, next)
	return id, nil
}

// bucket record, ErrBucketNotFound if absent
func (l *Ledger) bucket(trx storage.Transaction, id digest.Digest) (*Bucket, error) {
	buffer := get(trx, l.pool.buckets, id[:])
	if nil == buffer {
		return nil, fault.ErrBucketNotFound
	}
	b, err := unpackBucket(id, buffer)
	if nil != err {
		fault.Criticalf("bucket: %v  record: %x", id, buffer)
		fault.PanicIfError("cashflow.bucket", err)
	}
	return b, nil
}

func (l *Ledger) putBucket(trx storage.Transaction, b *Bucket) {
	trx.Put(l.pool.buckets, b.Id[:], b.Pack())
}

// free promise record, ErrPromiseNotFound if absent
func (l *Ledger) freePromise(trx storage.Transaction, id digest.Digest) (*FreePromise, error) {
	buffer := get(trx, l.pool.promises, id[:])
	if nil == buffer {
		return nil, fault.ErrPromiseNotFound
	}
	p, err := unpackFreePromise(id, buffer)
	if nil != err {
		fault.Criticalf("promise: %v  record: %x", id, buffer)
		fault.PanicIfError("cashflow.freePromise", err)
	}
	return p, nil
}

func (l *Ledger) putFreePromise(trx storage.Transaction, p *FreePromise) {
	trx.Put(l.pool.promises, p.Id[:], p.Pack())
}

// the bucket and its owner, checking the caller owns it
func (l *Ledger) ownedBucket(s *state, id digest.Digest) (*Bucket, error) {
	b, err := l.bucket(s.trx, id)
	if nil != err {
		return nil, err
	}
	owner, ok := l.buckets.OwnerOf(s.trx, id)
	if !ok {
		return nil, fault.ErrOwnerNotFound
	}
	if owner != s.caller {
		return nil, fault.ErrNotBucketOwner
	}
	return b, nil
}

// the free promise, checking the caller created it
func (l *Ledger) ownedPromise(s *state, id digest.Digest) (*FreePromise, error) {
	p, err := l.freePromise(s.trx, id)
	if nil != err {
		return nil, err
	}
	owner, ok := l.promises.OwnerOf(s.trx, id)
	if !ok {
		return nil, fault.ErrOwnerNotFound
	}
	if owner != s.caller {
		return nil, fault.ErrNotPromiseOwner
	}
	return p, nil
}

// bucket holding an accepted promise
func (l *Ledger) acceptedBucket(trx storage.Transaction, promiseId digest.Digest) (digest.Digest, bool) {
	var id digest.Digest
	buffer := get(trx, l.pool.acceptedBucket, promiseId[:])
	if nil == buffer {
		return id, false
	}
	if err := digest.FromBytes(&id, buffer); nil != err {
		fault.PanicIfError("cashflow.acceptedBucket", err)
	}
	return id, true
}

// read through the transaction if one is open
func get(trx storage.Transaction, pool storage.Handle, key []byte) []byte {
	if nil == trx {
		return pool.Get(key)
	}
	return trx.Get(pool, key)
}

func getN(trx storage.Transaction, pool storage.Handle, key []byte) (uint64, bool) {
	if nil == trx {
		return pool.GetN(key)
	}
	return trx.GetN(pool, key)
}
