// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashflow_test

import (
	"context"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/blockheader"
	"github.com/kaonone/akropolis-c2fc-srml/cashflow"
	"github.com/kaonone/akropolis-c2fc-srml/currency"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/fixtures"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// collects events in order
type capture struct {
	events []cashflow.Event
}

func (c *capture) Emit(e cashflow.Event) {
	c.events = append(c.events, e)
}

// take and clear the collected events
func (c *capture) take() []cashflow.Event {
	events := c.events
	c.events = nil
	return events
}

type harness struct {
	t      *testing.T
	store  *storage.Store
	header *blockheader.Header
	money  *currency.Ledger
	ledger *cashflow.Ledger
	events *capture
}

func setup(t *testing.T) *harness {
	store := fixtures.OpenTestStore(t)

	header := blockheader.New(logger.New("block"))
	header.Set(1, digest.NewDigest([]byte("genesis")))

	money := currency.New(logger.New("currency"), store.Pool.Balances, store.Pool.Locks, header)
	events := &capture{}

	return &harness{
		t:      t,
		store:  store,
		header: header,
		money:  money,
		ledger: cashflow.New(store, money, header, events),
		events: events,
	}
}

func (h *harness) close() {
	h.store.Close()
}

func (h *harness) apply(caller account.Account, call cashflow.Call) error {
	return h.ledger.Apply(context.Background(), caller, call)
}

// advance the block, the seed changes with the height
func (h *harness) block(height uint64) {
	seed := digest.NewDigest([]byte("block"), uint256.NewInt(height).Bytes())
	h.header.Set(height, seed)
}

func (h *harness) deposit(who account.Account, amount uint64) {
	trx, err := h.store.Begin()
	if !assert.Nil(h.t, err, "begin error") {
		h.t.FailNow()
	}
	err = h.money.Deposit(trx, who, uint256.NewInt(amount))
	if !assert.Nil(h.t, err, "deposit error") {
		trx.Abort()
		h.t.FailNow()
	}
	assert.Nil(h.t, trx.Commit(), "commit error")
}

func (h *harness) balance(who account.Account) uint64 {
	return h.money.BalanceOf(nil, who).Uint64()
}

func (h *harness) createBucket(owner account.Account) digest.Digest {
	err := h.apply(owner, &cashflow.CreateBucket{})
	if !assert.Nil(h.t, err, "create bucket error") {
		h.t.FailNow()
	}
	events := h.events.take()
	if !assert.Equal(h.t, 1, len(events), "create bucket events") {
		h.t.FailNow()
	}
	created, ok := events[0].(cashflow.BucketCreated)
	if !assert.True(h.t, ok, "not a bucket created event") {
		h.t.FailNow()
	}
	return created.BucketId
}

func (h *harness) createPromise(creator account.Account, value uint64, period uint64, until *uint64) digest.Digest {
	call := &cashflow.CreatePromise{
		Period: period,
		Until:  until,
	}
	call.Value.SetUint64(value)

	err := h.apply(creator, call)
	if !assert.Nil(h.t, err, "create promise error") {
		h.t.FailNow()
	}
	events := h.events.take()
	if !assert.Equal(h.t, 1, len(events), "create promise events") {
		h.t.FailNow()
	}
	created, ok := events[0].(cashflow.PromiseCreated)
	if !assert.True(h.t, ok, "not a promise created event") {
		h.t.FailNow()
	}
	return created.PromiseId
}

// bucket of owner holding a promise of creator
func (h *harness) boundBucket(owner account.Account, creator account.Account, value uint64, period uint64) (digest.Digest, digest.Digest) {
	bucketId := h.createBucket(owner)
	promiseId := h.createPromise(creator, value, period, nil)

	err := h.apply(owner, &cashflow.AcceptPromise{
		PromiseId: promiseId,
		BucketId:  bucketId,
	})
	if !assert.Nil(h.t, err, "accept promise error") {
		h.t.FailNow()
	}
	h.events.take()
	return bucketId, promiseId
}

func (h *harness) bucket(id digest.Digest) *cashflow.Bucket {
	b, err := h.ledger.Bucket(id)
	if !assert.Nil(h.t, err, "bucket error") {
		h.t.FailNow()
	}
	return b
}

func eventTypes(events []cashflow.Event) []string {
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.EventType()
	}
	return types
}

func TestCreateBucket(t *testing.T) {
	h := setup(t)
	defer h.close()

	id := h.createBucket(fixtures.Alice)

	owner, err := h.ledger.BucketOwner(id)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, fixtures.Alice, owner, "wrong owner")

	b := h.bucket(id)
	assert.Equal(t, id, b.Id, "wrong id")
	assert.Nil(t, b.Promise, "new bucket holds a promise")
	assert.True(t, b.Price.IsZero(), "new bucket is priced")

	assert.Equal(t, uint64(1), h.ledger.BucketCount(), "wrong bucket count")
	assert.Equal(t, uint64(1), h.ledger.Nonce(), "wrong nonce")

	owned, err := h.ledger.BucketsOf(fixtures.Alice, 0, 10)
	assert.Nil(t, err, "list error")
	if assert.Equal(t, 1, len(owned), "wrong owned count") {
		assert.Equal(t, id, owned[0].Id, "wrong owned id")
	}
}

func TestIdentifiersAreUnique(t *testing.T) {
	h := setup(t)
	defer h.close()

	seen := make(map[digest.Digest]bool)

	// same caller and block, only the nonce differs
	for i := 0; i < 5; i += 1 {
		id := h.createBucket(fixtures.Alice)
		assert.False(t, seen[id], "repeated bucket id")
		seen[id] = true
	}

	// the nonce is shared by buckets and promises
	id := h.createPromise(fixtures.Alice, 10, 5, nil)
	assert.False(t, seen[id], "promise id repeats a bucket id")

	assert.Equal(t, uint64(6), h.ledger.Nonce(), "wrong nonce")
	assert.Equal(t, uint64(5), h.ledger.BucketCount(), "wrong bucket count")
	assert.Equal(t, uint64(1), h.ledger.PromiseCount(), "wrong promise count")
}

func TestFailedCallLeavesNoTrace(t *testing.T) {
	h := setup(t)
	defer h.close()

	id := h.createBucket(fixtures.Alice)
	nonce := h.ledger.Nonce()

	call := &cashflow.CreatePromise{
		Period: 0,
	}
	call.Value.SetUint64(100)
	err := h.apply(fixtures.Alice, call)
	assert.Equal(t, fault.ErrZeroPeriod, err, "zero period accepted")

	err = h.apply(fixtures.Bob, &cashflow.Transfer{BucketId: id, To: fixtures.Bob})
	assert.Equal(t, fault.ErrNotBucketOwner, err, "transfer by non owner")

	assert.Equal(t, 0, len(h.events.take()), "failed calls emitted events")
	assert.Equal(t, nonce, h.ledger.Nonce(), "failed call changed nonce")
	assert.Equal(t, uint64(0), h.ledger.PromiseCount(), "failed call created a promise")

	owner, _ := h.ledger.BucketOwner(id)
	assert.Equal(t, fixtures.Alice, owner, "failed transfer moved bucket")

	// the store is usable again after the failures
	h.createBucket(fixtures.Bob)
}

type unknownCall struct{}

func (unknownCall) CallName() string { return "unknown" }

func TestUnknownCall(t *testing.T) {
	h := setup(t)
	defer h.close()

	err := h.apply(fixtures.Alice, unknownCall{})
	assert.Equal(t, fault.ErrUnknownCall, err, "unknown call accepted")
}

func TestCancelledCall(t *testing.T) {
	h := setup(t)
	defer h.close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.ledger.Apply(ctx, fixtures.Alice, &cashflow.CreateBucket{})
	assert.Equal(t, context.Canceled, err, "cancelled call was applied")
	assert.Equal(t, uint64(0), h.ledger.BucketCount(), "cancelled call created a bucket")
}

func TestStateSurvivesReopen(t *testing.T) {
	h := setup(t)

	bucketId, promiseId := h.boundBucket(fixtures.Alice, fixtures.Bob, 50, 10)
	h.store.Close()

	store, err := storage.Open(fixtures.StorePath(t), storage.ReadOnly)
	if !assert.Nil(t, err, "reopen error") {
		t.FailNow()
	}
	defer store.Close()

	ledger := cashflow.New(store, h.money, h.header, nil)

	b, err := ledger.Bucket(bucketId)
	assert.Nil(t, err, "bucket error")
	if assert.NotNil(t, b.Promise, "promise lost") {
		assert.Equal(t, promiseId, b.Promise.Id, "wrong promise")
		assert.Equal(t, uint64(50), b.Promise.Value.Uint64(), "wrong value")
	}
	assert.True(t, ledger.IsPromiseAccepted(promiseId), "acceptance lost")
	assert.Equal(t, uint64(2), ledger.Nonce(), "nonce lost")
}
