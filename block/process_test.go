// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/kaonone/akropolis-c2fc-srml/block"
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

type capture struct {
	events []cashflow.Event
	onEmit func(cashflow.Event)
}

func (c *capture) Emit(e cashflow.Event) {
	c.events = append(c.events, e)
	if nil != c.onEmit {
		c.onEmit(e)
	}
}

func (c *capture) take() []cashflow.Event {
	events := c.events
	c.events = nil
	return events
}

type harness struct {
	store     *storage.Store
	header    *blockheader.Header
	events    *capture
	processor *block.Processor
}

func setup(t *testing.T) *harness {
	store := fixtures.OpenTestStore(t)

	header := blockheader.New(logger.New("header"))
	money := currency.New(logger.New("currency"), store.Pool.Balances, store.Pool.Locks, header)
	events := &capture{}
	ledger := cashflow.New(store, money, header, events)

	return &harness{
		store:     store,
		header:    header,
		events:    events,
		processor: block.New(store, header, ledger),
	}
}

func record(number uint64, calls ...block.CallRecord) *block.Record {
	return &block.Record{
		Number: number,
		Seed:   digest.NewDigest([]byte(fmt.Sprintf("seed-%d", number))),
		Calls:  calls,
	}
}

func encode(t *testing.T, call cashflow.Call) json.RawMessage {
	raw, err := cashflow.EncodeCall(call)
	assert.Nil(t, err, "encode error")
	return raw
}

func TestApplySequence(t *testing.T) {
	h := setup(t)
	defer h.store.Close()

	ctx := context.Background()

	err := h.processor.Apply(ctx, record(2))
	assert.Equal(t, fault.ErrBlockNotInSequence, err, "skipped block accepted")
	assert.Equal(t, uint64(0), h.processor.Height(), "height moved")

	err = h.processor.Apply(ctx, record(1))
	assert.Nil(t, err, "apply error")
	assert.Equal(t, uint64(1), h.processor.Height(), "wrong height")

	err = h.processor.Apply(ctx, record(1))
	assert.Equal(t, fault.ErrBlockAlreadyApplied, err, "block applied twice")

	err = h.processor.Apply(ctx, record(2))
	assert.Nil(t, err, "apply error")

	stats := h.processor.Stats()
	assert.Equal(t, uint64(2), stats.Blocks, "wrong block count")
	assert.Equal(t, uint64(0), stats.Calls, "wrong call count")
}

func TestHeaderSaved(t *testing.T) {
	h := setup(t)

	err := h.processor.Apply(context.Background(), record(1))
	assert.Nil(t, err, "apply error")

	restored := blockheader.New(logger.New("header"))
	err = restored.Restore(h.store.Pool.Counters)
	assert.Nil(t, err, "restore error")

	height, seed := restored.Get()
	assert.Equal(t, uint64(1), height, "wrong height")
	assert.Equal(t, record(1).Seed, seed, "wrong seed")

	h.store.Close()
}

func TestFailedCallsSkipped(t *testing.T) {
	h := setup(t)
	defer h.store.Close()

	r := record(1,
		block.CallRecord{Caller: fixtures.Alice, Call: "no_such_call"},
		block.CallRecord{Caller: fixtures.Alice, Call: cashflow.CallCreateBucket},
		block.CallRecord{Caller: fixtures.Bob, Call: cashflow.CallCreatePromise},
	)

	err := h.processor.Apply(context.Background(), r)
	assert.Nil(t, err, "apply error")

	events := h.events.take()
	assert.Equal(t, 1, len(events), "wrong event count")
	assert.Equal(t, cashflow.EventBucketCreated, events[0].EventType(), "wrong event")

	stats := h.processor.Stats()
	assert.Equal(t, uint64(3), stats.Calls, "wrong call count")
	assert.Equal(t, uint64(2), stats.Failed, "wrong failure count")
}

func TestBreachAfterCalls(t *testing.T) {
	h := setup(t)
	defer h.store.Close()

	ctx := context.Background()

	create := cashflow.CreatePromise{Period: 3}
	create.Value.SetUint64(100)

	err := h.processor.Apply(ctx, record(1,
		block.CallRecord{Caller: fixtures.Alice, Call: cashflow.CallCreateBucket},
		block.CallRecord{Caller: fixtures.Bob, Call: cashflow.CallCreatePromise, Arguments: encode(t, &create)},
	))
	assert.Nil(t, err, "apply error")

	events := h.events.take()
	assert.Equal(t, 2, len(events), "wrong event count")
	bucketId := events[0].(cashflow.BucketCreated).BucketId
	promiseId := events[1].(cashflow.PromiseCreated).PromiseId

	accept := cashflow.AcceptPromise{PromiseId: promiseId, BucketId: bucketId}
	err = h.processor.Apply(ctx, record(2,
		block.CallRecord{Caller: fixtures.Alice, Call: cashflow.CallAcceptPromise, Arguments: encode(t, &accept)},
	))
	assert.Nil(t, err, "apply error")
	assert.Equal(t, []string{cashflow.EventPromiseAccepted}, types(h.events.take()), "wrong events")

	for n := uint64(3); n < 5; n += 1 {
		err = h.processor.Apply(ctx, record(n))
		assert.Nil(t, err, "apply error")
		assert.Equal(t, 0, len(h.events.take()), "unexpected events at: %d", n)
	}

	err = h.processor.Apply(ctx, record(5))
	assert.Nil(t, err, "apply error")

	events = h.events.take()
	assert.Equal(t, []string{cashflow.EventPromiseBreached}, types(events), "wrong events")
	breach := events[0].(cashflow.PromiseBreached)
	assert.Equal(t, bucketId, breach.BucketId, "wrong bucket")
	assert.Equal(t, "100", breach.Shortfall.Dec(), "wrong shortfall")
}

func TestCancelledBeforeBlock(t *testing.T) {
	h := setup(t)
	defer h.store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.processor.Apply(ctx, record(1,
		block.CallRecord{Caller: fixtures.Alice, Call: cashflow.CallCreateBucket},
	))
	assert.Equal(t, context.Canceled, err, "cancel not reported")
	assert.Equal(t, uint64(0), h.processor.Height(), "height moved")
	assert.Equal(t, 0, len(h.events.take()), "events from a cancelled block")

	// the same block can be applied later
	err = h.processor.Apply(context.Background(), record(1,
		block.CallRecord{Caller: fixtures.Alice, Call: cashflow.CallCreateBucket},
	))
	assert.Nil(t, err, "apply error")
	assert.Equal(t, uint64(1), h.processor.Height(), "wrong height")
	assert.Equal(t, []string{cashflow.EventBucketCreated}, types(h.events.take()), "wrong events")
}

func TestCancelledDuringBlock(t *testing.T) {
	h := setup(t)
	defer h.store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	create := cashflow.CreatePromise{Period: 1}
	create.Value.SetUint64(100)

	err := h.processor.Apply(ctx, record(1,
		block.CallRecord{Caller: fixtures.Alice, Call: cashflow.CallCreateBucket},
		block.CallRecord{Caller: fixtures.Bob, Call: cashflow.CallCreatePromise, Arguments: encode(t, &create)},
	))
	assert.Nil(t, err, "apply error")

	events := h.events.take()
	if !assert.Equal(t, 2, len(events), "wrong event count") {
		t.FailNow()
	}
	bucketId := events[0].(cashflow.BucketCreated).BucketId
	promiseId := events[1].(cashflow.PromiseCreated).PromiseId

	accept := cashflow.AcceptPromise{PromiseId: promiseId, BucketId: bucketId}
	err = h.processor.Apply(ctx, record(2,
		block.CallRecord{Caller: fixtures.Alice, Call: cashflow.CallAcceptPromise, Arguments: encode(t, &accept)},
	))
	assert.Nil(t, err, "apply error")
	h.events.take()

	// shutdown arrives while the first call of block 3 is running
	h.events.onEmit = func(cashflow.Event) {
		cancel()
	}

	err = h.processor.Apply(ctx, record(3,
		block.CallRecord{Caller: fixtures.Alice, Call: cashflow.CallCreateBucket},
		block.CallRecord{Caller: fixtures.Bob, Call: cashflow.CallCreateBucket},
	))
	assert.Nil(t, err, "started block not completed")
	assert.Equal(t, uint64(3), h.processor.Height(), "wrong height")

	expected := []string{
		cashflow.EventBucketCreated,
		cashflow.EventBucketCreated,
		cashflow.EventPromiseBreached,
	}
	assert.Equal(t, expected, types(h.events.take()), "calls or scan skipped")
	assert.Equal(t, uint64(3), h.processor.Stats().Blocks, "wrong block count")

	err = h.processor.Apply(ctx, record(4))
	assert.Equal(t, context.Canceled, err, "cancel not reported")
	assert.Equal(t, uint64(3), h.processor.Height(), "height moved after cancel")
}

func TestReadRecords(t *testing.T) {
	text := `{"number": 1, "seed": "` + record(1).Seed.String() + `", "calls": [
  {"caller": "` + fixtures.Alice.String() + `", "call": "create_bucket"}
]}
{"number": 2, "seed": "` + record(2).Seed.String() + `", "calls": []}
`

	records := []*block.Record{}
	err := block.ReadRecords(strings.NewReader(text), func(r *block.Record) error {
		records = append(records, r)
		return nil
	})
	assert.Nil(t, err, "read error")
	assert.Equal(t, 2, len(records), "wrong record count")
	assert.Equal(t, uint64(1), records[0].Number, "wrong number")
	assert.Equal(t, fixtures.Alice, records[0].Calls[0].Caller, "wrong caller")
	assert.Equal(t, cashflow.CallCreateBucket, records[0].Calls[0].Call, "wrong call")
	assert.Equal(t, record(2).Seed, records[1].Seed, "wrong seed")

	err = block.ReadRecords(strings.NewReader(`{"number": "x"}`), func(*block.Record) error {
		return nil
	})
	assert.NotNil(t, err, "bad record accepted")
}

func types(events []cashflow.Event) []string {
	s := make([]string, len(events))
	for i, e := range events {
		s[i] = e.EventType()
	}
	return s
}
