// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaonone/akropolis-c2fc-srml/cashflow"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fixtures"
	"github.com/kaonone/akropolis-c2fc-srml/messagebus"
)

type fixedClock uint64

func (c *fixedClock) Height() uint64 {
	return uint64(*c)
}

func TestQueueOrder(t *testing.T) {
	clock := fixedClock(7)
	queue := messagebus.New(10, &clock)

	id := digest.NewDigest([]byte("bucket"))
	queue.Emit(cashflow.BucketCreated{Owner: fixtures.Alice, BucketId: id})
	clock = 8
	queue.Emit(cashflow.Transferred{From: fixtures.Alice, To: fixtures.Bob, BucketId: id})

	assert.Equal(t, uint64(2), queue.Sent(), "wrong sent count")

	m := <-queue.Chan()
	assert.Equal(t, uint64(1), m.Sequence, "wrong sequence")
	assert.Equal(t, uint64(7), m.Block, "wrong block")
	assert.Equal(t, cashflow.EventBucketCreated, m.Event.EventType(), "wrong event")

	m = <-queue.Chan()
	assert.Equal(t, uint64(2), m.Sequence, "wrong sequence")
	assert.Equal(t, uint64(8), m.Block, "wrong block")
	assert.Equal(t, cashflow.EventTransferred, m.Event.EventType(), "wrong event")
}

func TestQueueDefaultSize(t *testing.T) {
	clock := fixedClock(1)
	queue := messagebus.New(0, &clock)

	for i := 0; i < messagebus.DefaultQueueSize; i += 1 {
		queue.Emit(cashflow.PromiseChanged{})
	}
	assert.Equal(t, messagebus.DefaultQueueSize, len(queue.Chan()), "wrong buffered count")
}
