// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/kaonone/akropolis-c2fc-srml/cashflow"
	"github.com/kaonone/akropolis-c2fc-srml/counter"
)

// DefaultQueueSize - buffered messages before Emit blocks
const DefaultQueueSize = 1000

// Clock - source of the block number stamped on each message
type Clock interface {
	Height() uint64
}

// Message - one event and the block it was raised in
type Message struct {
	Sequence uint64
	Block    uint64
	Event    cashflow.Event
}

// Queue - buffered event queue, implements cashflow.Emitter
type Queue struct {
	clock    Clock
	sequence counter.Counter
	c        chan Message
}

// New - create a queue
func New(size int, clock Clock) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		clock: clock,
		c:     make(chan Message, size),
	}
}

// Emit - queue an event, blocks while the queue is full
func (queue *Queue) Emit(event cashflow.Event) {
	n, _ := queue.sequence.Increment()
	queue.c <- Message{
		Sequence: n,
		Block:    queue.clock.Height(),
		Event:    event,
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	return queue.c
}

// Sent - number of messages queued so far
func (queue *Queue) Sent() uint64 {
	return queue.sequence.Uint64()
}
