// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"github.com/bitmark-inc/logger"

	"github.com/kaonone/akropolis-c2fc-srml/messagebus"
)

// Sink - one destination for events
type Sink interface {
	Name() string
	Publish(record *Record) error
	Close() error
}

// Publisher - background process draining the event queue
type Publisher struct {
	log   *logger.L
	queue *messagebus.Queue
	sinks []Sink
}

// New - create a publisher, nil sinks are ignored
func New(queue *messagebus.Queue, sinks ...Sink) *Publisher {
	p := &Publisher{
		log:   logger.New("publish"),
		queue: queue,
	}
	for _, s := range sinks {
		if nil != s {
			p.sinks = append(p.sinks, s)
		}
	}
	return p
}

// Run - background process
//
// on shutdown the messages already queued are still delivered, then
// every sink is closed
func (p *Publisher) Run(args interface{}, shutdown <-chan struct{}) {
	log := p.log

	log.Infof("starting…  sinks: %d", len(p.sinks))

	queue := p.queue.Chan()
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case m := <-queue:
			p.deliver(m)
		}
	}

drain:
	for {
		select {
		case m := <-queue:
			p.deliver(m)
		default:
			break drain
		}
	}

	for _, s := range p.sinks {
		if err := s.Close(); nil != err {
			log.Errorf("close: %s  error: %s", s.Name(), err)
		}
	}
	log.Infof("stopped after: %d events", p.queue.Sent())
}

func (p *Publisher) deliver(m messagebus.Message) {
	record := NewRecord(m)
	p.log.Infof("%d: block: %d  %s: %v", record.Sequence, record.Block, record.Type, record.Attributes)

	for _, s := range p.sinks {
		if err := s.Publish(&record); nil != err {
			sinkErrors.WithLabelValues(s.Name()).Inc()
			p.log.Errorf("sink: %s  sequence: %d  error: %s", s.Name(), record.Sequence, err)
		}
	}
	published.Inc()
}
