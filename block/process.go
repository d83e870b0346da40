// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/kaonone/akropolis-c2fc-srml/blockheader"
	"github.com/kaonone/akropolis-c2fc-srml/cashflow"
	"github.com/kaonone/akropolis-c2fc-srml/counter"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

// Stats - totals since start
type Stats struct {
	Blocks uint64
	Calls  uint64
	Failed uint64
}

// Processor - applies block records in sequence
type Processor struct {
	log *logger.L

	store  *storage.Store
	header *blockheader.Header
	ledger *cashflow.Ledger

	blocks counter.Counter
	calls  counter.Counter
	failed counter.Counter
}

// New - create a processor, the header must already be restored
func New(store *storage.Store, header *blockheader.Header, ledger *cashflow.Ledger) *Processor {
	return &Processor{
		log:    logger.New("block"),
		store:  store,
		header: header,
		ledger: ledger,
	}
}

// Apply - run all calls of a block then the breach scan
//
// the header is saved before the calls so a block is never applied
// twice, even after a crash part way through it. cancellation is only
// honoured before the header is saved: a started block always runs all
// of its calls and its scan
func (p *Processor) Apply(ctx context.Context, record *Record) error {
	height, seed := p.header.Get()
	if record.Number <= height {
		return fault.ErrBlockAlreadyApplied
	}
	if record.Number != height+1 {
		p.log.Errorf("block: %d  expected: %d", record.Number, height+1)
		return fault.ErrBlockNotInSequence
	}

	if err := ctx.Err(); nil != err {
		return err
	}

	p.header.Set(record.Number, record.Seed)
	if err := p.saveHeader(); nil != err {
		p.header.Set(height, seed)
		return err
	}

	run := context.WithoutCancel(ctx)

	blockHeight.Set(float64(record.Number))
	p.log.Infof("block: %d  calls: %d", record.Number, len(record.Calls))

	for i, c := range record.Calls {
		p.calls.Increment()

		call, err := cashflow.DecodeCall(c.Call, c.Arguments)
		if nil == err {
			err = p.ledger.Apply(run, c.Caller, call)
		}
		if nil != err {
			p.failed.Increment()
			failedCalls.Inc()
			p.log.Warnf("block: %d  call[%d]: %s  caller: %s  error: %s", record.Number, i, c.Call, c.Caller, err)
		}
	}

	p.ledger.Finalise(record.Number)

	p.blocks.Increment()
	return nil
}

func (p *Processor) saveHeader() error {
	trx, err := p.store.Begin()
	if nil != err {
		return err
	}
	p.header.Save(trx, p.store.Pool.Counters)
	return trx.Commit()
}

// Height - last block started
func (p *Processor) Height() uint64 {
	return p.header.Height()
}

// Stats - counts of blocks and calls processed since start
func (p *Processor) Stats() Stats {
	return Stats{
		Blocks: p.blocks.Uint64(),
		Calls:  p.calls.Uint64(),
		Failed: p.failed.Uint64(),
	}
}
