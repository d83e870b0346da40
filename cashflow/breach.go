// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashflow

import (
	"time"

	"github.com/kaonone/akropolis-c2fc-srml/fault"
)

// Finalise - end of block scan over every accepted promise
//
// a promise whose period ends at this height while it is still
// underfunded is reported as breached; filled is never reset so an
// underfunded promise is reported again at each later boundary.
// the scan always runs to completion
func (l *Ledger) Finalise(height uint64) {
	l.Lock()
	defer l.Unlock()

	start := time.Now()

	count := l.accepted.Count(nil)
	events := make([]Event, 0)

	for i := uint64(0); i < count; i += 1 {
		promiseId, ok := l.accepted.ByIndex(nil, i)
		if !ok {
			fault.Criticalf("finalise: missing accepted promise: %d", i)
			continue
		}

		bucketId, ok := l.acceptedBucket(nil, promiseId)
		if !ok {
			continue
		}
		b, err := l.bucket(nil, bucketId)
		if nil != err || nil == b.Promise {
			continue
		}

		if breached, ok := breachAt(b, height); ok {
			events = append(events, breached)
		}
	}

	elapsed := time.Since(start)
	breachScanDuration.Observe(elapsed.Seconds())
	acceptedPromises.Set(float64(count))

	l.log.Infof("finalise: %d  accepted: %d  breached: %d  time: %s", height, count, len(events), elapsed)

	l.publish(events)
}

// breach of a bound promise at a height, if any
func breachAt(b *Bucket, height uint64) (PromiseBreached, bool) {
	p := b.Promise

	// zero period can only come from records older than the zero
	// period check
	if 0 == p.Period || height <= p.Accepted {
		return PromiseBreached{}, false
	}

	lifetime := height - p.Accepted
	if 0 != lifetime%p.Period {
		return PromiseBreached{}, false
	}

	if !p.Filled.Lt(&p.Value) {
		return PromiseBreached{}, false
	}

	return PromiseBreached{
		BucketId:  b.Id,
		PromiseId: p.Id,
		Shortfall: *p.Remaining(),
	}, true
}
