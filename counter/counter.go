// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"math"
	"sync/atomic"

	"github.com/kaonone/akropolis-c2fc-srml/fault"
)

// Counter - type to denote a counter that can be synchronously incremented
// just a 64 bit unsigned integer
//
// unlike a plain atomic add the operations refuse to wrap around
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() (uint64, error) {
	for {
		old := atomic.LoadUint64((*uint64)(ic))
		n, err := Add(old, 1)
		if nil != err {
			return old, err
		}
		if atomic.CompareAndSwapUint64((*uint64)(ic), old, n) {
			return n, nil
		}
	}
}

// Decrement - subtract 1 from a counter, returns new value
func (ic *Counter) Decrement() (uint64, error) {
	for {
		old := atomic.LoadUint64((*uint64)(ic))
		n, err := Sub(old, 1)
		if nil != err {
			return old, err
		}
		if atomic.CompareAndSwapUint64((*uint64)(ic), old, n) {
			return n, nil
		}
	}
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// IsZero - check if zero
func (ic *Counter) IsZero() bool {
	return 0 == atomic.LoadUint64((*uint64)(ic))
}

// Add - checked addition of persisted counts
func Add(a uint64, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return a, fault.ErrCountOverflow
	}
	return a + b, nil
}

// Sub - checked subtraction of persisted counts
func Sub(a uint64, b uint64) (uint64, error) {
	if b > a {
		return a, fault.ErrCountUnderflow
	}
	return a - b, nil
}
