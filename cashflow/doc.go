// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cashflow - buckets, promises and the calls that act on them
//
// A bucket holds at most one bound promise. Free promises are created
// independently and copied into a bucket when its owner accepts them;
// the free record stays registered afterwards. Buckets can be
// transferred, listed for sale and bought, bound promises are filled
// by anyone except the bucket owner, and Finalise reports any accepted
// promise that is underfunded at the end of one of its periods.
//
// Every call runs inside one storage transaction together with the
// currency operations it needs, and its events reach the Emitter only
// after that transaction commits.
package cashflow
