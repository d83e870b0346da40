// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.  Each class of
// error is a distinct type so callers can test the class with the
// IsErrX functions: not found, permission, state conflict, arithmetic
// and payment failures are reported to the caller of a ledger call
// unchanged.
package fault
