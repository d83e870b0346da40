// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package block - apply blocks of calls to the ledger
//
// A block file holds one or more JSON block records:
//
//   {
//     "number": 12,
//     "seed": "<64 hex digits>",
//     "calls": [
//       {"caller": "<base58 account>", "call": "create_bucket", "arguments": {}}
//     ]
//   }
//
// blocks must arrive in sequence; each call is applied on its own and a
// failed call is logged and skipped.  The breach scan runs after the
// last call of every block.
package block
