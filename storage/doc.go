// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. id           = bucket or promise identifier as 32 byte SHA3-256
// 4. count/index  = big endian uint64 (8 bytes)
// 5. owner        = account bytes (variant ++ 32 byte public key)
// 6. amount       = big endian uint256 (32 bytes)
// 7. lockId       = big endian uint64 (8 bytes)
//
// Buckets:
//
//   B ++ id                    - bucket record
//                                data: price ++ flag [++ bound promise]
//   C ++ id                    - contributor: creator of the accepted promise
//                                data: owner
//
// Enumerable ownership (buckets: O b c L N D, free promises: Q p q M n d):
//
//   O ++ id                    - current owner
//                                data: owner
//   b ++ index                 - global list
//                                data: id
//   c ++ id                    - position in global list
//                                data: index
//   L ++ owner ++ index        - list of owned items
//                                data: id
//   N ++ owner                 - number of owned items
//                                data: count
//   D ++ id                    - position in list of owned items, for swap-remove after transfer
//                                data: index
//
// Promises:
//
//   P ++ id                    - free promise record
//                                data: creator ++ value ++ period ++ flag [++ until]
//   a ++ index                 - accepted promises global list
//                                data: id
//   i ++ id                    - position in accepted list
//                                data: index
//   X ++ id                    - bucket holding the accepted promise
//                                data: bucket id
//   K ++ id                    - stake lock registration
//                                data: lockId
//
// Currency:
//
//   A ++ owner                 - balance
//                                data: amount
//   l ++ owner                 - locked funds
//                                data: [lockId ++ amount ++ until ++ reasons]
//
// Counters:
//
//   Z ++ name                  - nonce, lock ids, global counts
//                                data: count
package storage
