// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/holiman/uint256"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

// LockIdLength - bytes in a lock identifier
const LockIdLength = 8

// LockId - opaque lock token
type LockId [LockIdLength]byte

// NewLockId - lock identifier from a sequence number
func NewLockId(n uint64) LockId {
	var id LockId
	binary.BigEndian.PutUint64(id[:], n)
	return id
}

// String - hex form for logging
func (id LockId) String() string {
	return hex.EncodeToString(id[:])
}

// Reasons - which kinds of withdrawal a lock prevents
type Reasons uint8

// withdrawal kinds
const (
	ReasonTransfer Reasons = 1 << iota
	ReasonReserve
	ReasonFee

	ReasonAll = ReasonTransfer | ReasonReserve | ReasonFee
)

// Lock - funds of an account that cannot be withdrawn before a block
type Lock struct {
	Id      LockId
	Amount  uint256.Int
	Until   uint64
	Reasons Reasons
}

// Module - the currency operations the ledger depends on
//
// every operation runs inside the caller's storage transaction so a
// failed call leaves balances untouched
type Module interface {
	Transfer(trx storage.Transaction, from account.Account, to account.Account, amount *uint256.Int) error
	CreateLock(trx storage.Transaction, id LockId, who account.Account, amount *uint256.Int, until uint64, reasons Reasons) error
	ExtendLock(trx storage.Transaction, id LockId, who account.Account, amount *uint256.Int, until uint64, reasons Reasons) error
	RemoveLock(trx storage.Transaction, id LockId, who account.Account) error
	LocksOf(trx storage.Transaction, who account.Account) ([]Lock, error)
}

// Clock - the current block height
type Clock interface {
	Height() uint64
}
