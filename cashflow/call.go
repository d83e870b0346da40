// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashflow

import (
	"github.com/holiman/uint256"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
)

// call names as used in block files
const (
	CallCreateBucket   = "create_bucket"
	CallCreatePromise  = "create_promise"
	CallEditPromise    = "edit_promise"
	CallAcceptPromise  = "accept_promise"
	CallSetPrice       = "set_price"
	CallTransfer       = "transfer"
	CallBuyBucket      = "buy_bucket"
	CallFillBucket     = "fill_bucket"
	CallFullfillBucket = "fullfill_bucket"
	CallStakeToPromise = "stake_to_promise"
	CallWithdrawStaken = "withdraw_staken"
)

// Call - one of the operations a caller can request
//
// the set is closed: Apply handles each of the types below
type Call interface {
	CallName() string
}

// CreateBucket - mint an empty bucket owned by the caller
type CreateBucket struct{}

// CreatePromise - mint a free promise owned by the caller
type CreatePromise struct {
	Value  uint256.Int
	Period uint64
	Until  *uint64
}

// EditPromise - change value and period of an unaccepted promise
type EditPromise struct {
	PromiseId digest.Digest
	Value     uint256.Int
	Period    uint64
}

// AcceptPromise - bind someone else's promise into the caller's bucket
type AcceptPromise struct {
	PromiseId digest.Digest
	BucketId  digest.Digest
}

// SetPrice - list a bucket for sale, zero removes the listing
type SetPrice struct {
	BucketId digest.Digest
	Price    uint256.Int
}

// Transfer - give a bucket to another account
type Transfer struct {
	BucketId digest.Digest
	To       account.Account
}

// BuyBucket - pay the listed price and take ownership
type BuyBucket struct {
	BucketId digest.Digest
	MaxPrice uint256.Int
}

// FillBucket - pay towards the promise held in a bucket
type FillBucket struct {
	BucketId digest.Digest
	Deposit  uint256.Int
}

// FullfillBucket - pay whatever the bucket's promise still lacks
type FullfillBucket struct {
	BucketId digest.Digest
}

// StakeToPromise - lock funds against one of the caller's promises
type StakeToPromise struct {
	PromiseId digest.Digest
	Amount    uint256.Int
}

// WithdrawStaken - release an expired stake
type WithdrawStaken struct {
	PromiseId digest.Digest
}

func (CreateBucket) CallName() string   { return CallCreateBucket }
func (CreatePromise) CallName() string  { return CallCreatePromise }
func (EditPromise) CallName() string    { return CallEditPromise }
func (AcceptPromise) CallName() string  { return CallAcceptPromise }
func (SetPrice) CallName() string       { return CallSetPrice }
func (Transfer) CallName() string       { return CallTransfer }
func (BuyBucket) CallName() string      { return CallBuyBucket }
func (FillBucket) CallName() string     { return CallFillBucket }
func (FullfillBucket) CallName() string { return CallFullfillBucket }
func (StakeToPromise) CallName() string { return CallStakeToPromise }
func (WithdrawStaken) CallName() string { return CallWithdrawStaken }
