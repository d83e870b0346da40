// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashflow

import (
	"strconv"

	"github.com/holiman/uint256"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
)

// event type names
const (
	EventBucketCreated    = "bucket_created"
	EventPriceSet         = "price_set"
	EventTransferred      = "transferred"
	EventBought           = "bought"
	EventPromiseCreated   = "promise_created"
	EventPromiseChanged   = "promise_changed"
	EventPromiseAccepted  = "promise_accepted"
	EventPromiseFilled    = "promise_filled"
	EventPromiseFulfilled = "promise_fulfilled"
	EventPromiseBreached  = "promise_breached"
	EventStaked           = "staked"
	EventWithdrawn        = "withdrawn"
)

// Event - a notification raised by a call or by the breach scan
type Event interface {
	EventType() string
	Attributes() map[string]string
}

// Emitter - receives the events of each committed call
type Emitter interface {
	Emit(Event)
}

// NoopEmitter - discards all events
type NoopEmitter struct{}

func (NoopEmitter) Emit(Event) {}

type BucketCreated struct {
	Owner    account.Account
	BucketId digest.Digest
}

type PriceSet struct {
	Owner    account.Account
	BucketId digest.Digest
	Price    uint256.Int
}

type Transferred struct {
	From     account.Account
	To       account.Account
	BucketId digest.Digest
}

// Bought - raised after payment and transfer of a listed bucket
type Bought struct {
	Buyer    account.Account
	Seller   account.Account
	BucketId digest.Digest
	Price    uint256.Int
}

type PromiseCreated struct {
	Creator   account.Account
	PromiseId digest.Digest
}

type PromiseChanged struct {
	PromiseId digest.Digest
}

type PromiseAccepted struct {
	PromiseId digest.Digest
	BucketId  digest.Digest
}

type PromiseFilled struct {
	BucketId  digest.Digest
	PromiseId digest.Digest
	Deposit   uint256.Int
}

type PromiseFulfilled struct {
	BucketId  digest.Digest
	PromiseId digest.Digest
}

// PromiseBreached - an accepted promise was underfunded at the end of
// a period
type PromiseBreached struct {
	BucketId  digest.Digest
	PromiseId digest.Digest
	Shortfall uint256.Int
}

type Staked struct {
	Who       account.Account
	PromiseId digest.Digest
	Amount    uint256.Int
	Until     uint64
}

type Withdrawn struct {
	Who       account.Account
	PromiseId digest.Digest
	Amount    uint256.Int
}

func (BucketCreated) EventType() string    { return EventBucketCreated }
func (PriceSet) EventType() string         { return EventPriceSet }
func (Transferred) EventType() string      { return EventTransferred }
func (Bought) EventType() string           { return EventBought }
func (PromiseCreated) EventType() string   { return EventPromiseCreated }
func (PromiseChanged) EventType() string   { return EventPromiseChanged }
func (PromiseAccepted) EventType() string  { return EventPromiseAccepted }
func (PromiseFilled) EventType() string    { return EventPromiseFilled }
func (PromiseFulfilled) EventType() string { return EventPromiseFulfilled }
func (PromiseBreached) EventType() string  { return EventPromiseBreached }
func (Staked) EventType() string           { return EventStaked }
func (Withdrawn) EventType() string        { return EventWithdrawn }

func (e BucketCreated) Attributes() map[string]string {
	return map[string]string{
		"owner":  e.Owner.String(),
		"bucket": e.BucketId.String(),
	}
}

func (e PriceSet) Attributes() map[string]string {
	return map[string]string{
		"owner":  e.Owner.String(),
		"bucket": e.BucketId.String(),
		"price":  e.Price.Dec(),
	}
}

func (e Transferred) Attributes() map[string]string {
	return map[string]string{
		"from":   e.From.String(),
		"to":     e.To.String(),
		"bucket": e.BucketId.String(),
	}
}

func (e Bought) Attributes() map[string]string {
	return map[string]string{
		"buyer":  e.Buyer.String(),
		"seller": e.Seller.String(),
		"bucket": e.BucketId.String(),
		"price":  e.Price.Dec(),
	}
}

func (e PromiseCreated) Attributes() map[string]string {
	return map[string]string{
		"creator": e.Creator.String(),
		"promise": e.PromiseId.String(),
	}
}

func (e PromiseChanged) Attributes() map[string]string {
	return map[string]string{
		"promise": e.PromiseId.String(),
	}
}

func (e PromiseAccepted) Attributes() map[string]string {
	return map[string]string{
		"promise": e.PromiseId.String(),
		"bucket":  e.BucketId.String(),
	}
}

func (e PromiseFilled) Attributes() map[string]string {
	return map[string]string{
		"bucket":  e.BucketId.String(),
		"promise": e.PromiseId.String(),
		"deposit": e.Deposit.Dec(),
	}
}

func (e PromiseFulfilled) Attributes() map[string]string {
	return map[string]string{
		"bucket":  e.BucketId.String(),
		"promise": e.PromiseId.String(),
	}
}

func (e PromiseBreached) Attributes() map[string]string {
	return map[string]string{
		"bucket":    e.BucketId.String(),
		"promise":   e.PromiseId.String(),
		"shortfall": e.Shortfall.Dec(),
	}
}

func (e Staked) Attributes() map[string]string {
	return map[string]string{
		"who":     e.Who.String(),
		"promise": e.PromiseId.String(),
		"amount":  e.Amount.Dec(),
		"until":   strconv.FormatUint(e.Until, 10),
	}
}

func (e Withdrawn) Attributes() map[string]string {
	return map[string]string{
		"who":     e.Who.String(),
		"promise": e.PromiseId.String(),
		"amount":  e.Amount.Dec(),
	}
}
