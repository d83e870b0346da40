// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/holiman/uint256"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/cashflow"
	"github.com/kaonone/akropolis-c2fc-srml/currency"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
)

// amounts are printed as decimal strings

type infoReply struct {
	Height   uint64        `json:"height"`
	Seed     digest.Digest `json:"seed"`
	Buckets  uint64        `json:"buckets"`
	Promises uint64        `json:"promises"`
	Accepted uint64        `json:"accepted"`
	Nonce    uint64        `json:"nonce"`
}

type promiseReply struct {
	Id       digest.Digest   `json:"id"`
	Creator  account.Account `json:"creator"`
	Value    string          `json:"value"`
	Period   uint64          `json:"period"`
	Until    *uint64         `json:"until,omitempty"`
	Filled   string          `json:"filled,omitempty"`
	Accepted uint64          `json:"accepted,omitempty"`
	Bucket   *digest.Digest  `json:"bucket,omitempty"`
	Lock     string          `json:"lock,omitempty"`
}

type bucketReply struct {
	Id      digest.Digest   `json:"id"`
	Owner   account.Account `json:"owner"`
	Price   string          `json:"price"`
	Promise *promiseReply   `json:"promise,omitempty"`
}

type lockReply struct {
	Id      string `json:"id"`
	Amount  string `json:"amount"`
	Until   uint64 `json:"until"`
	Reasons uint8  `json:"reasons"`
}

type balanceReply struct {
	Account account.Account `json:"account"`
	Balance string          `json:"balance"`
	Locks   []lockReply     `json:"locks"`
}

func newPromiseReply(p *cashflow.FreePromise) *promiseReply {
	return &promiseReply{
		Id:      p.Id,
		Creator: p.Creator,
		Value:   p.Value.Dec(),
		Period:  p.Period,
		Until:   p.Until,
	}
}

func newBucketReply(b *cashflow.Bucket, owner account.Account) *bucketReply {
	reply := &bucketReply{
		Id:    b.Id,
		Owner: owner,
		Price: b.Price.Dec(),
	}
	if p := b.Promise; nil != p {
		reply.Promise = &promiseReply{
			Id:       p.Id,
			Creator:  p.Creator,
			Value:    p.Value.Dec(),
			Period:   p.Period,
			Until:    p.Until,
			Filled:   p.Filled.Dec(),
			Accepted: p.Accepted,
		}
	}
	return reply
}

func newBalanceReply(who account.Account, balance *uint256.Int, locks []currency.Lock) *balanceReply {
	reply := &balanceReply{
		Account: who,
		Balance: balance.Dec(),
		Locks:   make([]lockReply, len(locks)),
	}
	for i, l := range locks {
		reply.Locks[i] = lockReply{
			Id:      l.Id.String(),
			Amount:  l.Amount.Dec(),
			Until:   l.Until,
			Reasons: uint8(l.Reasons),
		}
	}
	return reply
}
