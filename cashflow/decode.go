// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashflow

import (
	"encoding/json"

	"github.com/holiman/uint256"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
)

// decimal text form of an amount
type decimal struct {
	n uint256.Int
}

func (d decimal) MarshalText() ([]byte, error) {
	return []byte(d.n.Dec()), nil
}

func (d *decimal) UnmarshalText(s []byte) error {
	n, err := uint256.FromDecimal(string(s))
	if nil != err {
		return fault.ErrInvalidAmount
	}
	d.n.Set(n)
	return nil
}

func newDecimal(n *uint256.Int) *decimal {
	d := &decimal{}
	d.n.Set(n)
	return d
}

// arguments - union of the fields of every call
type arguments struct {
	BucketId  *digest.Digest   `json:"bucket_id,omitempty"`
	PromiseId *digest.Digest   `json:"promise_id,omitempty"`
	To        *account.Account `json:"to,omitempty"`
	Value     *decimal         `json:"value,omitempty"`
	Period    *uint64          `json:"period,omitempty"`
	Until     *uint64          `json:"until,omitempty"`
	Price     *decimal         `json:"price,omitempty"`
	MaxPrice  *decimal         `json:"max_price,omitempty"`
	Deposit   *decimal         `json:"deposit,omitempty"`
	Amount    *decimal         `json:"amount,omitempty"`
}

// DecodeCall - build a call from its name and JSON arguments
//
// amounts are decimal strings, identifiers hex and accounts base58
func DecodeCall(name string, raw json.RawMessage) (Call, error) {
	args := arguments{}
	if 0 != len(raw) {
		if err := json.Unmarshal(raw, &args); nil != err {
			return nil, err
		}
	}

	switch name {
	case CallCreateBucket:
		return &CreateBucket{}, nil

	case CallCreatePromise:
		if nil == args.Value || nil == args.Period {
			return nil, fault.ErrMissingArguments
		}
		c := &CreatePromise{
			Period: *args.Period,
			Until:  args.Until,
		}
		c.Value.Set(&args.Value.n)
		return c, nil

	case CallEditPromise:
		if nil == args.PromiseId || nil == args.Value || nil == args.Period {
			return nil, fault.ErrMissingArguments
		}
		c := &EditPromise{
			PromiseId: *args.PromiseId,
			Period:    *args.Period,
		}
		c.Value.Set(&args.Value.n)
		return c, nil

	case CallAcceptPromise:
		if nil == args.PromiseId || nil == args.BucketId {
			return nil, fault.ErrMissingArguments
		}
		return &AcceptPromise{
			PromiseId: *args.PromiseId,
			BucketId:  *args.BucketId,
		}, nil

	case CallSetPrice:
		if nil == args.BucketId || nil == args.Price {
			return nil, fault.ErrMissingArguments
		}
		c := &SetPrice{
			BucketId: *args.BucketId,
		}
		c.Price.Set(&args.Price.n)
		return c, nil

	case CallTransfer:
		if nil == args.BucketId || nil == args.To {
			return nil, fault.ErrMissingArguments
		}
		return &Transfer{
			BucketId: *args.BucketId,
			To:       *args.To,
		}, nil

	case CallBuyBucket:
		if nil == args.BucketId || nil == args.MaxPrice {
			return nil, fault.ErrMissingArguments
		}
		c := &BuyBucket{
			BucketId: *args.BucketId,
		}
		c.MaxPrice.Set(&args.MaxPrice.n)
		return c, nil

	case CallFillBucket:
		if nil == args.BucketId || nil == args.Deposit {
			return nil, fault.ErrMissingArguments
		}
		c := &FillBucket{
			BucketId: *args.BucketId,
		}
		c.Deposit.Set(&args.Deposit.n)
		return c, nil

	case CallFullfillBucket:
		if nil == args.BucketId {
			return nil, fault.ErrMissingArguments
		}
		return &FullfillBucket{
			BucketId: *args.BucketId,
		}, nil

	case CallStakeToPromise:
		if nil == args.PromiseId || nil == args.Amount {
			return nil, fault.ErrMissingArguments
		}
		c := &StakeToPromise{
			PromiseId: *args.PromiseId,
		}
		c.Amount.Set(&args.Amount.n)
		return c, nil

	case CallWithdrawStaken:
		if nil == args.PromiseId {
			return nil, fault.ErrMissingArguments
		}
		return &WithdrawStaken{
			PromiseId: *args.PromiseId,
		}, nil

	default:
		return nil, fault.ErrUnknownCall
	}
}

// EncodeCall - JSON arguments of a call, the inverse of DecodeCall
func EncodeCall(call Call) (json.RawMessage, error) {
	args := arguments{}

	switch c := call.(type) {
	case *CreateBucket:
	case *CreatePromise:
		args.Value = newDecimal(&c.Value)
		args.Period = &c.Period
		args.Until = c.Until
	case *EditPromise:
		args.PromiseId = &c.PromiseId
		args.Value = newDecimal(&c.Value)
		args.Period = &c.Period
	case *AcceptPromise:
		args.PromiseId = &c.PromiseId
		args.BucketId = &c.BucketId
	case *SetPrice:
		args.BucketId = &c.BucketId
		args.Price = newDecimal(&c.Price)
	case *Transfer:
		args.BucketId = &c.BucketId
		args.To = &c.To
	case *BuyBucket:
		args.BucketId = &c.BucketId
		args.MaxPrice = newDecimal(&c.MaxPrice)
	case *FillBucket:
		args.BucketId = &c.BucketId
		args.Deposit = newDecimal(&c.Deposit)
	case *FullfillBucket:
		args.BucketId = &c.BucketId
	case *StakeToPromise:
		args.PromiseId = &c.PromiseId
		args.Amount = newDecimal(&c.Amount)
	case *WithdrawStaken:
		args.PromiseId = &c.PromiseId
	default:
		return nil, fault.ErrUnknownCall
	}

	return json.Marshal(args)
}
