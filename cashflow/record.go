// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashflow

import (
	"github.com/holiman/uint256"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/util"
)

const (
	amountLength = 32
	digestLength = 32
)

// FreePromise - a commitment that is not yet bound to a bucket
type FreePromise struct {
	Id      digest.Digest
	Creator account.Account
	Value   uint256.Int
	Period  uint64
	Until   *uint64
}

// Promise - the copy of a free promise held by a bucket
type Promise struct {
	Id       digest.Digest
	Creator  account.Account
	Value    uint256.Int
	Period   uint64
	Until    *uint64
	Filled   uint256.Int
	Accepted uint64 // block of acceptance
}

// Bucket - container for at most one bound promise
type Bucket struct {
	Id      digest.Digest
	Promise *Promise
	Price   uint256.Int
}

// Remaining - amount still owed in the current period, zero when the
// promise is filled
func (p *Promise) Remaining() *uint256.Int {
	if p.Filled.Lt(&p.Value) {
		return new(uint256.Int).Sub(&p.Value, &p.Filled)
	}
	return new(uint256.Int)
}

// Pack - free promise record:
//
//   creator ++ value ++ varint(period) ++ flag [++ varint(until)]
func (p *FreePromise) Pack() []byte {
	buffer := p.Creator.Bytes()
	value := p.Value.Bytes32()
	buffer = append(buffer, value[:]...)
	buffer = util.AppendVarint64(buffer, p.Period)
	return appendUntil(buffer, p.Until)
}

// Pack - bucket record:
//
//   price ++ flag [++ id ++ creator ++ value ++ filled ++
//   varint(period) ++ varint(accepted) ++ flag [++ varint(until)]]
func (b *Bucket) Pack() []byte {
	price := b.Price.Bytes32()
	buffer := append([]byte{}, price[:]...)
	if nil == b.Promise {
		return append(buffer, 0)
	}
	buffer = append(buffer, 1)

	p := b.Promise
	value := p.Value.Bytes32()
	filled := p.Filled.Bytes32()
	buffer = append(buffer, p.Id[:]...)
	buffer = append(buffer, p.Creator.Bytes()...)
	buffer = append(buffer, value[:]...)
	buffer = append(buffer, filled[:]...)
	buffer = util.AppendVarint64(buffer, p.Period)
	buffer = util.AppendVarint64(buffer, p.Accepted)
	return appendUntil(buffer, p.Until)
}

func appendUntil(buffer []byte, until *uint64) []byte {
	if nil == until {
		return append(buffer, 0)
	}
	buffer = append(buffer, 1)
	return util.AppendVarint64(buffer, *until)
}

// unpackFreePromise - decode a free promise record
func unpackFreePromise(id digest.Digest, buffer []byte) (*FreePromise, error) {
	r := reader{buffer: buffer}

	p := &FreePromise{
		Id: id,
	}
	r.account(&p.Creator)
	r.amount(&p.Value)
	p.Period = r.varint()
	p.Until = r.until()

	if err := r.finish(); nil != err {
		return nil, err
	}
	return p, nil
}

// unpackBucket - decode a bucket record
func unpackBucket(id digest.Digest, buffer []byte) (*Bucket, error) {
	r := reader{buffer: buffer}

	b := &Bucket{
		Id: id,
	}
	r.amount(&b.Price)
	if r.flag() {
		p := &Promise{}
		r.digest(&p.Id)
		r.account(&p.Creator)
		r.amount(&p.Value)
		r.amount(&p.Filled)
		p.Period = r.varint()
		p.Accepted = r.varint()
		p.Until = r.until()
		b.Promise = p
	}

	if err := r.finish(); nil != err {
		return nil, err
	}
	return b, nil
}

// sequential decoder that records the first error
type reader struct {
	buffer []byte
	err    error
}

func (r *reader) take(n int) []byte {
	if nil != r.err {
		return nil
	}
	if len(r.buffer) < n {
		r.err = fault.ErrInvalidRecord
		return nil
	}
	b := r.buffer[:n]
	r.buffer = r.buffer[n:]
	return b
}

func (r *reader) amount(a *uint256.Int) {
	if b := r.take(amountLength); nil != b {
		a.SetBytes(b)
	}
}

func (r *reader) digest(d *digest.Digest) {
	if b := r.take(digestLength); nil != b {
		copy(d[:], b)
	}
}

func (r *reader) account(a *account.Account) {
	b := r.take(account.BytesLength)
	if nil == b {
		return
	}
	acc, err := account.FromBytes(b)
	if nil != err {
		r.err = err
		return
	}
	*a = acc
}

func (r *reader) flag() bool {
	b := r.take(1)
	if nil == b {
		return false
	}
	switch b[0] {
	case 0:
		return false
	case 1:
		return true
	default:
		r.err = fault.ErrInvalidRecord
		return false
	}
}

func (r *reader) varint() uint64 {
	if nil != r.err {
		return 0
	}
	value, n := util.FromVarint64(r.buffer)
	if 0 == n {
		r.err = fault.ErrInvalidRecord
		return 0
	}
	r.buffer = r.buffer[n:]
	return value
}

func (r *reader) until() *uint64 {
	if !r.flag() {
		return nil
	}
	until := r.varint()
	return &until
}

// whole buffer must be consumed
func (r *reader) finish() error {
	if nil != r.err {
		return r.err
	}
	if 0 != len(r.buffer) {
		return fault.ErrInvalidRecord
	}
	return nil
}
