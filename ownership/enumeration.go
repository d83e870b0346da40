// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"github.com/kaonone/akropolis-c2fc-srml/counter"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

// Enumeration - dense global list of identifiers: index → id with
// reverse index and a count
type Enumeration struct {
	list     storage.Handle
	index    storage.Handle
	counters storage.Handle
	countKey []byte
}

// NewEnumeration - a global-only list, such as the accepted promises
func NewEnumeration(list storage.Handle, index storage.Handle, counters storage.Handle, name string) *Enumeration {
	return &Enumeration{
		list:     list,
		index:    index,
		counters: counters,
		countKey: []byte(name),
	}
}

// Count - number of enumerated identifiers
func (e *Enumeration) Count(trx storage.Transaction) uint64 {
	n, _ := getN(trx, e.counters, e.countKey)
	return n
}

// ByIndex - identifier at a global position
func (e *Enumeration) ByIndex(trx storage.Transaction, index uint64) (digest.Digest, bool) {
	return getDigest(trx, e.list, indexKey(index))
}

// IndexOf - global position of an identifier
func (e *Enumeration) IndexOf(trx storage.Transaction, id digest.Digest) (uint64, bool) {
	return getN(trx, e.index, id[:])
}

// Has - check whether an identifier is enumerated
func (e *Enumeration) Has(trx storage.Transaction, id digest.Digest) bool {
	return nil != get(trx, e.index, id[:])
}

// Append - add an identifier at the end of the list, returns its index
func (e *Enumeration) Append(trx storage.Transaction, id digest.Digest) (uint64, error) {
	if e.Has(trx, id) {
		return 0, fault.ErrAlreadyEnumerated
	}
	n := e.Count(trx)
	newCount, err := counter.Add(n, 1)
	if nil != err {
		return 0, err
	}
	e.append(trx, id, n, newCount)
	return n, nil
}

// internal: counts already checked
func (e *Enumeration) append(trx storage.Transaction, id digest.Digest, n uint64, newCount uint64) {
	trx.Put(e.list, indexKey(n), id[:])
	trx.PutN(e.index, id[:], n)
	trx.PutN(e.counters, e.countKey, newCount)
}

// Range - committed identifiers from a start index
func (e *Enumeration) Range(start uint64, count int) ([]digest.Digest, error) {
	cursor := e.list.NewFetchCursor().Seek(indexKey(start))

	// index → id
	items, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	ids := make([]digest.Digest, len(items))
	for i, item := range items {
		if err := digest.FromBytes(&ids[i], item.Value); nil != err {
			return nil, err
		}
	}
	return ids, nil
}
