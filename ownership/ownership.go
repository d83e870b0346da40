// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"encoding/binary"
	"sync"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

const (
	uint64ByteSize = 8
)

// Pools - the storage behind one registry
//
//   Owner       id            → owner
//   List        index         → id      (global enumeration)
//   Index       id            → index
//   OwnerList   owner ++ index → id     (per owner enumeration)
//   OwnerCount  owner         → count
//   OwnerIndex  id            → index
//   Counters    name          → global count
type Pools struct {
	Owner      storage.Handle
	List       storage.Handle
	Index      storage.Handle
	OwnerList  storage.Handle
	OwnerCount storage.Handle
	OwnerIndex storage.Handle
	Counters   storage.Handle
}

// Registry - identifiers with exactly one owner each, enumerable
// globally and per owner
type Registry struct {
	sync.Mutex // to ensure synchronised ownership updates

	Enumeration

	owner      storage.Handle
	ownerList  storage.Handle
	ownerCount storage.Handle
	ownerIndex storage.Handle
}

// New - create a registry over a set of pools
//
// name selects the key of the global count in the counters pool
func New(pools Pools, name string) *Registry {
	return &Registry{
		Enumeration: Enumeration{
			list:     pools.List,
			index:    pools.Index,
			counters: pools.Counters,
			countKey: []byte(name),
		},
		owner:      pools.Owner,
		ownerList:  pools.OwnerList,
		ownerCount: pools.OwnerCount,
		ownerIndex: pools.OwnerIndex,
	}
}

// OwnerOf - the recorded owner of an identifier
func (r *Registry) OwnerOf(trx storage.Transaction, id digest.Digest) (account.Account, bool) {
	buffer := get(trx, r.owner, id[:])
	if nil == buffer {
		return account.Account{}, false
	}
	owner, err := account.FromBytes(buffer)
	fault.PanicIfError("ownership.OwnerOf", err)
	return owner, true
}

// OwnedCount - number of identifiers held by an owner
func (r *Registry) OwnedCount(trx storage.Transaction, owner account.Account) uint64 {
	n, _ := getN(trx, r.ownerCount, owner.Bytes())
	return n
}

// OwnedByIndex - the identifier at a position in an owner's list
func (r *Registry) OwnedByIndex(trx storage.Transaction, owner account.Account, index uint64) (digest.Digest, bool) {
	return getDigest(trx, r.ownerList, ownerKey(owner, index))
}

// OwnedIndexOf - position of an identifier in its owner's list
func (r *Registry) OwnedIndexOf(trx storage.Transaction, id digest.Digest) (uint64, bool) {
	return getN(trx, r.ownerIndex, id[:])
}

// owner ++ index
func ownerKey(owner account.Account, index uint64) []byte {
	key := owner.Bytes()
	return append(key, indexKey(index)...)
}

func indexKey(index uint64) []byte {
	buffer := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(buffer, index)
	return buffer
}

// read through the transaction if one is open
func get(trx storage.Transaction, pool storage.Handle, key []byte) []byte {
	if nil == trx {
		return pool.Get(key)
	}
	return trx.Get(pool, key)
}

func getN(trx storage.Transaction, pool storage.Handle, key []byte) (uint64, bool) {
	if nil == trx {
		return pool.GetN(key)
	}
	return trx.GetN(pool, key)
}

func getDigest(trx storage.Transaction, pool storage.Handle, key []byte) (digest.Digest, bool) {
	var id digest.Digest
	buffer := get(trx, pool, key)
	if nil == buffer {
		return id, false
	}
	err := digest.FromBytes(&id, buffer)
	fault.PanicIfError("ownership.getDigest", err)
	return id, true
}
