// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/kaonone/akropolis-c2fc-srml/fault"
)

// Transaction - all-or-nothing group of writes
//
// reads through a transaction see its uncommitted writes
type Transaction interface {
	Abort()
	Commit() error
	Delete(Handle, []byte)
	Get(Handle, []byte) []byte
	GetN(Handle, []byte) (uint64, bool)
	Has(Handle, []byte) bool
	InUse() bool
	Put(Handle, []byte, []byte)
	PutN(Handle, []byte, uint64)
}

type transaction struct {
	sync.Mutex
	store *Store
	inUse bool
	batch *leveldb.Batch
	cache *dbCache
}

func newTransaction(store *Store) *transaction {
	return &transaction{
		store: store,
		batch: new(leveldb.Batch),
		cache: newCache(),
	}
}

func (t *transaction) begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.ErrTransactionInUse
	}
	t.inUse = true
	return nil
}

// InUse - true between Begin and Commit/Abort
func (t *transaction) InUse() bool {
	t.Lock()
	defer t.Unlock()
	return t.inUse
}

// Put - store a key/value bytes pair
func (t *transaction) Put(handle Handle, key []byte, value []byte) {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		fault.PanicIfError("transaction.Put", fault.ErrTransactionNotInUse)
	}
	prefixedKey := handle.prefixKey(key)
	stored := make([]byte, len(value))
	copy(stored, value)
	t.batch.Put(prefixedKey, stored)
	t.cache.set(dbPut, prefixedKey, stored)
}

// PutN - store a uint64 as an 8 byte big endian value
func (t *transaction) PutN(handle Handle, key []byte, value uint64) {
	t.Put(handle, key, encodeN(value))
}

// Delete - remove a key
func (t *transaction) Delete(handle Handle, key []byte) {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		fault.PanicIfError("transaction.Delete", fault.ErrTransactionNotInUse)
	}
	prefixedKey := handle.prefixKey(key)
	t.batch.Delete(prefixedKey)
	t.cache.set(dbDelete, prefixedKey, nil)
}

// Get - read a value, pending writes first
func (t *transaction) Get(handle Handle, key []byte) []byte {
	t.Lock()
	prefixedKey := handle.prefixKey(key)
	value, touched := t.cache.get(prefixedKey)
	t.Unlock()

	if touched {
		return value
	}
	return t.store.get(prefixedKey)
}

// GetN - read a record and decode first 8 bytes as big endian uint64
func (t *transaction) GetN(handle Handle, key []byte) (uint64, bool) {
	return decodeN(key, t.Get(handle, key))
}

// Has - check if a key exists
func (t *transaction) Has(handle Handle, key []byte) bool {
	return nil != t.Get(handle, key)
}

// Commit - write all pending changes in a single batch
func (t *transaction) Commit() error {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		return fault.ErrTransactionNotInUse
	}

	t.store.RLock()
	db := t.store.db
	var err error
	if nil == db {
		err = fault.ErrNotInitialised
	} else if t.batch.Len() > 0 {
		t.store.log.Debugf("commit: %d keys", t.cache.count())
		err = db.Write(t.batch, nil)
	}
	t.store.RUnlock()

	t.reset()
	return err
}

// Abort - discard all pending changes
func (t *transaction) Abort() {
	t.Lock()
	defer t.Unlock()
	t.reset()
}

// internal: must hold lock
func (t *transaction) reset() {
	t.batch.Reset()
	t.cache.clear()
	t.inUse = false
}
