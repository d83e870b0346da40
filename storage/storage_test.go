// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/fixtures"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestCommit(t *testing.T) {
	store := fixtures.OpenTestStore(t)
	defer store.Close()

	pool := store.Pool.Counters

	trx, err := store.Begin()
	assert.Nil(t, err, "begin error")

	trx.Put(pool, []byte("key-one"), []byte("data-one"))
	trx.PutN(pool, []byte("key-two"), 42)

	assert.Nil(t, pool.Get([]byte("key-one")), "uncommitted data visible outside transaction")
	assert.Equal(t, []byte("data-one"), trx.Get(pool, []byte("key-one")), "transaction cannot read own write")

	n, found := trx.GetN(pool, []byte("key-two"))
	assert.True(t, found, "transaction cannot read own count")
	assert.Equal(t, uint64(42), n, "wrong count in transaction")

	err = trx.Commit()
	assert.Nil(t, err, "commit error")
	assert.False(t, trx.InUse(), "transaction still in use after commit")

	assert.Equal(t, []byte("data-one"), pool.Get([]byte("key-one")), "committed data not visible")
	n, found = pool.GetN([]byte("key-two"))
	assert.True(t, found, "committed count not found")
	assert.Equal(t, uint64(42), n, "wrong committed count")
}

func TestAbort(t *testing.T) {
	store := fixtures.OpenTestStore(t)
	defer store.Close()

	pool := store.Pool.Counters

	trx, err := store.Begin()
	assert.Nil(t, err, "begin error")
	trx.Put(pool, []byte("kept"), []byte("yes"))
	assert.Nil(t, trx.Commit(), "commit error")

	trx, err = store.Begin()
	assert.Nil(t, err, "begin error")
	trx.Put(pool, []byte("discarded"), []byte("no"))
	trx.Delete(pool, []byte("kept"))

	assert.False(t, trx.Has(pool, []byte("kept")), "deleted key visible in transaction")
	assert.True(t, pool.Has([]byte("kept")), "delete visible before commit")

	trx.Abort()

	assert.False(t, pool.Has([]byte("discarded")), "aborted write was stored")
	assert.True(t, pool.Has([]byte("kept")), "aborted delete was applied")
}

func TestSingleTransaction(t *testing.T) {
	store := fixtures.OpenTestStore(t)
	defer store.Close()

	trx, err := store.Begin()
	assert.Nil(t, err, "first begin should not return any error")

	_, err = store.Begin()
	assert.Equal(t, fault.ErrTransactionInUse, err, "second begin should return error")

	trx.Abort()

	trx, err = store.Begin()
	assert.Nil(t, err, "begin after abort should not return any error")
	assert.Nil(t, trx.Commit(), "empty commit error")
	assert.Equal(t, fault.ErrTransactionNotInUse, trx.Commit(), "double commit should fail")
}

func TestPoolsAreSeparate(t *testing.T) {
	store := fixtures.OpenTestStore(t)
	defer store.Close()

	key := []byte("same-key")

	trx, err := store.Begin()
	assert.Nil(t, err, "begin error")
	trx.Put(store.Pool.Buckets, key, []byte("bucket"))
	trx.Put(store.Pool.Promises, key, []byte("promise"))
	assert.Nil(t, trx.Commit(), "commit error")

	assert.Equal(t, []byte("bucket"), store.Pool.Buckets.Get(key), "wrong bucket pool value")
	assert.Equal(t, []byte("promise"), store.Pool.Promises.Get(key), "wrong promise pool value")
	assert.False(t, store.Pool.BucketOwner.Has(key), "key leaked into another pool")
}

func TestCursor(t *testing.T) {
	store := fixtures.OpenTestStore(t)
	defer store.Close()

	pool := store.Pool.BucketList

	trx, err := store.Begin()
	assert.Nil(t, err, "begin error")
	keys := []string{"a1", "a2", "b1", "b2", "b3"}
	for _, k := range keys {
		trx.Put(pool, []byte(k), []byte("v-"+k))
	}
	// neighbouring pools must not appear in the range
	trx.Put(store.Pool.BucketIndex, []byte("zz"), []byte("other"))
	trx.Put(store.Pool.Buckets, []byte("00"), []byte("other"))
	assert.Nil(t, trx.Commit(), "commit error")

	cursor := pool.NewFetchCursor()
	first, err := cursor.Fetch(2)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, 2, len(first), "wrong first fetch length")
	assert.Equal(t, []byte("a1"), first[0].Key, "wrong first key")
	assert.Equal(t, []byte("a2"), first[1].Key, "wrong second key")

	rest, err := cursor.Fetch(10)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, 3, len(rest), "wrong remaining fetch length")
	assert.Equal(t, []byte("b1"), rest[0].Key, "cursor did not advance")
	assert.Equal(t, []byte("v-b3"), rest[2].Value, "wrong last value")

	seek, err := pool.NewFetchCursor().Seek([]byte("b2")).Fetch(10)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, 2, len(seek), "wrong seek fetch length")

	n := 0
	err = pool.NewFetchCursor().Map(func(key []byte, value []byte) error {
		n += 1
		return nil
	})
	assert.Nil(t, err, "map error")
	assert.Equal(t, len(keys), n, "map did not visit every element")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err, "zero count should fail")
}

func TestReopen(t *testing.T) {
	name := filepath.Join("testing", "reopen.leveldb")

	store, err := storage.Open(name, storage.ReadWrite)
	assert.Nil(t, err, "open error")

	trx, err := store.Begin()
	assert.Nil(t, err, "begin error")
	trx.PutN(store.Pool.Counters, []byte("nonce"), 7)
	assert.Nil(t, trx.Commit(), "commit error")
	store.Close()

	_, err = store.Begin()
	assert.Equal(t, fault.ErrNotInitialised, err, "begin on closed store should fail")

	store, err = storage.Open(name, storage.ReadOnly)
	assert.Nil(t, err, "reopen error")
	defer store.Close()

	n, found := store.Pool.Counters.GetN([]byte("nonce"))
	assert.True(t, found, "value did not survive reopen")
	assert.Equal(t, uint64(7), n, "wrong value after reopen")
}
