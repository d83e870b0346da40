// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

const (
	dbPut = iota
	dbDelete
)

// pending writes of a transaction, so reads inside the transaction
// see its own writes before commit
type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    int
	value []byte
}

func newCache() *dbCache {
	return &dbCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// return the value, and whether the key was touched at all
//
// a deleted key is reported as touched with a nil value
func (c *dbCache) get(key []byte) ([]byte, bool) {
	obj, found := c.cache.Get(string(key))
	if !found {
		return nil, false
	}

	data := obj.(cacheData)
	if dbDelete == data.op {
		return nil, true
	}
	return data.value, true
}

func (c *dbCache) set(op int, key []byte, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(string(key), cached, cache.NoExpiration)
}

func (c *dbCache) count() int {
	return c.cache.ItemCount()
}

func (c *dbCache) clear() {
	c.cache.Flush()
}
