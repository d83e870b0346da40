// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/kaonone/akropolis-c2fc-srml/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Buckets           *PoolHandle `prefix:"B"`
	BucketContributor *PoolHandle `prefix:"C"`
	BucketOwner       *PoolHandle `prefix:"O"`
	BucketList        *PoolHandle `prefix:"b"`
	BucketIndex       *PoolHandle `prefix:"c"`
	BucketOwnerList   *PoolHandle `prefix:"L"`
	BucketOwnerCount  *PoolHandle `prefix:"N"`
	BucketOwnerIndex  *PoolHandle `prefix:"D"`
	Promises          *PoolHandle `prefix:"P"`
	PromiseOwner      *PoolHandle `prefix:"Q"`
	PromiseList       *PoolHandle `prefix:"p"`
	PromiseIndex      *PoolHandle `prefix:"q"`
	PromiseOwnerList  *PoolHandle `prefix:"M"`
	PromiseOwnerCount *PoolHandle `prefix:"n"`
	PromiseOwnerIndex *PoolHandle `prefix:"d"`
	AcceptedList      *PoolHandle `prefix:"a"`
	AcceptedIndex     *PoolHandle `prefix:"i"`
	AcceptedBucket    *PoolHandle `prefix:"X"`
	PromiseLock       *PoolHandle `prefix:"K"`
	Balances          *PoolHandle `prefix:"A"`
	Locks             *PoolHandle `prefix:"l"`
	Counters          *PoolHandle `prefix:"Z"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Store - an open database and its pools
type Store struct {
	sync.RWMutex

	log *logger.L

	Pool pools

	db  *leveldb.DB
	trx *transaction
}

// Open - open up the database connection
//
// this must be called before any pool is accessed
func Open(database string, readOnly bool) (*Store, error) {

	log := logger.New("storage")
	log.Infof("open: %q  read only: %v", database, readOnly)

	db, version, err := getDB(database, readOnly)
	if nil != err {
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fault.ErrDatabaseIsNewer
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return nil, err
		}
	}

	store := &Store{
		log: log,
		db:  db,
	}
	store.trx = newTransaction(store)

	if err := store.bindPools(); nil != err {
		return nil, err
	}

	ok = true
	return store, nil
}

// fill in each pool handle from its struct tag
func (store *Store) bindPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(store.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&store.Pool).Elem()

	seen := make(map[byte]string)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo.Name, prefixTag)
		}

		prefix := prefixTag[0]
		if 0 == prefix {
			return fault.ErrInvalidPoolPrefix
		}
		if other, ok := seen[prefix]; ok {
			return fmt.Errorf("pool: %s duplicates prefix: %q of pool: %s", fieldInfo.Name, prefixTag, other)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			store:  store,
		}
		newPool := reflect.ValueOf(p)

		poolValue.Field(i).Set(newPool)
	}
	return nil
}

// Close - close the database connection
func (store *Store) Close() {
	if store.trx.InUse() {
		store.log.Warn("closing with a transaction in progress")
		store.trx.Abort()
	}

	store.Lock()
	defer store.Unlock()

	if nil == store.db {
		return
	}
	err := store.db.Close()
	if nil != err {
		store.log.Errorf("close error: %s", err)
	}
	store.db = nil
	store.log.Info("closed")
}

// Begin - start the single write transaction
//
// only one transaction may be open at a time
func (store *Store) Begin() (Transaction, error) {
	store.RLock()
	defer store.RUnlock()

	if nil == store.db {
		return nil, fault.ErrNotInitialised
	}
	if err := store.trx.begin(); nil != err {
		return nil, err
	}
	return store.trx, nil
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
