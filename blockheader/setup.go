// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockheader

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

// keys in the counters pool
var (
	heightKey = []byte("block.height")
	seedKey   = []byte("block.seed")
)

// Header - the block being executed
type Header struct {
	sync.RWMutex // to allow locking

	log *logger.L

	height uint64        // this is the current block Height
	seed   digest.Digest // and its random seed
}

// New - a header at height zero
func New(log *logger.L) *Header {
	return &Header{
		log: log,
	}
}

// Restore - reload the last saved block
func (h *Header) Restore(pool storage.Handle) error {
	h.Lock()
	defer h.Unlock()

	height, found := pool.GetN(heightKey)
	if !found {
		h.log.Info("no saved block")
		return nil
	}

	var seed digest.Digest
	if err := digest.FromBytes(&seed, pool.Get(seedKey)); nil != err {
		return fault.ErrInvalidRecord
	}

	h.height = height
	h.seed = seed

	h.log.Infof("block height: %d", h.height)
	h.log.Infof("block seed: %v", h.seed)
	return nil
}

// Save - record the current block as part of a transaction
func (h *Header) Save(trx storage.Transaction, pool storage.Handle) {
	h.RLock()
	defer h.RUnlock()

	trx.PutN(pool, heightKey, h.height)
	trx.Put(pool, seedKey, h.seed[:])
}

// Set - set current header data
func (h *Header) Set(height uint64, seed digest.Digest) {
	h.Lock()

	h.height = height
	h.seed = seed

	h.Unlock()
}

// Get - return all header data
func (h *Header) Get() (uint64, digest.Digest) {
	h.RLock()
	defer h.RUnlock()

	return h.height, h.seed
}

// Height - return current height
func (h *Header) Height() uint64 {
	h.RLock()
	defer h.RUnlock()

	return h.height
}

// Seed - return the current random seed
func (h *Header) Seed() digest.Digest {
	h.RLock()
	defer h.RUnlock()

	return h.seed
}
