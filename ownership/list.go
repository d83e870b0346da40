// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"bytes"
	"encoding/binary"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
)

// Owned - an identifier and its position in the owner's list
type Owned struct {
	N  uint64        `json:"n,string"`
	Id digest.Digest `json:"id"`
}

// ListFor - fetch committed identifiers held by an owner
func (r *Registry) ListFor(owner account.Account, start uint64, count int) ([]Owned, error) {

	ownerBytes := owner.Bytes()
	prefix := ownerKey(owner, start)

	cursor := r.ownerList.NewFetchCursor().Seek(prefix)

	// owner ++ index → id
	items, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	records := make([]Owned, 0, len(items))

loop:
	for _, item := range items {
		n := len(item.Key)
		split := n - uint64ByteSize
		if split <= 0 {
			return nil, fault.ErrInvalidRecord
		}
		if !bytes.Equal(ownerBytes, item.Key[:split]) {
			break loop
		}

		record := Owned{
			N: binary.BigEndian.Uint64(item.Key[split:]),
		}
		if err := digest.FromBytes(&record.Id, item.Value); nil != err {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
