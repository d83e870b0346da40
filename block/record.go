// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"encoding/json"
	"io"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
)

// Record - one block of calls
type Record struct {
	Number uint64        `json:"number"`
	Seed   digest.Digest `json:"seed"`
	Calls  []CallRecord  `json:"calls"`
}

// CallRecord - an authenticated call
type CallRecord struct {
	Caller    account.Account `json:"caller"`
	Call      string          `json:"call"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ReadRecords - decode a stream of block records
//
// stops at the first error from decoding or from f
func ReadRecords(r io.Reader, f func(*Record) error) error {
	decoder := json.NewDecoder(r)
	for {
		record := &Record{}
		err := decoder.Decode(record)
		if io.EOF == err {
			return nil
		}
		if nil != err {
			return err
		}
		if err := f(record); nil != err {
			return err
		}
	}
}
