// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"github.com/kaonone/akropolis-c2fc-srml/messagebus"
)

// Record - external form of a queued event
type Record struct {
	Sequence   uint64            `json:"sequence"`
	Block      uint64            `json:"block"`
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

// NewRecord - convert a queued message
func NewRecord(m messagebus.Message) Record {
	return Record{
		Sequence:   m.Sequence,
		Block:      m.Block,
		Type:       m.Event.EventType(),
		Attributes: m.Event.Attributes(),
	}
}
