// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/kaonone/akropolis-c2fc-srml/block"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// blockStats - source of processing totals
type blockStats interface {
	Height() uint64
	Stats() block.Stats
}

// statsReporter - periodically log processing and memory use
type statsReporter struct {
	log    *logger.L
	blocks blockStats
	memory bool
}

// Run - background process
func (s *statsReporter) Run(args interface{}, shutdown <-chan struct{}) {
	for {
		s.report()

		select {
		case <-shutdown:
			return
		case <-time.After(statsDelay):
		}
	}
}

func (s *statsReporter) report() {
	log := s.log

	st := s.blocks.Stats()
	log.Infof("height: %d  blocks: %d  calls: %d  failed: %d", s.blocks.Height(), st.Blocks, st.Calls, st.Failed)

	if !s.memory {
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	text, err := json.Marshal(m)
	if nil != err {
		log.Errorf("marshal error: %s", err)
	} else {
		log.Debugf("memory: %s", text)
	}
	a := m.Alloc / mega
	t := m.TotalAlloc / mega
	sys := m.Sys / mega
	log.Warnf("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, sys)
}
