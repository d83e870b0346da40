// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blockHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cashflow",
		Subsystem: "block",
		Name:      "height",
		Help:      "Number of the last block started",
	})

	failedCalls = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cashflow",
		Subsystem: "block",
		Name:      "failed_calls_total",
		Help:      "Calls in blocks that could not be decoded or applied",
	})
)
