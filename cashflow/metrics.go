// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "cashflow"

var (
	callTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "calls_total",
		Help:      "Ledger calls by name and result",
	}, []string{"call", "result"})

	eventTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "events_total",
		Help:      "Events emitted by type",
	}, []string{"type"})

	breachScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "breach_scan_duration_seconds",
		Help:      "Time taken by the per-block scan of accepted promises",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	acceptedPromises = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "accepted_promises",
		Help:      "Promises scanned by the last breach scan",
	})
)

// result labels
const (
	resultOk    = "ok"
	resultError = "error"
)
