// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	published = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cashflow_events_published_total",
		Help: "Events taken from the queue and handed to the sinks.",
	})

	sinkErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashflow_event_sink_errors_total",
		Help: "Events a sink failed to deliver.",
	}, []string{"sink"})
)
