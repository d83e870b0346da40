// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promversion "github.com/prometheus/common/version"
	"golang.org/x/time/rate"

	"github.com/kaonone/akropolis-c2fc-srml/util"
)

const (
	metricsPath     = "/metrics"
	shutdownTimeout = 5 * time.Second
)

// metricsServer - serve prometheus metrics over HTTP or HTTPS
type metricsServer struct {
	log         *logger.L
	server      *http.Server
	certificate string
	privateKey  string
}

// publish the build version as a metric
func registerVersion(program string, v string) {
	promversion.Version = v
	prometheus.MustRegister(promversion.NewCollector(program))
}

func newMetricsServer(options *MetricsType) (*metricsServer, error) {
	log := logger.New("metrics")

	limiter := rate.NewLimiter(rate.Limit(options.RequestRate), options.RequestBurst)

	mux := http.NewServeMux()
	mux.Handle(metricsPath, rateLimited(limiter, promhttp.Handler()))

	server := &http.Server{
		Addr:         options.Listen,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	m := &metricsServer{
		log:    log,
		server: server,
	}

	if options.TLS {
		if !util.EnsureFileExists(options.Certificate) {
			log.Errorf("certificate: %q does not exist", options.Certificate)
			return nil, errMissingFile(options.Certificate)
		}
		if !util.EnsureFileExists(options.PrivateKey) {
			log.Errorf("private key: %q does not exist", options.PrivateKey)
			return nil, errMissingFile(options.PrivateKey)
		}

		keyPair, err := tls.LoadX509KeyPair(options.Certificate, options.PrivateKey)
		if nil != err {
			log.Errorf("failed to load keypair: %v", err)
			return nil, err
		}
		log.Infof("SHA3-256 fingerprint: %x", certificateFingerprint(keyPair.Certificate[0]))

		m.certificate = options.Certificate
		m.privateKey = options.PrivateKey
	}

	return m, nil
}

// Run - background process
func (m *metricsServer) Run(args interface{}, shutdown <-chan struct{}) {
	log := m.log

	done := make(chan struct{})
	go func() {
		defer close(done)

		log.Infof("listen on: %s  path: %s  tls: %t", m.server.Addr, metricsPath, "" != m.certificate)

		var err error
		if "" != m.certificate {
			err = m.server.ListenAndServeTLS(m.certificate, m.privateKey)
		} else {
			err = m.server.ListenAndServe()
		}
		if http.ErrServerClosed != err {
			log.Criticalf("listen error: %s", err)
		}
	}()

	select {
	case <-shutdown:
	case <-done:
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := m.server.Shutdown(ctx); nil != err {
		log.Errorf("shutdown error: %s", err)
	}
	<-done
	log.Info("stopped")
}

// reject requests beyond the configured rate
func rateLimited(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
