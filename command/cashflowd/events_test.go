// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
)

func TestEventSinks(t *testing.T) {
	dir, err := ioutil.TempDir("", "events")
	if !assert.Nil(t, err, "temp dir error") {
		return
	}
	defer os.RemoveAll(dir)

	log := logger.New("test")

	options := &Configuration{}
	sinks, err := eventSinks(log, options)
	assert.Nil(t, err, "sink error")
	assert.Equal(t, 0, len(sinks), "sinks without configuration")

	options.Events.File = filepath.Join(dir, "events.log")
	sinks, err = eventSinks(log, options)
	if assert.Nil(t, err, "sink error") && assert.Equal(t, 1, len(sinks), "wrong sink count") {
		assert.Equal(t, "file", sinks[0].Name(), "wrong sink")
		closeSinks(sinks)
	}

	// a missing key file stops startup
	options.Publishing.Broadcast = []string{"127.0.0.1:17134"}
	options.Publishing.PublicKey = filepath.Join(dir, "missing.public")
	options.Publishing.PrivateKey = filepath.Join(dir, "missing.private")
	_, err = eventSinks(log, options)
	assert.NotNil(t, err, "broadcaster started without keys")
}
