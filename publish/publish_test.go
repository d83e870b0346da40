// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish_test

import (
	"bufio"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaonone/akropolis-c2fc-srml/cashflow"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/fixtures"
	"github.com/kaonone/akropolis-c2fc-srml/messagebus"
	"github.com/kaonone/akropolis-c2fc-srml/publish"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

type fixedHeight uint64

func (h fixedHeight) Height() uint64 { return uint64(h) }

type memorySink struct {
	name    string
	records []publish.Record
	fail    bool
	closed  bool
}

func (m *memorySink) Name() string { return m.name }

func (m *memorySink) Publish(record *publish.Record) error {
	if m.fail {
		return fault.ErrInvalidRecord
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *memorySink) Close() error {
	m.closed = true
	return nil
}

func queueOf(height uint64) (*messagebus.Queue, digest.Digest) {
	queue := messagebus.New(10, fixedHeight(height))
	id := digest.NewDigest([]byte("bucket"))
	queue.Emit(cashflow.BucketCreated{Owner: fixtures.Alice, BucketId: id})
	queue.Emit(cashflow.PromiseChanged{PromiseId: id})
	return queue, id
}

func TestPublisherDrainsOnShutdown(t *testing.T) {
	queue, id := queueOf(4)

	good := &memorySink{name: "good"}
	bad := &memorySink{name: "bad", fail: true}

	// already shut down: queued events must still be delivered
	shutdown := make(chan struct{})
	close(shutdown)
	publish.New(queue, bad, nil, good).Run(nil, shutdown)

	if assert.Equal(t, 2, len(good.records), "wrong record count") {
		assert.Equal(t, uint64(1), good.records[0].Sequence, "wrong sequence")
		assert.Equal(t, uint64(4), good.records[0].Block, "wrong block")
		assert.Equal(t, cashflow.EventBucketCreated, good.records[0].Type, "wrong type")
		assert.Equal(t, id.String(), good.records[0].Attributes["bucket"], "wrong bucket attribute")
		assert.Equal(t, cashflow.EventPromiseChanged, good.records[1].Type, "wrong type")
	}
	assert.True(t, good.closed, "good sink not closed")
	assert.True(t, bad.closed, "failing sink not closed")
}

func TestFileSink(t *testing.T) {
	dir, err := ioutil.TempDir("", "events")
	if !assert.Nil(t, err, "temp dir error") {
		return
	}
	defer os.RemoveAll(dir)

	fileName := filepath.Join(dir, "events.log")
	sink, err := publish.NewFileSink(fileName)
	if !assert.Nil(t, err, "open error") {
		return
	}

	queue, id := queueOf(7)
	shutdown := make(chan struct{})
	close(shutdown)
	publish.New(queue, sink).Run(nil, shutdown)

	f, err := os.Open(fileName)
	if !assert.Nil(t, err, "open error") {
		return
	}
	defer f.Close()

	lines := []publish.Record{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := publish.Record{}
		err := json.Unmarshal(scanner.Bytes(), &line)
		assert.Nil(t, err, "decode error")
		lines = append(lines, line)
	}

	if assert.Equal(t, 2, len(lines), "wrong line count") {
		assert.Equal(t, uint64(7), lines[0].Block, "wrong block")
		assert.Equal(t, id.String(), lines[0].Attributes["bucket"], "wrong bucket attribute")
		assert.Equal(t, uint64(2), lines[1].Sequence, "wrong sequence")
	}

	assert.Nil(t, sink.Close(), "second close error")
}
