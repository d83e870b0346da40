// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/kaonone/akropolis-c2fc-srml/block"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/fixtures"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// records the blocks applied, failing on request
type recorder struct {
	applied []uint64
	fail    map[uint64]error
}

func (r *recorder) Apply(ctx context.Context, record *block.Record) error {
	if err, ok := r.fail[record.Number]; ok {
		return err
	}
	r.applied = append(r.applied, record.Number)
	return nil
}

func makeInbox(t *testing.T, blocks applier) (*inbox, func()) {
	dir, err := ioutil.TempDir("", "inbox")
	if !assert.Nil(t, err, "temp dir error") {
		t.FailNow()
	}
	in := &inbox{
		log:       logger.New("inbox"),
		directory: filepath.Join(dir, "inbox"),
		processed: filepath.Join(dir, "processed"),
		poll:      10 * time.Millisecond,
		blocks:    blocks,
	}
	_ = os.Mkdir(in.directory, 0700)
	_ = os.Mkdir(in.processed, 0700)
	return in, func() { os.RemoveAll(dir) }
}

func writeBlocks(t *testing.T, directory string, name string, numbers ...uint64) {
	text := ""
	for _, n := range numbers {
		text += fmt.Sprintf(`{"number": %d, "calls": []}`+"\n", n)
	}
	err := ioutil.WriteFile(filepath.Join(directory, name), []byte(text), 0600)
	assert.Nil(t, err, "write error")
}

func TestInboxScan(t *testing.T) {
	r := &recorder{
		fail: map[uint64]error{
			2: fault.ErrBlockAlreadyApplied,
			9: fault.ErrBlockNotInSequence,
		},
	}
	in, cleanup := makeInbox(t, r)
	defer cleanup()

	writeBlocks(t, in.directory, "0002.json", 3, 4)
	writeBlocks(t, in.directory, "0001.json", 1, 2)
	writeBlocks(t, in.directory, "0003.json", 9)
	writeBlocks(t, in.directory, "0004.tmp", 5)

	in.scan(context.Background())

	assert.Equal(t, []uint64{1, 3, 4}, r.applied, "wrong blocks applied")

	remaining, err := blockFiles(in.directory)
	assert.Nil(t, err, "read error")
	assert.Equal(t, 0, len(remaining), "block files left in inbox")
	assert.True(t, fileExists(filepath.Join(in.directory, "0004.tmp")), "temporary file moved")

	assert.True(t, fileExists(filepath.Join(in.processed, "0001.json")), "0001 not processed")
	assert.True(t, fileExists(filepath.Join(in.processed, "0002.json")), "0002 not processed")
	assert.True(t, fileExists(filepath.Join(in.processed, "0003.json"+failedFileSuffix)), "0003 not marked failed")
}

func TestInboxCancelled(t *testing.T) {
	r := &recorder{}
	in, cleanup := makeInbox(t, r)
	defer cleanup()

	writeBlocks(t, in.directory, "0001.json", 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in.scan(ctx)

	assert.Equal(t, 0, len(r.applied), "blocks applied after cancel")
	assert.True(t, fileExists(filepath.Join(in.directory, "0001.json")), "file moved after cancel")
}

func TestInboxRun(t *testing.T) {
	r := &recorder{}
	in, cleanup := makeInbox(t, r)
	defer cleanup()

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		in.Run(nil, shutdown)
		close(done)
	}()

	// renamed into place as a block writer would
	writeBlocks(t, in.directory, "0001.tmp", 1, 2)
	err := os.Rename(filepath.Join(in.directory, "0001.tmp"), filepath.Join(in.directory, "0001.json"))
	assert.Nil(t, err, "rename error")

	deadline := time.Now().Add(5 * time.Second)
	for !fileExists(filepath.Join(in.processed, "0001.json")) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	close(shutdown)
	<-done

	assert.Equal(t, []uint64{1, 2}, r.applied, "wrong blocks applied")
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
