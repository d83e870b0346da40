// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/kaonone/akropolis-c2fc-srml/block"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
)

const (
	blockFileSuffix  = ".json"
	failedFileSuffix = ".failed"
)

// applier - runs one block record
type applier interface {
	Apply(ctx context.Context, record *block.Record) error
}

// inbox - apply block files as they appear in a directory
//
// files are taken in name order, so writers should use zero padded
// block numbers and create the file under another suffix before
// renaming it to *.json
type inbox struct {
	log       *logger.L
	directory string
	processed string
	poll      time.Duration
	blocks    applier
}

func newInbox(options *InboxType, blocks applier) *inbox {
	return &inbox{
		log:       logger.New("inbox"),
		directory: options.Directory,
		processed: options.Processed,
		poll:      time.Duration(options.PollInterval) * time.Second,
		blocks:    blocks,
	}
}

// Run - background process
func (in *inbox) Run(args interface{}, shutdown <-chan struct{}) {
	log := in.log

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-shutdown
		cancel()
	}()

	// without a watcher the poll timer still picks up new files
	var events chan fsnotify.Event
	var errors chan error
	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
	} else {
		defer watcher.Close()
		if err := watcher.Add(in.directory); nil != err {
			log.Errorf("watch: %q  error: %s", in.directory, err)
		} else {
			events = watcher.Events
			errors = watcher.Errors
		}
	}

	log.Infof("watching: %q", in.directory)

loop:
	for {
		in.scan(ctx)

		timer := time.NewTimer(in.poll)

	wait:
		for {
			select {
			case <-shutdown:
				timer.Stop()
				break loop

			case event := <-events:
				if isNewBlockFile(event) {
					log.Debugf("file event: %v", event)
					timer.Stop()
					break wait
				}

			case err := <-errors:
				log.Errorf("watcher error: %s", err)

			case <-timer.C:
				break wait
			}
		}
	}

	log.Info("stopped")
}

// apply every block file currently in the inbox
func (in *inbox) scan(ctx context.Context) {
	names, err := blockFiles(in.directory)
	if nil != err {
		in.log.Errorf("read directory: %q  error: %s", in.directory, err)
		return
	}

	for _, name := range names {
		if nil != ctx.Err() {
			return
		}

		source := filepath.Join(in.directory, name)
		err := applyFile(ctx, in.log, in.blocks, source)

		// leave the file for the next run
		if nil != ctx.Err() {
			return
		}

		destination := filepath.Join(in.processed, name)
		if nil != err {
			in.log.Errorf("file: %q  error: %s", source, err)
			destination += failedFileSuffix
		}
		if err := os.Rename(source, destination); nil != err {
			in.log.Criticalf("move: %q to: %q  error: %s", source, destination, err)
		}
	}
}

// names of block files in order
func blockFiles(directory string) ([]string, error) {
	entries, err := ioutil.ReadDir(directory)
	if nil != err {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Mode().IsRegular() && strings.HasSuffix(e.Name(), blockFileSuffix) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// apply all records of a block file
//
// records of blocks already applied are skipped so a file can be
// replayed after a restart
func applyFile(ctx context.Context, log *logger.L, blocks applier, fileName string) error {
	f, err := os.Open(fileName)
	if nil != err {
		return err
	}
	defer f.Close()

	return block.ReadRecords(f, func(record *block.Record) error {
		err := blocks.Apply(ctx, record)
		if fault.ErrBlockAlreadyApplied == err {
			log.Warnf("file: %q  block: %d already applied", fileName, record.Number)
			return nil
		}
		return err
	})
}

func isNewBlockFile(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, blockFileSuffix) {
		return false
	}
	return event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Rename == fsnotify.Rename ||
		event.Op&fsnotify.Write == fsnotify.Write
}
