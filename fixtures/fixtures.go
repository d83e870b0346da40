// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for package tests
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// fixed accounts for tests
var (
	Alice   = makeAccount(0xa1)
	Bob     = makeAccount(0xb0)
	Charlie = makeAccount(0xc4)
	Dave    = makeAccount(0xd7)
)

func makeAccount(fill byte) account.Account {
	a := account.Account{Test: true}
	for i := range a.PublicKey {
		a.PublicKey[i] = fill
	}
	return a
}

// SetupTestLogger - start a logger writing only critical messages
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove its files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// OpenTestStore - a fresh database in the logging directory
//
// must be called after SetupTestLogger
func OpenTestStore(t *testing.T) *storage.Store {
	name := StorePath(t)
	_ = os.RemoveAll(name)

	store, err := storage.Open(name, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return store
}

// StorePath - database used by OpenTestStore for a test
func StorePath(t *testing.T) string {
	return filepath.Join(dir, fmt.Sprintf("%s.leveldb", filepath.Base(t.Name())))
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
