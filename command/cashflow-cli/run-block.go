// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli"

	"github.com/kaonone/akropolis-c2fc-srml/block"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
)

func runBlock(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	number := c.Uint64("number")
	if 0 == number {
		return fmt.Errorf("block number is required")
	}

	seed := defaultSeed(number)
	if s := c.String("seed"); "" != s {
		var err error
		seed, err = digest.FromString(s)
		if nil != err {
			return fmt.Errorf("seed: %q  error: %s", s, err)
		}
	}

	record := &block.Record{
		Number: number,
		Seed:   seed,
		Calls:  []block.CallRecord{},
	}

	files := c.Args()
	if 0 == len(files) {
		calls, err := readCalls(os.Stdin)
		if nil != err {
			return err
		}
		record.Calls = calls
	}
	for _, name := range files {
		f, err := os.Open(name)
		if nil != err {
			return err
		}
		calls, err := readCalls(f)
		f.Close()
		if nil != err {
			return fmt.Errorf("file: %q  error: %s", name, err)
		}
		record.Calls = append(record.Calls, calls...)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "block: %d  seed: %s  calls: %d\n", number, seed, len(record.Calls))
	}

	return printJson(m.w, record)
}

// a seed for test blocks when none is given
func defaultSeed(number uint64) digest.Digest {
	return digest.NewDigest([]byte("block"), []byte(strconv.FormatUint(number, 10)))
}

// stream of call records as written by the call command
func readCalls(r io.Reader) ([]block.CallRecord, error) {
	calls := []block.CallRecord{}
	decoder := json.NewDecoder(r)
	for {
		call := block.CallRecord{}
		err := decoder.Decode(&call)
		if io.EOF == err {
			return calls, nil
		}
		if nil != err {
			return nil, err
		}
		calls = append(calls, call)
	}
}
