// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"
)

type metadata struct {
	database string
	testnet  bool
	verbose  bool
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "cashflow-cli"
	app.Usage = "prepare block files and inspect a stopped cashflowd database"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.BoolFlag{
			Name:  "testnet, t",
			Usage: " generate test network accounts",
		},
		cli.StringFlag{
			Name:   "database, d",
			Value:  "",
			Usage:  " cashflowd database `DIRECTORY`",
			EnvVar: "CASHFLOW_DATABASE",
		},
	}

	idFlag := func(name string, usage string) cli.Flag {
		return cli.StringFlag{
			Name:  name,
			Value: "",
			Usage: usage,
		}
	}

	pageFlags := []cli.Flag{
		cli.Uint64Flag{
			Name:  "start, s",
			Value: 0,
			Usage: " first record `NUMBER`",
		},
		cli.IntFlag{
			Name:  "count, c",
			Value: 20,
			Usage: " maximum records to list `COUNT`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate an account key pair",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "call",
			Usage:     "build a call record for a block file",
			ArgsUsage: "\n   (* = required, + = depends on the call)",
			Flags: []cli.Flag{
				idFlag("caller, C", "*account making the call `ACCOUNT`"),
				idFlag("name, n", "*call `NAME`"),
				idFlag("bucket, b", "+bucket `ID`"),
				idFlag("promise, p", "+promise `ID`"),
				idFlag("to", "+receiving `ACCOUNT`"),
				idFlag("value", "+promise value `AMOUNT`"),
				idFlag("period", "+promise period `BLOCKS`"),
				idFlag("until", " promise expiry `BLOCK`"),
				idFlag("price", "+sale price `AMOUNT`"),
				idFlag("max-price", "+maximum purchase price `AMOUNT`"),
				idFlag("deposit", "+fill deposit `AMOUNT`"),
				idFlag("amount", "+stake `AMOUNT`"),
			},
			Action: runCall,
		},
		{
			Name:      "block",
			Usage:     "wrap call records into a block record",
			ArgsUsage: "[FILE...]\n   (* = required)\n   call records are read from stdin if no files",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "number, N",
					Value: 0,
					Usage: "*block `NUMBER`",
				},
				idFlag("seed, s", " block random seed `HEX` [derived from the number]"),
			},
			Action: runBlock,
		},
		{
			Name:      "info",
			Usage:     "display ledger totals",
			ArgsUsage: " ",
			Action:    runInfo,
		},
		{
			Name:      "bucket",
			Usage:     "display a bucket and its promise",
			ArgsUsage: "*ID",
			Action:    runBucket,
		},
		{
			Name:      "promise",
			Usage:     "display a free promise",
			ArgsUsage: "*ID",
			Action:    runPromise,
		},
		{
			Name:      "owned",
			Usage:     "list buckets or promises held by an account",
			ArgsUsage: "*ACCOUNT",
			Flags: append([]cli.Flag{
				cli.BoolFlag{
					Name:  "promises, P",
					Usage: " list promises instead of buckets",
				},
			}, pageFlags...),
			Action: runOwned,
		},
		{
			Name:      "accepted",
			Usage:     "list accepted promises in acceptance order",
			ArgsUsage: " ",
			Flags:     pageFlags,
			Action:    runAccepted,
		},
		{
			Name:      "balance",
			Usage:     "display the balance and locks of an account",
			ArgsUsage: "*ACCOUNT",
			Action:    runBalance,
		},
		{
			Name:      "version",
			Usage:     "display cashflow-cli version",
			ArgsUsage: " ",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			database: c.GlobalString("database"),
			testnet:  c.GlobalBool("testnet"),
			verbose:  c.GlobalBool("verbose"),
			e:        c.App.ErrWriter,
			w:        c.App.Writer,
		}
		return nil
	}

	return app
}
