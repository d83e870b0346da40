// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/blockheader"
	"github.com/kaonone/akropolis-c2fc-srml/cashflow"
	"github.com/kaonone/akropolis-c2fc-srml/currency"
	"github.com/kaonone/akropolis-c2fc-srml/digest"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

// read only view of a database
type view struct {
	store  *storage.Store
	header *blockheader.Header
	money  *currency.Ledger
	ledger *cashflow.Ledger
}

func openView(m *metadata) (*view, error) {
	if "" == m.database {
		return nil, fmt.Errorf("database directory is required")
	}

	store, err := storage.Open(m.database, storage.ReadOnly)
	if nil != err {
		return nil, err
	}

	header := blockheader.New(logger.New("blockheader"))
	if err := header.Restore(store.Pool.Counters); nil != err {
		store.Close()
		return nil, err
	}

	money := currency.New(logger.New("currency"), store.Pool.Balances, store.Pool.Locks, header)

	return &view{
		store:  store,
		header: header,
		money:  money,
		ledger: cashflow.New(store, money, header, nil),
	}, nil
}

func (v *view) close() {
	v.store.Close()
}

// the database packages log through channels so a logger must be
// running, verbose output goes to the console
func startLogging(m *metadata) error {
	level := "critical"
	if m.verbose {
		level = "info"
	}
	return logger.Initialise(logger.Configuration{
		Directory: os.TempDir(),
		File:      "cashflow-cli.log",
		Size:      1048576,
		Count:     1,
		Console:   m.verbose,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	})
}

// run a query against the database named by the global flag
func withView(c *cli.Context, f func(m *metadata, v *view) error) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := startLogging(m); nil != err {
		return err
	}
	defer logger.Finalise()

	v, err := openView(m)
	if nil != err {
		return err
	}
	defer v.close()

	return f(m, v)
}

func runInfo(c *cli.Context) error {
	return withView(c, func(m *metadata, v *view) error {
		height, seed := v.header.Get()
		return printJson(m.w, infoReply{
			Height:   height,
			Seed:     seed,
			Buckets:  v.ledger.BucketCount(),
			Promises: v.ledger.PromiseCount(),
			Accepted: v.ledger.AcceptedCount(),
			Nonce:    v.ledger.Nonce(),
		})
	})
}

func runBucket(c *cli.Context) error {
	id, err := digestArgument(c)
	if nil != err {
		return err
	}
	return withView(c, func(m *metadata, v *view) error {
		bucket, err := v.ledger.Bucket(id)
		if nil != err {
			return err
		}
		owner, err := v.ledger.BucketOwner(id)
		if nil != err {
			return err
		}
		return printJson(m.w, newBucketReply(bucket, owner))
	})
}

func runPromise(c *cli.Context) error {
	id, err := digestArgument(c)
	if nil != err {
		return err
	}
	return withView(c, func(m *metadata, v *view) error {
		promise, err := v.ledger.FreePromise(id)
		if nil != err {
			return err
		}
		reply := newPromiseReply(promise)
		if bucketId, ok := v.ledger.BucketOfPromise(id); ok {
			reply.Bucket = &bucketId
		}
		if lockId, ok := v.ledger.LockOf(id); ok {
			reply.Lock = lockId.String()
		}
		return printJson(m.w, reply)
	})
}

func runOwned(c *cli.Context) error {
	owner, err := accountArgument(c)
	if nil != err {
		return err
	}
	return withView(c, func(m *metadata, v *view) error {
		list := v.ledger.BucketsOf
		if c.Bool("promises") {
			list = v.ledger.PromisesOf
		}
		owned, err := list(owner, c.Uint64("start"), c.Int("count"))
		if nil != err {
			return err
		}
		return printJson(m.w, owned)
	})
}

func runAccepted(c *cli.Context) error {
	return withView(c, func(m *metadata, v *view) error {
		ids, err := v.ledger.AcceptedPromises(c.Uint64("start"), c.Int("count"))
		if nil != err {
			return err
		}
		return printJson(m.w, ids)
	})
}

func runBalance(c *cli.Context) error {
	who, err := accountArgument(c)
	if nil != err {
		return err
	}
	return withView(c, func(m *metadata, v *view) error {
		locks, err := v.money.LocksOf(nil, who)
		if nil != err {
			return err
		}
		return printJson(m.w, newBalanceReply(who, v.money.BalanceOf(nil, who), locks))
	})
}

func digestArgument(c *cli.Context) (digest.Digest, error) {
	if 1 != len(c.Args()) {
		return digest.Digest{}, fmt.Errorf("one identifier is required")
	}
	return digest.FromString(c.Args().Get(0))
}

func accountArgument(c *cli.Context) (account.Account, error) {
	if 1 != len(c.Args()) {
		return account.Account{}, fmt.Errorf("one account is required")
	}
	return account.FromBase58(c.Args().Get(0))
}
