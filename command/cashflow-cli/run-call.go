// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/urfave/cli"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/block"
	"github.com/kaonone/akropolis-c2fc-srml/cashflow"
)

// flag name to argument name, values copied as strings
var stringArguments = map[string]string{
	"bucket":    "bucket_id",
	"promise":   "promise_id",
	"to":        "to",
	"value":     "value",
	"price":     "price",
	"max-price": "max_price",
	"deposit":   "deposit",
	"amount":    "amount",
}

// flag name to argument name, values are block counts
var numberArguments = map[string]string{
	"period": "period",
	"until":  "until",
}

func runCall(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller := c.String("caller")
	if "" == caller {
		return fmt.Errorf("caller account is required")
	}
	name := c.String("name")
	if "" == name {
		return fmt.Errorf("call name is required")
	}

	flags := make(map[string]string)
	for f := range stringArguments {
		if v := c.String(f); "" != v {
			flags[f] = v
		}
	}
	for f := range numberArguments {
		if v := c.String(f); "" != v {
			flags[f] = v
		}
	}

	if m.verbose {
		fmt.Fprintf(m.e, "call: %s  caller: %s  flags: %v\n", name, caller, flags)
	}

	record, err := buildCall(caller, name, flags)
	if nil != err {
		return err
	}

	return printJson(m.w, record)
}

// checked call record from command line values
func buildCall(caller string, name string, flags map[string]string) (*block.CallRecord, error) {
	who, err := account.FromBase58(caller)
	if nil != err {
		return nil, fmt.Errorf("caller: %q  error: %s", caller, err)
	}

	args := make(map[string]interface{})
	for f, v := range flags {
		if a, ok := stringArguments[f]; ok {
			args[a] = v
			continue
		}
		a, ok := numberArguments[f]
		if !ok {
			return nil, fmt.Errorf("unknown argument: %q", f)
		}
		n, err := strconv.ParseUint(v, 10, 64)
		if nil != err {
			return nil, fmt.Errorf("%s: %q  error: %s", f, v, err)
		}
		args[a] = n
	}

	raw, err := json.Marshal(args)
	if nil != err {
		return nil, err
	}

	// decode and encode again to drop arguments the call does not use
	call, err := cashflow.DecodeCall(name, raw)
	if nil != err {
		return nil, err
	}
	arguments, err := cashflow.EncodeCall(call)
	if nil != err {
		return nil, err
	}

	return &block.CallRecord{
		Caller:    who,
		Call:      call.CallName(),
		Arguments: arguments,
	}, nil
}
