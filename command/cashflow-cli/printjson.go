// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
)

// printJson - indented JSON reply on the output handle
//
// errors are returned to the action so main reports them through
// exitwithstatus
func printJson(handle io.Writer, message interface{}) error {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return fmt.Errorf("encode reply: %T  error: %s", message, err)
	}

	_, err = fmt.Fprintf(handle, "%s\n", b)
	if nil != err {
		return fmt.Errorf("write reply: %s", err)
	}
	return nil
}
