// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaonone/akropolis-c2fc-srml/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/inbox", util.EnsureAbsolute("/data", "inbox"), "relative path not joined")
	assert.Equal(t, "/var/log", util.EnsureAbsolute("/data", "/var/log/"), "absolute path changed")
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data/x", "../log"), "path not cleaned")
}
