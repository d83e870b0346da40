// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - deliver ledger events to their sinks
//
// a single background process drains the event queue and hands each
// message to every sink in order. The ZeroMQ broadcaster sends each
// event as a two part message:
//
//   [0] event type (subscription topic, e.g. "promise_breached")
//   [1] JSON record: {"sequence", "block", "type", "attributes"}
package publish
