// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package zmqutil - CURVE key files and server sockets for ZeroMQ
//
// key files hold a single tagged hex line:
//
//   PUBLIC:<64 hex digits>
//   PRIVATE:<64 hex digits>
package zmqutil
