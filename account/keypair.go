// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/ed25519"
)

// KeyPair - a newly generated account and its private key
type KeyPair struct {
	Account    Account `json:"account"`
	PrivateKey string  `json:"private_key"`
}

// Generate - create a fresh ed25519 key pair
func Generate(test bool) (*KeyPair, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	a, err := New(publicKey, test)
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		Account:    a,
		PrivateKey: hex.EncodeToString(privateKey),
	}, nil
}
