// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/kaonone/akropolis-c2fc-srml/fault"
)

// miscellaneous constants
const (
	PublicKeyLength = 32

	// variant byte + public key
	BytesLength = 1 + PublicKeyLength

	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	ed25519Algorithm = 0x01
	algorithmShift   = 4 // shift 4 bits to get algorithm
)

// Account - an ed25519 public key identifying a ledger participant
//
// the value is comparable so it can be used directly for ownership checks
type Account struct {
	Test      bool
	PublicKey [PublicKeyLength]byte
}

// New - account from a public key
func New(publicKey []byte, test bool) (Account, error) {
	a := Account{Test: test}
	if PublicKeyLength != len(publicKey) {
		return a, fault.ErrInvalidAccount
	}
	copy(a.PublicKey[:], publicKey)
	return a, nil
}

// FromBytes - decode the fixed length binary form used as a storage key
func FromBytes(buffer []byte) (Account, error) {
	if BytesLength != len(buffer) {
		return Account{}, fault.ErrInvalidAccount
	}

	variant := buffer[0]
	if variant&publicKeyCode != publicKeyCode || variant>>algorithmShift != ed25519Algorithm {
		return Account{}, fault.ErrInvalidAccount
	}

	return New(buffer[1:], 0 != variant&testKeyCode)
}

// FromBase58 - decode the checksummed base58 text form
func FromBase58(s string) (Account, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Account{}, fault.ErrInvalidAccount
	}
	if BytesLength+checksumLength != len(buffer) {
		return Account{}, fault.ErrInvalidAccount
	}

	a, err := FromBytes(buffer[:BytesLength])
	if nil != err {
		return Account{}, err
	}

	checksum := sha3.Sum256(buffer[:BytesLength])
	if !bytes.Equal(checksum[:checksumLength], buffer[BytesLength:]) {
		return Account{}, fault.ErrInvalidChecksum
	}
	return a, nil
}

// Bytes - binary form: key variant followed by the public key
func (account Account) Bytes() []byte {
	variant := byte(ed25519Algorithm<<algorithmShift) | publicKeyCode
	if account.Test {
		variant |= testKeyCode
	}
	return append([]byte{variant}, account.PublicKey[:]...)
}

// String - base58 encoding of encoded key with checksum
func (account Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// IsZero - check for an all zero public key
func (account Account) IsZero() bool {
	return [PublicKeyLength]byte{} == account.PublicKey
}

// MarshalText - convert an account to its base58 JSON form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert base58 text to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*account = a
	return nil
}
