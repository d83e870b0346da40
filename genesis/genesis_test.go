// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package genesis_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/kaonone/akropolis-c2fc-srml/blockheader"
	"github.com/kaonone/akropolis-c2fc-srml/currency"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/fixtures"
	"github.com/kaonone/akropolis-c2fc-srml/genesis"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestEndowOnce(t *testing.T) {
	store := fixtures.OpenTestStore(t)
	defer store.Close()

	log := logger.New("genesis")
	money := currency.New(log, store.Pool.Balances, store.Pool.Locks, blockheader.New(log))

	endowments := []genesis.Endowment{
		{Account: fixtures.Alice.String(), Amount: "1000"},
		{Account: fixtures.Bob.String(), Amount: "250"},
		{Account: fixtures.Alice.String(), Amount: "5"},
	}

	applied, err := genesis.Endow(log, store, money, endowments)
	assert.Nil(t, err, "endow error")
	assert.True(t, applied, "endowment not applied")

	assert.Equal(t, "1005", money.BalanceOf(nil, fixtures.Alice).Dec(), "wrong Alice balance")
	assert.Equal(t, "250", money.BalanceOf(nil, fixtures.Bob).Dec(), "wrong Bob balance")

	applied, err = genesis.Endow(log, store, money, endowments)
	assert.Nil(t, err, "second endow error")
	assert.False(t, applied, "endowment applied twice")
	assert.Equal(t, "1005", money.BalanceOf(nil, fixtures.Alice).Dec(), "balance changed")
}

func TestEndowErrors(t *testing.T) {
	store := fixtures.OpenTestStore(t)
	defer store.Close()

	log := logger.New("genesis")
	money := currency.New(log, store.Pool.Balances, store.Pool.Locks, blockheader.New(log))

	_, err := genesis.Endow(log, store, money, []genesis.Endowment{
		{Account: fixtures.Alice.String(), Amount: "10"},
		{Account: fixtures.Bob.String(), Amount: "12x"},
	})
	assert.Equal(t, fault.ErrInvalidAmount, err, "bad amount accepted")
	assert.True(t, money.BalanceOf(nil, fixtures.Alice).IsZero(), "aborted endowment kept a deposit")

	_, err = genesis.Endow(log, store, money, []genesis.Endowment{
		{Account: "not-an-account", Amount: "10"},
	})
	assert.NotNil(t, err, "bad account accepted")

	applied, err := genesis.Endow(log, store, money, nil)
	assert.Nil(t, err, "empty endow error")
	assert.True(t, applied, "empty endowment not recorded")
}
