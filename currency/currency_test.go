// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/kaonone/akropolis-c2fc-srml/currency"
	"github.com/kaonone/akropolis-c2fc-srml/currency/mocks"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/fixtures"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func setupLedger(t *testing.T, height uint64) (*storage.Store, *currency.Ledger, *gomock.Controller) {
	ctl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctl)
	clock.EXPECT().Height().Return(height).AnyTimes()

	store := fixtures.OpenTestStore(t)
	l := currency.New(logger.New("currency"), store.Pool.Balances, store.Pool.Locks, clock)
	return store, l, ctl
}

func apply(t *testing.T, store *storage.Store, f func(trx storage.Transaction) error) error {
	trx, err := store.Begin()
	if !assert.Nil(t, err, "begin error") {
		t.FailNow()
	}
	err = f(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

func TestTransfer(t *testing.T) {
	store, l, ctl := setupLedger(t, 10)
	defer ctl.Finish()
	defer store.Close()

	alice := fixtures.Alice
	bob := fixtures.Bob

	err := apply(t, store, func(trx storage.Transaction) error {
		return l.Deposit(trx, alice, uint256.NewInt(100))
	})
	assert.Nil(t, err, "deposit error")

	err = apply(t, store, func(trx storage.Transaction) error {
		return l.Transfer(trx, alice, bob, uint256.NewInt(30))
	})
	assert.Nil(t, err, "transfer error")
	assert.Equal(t, uint64(70), l.BalanceOf(nil, alice).Uint64(), "wrong sender balance")
	assert.Equal(t, uint64(30), l.BalanceOf(nil, bob).Uint64(), "wrong receiver balance")

	err = apply(t, store, func(trx storage.Transaction) error {
		return l.Transfer(trx, bob, alice, uint256.NewInt(31))
	})
	assert.Equal(t, fault.ErrInsufficientFunds, err, "overdraft should fail")
	assert.True(t, fault.IsErrPayment(err), "overdraft is a payment error")
	assert.Equal(t, uint64(30), l.BalanceOf(nil, bob).Uint64(), "balance changed by failed transfer")

	err = apply(t, store, func(trx storage.Transaction) error {
		return l.Transfer(trx, fixtures.Charlie, alice, new(uint256.Int))
	})
	assert.Nil(t, err, "zero transfer should succeed")
}

func TestDepositOverflow(t *testing.T) {
	store, l, ctl := setupLedger(t, 10)
	defer ctl.Finish()
	defer store.Close()

	max := new(uint256.Int).SetAllOne()
	err := apply(t, store, func(trx storage.Transaction) error {
		return l.Deposit(trx, fixtures.Alice, max)
	})
	assert.Nil(t, err, "deposit error")

	err = apply(t, store, func(trx storage.Transaction) error {
		return l.Deposit(trx, fixtures.Alice, uint256.NewInt(1))
	})
	assert.Equal(t, fault.ErrAmountOverflow, err, "deposit should overflow")

	err = apply(t, store, func(trx storage.Transaction) error {
		return l.Deposit(trx, fixtures.Bob, uint256.NewInt(1))
	})
	assert.Nil(t, err, "deposit error")

	err = apply(t, store, func(trx storage.Transaction) error {
		return l.Transfer(trx, fixtures.Bob, fixtures.Alice, uint256.NewInt(1))
	})
	assert.Equal(t, fault.ErrAmountOverflow, err, "transfer should overflow receiver")
}

func TestLocks(t *testing.T) {
	store, l, ctl := setupLedger(t, 10)
	defer ctl.Finish()
	defer store.Close()

	alice := fixtures.Alice
	id1 := currency.NewLockId(1)
	id2 := currency.NewLockId(2)

	err := apply(t, store, func(trx storage.Transaction) error {
		return l.Deposit(trx, alice, uint256.NewInt(100))
	})
	assert.Nil(t, err, "deposit error")

	err = apply(t, store, func(trx storage.Transaction) error {
		return l.CreateLock(trx, id1, alice, uint256.NewInt(200), 20, currency.ReasonAll)
	})
	assert.Equal(t, fault.ErrInsufficientFunds, err, "lock beyond balance should fail")

	err = apply(t, store, func(trx storage.Transaction) error {
		if err := l.CreateLock(trx, id1, alice, uint256.NewInt(60), 20, currency.ReasonAll); nil != err {
			return err
		}
		// expired at height 10
		return l.CreateLock(trx, id2, alice, uint256.NewInt(90), 10, currency.ReasonAll)
	})
	assert.Nil(t, err, "create lock error")

	locks, err := l.LocksOf(nil, alice)
	assert.Nil(t, err, "locks error")
	assert.Equal(t, 2, len(locks), "wrong number of locks")
	assert.Equal(t, id1, locks[0].Id, "wrong lock id")
	assert.Equal(t, uint64(60), locks[0].Amount.Uint64(), "wrong lock amount")
	assert.Equal(t, uint64(20), locks[0].Until, "wrong lock expiry")
	assert.Equal(t, currency.ReasonAll, locks[0].Reasons, "wrong lock reasons")

	// only the unexpired lock of 60 applies
	err = apply(t, store, func(trx storage.Transaction) error {
		return l.Transfer(trx, alice, fixtures.Bob, uint256.NewInt(41))
	})
	assert.Equal(t, fault.ErrInsufficientFunds, err, "transfer of locked funds should fail")

	err = apply(t, store, func(trx storage.Transaction) error {
		return l.Transfer(trx, alice, fixtures.Bob, uint256.NewInt(40))
	})
	assert.Nil(t, err, "transfer of free funds error")

	// extend keeps the larger values
	err = apply(t, store, func(trx storage.Transaction) error {
		return l.ExtendLock(trx, id1, alice, uint256.NewInt(50), 30, currency.ReasonTransfer)
	})
	assert.Nil(t, err, "extend error")
	locks, _ = l.LocksOf(nil, alice)
	assert.Equal(t, uint64(60), locks[0].Amount.Uint64(), "extend lowered amount")
	assert.Equal(t, uint64(30), locks[0].Until, "extend did not raise expiry")

	err = apply(t, store, func(trx storage.Transaction) error {
		return l.RemoveLock(trx, id1, alice)
	})
	assert.Nil(t, err, "remove error")
	err = apply(t, store, func(trx storage.Transaction) error {
		return l.RemoveLock(trx, id2, alice)
	})
	assert.Nil(t, err, "remove error")

	locks, err = l.LocksOf(nil, alice)
	assert.Nil(t, err, "locks error")
	assert.Equal(t, 0, len(locks), "locks remain after removal")
	assert.False(t, store.Pool.Locks.Has(alice.Bytes()), "empty lock record kept")

	err = apply(t, store, func(trx storage.Transaction) error {
		return l.RemoveLock(trx, id1, alice)
	})
	assert.Nil(t, err, "removing a missing lock should succeed")
}

func TestExtendCreates(t *testing.T) {
	store, l, ctl := setupLedger(t, 0)
	defer ctl.Finish()
	defer store.Close()

	err := apply(t, store, func(trx storage.Transaction) error {
		if err := l.Deposit(trx, fixtures.Bob, uint256.NewInt(10)); nil != err {
			return err
		}
		return l.ExtendLock(trx, currency.NewLockId(7), fixtures.Bob, uint256.NewInt(10), 5, currency.ReasonAll)
	})
	assert.Nil(t, err, "extend of missing lock error")

	locks, _ := l.LocksOf(nil, fixtures.Bob)
	assert.Equal(t, 1, len(locks), "extend did not create lock")
	assert.Equal(t, "0000000000000007", locks[0].Id.String(), "wrong lock id")
}
