// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis - initial balances of a new ledger
package genesis

import (
	"github.com/bitmark-inc/logger"
	"github.com/holiman/uint256"

	"github.com/kaonone/akropolis-c2fc-srml/account"
	"github.com/kaonone/akropolis-c2fc-srml/fault"
	"github.com/kaonone/akropolis-c2fc-srml/storage"
)

var genesisKey = []byte("genesis")

// Endowment - funds given to an account before the first block
type Endowment struct {
	Account string `gluamapper:"account" json:"account"`
	Amount  string `gluamapper:"amount" json:"amount"`
}

// Depositor - creates funds
type Depositor interface {
	Deposit(trx storage.Transaction, who account.Account, amount *uint256.Int) error
}

// Endow - deposit the endowments once for the life of the database
//
// returns false if the database was already endowed
func Endow(log *logger.L, store *storage.Store, depositor Depositor, endowments []Endowment) (bool, error) {
	if store.Pool.Counters.Has(genesisKey) {
		log.Info("genesis already applied")
		return false, nil
	}

	trx, err := store.Begin()
	if nil != err {
		return false, err
	}

	total := new(uint256.Int)
	for _, e := range endowments {
		who, err := account.FromBase58(e.Account)
		if nil != err {
			trx.Abort()
			log.Errorf("endowment account: %q  error: %s", e.Account, err)
			return false, err
		}
		amount, err := uint256.FromDecimal(e.Amount)
		if nil != err {
			trx.Abort()
			log.Errorf("endowment account: %s  amount: %q  error: %s", who, e.Amount, err)
			return false, fault.ErrInvalidAmount
		}
		if err := depositor.Deposit(trx, who, amount); nil != err {
			trx.Abort()
			return false, err
		}
		if _, overflow := total.AddOverflow(total, amount); overflow {
			trx.Abort()
			return false, fault.ErrAmountOverflow
		}
		log.Infof("endowment: %s  amount: %s", who, amount.Dec())
	}

	trx.PutN(store.Pool.Counters, genesisKey, uint64(len(endowments)))

	err = trx.Commit()
	if nil != err {
		return false, err
	}

	log.Infof("genesis accounts: %d  total: %s", len(endowments), total.Dec())
	return true, nil
}
