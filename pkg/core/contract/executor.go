// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package contract

import (
	"time"

	"github.com/dusk-network/energy-ledger/pkg/core/chain"
	"github.com/dusk-network/energy-ledger/pkg/core/data/account"
	"github.com/dusk-network/energy-ledger/pkg/core/data/transfer"
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

var log = logger.WithFields(logger.Fields{"process": "contract"})

// Executor settles contracts. Each settlement mutates both accounts, stores
// the transfer record and appends its block in a single transaction.
type Executor struct {
	db    database.DB
	chain *chain.Chain
	now   func() time.Time
}

// NewExecutor returns an Executor appending to c. c must be backed by db.
func NewExecutor(db database.DB, c *chain.Chain) *Executor {
	return &Executor{db: db, chain: c, now: time.Now}
}

// Validate runs Contract.Validate against the committed state.
func (e *Executor) Validate(c *Contract) error {
	return e.db.View(func(t database.Transaction) error {
		return c.Validate(t)
	})
}

// Execute validates and commits c. Errors are returned unmodified and leave
// no trace in storage. A contract failing validation becomes Rejected. On a
// storage fault it is left Pending and Execute may be retried.
func (e *Executor) Execute(c *Contract) (*transfer.Record, error) {
	if c.settled() {
		return nil, ErrAlreadySettled
	}

	var rec *transfer.Record

	err := e.db.Update(func(t database.Transaction) error {
		sender, receiver, err := c.validate(t)
		if err != nil {
			return err
		}

		sender.Debit(c.totalCost, c.Quantity)
		receiver.Credit(c.totalCost, c.Quantity)

		if err := t.StoreAccount(sender); err != nil {
			return err
		}

		if err := t.StoreAccount(receiver); err != nil {
			return err
		}

		rec = transfer.New(c.Sender, c.Receiver, c.Quantity, c.Rate, c.totalCost, e.now())

		b, err := e.chain.AppendBlockTx(t, rec.Payload())
		if err != nil {
			return err
		}

		rec.BlockIndex = b.Index
		rec.BlockHash = b.Hash

		return t.StoreTransfer(rec)
	})

	l := log.WithFields(logger.Fields{
		"sender":     c.Sender,
		"receiver":   c.Receiver,
		"quantity":   c.Quantity.String(),
		"total_cost": c.totalCost.String(),
	})

	if err != nil {
		if c.state != Rejected {
			c.state = Pending
		}

		l.WithError(err).Warn("transfer not executed")
		return nil, err
	}

	c.state = Committed
	l.WithFields(logger.Fields{
		"transfer_id": rec.ID,
		"block":       rec.BlockIndex,
	}).Info("transfer committed")

	return rec, nil
}

// OpenAccount creates an account with an opening balance.
func (e *Executor) OpenAccount(id string, balance decimal.Decimal) (*account.Account, error) {
	return OpenAccount(e.db, id, balance)
}

// OpenAccount creates an account with an opening balance in db.
func OpenAccount(db database.DB, id string, balance decimal.Decimal) (*account.Account, error) {
	if balance.IsNegative() {
		return nil, ErrNegativeBalance
	}

	a := account.New(id, balance)

	err := db.Update(func(t database.Transaction) error {
		_, err := t.FetchAccount(id)
		if err == nil {
			return ErrAccountExists
		}

		if err != database.ErrAccountNotFound {
			return err
		}

		return t.StoreAccount(a)
	})
	if err != nil {
		return nil, err
	}

	log.WithField("account", id).Debug("account opened")
	return a, nil
}

// Account returns the committed state of account id.
func (e *Executor) Account(id string) (*account.Account, error) {
	var a *account.Account

	err := e.db.View(func(t database.Transaction) error {
		var err error
		a, err = t.FetchAccount(id)
		return err
	})

	return a, err
}

// Transfer returns the transfer record id.
func (e *Executor) Transfer(id uuid.UUID) (*transfer.Record, error) {
	var rec *transfer.Record

	err := e.db.View(func(t database.Transaction) error {
		var err error
		rec, err = t.FetchTransfer(id)
		return err
	})

	return rec, err
}

// Transfers returns all transfer records in commit order.
func (e *Executor) Transfers() ([]*transfer.Record, error) {
	var records []*transfer.Record

	err := e.db.View(func(t database.Transaction) error {
		var err error
		records, err = t.FetchTransfers()
		return err
	})

	return records, err
}
