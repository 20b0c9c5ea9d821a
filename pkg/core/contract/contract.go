// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package contract

import (
	"github.com/dusk-network/energy-ledger/pkg/core/data/account"
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// State of a Contract. Committed and Rejected are final.
type State uint8

// Contract states.
const (
	Pending State = iota
	Validated
	Committed
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Validated:
		return "validated"
	case Committed:
		return "committed"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Contract is a proposed transfer of Quantity energy units from Sender to
// Receiver at Rate tokens per unit.
type Contract struct {
	Sender   string
	Receiver string
	Quantity decimal.Decimal
	Rate     decimal.Decimal

	totalCost decimal.Decimal
	state     State
}

// New creates a Pending contract. The total cost is fixed here.
func New(sender, receiver string, quantity, rate decimal.Decimal) (*Contract, error) {
	if !quantity.IsPositive() {
		return nil, ErrNonPositiveQuantity
	}

	if !rate.IsPositive() {
		return nil, ErrNonPositiveRate
	}

	return &Contract{
		Sender:    sender,
		Receiver:  receiver,
		Quantity:  quantity,
		Rate:      rate,
		totalCost: quantity.Mul(rate),
		state:     Pending,
	}, nil
}

// TotalCost is Quantity times Rate.
func (c *Contract) TotalCost() decimal.Decimal {
	return c.totalCost
}

// State returns the current state.
func (c *Contract) State() State {
	return c.state
}

func (c *Contract) settled() bool {
	return c.state == Committed || c.state == Rejected
}

// Validate checks the contract against the accounts seen by t. A failed
// validation rejects the contract.
func (c *Contract) Validate(t database.Transaction) error {
	_, _, err := c.validate(t)
	return err
}

func (c *Contract) validate(t database.Transaction) (*account.Account, *account.Account, error) {
	if c.settled() {
		return nil, nil, ErrAlreadySettled
	}

	sender, receiver, err := c.load(t)
	if err != nil {
		// Missing accounts reject the contract, storage faults do not.
		if errors.Is(err, database.ErrAccountNotFound) || err == ErrSameAccount {
			c.state = Rejected
		}

		return nil, nil, err
	}

	if !sender.CanAfford(c.totalCost) {
		c.state = Rejected
		return nil, nil, &InsufficientBalanceError{
			Account:  sender.ID,
			Balance:  sender.Balance,
			Required: c.totalCost,
		}
	}

	c.state = Validated
	return sender, receiver, nil
}

func (c *Contract) load(t database.Transaction) (*account.Account, *account.Account, error) {
	if c.Sender == c.Receiver {
		return nil, nil, ErrSameAccount
	}

	sender, err := t.FetchAccount(c.Sender)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "sender %s", c.Sender)
	}

	receiver, err := t.FetchAccount(c.Receiver)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "receiver %s", c.Receiver)
	}

	return sender, receiver, nil
}
