// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package account

import (
	"github.com/shopspring/decimal"
)

// Account holds a fungible energy token balance and the aggregate energy
// units it has transferred out and in. The counters only ever grow.
type Account struct {
	ID                  string          `json:"id"`
	Balance             decimal.Decimal `json:"energy_tokens"`
	TotalTransferredOut decimal.Decimal `json:"total_energy_sold"`
	TotalTransferredIn  decimal.Decimal `json:"total_energy_bought"`
}

// New creates an account with an opening balance and zeroed counters.
func New(id string, balance decimal.Decimal) *Account {
	return &Account{
		ID:                  id,
		Balance:             balance,
		TotalTransferredOut: decimal.Zero,
		TotalTransferredIn:  decimal.Zero,
	}
}

// Copy returns a copy of the account. decimal.Decimal values are immutable,
// so a shallow copy is enough.
func (a *Account) Copy() *Account {
	c := *a
	return &c
}

// Debit takes cost tokens from the balance and records quantity units as
// transferred out.
func (a *Account) Debit(cost, quantity decimal.Decimal) {
	a.Balance = a.Balance.Sub(cost)
	a.TotalTransferredOut = a.TotalTransferredOut.Add(quantity)
}

// Credit adds cost tokens to the balance and records quantity units as
// transferred in.
func (a *Account) Credit(cost, quantity decimal.Decimal) {
	a.Balance = a.Balance.Add(cost)
	a.TotalTransferredIn = a.TotalTransferredIn.Add(quantity)
}

// CanAfford reports whether the balance covers cost.
func (a *Account) CanAfford(cost decimal.Decimal) bool {
	return !a.Balance.LessThan(cost)
}
