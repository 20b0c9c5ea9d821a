// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package contract

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrSameAccount is returned when sender and receiver are the same
	// account.
	ErrSameAccount = errors.New("contract: sender and receiver are the same account")
	// ErrNonPositiveQuantity is returned for a zero or negative quantity.
	ErrNonPositiveQuantity = errors.New("contract: quantity must be positive")
	// ErrNonPositiveRate is returned for a zero or negative rate.
	ErrNonPositiveRate = errors.New("contract: rate must be positive")
	// ErrAlreadySettled is returned when executing a committed or rejected
	// contract.
	ErrAlreadySettled = errors.New("contract: already settled")
	// ErrAccountExists is returned when opening an account twice.
	ErrAccountExists = errors.New("contract: account already exists")
	// ErrNegativeBalance is returned when opening an account with a
	// negative balance.
	ErrNegativeBalance = errors.New("contract: opening balance is negative")
)

// InsufficientBalanceError is returned when the sender cannot cover the
// total cost of a transfer.
type InsufficientBalanceError struct {
	Account  string
	Balance  decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("contract: account %s has balance %s, %s required", e.Account, e.Balance, e.Required)
}
