// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package contract

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ParseAmount parses a decimal amount with exact precision. Amounts never
// go through a float.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("empty amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid amount %q", s)
	}

	return d, nil
}
