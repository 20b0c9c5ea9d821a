// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is the persisted event of one committed transfer. It points at the
// block that carries its payload.
type Record struct {
	ID         uuid.UUID       `json:"id"`
	Sender     string          `json:"sender"`
	Receiver   string          `json:"receiver"`
	Quantity   decimal.Decimal `json:"energy_units"`
	Rate       decimal.Decimal `json:"rate_per_unit"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Timestamp  time.Time       `json:"timestamp"`
	BlockIndex uint64          `json:"block_index"`
	BlockHash  string          `json:"block_hash"`
}

// New creates a Record with a fresh random identifier. The block link is
// filled in once the block is appended.
func New(sender, receiver string, quantity, rate, totalCost decimal.Decimal, ts time.Time) *Record {
	return &Record{
		ID:        uuid.New(),
		Sender:    sender,
		Receiver:  receiver,
		Quantity:  quantity,
		Rate:      rate,
		TotalCost: totalCost,
		Timestamp: ts.UTC().Round(0),
	}
}

// Copy returns a copy of the Record.
func (r *Record) Copy() *Record {
	c := *r
	return &c
}
