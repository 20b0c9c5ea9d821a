// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package transfer

import (
	"time"

	"github.com/dusk-network/energy-ledger/pkg/core/data/block"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Payload keys of a transfer block.
const (
	KeyID        = "transfer_id"
	KeySender    = "sender"
	KeyReceiver  = "receiver"
	KeyQuantity  = "energy_units"
	KeyRate      = "rate_per_unit"
	KeyTotalCost = "total_cost"
	KeyTimestamp = "timestamp"
)

// ErrNotTransfer is returned when decoding a payload which lacks one of the
// transfer keys, such as the genesis payload.
var ErrNotTransfer = errors.New("payload does not describe a transfer")

// Payload renders the Record as the block payload. Amounts use their exact
// decimal string form.
func (r *Record) Payload() block.Payload {
	return block.Payload{
		KeyID:        r.ID.String(),
		KeySender:    r.Sender,
		KeyReceiver:  r.Receiver,
		KeyQuantity:  r.Quantity.String(),
		KeyRate:      r.Rate.String(),
		KeyTotalCost: r.TotalCost.String(),
		KeyTimestamp: r.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

// Summary is the transfer as recovered from a block payload.
type Summary struct {
	ID        uuid.UUID
	Sender    string
	Receiver  string
	Quantity  decimal.Decimal
	Rate      decimal.Decimal
	TotalCost decimal.Decimal
	Timestamp time.Time
}

// DecodePayload parses a transfer block payload back into a Summary.
func DecodePayload(p block.Payload) (*Summary, error) {
	for _, k := range []string{KeyID, KeySender, KeyReceiver, KeyQuantity, KeyRate, KeyTotalCost, KeyTimestamp} {
		if _, ok := p[k]; !ok {
			return nil, errors.Wrapf(ErrNotTransfer, "missing %q", k)
		}
	}

	s := &Summary{
		Sender:   p[KeySender],
		Receiver: p[KeyReceiver],
	}

	var err error
	if s.ID, err = uuid.Parse(p[KeyID]); err != nil {
		return nil, errors.Wrap(err, "transfer id")
	}

	if s.Quantity, err = decimal.NewFromString(p[KeyQuantity]); err != nil {
		return nil, errors.Wrap(err, "energy units")
	}

	if s.Rate, err = decimal.NewFromString(p[KeyRate]); err != nil {
		return nil, errors.Wrap(err, "rate per unit")
	}

	if s.TotalCost, err = decimal.NewFromString(p[KeyTotalCost]); err != nil {
		return nil, errors.Wrap(err, "total cost")
	}

	if s.Timestamp, err = time.Parse(time.RFC3339Nano, p[KeyTimestamp]); err != nil {
		return nil, errors.Wrap(err, "timestamp")
	}

	return s, nil
}

// Matches reports whether the Summary describes the given Record.
func (s *Summary) Matches(r *Record) bool {
	return s.ID == r.ID &&
		s.Sender == r.Sender &&
		s.Receiver == r.Receiver &&
		s.Quantity.Equal(r.Quantity) &&
		s.Rate.Equal(r.Rate) &&
		s.TotalCost.Equal(r.TotalCost) &&
		s.Timestamp.Equal(r.Timestamp)
}
