// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package chain

import (
	"testing"
	"time"

	"github.com/dusk-network/energy-ledger/pkg/core/data/block"
	"github.com/dusk-network/energy-ledger/pkg/core/tests/helper"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func copyBlocks(blocks []*block.Block) []*block.Block {
	c := make([]*block.Block, len(blocks))
	for i, b := range blocks {
		c[i] = b.Copy()
	}

	return c
}

func TestValidateTrivialChains(t *testing.T) {
	assert.True(t, ValidateBlocks(nil).Valid)
	assert.True(t, ValidateBlocks(helper.LinkedBlocks(t, 1)).Valid)
	assert.True(t, ValidateBlocks(helper.LinkedBlocks(t, 5)).Valid)
}

func TestTamperDetection(t *testing.T) {
	blocks := helper.LinkedBlocks(t, 6)

	tests := []struct {
		name   string
		tamper func(b *block.Block)
	}{
		{"payload", func(b *block.Block) { b.Payload["memo"] = "forged" }},
		{"added payload key", func(b *block.Block) { b.Payload["extra"] = "1" }},
		{"timestamp", func(b *block.Block) { b.Timestamp = b.Timestamp.Add(time.Nanosecond) }},
		{"index", func(b *block.Block) { b.Index++ }},
		{"previous hash", func(b *block.Block) { b.PrevHash = block.GenesisPrevHash }},
		{"stored hash", func(b *block.Block) { b.Hash = block.GenesisPrevHash }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			for i := 1; i < len(blocks); i++ {
				tampered := copyBlocks(blocks)
				tt.tamper(tampered[i])

				r := ValidateBlocks(tampered)
				assert.False(t, r.Valid)
				assert.Equal(t, uint64(i), r.FailedIndex)
			}
		})
	}

	// The originals are untouched.
	assert.True(t, ValidateBlocks(blocks).Valid)
}

func TestRecomputedHashStillBreaksLink(t *testing.T) {
	blocks := copyBlocks(helper.LinkedBlocks(t, 4))

	// Forge block 2 and reseal it. Block 3 still points at the old hash.
	blocks[2].Payload["memo"] = "forged"
	blocks[2].Hash = blocks[2].CalculateHash()

	r := ValidateBlocks(blocks)
	assert.False(t, r.Valid)
	assert.Equal(t, uint64(3), r.FailedIndex)
	assert.Equal(t, ReasonBrokenLink, r.Reason)
}

func TestReorderAndDeletion(t *testing.T) {
	blocks := helper.LinkedBlocks(t, 5)

	swapped := copyBlocks(blocks)
	swapped[2], swapped[3] = swapped[3], swapped[2]

	r := ValidateBlocks(swapped)
	assert.False(t, r.Valid)
	assert.Equal(t, uint64(2), r.FailedIndex)
	assert.Equal(t, ReasonIndexMismatch, r.Reason)

	deleted := append(copyBlocks(blocks[:2]), copyBlocks(blocks[3:])...)
	r = ValidateBlocks(deleted)
	assert.False(t, r.Valid)
	assert.Equal(t, uint64(2), r.FailedIndex)
	assert.Equal(t, ReasonMissingBlock, r.Reason)

	// Renumbering after a deletion still fails on the link.
	deleted[2].Index = 2
	deleted[2].Hash = deleted[2].CalculateHash()
	r = ValidateBlocks(deleted)
	assert.False(t, r.Valid)
	assert.Equal(t, ReasonBrokenLink, r.Reason)
}

func TestBadGenesis(t *testing.T) {
	blocks := copyBlocks(helper.LinkedBlocks(t, 2))

	blocks[0].PrevHash = blocks[1].Hash
	blocks[0].Hash = blocks[0].CalculateHash()

	r := ValidateBlocks(blocks)
	assert.False(t, r.Valid)
	assert.Equal(t, uint64(0), r.FailedIndex)
	assert.Equal(t, ReasonBadGenesis, r.Reason)
}

func TestReportErr(t *testing.T) {
	r := Report{Length: 3, FailedIndex: 2, Reason: ReasonHashMismatch}

	var ierr *IntegrityError
	assert.True(t, errors.As(r.Err(), &ierr))
	assert.Equal(t, uint64(2), ierr.Index)
	assert.Equal(t, "chain integrity: block 2: hash mismatch", ierr.Error())

	assert.NoError(t, Report{Valid: true}.Err())
}
