// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package helper

import (
	"testing"
	"time"

	"github.com/dusk-network/energy-ledger/pkg/core/data/block"
)

// RandomPayload returns a payload with a few random entries.
func RandomPayload(t *testing.T) block.Payload {
	return block.Payload{
		"sender":   RandomString(t, 4),
		"receiver": RandomString(t, 4),
		"memo":     RandomString(t, 16),
	}
}

// LinkedBlocks returns a valid chain of count blocks, genesis included. Each
// block is one second after its predecessor.
func LinkedBlocks(t *testing.T, count int) []*block.Block {
	if count == 0 {
		return []*block.Block{}
	}

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	blocks := []*block.Block{block.NewGenesisBlock(ts)}

	for i := 1; i < count; i++ {
		prev := blocks[i-1]
		ts = ts.Add(time.Second)
		blocks = append(blocks, block.NewBlock(prev.Index+1, ts, RandomPayload(t), prev.Hash))
	}

	return blocks
}
