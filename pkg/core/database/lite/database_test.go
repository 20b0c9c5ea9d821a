// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package lite

import (
	"strconv"
	"testing"

	"github.com/dusk-network/energy-ledger/pkg/core/chain"
	"github.com/dusk-network/energy-ledger/pkg/core/data/block"
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/dusk-network/energy-ledger/pkg/core/database/utils"
	"github.com/pkg/errors"
	assert "github.com/stretchr/testify/require"
)

func storedChain(t *testing.T, count int) (*DB, *chain.Chain) {
	db, err := NewDatabase("", false)
	assert.NoError(t, err)

	c := chain.New(db)
	_, err = c.CreateGenesisBlock()
	assert.NoError(t, err)

	for i := 1; i < count; i++ {
		_, err = c.AppendBlock(block.Payload{"seq": strconv.Itoa(i)})
		assert.NoError(t, err)
	}

	return db, c
}

func (db *DB) remove(key []byte) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.storage, string(key))
}

func TestDeletedTipBlock(t *testing.T) {
	assert := assert.New(t)
	db, c := storedChain(t, 5)

	genesis, err := c.Block(0)
	assert.NoError(err)

	db.remove(utils.BlockKey(4))

	r, err := c.ValidateChain()
	assert.NoError(err)
	assert.False(r.Valid)
	assert.Equal(uint64(4), r.FailedIndex)
	assert.Equal(chain.ReasonMissingBlock, r.Reason)

	_, err = c.AppendBlock(block.Payload{"k": "v"})
	assert.True(errors.Is(err, database.ErrCorrupted))

	after, err := c.Block(0)
	assert.NoError(err)
	assert.True(after.Equals(genesis))

	all, err := c.Blocks()
	assert.NoError(err)
	assert.Len(all, 4)
}

func TestDeletedMiddleBlock(t *testing.T) {
	assert := assert.New(t)
	db, c := storedChain(t, 5)

	db.remove(utils.BlockKey(2))

	r, err := c.ValidateChain()
	assert.NoError(err)
	assert.False(r.Valid)
	assert.Equal(uint64(2), r.FailedIndex)
	assert.Equal(chain.ReasonMissingBlock, r.Reason)
}

func TestLostTipPointer(t *testing.T) {
	assert := assert.New(t)
	db, c := storedChain(t, 3)

	db.remove(utils.TipKey)

	r, err := c.ValidateChain()
	assert.NoError(err)
	assert.False(r.Valid)
	assert.Equal(chain.ReasonMissingTip, r.Reason)

	_, err = c.CreateGenesisBlock()
	assert.True(errors.Is(err, database.ErrCorrupted))
}
