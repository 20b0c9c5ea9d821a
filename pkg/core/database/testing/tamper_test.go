// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package test

import (
	"path/filepath"
	"testing"

	stormdb "github.com/asdine/storm/v3"
	pebbledb "github.com/cockroachdb/pebble"
	"github.com/dusk-network/energy-ledger/pkg/core/chain"
	"github.com/dusk-network/energy-ledger/pkg/core/data/block"
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/dusk-network/energy-ledger/pkg/core/database/bunt"
	"github.com/dusk-network/energy-ledger/pkg/core/database/heavy"
	"github.com/dusk-network/energy-ledger/pkg/core/database/pebble"
	"github.com/dusk-network/energy-ledger/pkg/core/database/storm"
	"github.com/dusk-network/energy-ledger/pkg/core/database/utils"
	"github.com/dusk-network/energy-ledger/pkg/core/tests/helper"
	"github.com/pkg/errors"
	assert "github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/tidwall/buntdb"
)

// deleteBlock removes the block at index straight from the storage files of
// a closed database. The in-memory driver is covered in its own package.
var deleteBlock = map[string]func(t *testing.T, dir string, index uint64){
	heavy.DriverName: func(t *testing.T, dir string, index uint64) {
		ldb, err := leveldb.OpenFile(dir, nil)
		assert.NoError(t, err)
		assert.NoError(t, ldb.Delete(utils.BlockKey(index), nil))
		assert.NoError(t, ldb.Close())
	},
	bunt.DriverName: func(t *testing.T, dir string, index uint64) {
		bdb, err := buntdb.Open(filepath.Join(dir, bunt.FileName))
		assert.NoError(t, err)
		assert.NoError(t, bdb.Update(func(tx *buntdb.Tx) error {
			_, err := tx.Delete(string(utils.BlockKey(index)))
			return err
		}))
		assert.NoError(t, bdb.Close())
	},
	pebble.DriverName: func(t *testing.T, dir string, index uint64) {
		pdb, err := pebbledb.Open(dir, &pebbledb.Options{})
		assert.NoError(t, err)
		assert.NoError(t, pdb.Delete(utils.BlockKey(index), pebbledb.Sync))
		assert.NoError(t, pdb.Close())
	},
	storm.DriverName: func(t *testing.T, dir string, index uint64) {
		sdb, err := stormdb.Open(filepath.Join(dir, storm.FileName))
		assert.NoError(t, err)
		assert.NoError(t, sdb.Delete(storm.BlockBucket, index+1))
		assert.NoError(t, sdb.Close())
	},
}

// tampered stores a five block chain, deletes the block at index behind the
// driver's back and hands the reopened database to fn.
func tampered(t *testing.T, index uint64, fn func(t *testing.T, db database.DB, blocks []*block.Block)) {
	for _, name := range database.Drivers() {
		del, ok := deleteBlock[name]
		if !ok {
			continue
		}

		name := name
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "db")
			blocks := helper.LinkedBlocks(t, 5)

			drvr, err := database.From(name)
			assert.NoError(t, err)

			db, err := drvr.Open(dir, false)
			assert.NoError(t, err)
			storeBlocks(t, db, blocks)
			assert.NoError(t, db.Close())

			del(t, dir, index)

			db, err = drvr.Open(dir, false)
			assert.NoError(t, err)
			defer db.Close()

			fn(t, db, blocks)
		})
	}
}

func TestDeletedTipBlock(t *testing.T) {
	tampered(t, 4, func(t *testing.T, db database.DB, blocks []*block.Block) {
		assert := assert.New(t)
		c := chain.New(db)

		r, err := c.ValidateChain()
		assert.NoError(err)
		assert.False(r.Valid)
		assert.Equal(uint64(4), r.FailedIndex)
		assert.Equal(chain.ReasonMissingBlock, r.Reason)

		_, err = c.Tip()
		var missing *database.MissingBlockError
		assert.True(errors.As(err, &missing))
		assert.Equal(uint64(4), missing.Index)

		// The chain is not mistaken for an empty one.
		_, err = c.CreateGenesisBlock()
		assert.True(errors.Is(err, database.ErrCorrupted))

		_, err = c.AppendBlock(helper.RandomPayload(t))
		assert.True(errors.Is(err, database.ErrCorrupted))

		all, err := c.Blocks()
		assert.NoError(err)
		assert.Len(all, 4)
		assert.True(all[0].Equals(blocks[0]))
		assert.True(all[3].Equals(blocks[3]))
	})
}

func TestDeletedMiddleBlock(t *testing.T) {
	tampered(t, 2, func(t *testing.T, db database.DB, blocks []*block.Block) {
		assert := assert.New(t)
		c := chain.New(db)

		r, err := c.ValidateChain()
		assert.NoError(err)
		assert.False(r.Valid)
		assert.Equal(uint64(4), r.Length)
		assert.Equal(uint64(2), r.FailedIndex)
		assert.Equal(chain.ReasonMissingBlock, r.Reason)

		_, err = c.Block(2)
		assert.Equal(database.ErrBlockNotFound, err)

		tip, err := c.Tip()
		assert.NoError(err)
		assert.True(tip.Equals(blocks[4]))
	})
}
