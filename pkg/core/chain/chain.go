// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package chain

import (
	"time"

	"github.com/dusk-network/energy-ledger/pkg/core/data/block"
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

var log = logger.WithFields(logger.Fields{"process": "chain"})

// ErrDoubleGenesis is returned when a genesis block is requested on a chain
// which already has one.
var ErrDoubleGenesis = errors.New("chain: genesis block already exists")

// Option configures a Chain.
type Option func(*Chain)

// WithClock sets the time source used to stamp new blocks.
func WithClock(now func() time.Time) Option {
	return func(c *Chain) {
		c.now = now
	}
}

// Chain is the hash-linked block ledger. It keeps no state of its own: the
// tip is read from storage inside the write transaction on every append.
type Chain struct {
	db  database.DB
	now func() time.Time
}

// New returns a Chain backed by db.
func New(db database.DB, opts ...Option) *Chain {
	c := &Chain{db: db, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CreateGenesisBlock stores the genesis block of an empty chain. On a
// non-empty chain it fails with ErrDoubleGenesis and stores nothing.
func (c *Chain) CreateGenesisBlock() (*block.Block, error) {
	var genesis *block.Block

	err := c.db.Update(func(t database.Transaction) error {
		_, err := t.FetchTip()
		if err == nil {
			return ErrDoubleGenesis
		}

		if err != database.ErrBlockNotFound {
			return err
		}

		genesis, err = c.storeGenesis(t)
		return err
	})
	if err != nil {
		return nil, err
	}

	return genesis, nil
}

func (c *Chain) storeGenesis(t database.Transaction) (*block.Block, error) {
	genesis := block.NewGenesisBlock(c.now())
	if err := t.StoreBlock(genesis); err != nil {
		return nil, err
	}

	log.WithField("hash", genesis.Hash).Info("genesis block created")
	return genesis, nil
}

// AppendBlock appends a block carrying payload on top of the current tip in
// its own transaction. On an empty chain the genesis block is created first.
func (c *Chain) AppendBlock(payload block.Payload) (*block.Block, error) {
	var b *block.Block

	err := c.db.Update(func(t database.Transaction) error {
		var err error
		b, err = c.AppendBlockTx(t, payload)
		return err
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}

// AppendBlockTx is AppendBlock within a transaction owned by the caller. The
// block is persisted only if the caller's transaction commits.
func (c *Chain) AppendBlockTx(t database.Transaction, payload block.Payload) (*block.Block, error) {
	tip, err := t.FetchTip()
	if err == database.ErrBlockNotFound {
		tip, err = c.storeGenesis(t)
	}

	if err != nil {
		return nil, err
	}

	ts := c.now()
	if ts.Before(tip.Timestamp) {
		log.WithFields(logger.Fields{
			"tip":        tip.Index,
			"tip_time":   tip.Timestamp,
			"block_time": ts,
		}).Warn("clock is behind the chain tip")
	}

	b := block.NewBlock(tip.Index+1, ts, payload, tip.Hash)
	if err := t.StoreBlock(b); err != nil {
		log.WithError(err).WithField("index", b.Index).Error("block storing failed")
		return nil, err
	}

	log.WithFields(logger.Fields{
		"index": b.Index,
		"hash":  b.Hash,
	}).Debug("block appended")

	return b, nil
}

// Tip returns the block with the highest index, or database.ErrBlockNotFound
// on an empty chain.
func (c *Chain) Tip() (*block.Block, error) {
	var tip *block.Block

	err := c.db.View(func(t database.Transaction) error {
		var err error
		tip, err = t.FetchTip()
		return err
	})

	return tip, err
}

// Block returns the block at index.
func (c *Chain) Block(index uint64) (*block.Block, error) {
	var b *block.Block

	err := c.db.View(func(t database.Transaction) error {
		var err error
		b, err = t.FetchBlock(index)
		return err
	})

	return b, err
}

// Blocks returns the whole chain ordered by index.
func (c *Chain) Blocks() ([]*block.Block, error) {
	var blocks []*block.Block

	err := c.db.View(func(t database.Transaction) error {
		var err error
		blocks, err = t.FetchBlocks()
		return err
	})

	return blocks, err
}
