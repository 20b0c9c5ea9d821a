// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package storm

import (
	"github.com/asdine/storm/v3"
	"github.com/dusk-network/energy-ledger/pkg/core/data/account"
	"github.com/dusk-network/energy-ledger/pkg/core/data/block"
	"github.com/dusk-network/energy-ledger/pkg/core/data/transfer"
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type transaction struct {
	node     storm.Node
	writable bool
	done     bool
}

func (t *transaction) check(write bool) error {
	if write && !t.writable {
		return database.ErrReadOnly
	}

	if t.done {
		return database.ErrClosed
	}

	return nil
}

// tipIndex reads the tip pointer. ok is false on an empty chain.
func (t *transaction) tipIndex() (uint64, bool, error) {
	var index uint64

	err := t.node.Get(MetaBucket, tipKey, &index)
	if err == storm.ErrNotFound {
		var recs []blockRecord
		if err := t.node.All(&recs, storm.Limit(1)); err != nil {
			return 0, false, errors.Wrap(err, "storm blocks")
		}

		if len(recs) > 0 {
			return 0, false, errors.Wrap(database.ErrCorrupted, "tip pointer missing")
		}

		return 0, false, nil
	}

	if err != nil {
		return 0, false, errors.Wrap(err, "storm tip")
	}

	return index, true, nil
}

func (t *transaction) FetchTip() (*block.Block, error) {
	if err := t.check(false); err != nil {
		return nil, err
	}

	index, ok, err := t.tipIndex()
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, database.ErrBlockNotFound
	}

	b, err := t.FetchBlock(index)
	if err == database.ErrBlockNotFound {
		return nil, &database.MissingBlockError{Index: index}
	}

	return b, err
}

func (t *transaction) FetchBlock(index uint64) (*block.Block, error) {
	if err := t.check(false); err != nil {
		return nil, err
	}

	var rec blockRecord
	err := t.node.One("Position", index+1, &rec)
	if err == storm.ErrNotFound {
		return nil, database.ErrBlockNotFound
	}

	if err != nil {
		return nil, err
	}

	return rec.Block, nil
}

func (t *transaction) FetchBlocks() ([]*block.Block, error) {
	if err := t.check(false); err != nil {
		return nil, err
	}

	if _, _, err := t.tipIndex(); err != nil {
		return nil, err
	}

	var recs []blockRecord
	if err := t.node.All(&recs); err != nil {
		return nil, errors.Wrap(err, "storm blocks")
	}

	blocks := make([]*block.Block, len(recs))
	for i := range recs {
		blocks[i] = recs[i].Block
	}

	return blocks, nil
}

func (t *transaction) StoreBlock(b *block.Block) error {
	if err := t.check(true); err != nil {
		return err
	}

	tip, err := t.FetchTip()
	if err == database.ErrBlockNotFound {
		tip, err = nil, nil
	}

	if err != nil {
		return err
	}

	if err := database.CheckExtends(tip, b); err != nil {
		return err
	}

	if _, err := t.FetchBlock(b.Index); err == nil {
		return errors.Wrapf(database.ErrAppendConflict, "block %d already stored", b.Index)
	} else if err != database.ErrBlockNotFound {
		return err
	}

	if err := t.node.Save(&blockRecord{Position: b.Index + 1, Block: b}); err != nil {
		return err
	}

	return t.node.Set(MetaBucket, tipKey, b.Index)
}

func (t *transaction) FetchAccount(id string) (*account.Account, error) {
	if err := t.check(false); err != nil {
		return nil, err
	}

	var rec accountRecord
	err := t.node.One("ID", id, &rec)
	if err == storm.ErrNotFound {
		return nil, database.ErrAccountNotFound
	}

	if err != nil {
		return nil, err
	}

	return rec.Account, nil
}

func (t *transaction) StoreAccount(a *account.Account) error {
	if err := t.check(true); err != nil {
		return err
	}

	return t.node.Save(&accountRecord{ID: a.ID, Account: a})
}

func (t *transaction) FetchTransfer(id uuid.UUID) (*transfer.Record, error) {
	if err := t.check(false); err != nil {
		return nil, err
	}

	var rec transferRecord
	err := t.node.One("TransferID", id.String(), &rec)
	if err == storm.ErrNotFound {
		return nil, database.ErrTransferNotFound
	}

	if err != nil {
		return nil, err
	}

	return rec.Record, nil
}

func (t *transaction) FetchTransfers() ([]*transfer.Record, error) {
	if err := t.check(false); err != nil {
		return nil, err
	}

	var recs []transferRecord
	if err := t.node.All(&recs); err != nil {
		return nil, errors.Wrap(err, "storm transfers")
	}

	records := make([]*transfer.Record, len(recs))
	for i := range recs {
		records[i] = recs[i].Record
	}

	return records, nil
}

func (t *transaction) StoreTransfer(r *transfer.Record) error {
	if err := t.check(true); err != nil {
		return err
	}

	err := t.node.Save(&transferRecord{TransferID: r.ID.String(), Record: r})
	if err == storm.ErrAlreadyExists {
		return database.ErrTransferExists
	}

	return err
}

func (t *transaction) Commit() error {
	if err := t.check(true); err != nil {
		return err
	}

	t.done = true
	if err := t.node.Commit(); err != nil {
		return errors.Wrap(err, "storm commit")
	}

	return nil
}

func (t *transaction) Rollback() error {
	if t.done {
		return nil
	}

	t.done = true
	return t.node.Rollback()
}

// Close rolls back an unfinished transaction, which also ends a read-only
// bbolt transaction.
func (t *transaction) Close() {
	if err := t.Rollback(); err != nil {
		log.WithError(err).Warn("rollback on close failed")
	}
}
