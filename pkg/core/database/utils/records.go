// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package utils

import (
	"encoding/json"

	"github.com/dusk-network/energy-ledger/pkg/core/data/account"
	"github.com/dusk-network/energy-ledger/pkg/core/data/block"
	"github.com/dusk-network/energy-ledger/pkg/core/data/transfer"
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrKeyNotFound must be returned by KV.Get for a missing key.
var ErrKeyNotFound = errors.New("key not found")

// KV is the minimal key/value view of a driver transaction. Get must observe
// the writes previously Put through the same KV.
type KV interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
}

// Records implements the record methods of database.Transaction on top of a
// KV. Drivers embed it and provide Commit, Rollback and Close.
type Records struct {
	KV KV
}

func (r Records) get(key []byte, v interface{}, notFound error) error {
	value, err := r.KV.Get(key)
	if err == ErrKeyNotFound {
		return notFound
	}

	if err != nil {
		return err
	}

	return json.Unmarshal(value, v)
}

func (r Records) put(key []byte, v interface{}) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return r.KV.Put(key, value)
}

func (r Records) count(key []byte) (uint64, error) {
	value, err := r.KV.Get(key)
	if err == ErrKeyNotFound {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	return BytesToUint64(value)
}

// tipIndex reads the tip pointer. ok is false on an empty chain.
func (r Records) tipIndex() (uint64, bool, error) {
	value, err := r.KV.Get(TipKey)
	if err == ErrKeyNotFound {
		// A stored genesis without a tip pointer means the pointer was lost.
		_, gerr := r.KV.Get(BlockKey(0))
		if gerr == nil {
			return 0, false, errors.Wrap(database.ErrCorrupted, "tip pointer missing")
		}

		if gerr != ErrKeyNotFound {
			return 0, false, gerr
		}

		return 0, false, nil
	}

	if err != nil {
		return 0, false, err
	}

	index, err := BytesToUint64(value)
	if err != nil {
		return 0, false, errors.Wrap(err, "tip")
	}

	return index, true, nil
}

// FetchTip returns the latest block or database.ErrBlockNotFound on an empty
// chain. A tip pointer to a missing block yields *database.MissingBlockError.
func (r Records) FetchTip() (*block.Block, error) {
	index, ok, err := r.tipIndex()
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, database.ErrBlockNotFound
	}

	b, err := r.FetchBlock(index)
	if err == database.ErrBlockNotFound {
		return nil, &database.MissingBlockError{Index: index}
	}

	return b, err
}

// FetchBlock returns the block stored at index.
func (r Records) FetchBlock(index uint64) (*block.Block, error) {
	b := new(block.Block)
	if err := r.get(BlockKey(index), b, database.ErrBlockNotFound); err != nil {
		return nil, err
	}

	return b, nil
}

// FetchBlocks returns the stored blocks from genesis to tip in position
// order. Missing positions are skipped and left for validation to report.
func (r Records) FetchBlocks() ([]*block.Block, error) {
	tip, ok, err := r.tipIndex()
	if err != nil {
		return nil, err
	}

	blocks := []*block.Block{}
	if !ok {
		return blocks, nil
	}

	for i := uint64(0); i <= tip; i++ {
		b, err := r.FetchBlock(i)
		if err == database.ErrBlockNotFound {
			continue
		}

		if err != nil {
			return nil, errors.Wrapf(err, "block %d", i)
		}

		blocks = append(blocks, b)
	}

	return blocks, nil
}

// StoreBlock stores b as the new tip. A stored block is never overwritten.
func (r Records) StoreBlock(b *block.Block) error {
	tip, err := r.FetchTip()
	if err == database.ErrBlockNotFound {
		tip, err = nil, nil
	}

	if err != nil {
		return err
	}

	if err := database.CheckExtends(tip, b); err != nil {
		return err
	}

	if _, err := r.KV.Get(BlockKey(b.Index)); err == nil {
		return errors.Wrapf(database.ErrAppendConflict, "block %d already stored", b.Index)
	} else if err != ErrKeyNotFound {
		return err
	}

	if err := r.put(BlockKey(b.Index), b); err != nil {
		return err
	}

	return r.KV.Put(TipKey, Uint64ToBytes(b.Index))
}

// FetchAccount returns the account id.
func (r Records) FetchAccount(id string) (*account.Account, error) {
	a := new(account.Account)
	if err := r.get(AccountKey(id), a, database.ErrAccountNotFound); err != nil {
		return nil, err
	}

	return a, nil
}

// StoreAccount inserts or overwrites a.
func (r Records) StoreAccount(a *account.Account) error {
	return r.put(AccountKey(a.ID), a)
}

// FetchTransfer returns the transfer record id.
func (r Records) FetchTransfer(id uuid.UUID) (*transfer.Record, error) {
	rec := new(transfer.Record)
	if err := r.get(TransferKey(id), rec, database.ErrTransferNotFound); err != nil {
		return nil, err
	}

	return rec, nil
}

// FetchTransfers returns all transfer records in commit order.
func (r Records) FetchTransfers() ([]*transfer.Record, error) {
	n, err := r.count(TransferCountKey)
	if err != nil {
		return nil, err
	}

	records := make([]*transfer.Record, 0, n)
	for seq := uint64(0); seq < n; seq++ {
		raw, err := r.KV.Get(TransferSeqKey(seq))
		if err != nil {
			return nil, errors.Wrapf(err, "transfer seq %d", seq)
		}

		id, err := uuid.FromBytes(raw)
		if err != nil {
			return nil, err
		}

		rec, err := r.FetchTransfer(id)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, nil
}

// StoreTransfer appends rec to the transfer log.
func (r Records) StoreTransfer(rec *transfer.Record) error {
	if _, err := r.KV.Get(TransferKey(rec.ID)); err == nil {
		return database.ErrTransferExists
	} else if err != ErrKeyNotFound {
		return err
	}

	n, err := r.count(TransferCountKey)
	if err != nil {
		return err
	}

	if err := r.put(TransferKey(rec.ID), rec); err != nil {
		return err
	}

	id := rec.ID
	if err := r.KV.Put(TransferSeqKey(n), id[:]); err != nil {
		return err
	}

	return r.KV.Put(TransferCountKey, Uint64ToBytes(n+1))
}
