// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package bunt

import (
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/dusk-network/energy-ledger/pkg/core/database/utils"
	"github.com/pkg/errors"
	"github.com/tidwall/buntdb"
)

type transaction struct {
	utils.Records

	tx       *buntdb.Tx
	writable bool

	// done is set once the buntdb transaction is committed or rolled back.
	done bool
}

func (t *transaction) Get(key []byte) ([]byte, error) {
	if t.done {
		return nil, database.ErrClosed
	}

	v, err := t.tx.Get(string(key))
	if err == buntdb.ErrNotFound {
		return nil, utils.ErrKeyNotFound
	}

	if err != nil {
		return nil, err
	}

	return []byte(v), nil
}

func (t *transaction) Put(key, value []byte) error {
	if !t.writable {
		return database.ErrReadOnly
	}

	if t.done {
		return database.ErrClosed
	}

	_, _, err := t.tx.Set(string(key), string(value), nil)
	return err
}

func (t *transaction) Commit() error {
	if !t.writable {
		return database.ErrReadOnly
	}

	if t.done {
		return database.ErrClosed
	}

	t.done = true
	if err := t.tx.Commit(); err != nil {
		return errors.Wrap(err, "buntdb commit")
	}

	return nil
}

func (t *transaction) Rollback() error {
	if t.done {
		return nil
	}

	t.done = true
	return t.tx.Rollback()
}

// Close rolls back an unfinished transaction, releasing the buntdb lock.
func (t *transaction) Close() {
	if err := t.Rollback(); err != nil {
		log.WithError(err).Warn("rollback on close failed")
	}
}
