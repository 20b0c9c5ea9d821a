// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package bunt

import (
	"os"
	"path/filepath"

	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/dusk-network/energy-ledger/pkg/core/database/utils"
	"github.com/pkg/errors"
	"github.com/tidwall/buntdb"
)

// FileName is the name of the append-only file kept in the database
// directory.
const FileName = "ledger.db"

// DB on top of tidwall/buntdb. buntdb allows one writable transaction at a
// time and blocks readers while it runs, so no extra locking is needed.
type DB struct {
	storage  *buntdb.DB
	readOnly bool
}

// NewDatabase opens or creates the buntdb file in dir.
func NewDatabase(dir string, readonly bool) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create db dir")
	}

	storage, err := buntdb.Open(filepath.Join(dir, FileName))
	if err != nil {
		return nil, errors.Wrap(err, "could not open buntdb")
	}

	return &DB{storage: storage, readOnly: readonly}, nil
}

// Begin builds a read-only or read-write Transaction.
func (db *DB) Begin(writable bool) (database.Transaction, error) {
	if db.readOnly && writable {
		return nil, database.ErrReadOnly
	}

	tx, err := db.storage.Begin(writable)
	if err != nil {
		return nil, err
	}

	t := &transaction{tx: tx, writable: writable}
	t.Records = utils.Records{KV: t}
	return t, nil
}

// Update runs fn in a writable Transaction and commits on success.
func (db *DB) Update(fn func(database.Transaction) error) error {
	t, err := db.Begin(true)
	if err != nil {
		return err
	}

	defer t.Close()

	if err := fn(t); err != nil {
		return err
	}

	return t.Commit()
}

// View runs fn in a read-only Transaction.
func (db *DB) View(fn func(database.Transaction) error) error {
	t, err := db.Begin(false)
	if err != nil {
		return err
	}

	defer t.Close()
	return fn(t)
}

// Close flushes and closes the buntdb file.
func (db *DB) Close() error {
	return db.storage.Close()
}
