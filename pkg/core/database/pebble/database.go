// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package pebble

import (
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/dusk-network/energy-ledger/pkg/core/database/utils"
	"github.com/pkg/errors"
)

// DB on top of cockroachdb/pebble.
type DB struct {
	storage *pebble.DB

	// writer serializes writable transactions. An indexed batch reads
	// through to the live DB, so it must be the only writer.
	writer sync.Mutex

	readOnly bool
}

// NewDatabase opens or creates the pebble store at dir.
func NewDatabase(dir string, readonly bool) (*DB, error) {
	s, err := pebble.Open(dir, &pebble.Options{
		Logger: log,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open pebble database")
	}

	log.WithField("dir", dir).Debug("pebble database opened")
	return &DB{storage: s, readOnly: readonly}, nil
}

// Begin builds a read-only or read-write Transaction. A read-only
// Transaction reads from a pebble snapshot.
func (db *DB) Begin(writable bool) (database.Transaction, error) {
	if db.readOnly && writable {
		return nil, database.ErrReadOnly
	}

	t := &transaction{writable: writable, db: db}

	if writable {
		db.writer.Lock()
		t.batch = db.storage.NewIndexedBatch()
		t.reader = t.batch
	} else {
		t.snapshot = db.storage.NewSnapshot()
		t.reader = t.snapshot
	}

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

// Close closes the pebble store.
func (db *DB) Close() error {
	return db.storage.Close()
}
