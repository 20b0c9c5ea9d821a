// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package storm

import (
	"os"
	"path/filepath"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const (
	// FileName is the bbolt file kept in the database directory.
	FileName = "ledger.storm"

	// bbolt remaps the file when it grows, which waits for open readers.
	// A large initial mapping keeps readers from stalling the writer.
	initialMmapSize = 64 << 20

	// openTimeout bounds the wait for the bbolt file lock.
	openTimeout = 2 * time.Second
)

// DB on top of asdine/storm over bbolt. bbolt serializes writable
// transactions and gives each read-only one an MVCC snapshot.
type DB struct {
	storage  *storm.DB
	readOnly bool
}

// NewDatabase opens or creates the storm file in dir.
func NewDatabase(dir string, readonly bool) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create db dir")
	}

	s, err := storm.Open(filepath.Join(dir, FileName), storm.BoltOptions(0o600, &bolt.Options{
		Timeout:         openTimeout,
		InitialMmapSize: initialMmapSize,
	}))
	if err != nil {
		return nil, errors.Wrap(err, "could not open storm db")
	}

	return &DB{storage: s, readOnly: readonly}, nil
}

// Begin builds a read-only or read-write Transaction.
func (db *DB) Begin(writable bool) (database.Transaction, error) {
	if db.readOnly && writable {
		return nil, database.ErrReadOnly
	}

	node, err := db.storage.Begin(writable)
	if err != nil {
		return nil, err
	}

	return &transaction{node: node, writable: writable}, nil
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

// Close closes the underlying bbolt file.
func (db *DB) Close() error {
	return db.storage.Close()
}
