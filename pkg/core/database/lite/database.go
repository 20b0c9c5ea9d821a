// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package lite

import (
	"sync"

	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/dusk-network/energy-ledger/pkg/core/database/utils"
	"github.com/pkg/errors"
)

type memdb map[string][]byte

// snapshot copies the key set. Stored values are never mutated in place, so
// sharing them is safe.
func (m memdb) snapshot() memdb {
	c := make(memdb, len(m))
	for k, v := range m {
		c[k] = v
	}

	return c
}

// DB is an in-memory ledger storage. Nothing survives Close.
type DB struct {
	mu      sync.RWMutex
	storage memdb

	// writer serializes writable transactions.
	writer sync.Mutex

	readOnly bool
	closed   bool
}

// NewDatabase returns an empty in-memory DB. The path is ignored.
func NewDatabase(path string, readonly bool) (*DB, error) {
	return &DB{storage: make(memdb), readOnly: readonly}, nil
}

func (db *DB) isOpen() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return !db.closed
}

// Begin builds a read-only or read-write Transaction.
func (db *DB) Begin(writable bool) (database.Transaction, error) {
	if db.readOnly && writable {
		return nil, database.ErrReadOnly
	}

	if !db.isOpen() {
		return nil, errors.New("database is not open")
	}

	if writable {
		db.writer.Lock()
	}

	db.mu.RLock()
	snap := db.storage.snapshot()
	db.mu.RUnlock()

	t := &transaction{
		writable: writable,
		db:       db,
		snapshot: snap,
	}

	if writable {
		t.batch = make(memdb)
	}

	t.Records = utils.Records{KV: t}
	return t, nil
}

// Update provides an execution of managed, read-write Transaction.
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

// View provides an execution of managed, read-only Transaction.
func (db *DB) View(fn func(database.Transaction) error) error {
	t, err := db.Begin(false)
	if err != nil {
		return err
	}

	defer t.Close()
	return fn(t)
}

// Close drops all stored data.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.storage = make(memdb)
	db.closed = true
	return nil
}
