// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package lite

import (
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/dusk-network/energy-ledger/pkg/core/database/utils"
)

type transaction struct {
	utils.Records

	writable bool
	db       *DB

	snapshot memdb
	batch    memdb
	closed   bool
}

func (t *transaction) Get(key []byte) ([]byte, error) {
	if t.closed {
		return nil, database.ErrClosed
	}

	if v, ok := t.batch[string(key)]; ok {
		return v, nil
	}

	if v, ok := t.snapshot[string(key)]; ok {
		return v, nil
	}

	return nil, utils.ErrKeyNotFound
}

func (t *transaction) Put(key, value []byte) error {
	if !t.writable {
		return database.ErrReadOnly
	}

	if t.closed {
		return database.ErrClosed
	}

	t.batch[string(key)] = append([]byte(nil), value...)
	return nil
}

// Commit moves the batch into the shared storage.
func (t *transaction) Commit() error {
	if !t.writable {
		return database.ErrReadOnly
	}

	if t.closed {
		return database.ErrClosed
	}

	t.db.mu.Lock()
	defer t.db.mu.Unlock()

	for k, v := range t.batch {
		t.db.storage[k] = v
	}

	return nil
}

func (t *transaction) Rollback() error {
	if t.writable {
		t.batch = make(memdb)
	}

	return nil
}

func (t *transaction) Close() {
	if t.closed {
		return
	}

	t.snapshot = nil
	t.batch = nil

	if t.writable {
		t.db.writer.Unlock()
	}

	t.closed = true
}
