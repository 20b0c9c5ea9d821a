// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package heavy

import (
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/dusk-network/energy-ledger/pkg/core/database/utils"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// Explicitly show we want fsync on commit. A committed transfer must survive
// a machine crash.
const optionFsyncEnabled = true

var writeOptions = &opt.WriteOptions{Sync: optionFsyncEnabled}

type transaction struct {
	utils.Records

	writable bool
	db       *DB

	// Get calls are applied on pending first, then on the snapshot.
	snapshot *leveldb.Snapshot

	// Put calls go to both the batch and pending. leveldb.Batch cannot be
	// read back, pending provides read-your-writes.
	batch   *leveldb.Batch
	pending map[string][]byte
	closed  bool
}

func (t *transaction) Get(key []byte) ([]byte, error) {
	if t.closed {
		return nil, database.ErrClosed
	}

	if v, ok := t.pending[string(key)]; ok {
		return v, nil
	}

	v, err := t.snapshot.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, utils.ErrKeyNotFound
	}

	return v, err
}

func (t *transaction) Put(key, value []byte) error {
	if !t.writable {
		return database.ErrReadOnly
	}

	if t.closed {
		return database.ErrClosed
	}

	v := append([]byte(nil), value...)
	t.batch.Put(key, v)
	t.pending[string(key)] = v
	return nil
}

// Commit writes the batch to LevelDB storage.
func (t *transaction) Commit() error {
	if !t.writable {
		return database.ErrReadOnly
	}

	if t.closed {
		return database.ErrClosed
	}

	if err := t.db.storage.ldb.Write(t.batch, writeOptions); err != nil {
		return errors.Wrap(err, "leveldb write")
	}

	return nil
}

// Rollback drops all pending writes.
func (t *transaction) Rollback() error {
	if t.batch != nil {
		t.batch.Reset()
		t.pending = make(map[string][]byte)
	}

	return nil
}

// Close releases the snapshot and the writer lock. It must be called
// explicitly when a transaction is run in an unmanaged way.
func (t *transaction) Close() {
	if t.closed {
		return
	}

	t.snapshot.Release()

	if t.writable {
		t.batch.Reset()
		t.pending = nil
		t.db.storage.writer.Unlock()
	}

	t.closed = true
}
