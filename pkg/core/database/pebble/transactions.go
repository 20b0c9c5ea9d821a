// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package pebble

import (
	"io"

	"github.com/cockroachdb/pebble"
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/dusk-network/energy-ledger/pkg/core/database/utils"
	"github.com/pkg/errors"
)

type reader interface {
	Get(key []byte) ([]byte, io.Closer, error)
}

type transaction struct {
	utils.Records

	writable bool
	db       *DB

	reader   reader
	batch    *pebble.Batch
	snapshot *pebble.Snapshot
	closed   bool
}

func (t *transaction) Get(key []byte) ([]byte, error) {
	if t.closed {
		return nil, database.ErrClosed
	}

	v, closer, err := t.reader.Get(key)
	if err == pebble.ErrNotFound {
		return nil, utils.ErrKeyNotFound
	}

	if err != nil {
		return nil, err
	}

	defer closer.Close()

	// v is only valid until closer.Close.
	return append([]byte(nil), v...), nil
}

func (t *transaction) Put(key, value []byte) error {
	if !t.writable {
		return database.ErrReadOnly
	}

	if t.closed {
		return database.ErrClosed
	}

	return t.batch.Set(key, value, nil)
}

func (t *transaction) Commit() error {
	if !t.writable {
		return database.ErrReadOnly
	}

	if t.closed {
		return database.ErrClosed
	}

	if err := t.batch.Commit(pebble.Sync); err != nil {
		return errors.Wrap(err, "pebble commit")
	}

	return nil
}

// Rollback resets the batch. The transaction stays usable.
func (t *transaction) Rollback() error {
	if t.batch != nil && !t.closed {
		t.batch.Reset()
	}

	return nil
}

func (t *transaction) Close() {
	if t.closed {
		return
	}

	if t.writable {
		if err := t.batch.Close(); err != nil {
			log.WithError(err).Warn("closing batch failed")
		}

		t.db.writer.Unlock()
	} else if err := t.snapshot.Close(); err != nil {
		log.WithError(err).Warn("closing snapshot failed")
	}

	t.closed = true
}
