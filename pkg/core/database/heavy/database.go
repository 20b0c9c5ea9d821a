// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package heavy

import (
	"os"
	"sync"

	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/dusk-network/energy-ledger/pkg/core/database/utils"
	pkgerrors "github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
)

// storage is a leveldb.DB shared by all DB instances opened on the same
// path. leveldb holds a file lock, so a path can be opened only once per
// process.
type storage struct {
	ldb *leveldb.DB

	// writer serializes writable transactions.
	writer sync.Mutex
	refs   int
}

var (
	storagesMu sync.Mutex
	storages   = make(map[string]*storage)
)

func openStorage(path string) (*storage, error) {
	storagesMu.Lock()
	defer storagesMu.Unlock()

	if s, ok := storages[path]; ok {
		s.refs++
		return s, nil
	}

	ldb, err := leveldb.OpenFile(path, nil)

	// Try to recover if corrupted.
	if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
		log.WithError(err).Warn("recovering corrupted storage")
		ldb, err = leveldb.RecoverFile(path, nil)
	}

	if _, accessdenied := err.(*os.PathError); accessdenied {
		return nil, pkgerrors.Wrap(err, "could not open or create db")
	}

	if err != nil {
		return nil, err
	}

	s := &storage{ldb: ldb, refs: 1}
	storages[path] = s
	return s, nil
}

func releaseStorage(path string) error {
	storagesMu.Lock()
	defer storagesMu.Unlock()

	s, ok := storages[path]
	if !ok {
		return nil
	}

	s.refs--
	if s.refs > 0 {
		return nil
	}

	delete(storages, path)
	return s.ldb.Close()
}

func closeAllStorages() error {
	storagesMu.Lock()
	defer storagesMu.Unlock()

	var firstErr error
	for path, s := range storages {
		if err := s.ldb.Close(); err != nil && firstErr == nil {
			firstErr = err
		}

		delete(storages, path)
	}

	return firstErr
}

// DB on top of underlying storage syndtr/goleveldb/leveldb.
type DB struct {
	path    string
	storage *storage

	// Read-only mode provided at heavy.DB level. If true, accepts read-only Transaction.
	readOnly bool
}

// NewDatabase creates or opens the goleveldb storage located at path.
// Readonly is a pseudo read-only mode implemented by heavy.DB, not the
// goleveldb read-only mode.
func NewDatabase(path string, readonly bool) (*DB, error) {
	s, err := openStorage(path)
	if err != nil {
		return nil, err
	}

	return &DB{path: path, storage: s, readOnly: readonly}, nil
}

// Begin builds read-only or read-write Transaction.
func (db *DB) Begin(writable bool) (database.Transaction, error) {
	if db.readOnly && writable {
		return nil, database.ErrReadOnly
	}

	if db.storage == nil {
		return nil, pkgerrors.New("database is not open")
	}

	// The writer lock is taken before the snapshot so the snapshot already
	// includes the commit of the previous writer.
	if writable {
		db.storage.writer.Lock()
	}

	// Snapshot is released on Transaction.Close().
	snapshot, err := db.storage.ldb.GetSnapshot()
	if err != nil {
		if writable {
			db.storage.writer.Unlock()
		}

		return nil, err
	}

	t := &transaction{
		writable: writable,
		db:       db,
		snapshot: snapshot,
	}

	if writable {
		t.batch = new(leveldb.Batch)
		t.pending = make(map[string][]byte)
	}

	t.Records = utils.Records{KV: t}
	return t, nil
}

// Update runs fn in a writable Transaction and commits on success. When fn
// fails the batch is simply never written.
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

// View is the equivalent of a Select SQL statement.
func (db *DB) View(fn func(database.Transaction) error) error {
	t, err := db.Begin(false)
	if err != nil {
		return err
	}

	defer t.Close()
	return fn(t)
}

// Close releases this instance's reference on the shared storage.
func (db *DB) Close() error {
	if db.storage == nil {
		return nil
	}

	db.storage = nil
	return releaseStorage(db.path)
}
