// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package database

import (
	"github.com/dusk-network/energy-ledger/pkg/core/data/account"
	"github.com/dusk-network/energy-ledger/pkg/core/data/block"
	"github.com/dusk-network/energy-ledger/pkg/core/data/transfer"
	"github.com/google/uuid"
)

// Driver is the backend storage provider. A Driver is registered under a
// unique name and opens DB instances bound to a directory.
type Driver interface {
	// Open returns a new DB instance rooted at path. If readonly is true,
	// only read-only transactions can be started.
	Open(path string, readonly bool) (DB, error)

	// Close releases any storage shared between DB instances of this driver.
	Close() error

	// Name is the unique identifier of the driver.
	Name() string
}

// Transaction is the unit of work against the ledger storage. All reads of a
// Transaction observe one consistent state. Writes of a writable Transaction
// become visible to later reads of the same Transaction at once, and to
// other transactions only after Commit.
//
// A writable Transaction holds the driver's writer lock until Close, so
// there is exactly one writer at a time.
type Transaction interface {
	// FetchTip returns the block with the highest index. ErrBlockNotFound is
	// returned on an empty chain.
	FetchTip() (*block.Block, error)

	// FetchBlock returns the block stored at index.
	FetchBlock(index uint64) (*block.Block, error)

	// FetchBlocks returns all blocks ordered by index, genesis first.
	FetchBlocks() ([]*block.Block, error)

	// StoreBlock persists b as the new tip. The block must extend the
	// current tip, else ErrAppendConflict is returned.
	StoreBlock(b *block.Block) error

	// FetchAccount returns the account with the given identifier or
	// ErrAccountNotFound.
	FetchAccount(id string) (*account.Account, error)

	// StoreAccount inserts or overwrites an account.
	StoreAccount(a *account.Account) error

	// FetchTransfer returns the transfer record with the given identifier
	// or ErrTransferNotFound.
	FetchTransfer(id uuid.UUID) (*transfer.Record, error)

	// FetchTransfers returns all transfer records in commit order.
	FetchTransfers() ([]*transfer.Record, error)

	// StoreTransfer persists a new transfer record.
	StoreTransfer(r *transfer.Record) error

	// Commit applies all writes atomically.
	Commit() error

	// Rollback discards all pending writes.
	Rollback() error

	// Close releases the snapshot and, for a writable Transaction, the
	// writer lock. It must be called when the Transaction is run in an
	// unmanaged way.
	Close()
}

// DB is a handle to the ledger storage.
type DB interface {
	// Begin starts an unmanaged Transaction.
	Begin(writable bool) (Transaction, error)

	// Update runs fn inside a writable Transaction. If fn returns nil the
	// Transaction is committed, otherwise nothing is persisted.
	Update(fn func(Transaction) error) error

	// View runs fn inside a read-only Transaction.
	View(fn func(Transaction) error) error

	Close() error
}
