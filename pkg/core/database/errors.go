// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package database

import (
	"errors"
	"fmt"
)

var (
	// ErrBlockNotFound returned on a missing block or an empty chain.
	ErrBlockNotFound = errors.New("database: block not found")
	// ErrAccountNotFound returned on a missing account.
	ErrAccountNotFound = errors.New("database: account not found")
	// ErrTransferNotFound returned on a missing transfer record.
	ErrTransferNotFound = errors.New("database: transfer not found")
	// ErrAppendConflict returned when a stored block does not extend the
	// current tip.
	ErrAppendConflict = errors.New("database: block does not extend the current tip")
	// ErrTransferExists returned when a transfer identifier is reused.
	ErrTransferExists = errors.New("database: transfer already stored")
	// ErrReadOnly returned on a write attempt through a read-only
	// transaction or database.
	ErrReadOnly = errors.New("database: read-only")
	// ErrClosed returned when a transaction is used after Close.
	ErrClosed = errors.New("database: transaction closed")
	// ErrCorrupted returned when the stored tip pointer contradicts the
	// stored blocks.
	ErrCorrupted = errors.New("database: corrupted chain state")
)

// MissingBlockError is returned when the tip pointer refers to a block that
// is not stored. It matches ErrCorrupted.
type MissingBlockError struct {
	Index uint64
}

func (e *MissingBlockError) Error() string {
	return fmt.Sprintf("%s: tip block %d missing", ErrCorrupted, e.Index)
}

// Is reports whether target is ErrCorrupted.
func (e *MissingBlockError) Is(target error) bool {
	return target == ErrCorrupted
}
