// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package utils

import (
	"encoding/binary"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Key prefixes shared by the key/value drivers. Prefixes keep each record
// family in its own lexicographic range.
var (
	// BlockPrefix + BE(index) -> block.
	BlockPrefix = []byte{0x01}
	// TipKey -> BE(index) of the latest block.
	TipKey = []byte{0x05}
	// AccountPrefix + id -> account.
	AccountPrefix = []byte{0x10}
	// TransferPrefix + uuid -> transfer record.
	TransferPrefix = []byte{0x20}
	// TransferSeqPrefix + BE(seq) -> uuid, in commit order.
	TransferSeqPrefix = []byte{0x21}
	// TransferCountKey -> BE(count) of stored transfers.
	TransferCountKey = []byte{0x22}
)

var byteOrder = binary.BigEndian

func prefixed(prefix []byte, suffix []byte) []byte {
	k := make([]byte, 0, len(prefix)+len(suffix))
	k = append(k, prefix...)
	return append(k, suffix...)
}

// Uint64ToBytes encodes v big-endian, so numeric order matches key order.
func Uint64ToBytes(v uint64) []byte {
	b := make([]byte, 8)
	byteOrder.PutUint64(b, v)
	return b
}

// BytesToUint64 decodes a value written by Uint64ToBytes.
func BytesToUint64(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, errors.Errorf("invalid uint64 length %d", len(b))
	}

	return byteOrder.Uint64(b), nil
}

// BlockKey is the key of the block at index.
func BlockKey(index uint64) []byte {
	return prefixed(BlockPrefix, Uint64ToBytes(index))
}

// AccountKey is the key of the account id.
func AccountKey(id string) []byte {
	return prefixed(AccountPrefix, []byte(id))
}

// TransferKey is the key of the transfer record id.
func TransferKey(id uuid.UUID) []byte {
	return prefixed(TransferPrefix, id[:])
}

// TransferSeqKey is the key of the seq-th stored transfer.
func TransferSeqKey(seq uint64) []byte {
	return prefixed(TransferSeqPrefix, Uint64ToBytes(seq))
}
