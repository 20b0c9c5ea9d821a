// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package block

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Canonical returns the deterministic encoding of the hashed block fields.
// It is a JSON object with lexicographically sorted keys at every level
// (encoding/json sorts map keys) and the timestamp rendered as RFC3339 with
// nanoseconds in UTC. The hash field itself is never part of it.
func Canonical(index uint64, timestamp time.Time, payload Payload, prevHash string) []byte {
	fields := map[string]interface{}{
		"index":         index,
		"timestamp":     timestamp.UTC().Format(time.RFC3339Nano),
		"data":          payload,
		"previous_hash": prevHash,
	}

	// Marshaling maps of strings and integers cannot fail.
	buf, _ := json.Marshal(fields)
	return buf
}

// CalculateHash returns the hex encoded SHA-256 digest of the canonical form.
func CalculateHash(index uint64, timestamp time.Time, payload Payload, prevHash string) string {
	digest := sha256.Sum256(Canonical(index, timestamp, payload, prevHash))
	return hex.EncodeToString(digest[:])
}

// CalculateHash recomputes the hash from the block's stored fields.
func (b *Block) CalculateHash() string {
	return CalculateHash(b.Index, b.Timestamp, b.Payload, b.PrevHash)
}

// VerifyHash reports whether the stored hash matches the block's fields.
func (b *Block) VerifyHash() bool {
	return b.Hash == b.CalculateHash()
}
