// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package block

import (
	"strings"
	"time"
)

const (
	// HashSize is the length of a hex encoded block hash.
	HashSize = 64

	// GenesisData is the payload value carried by the genesis block.
	GenesisData = "Genesis Block"

	// GenesisDataKey is the payload key holding GenesisData.
	GenesisDataKey = "data"
)

// GenesisPrevHash is the sentinel previous hash of the genesis block.
var GenesisPrevHash = strings.Repeat("0", HashSize)

// Payload is the key/value record a block commits to. Keys are serialized in
// lexicographic order when hashing, so insertion order never matters.
type Payload map[string]string

// Copy returns a deep copy of the payload.
func (p Payload) Copy() Payload {
	if p == nil {
		return nil
	}

	c := make(Payload, len(p))
	for k, v := range p {
		c[k] = v
	}

	return c
}

// GenesisPayload returns the fixed payload of the genesis block.
func GenesisPayload() Payload {
	return Payload{GenesisDataKey: GenesisData}
}

// Block is a single hash-linked ledger entry. A block is never updated once
// it has been stored.
type Block struct {
	Index     uint64    `json:"index"`
	Timestamp time.Time `json:"timestamp"`
	Payload   Payload   `json:"data"`
	PrevHash  string    `json:"previous_hash"`
	Hash      string    `json:"hash"`
}

// NewBlock builds a block at the given position and seals it with its hash.
// The timestamp is normalized to UTC without a monotonic clock reading.
func NewBlock(index uint64, timestamp time.Time, payload Payload, prevHash string) *Block {
	b := &Block{
		Index:     index,
		Timestamp: timestamp.UTC(),
		Payload:   payload.Copy(),
		PrevHash:  prevHash,
	}
	b.Hash = b.CalculateHash()

	return b
}

// NewGenesisBlock builds the genesis block.
func NewGenesisBlock(timestamp time.Time) *Block {
	return NewBlock(0, timestamp, GenesisPayload(), GenesisPrevHash)
}

// IsGenesis reports whether the block sits at the chain origin.
func (b *Block) IsGenesis() bool {
	return b.Index == 0 && b.PrevHash == GenesisPrevHash
}

// Copy returns a deep copy of the block.
func (b *Block) Copy() *Block {
	c := *b
	c.Payload = b.Payload.Copy()
	return &c
}

// Equals returns true if two blocks are equal
func (b *Block) Equals(other *Block) bool {
	if other == nil {
		return false
	}

	if b.Index != other.Index || b.PrevHash != other.PrevHash || b.Hash != other.Hash {
		return false
	}

	if !b.Timestamp.Equal(other.Timestamp) {
		return false
	}

	if len(b.Payload) != len(other.Payload) {
		return false
	}

	for k, v := range b.Payload {
		if ov, ok := other.Payload[k]; !ok || ov != v {
			return false
		}
	}

	return true
}
