// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package block

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var stamp = time.Date(2024, 3, 1, 12, 30, 0, 123456789, time.UTC)

func TestCalculateHashDeterministic(t *testing.T) {
	assert := assert.New(t)

	p := Payload{"sender": "alice", "receiver": "bob"}
	h1 := CalculateHash(1, stamp, p, GenesisPrevHash)
	h2 := CalculateHash(1, stamp, p, GenesisPrevHash)

	assert.Equal(h1, h2)
	assert.Len(h1, HashSize)
}

func TestCalculateHashIgnoresInsertionOrder(t *testing.T) {
	assert := assert.New(t)

	a := make(Payload)
	a["sender"] = "alice"
	a["receiver"] = "bob"
	a["energy_units"] = "10"

	b := make(Payload)
	b["energy_units"] = "10"
	b["receiver"] = "bob"
	b["sender"] = "alice"

	assert.Equal(CalculateHash(3, stamp, a, GenesisPrevHash), CalculateHash(3, stamp, b, GenesisPrevHash))
	assert.Equal(Canonical(3, stamp, a, GenesisPrevHash), Canonical(3, stamp, b, GenesisPrevHash))
}

func TestCalculateHashChangesWithEveryField(t *testing.T) {
	assert := assert.New(t)

	p := Payload{"sender": "alice"}
	base := CalculateHash(1, stamp, p, GenesisPrevHash)

	assert.NotEqual(base, CalculateHash(2, stamp, p, GenesisPrevHash))
	assert.NotEqual(base, CalculateHash(1, stamp.Add(time.Nanosecond), p, GenesisPrevHash))
	assert.NotEqual(base, CalculateHash(1, stamp, Payload{"sender": "alicf"}, GenesisPrevHash))
	assert.NotEqual(base, CalculateHash(1, stamp, Payload{"sender": "alice", "x": ""}, GenesisPrevHash))
	assert.NotEqual(base, CalculateHash(1, stamp, p, "1"+GenesisPrevHash[1:]))
}

func TestCalculateHashTimezoneIndependent(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	p := Payload{"k": "v"}

	assert.Equal(t, CalculateHash(1, stamp, p, GenesisPrevHash), CalculateHash(1, stamp.In(loc), p, GenesisPrevHash))
}

func TestHashExcludesItself(t *testing.T) {
	assert := assert.New(t)

	b := NewBlock(4, stamp, Payload{"k": "v"}, GenesisPrevHash)
	assert.True(b.VerifyHash())

	b.Hash = "deadbeef"
	assert.False(b.VerifyHash())
	assert.Equal(CalculateHash(4, stamp, Payload{"k": "v"}, GenesisPrevHash), b.CalculateHash())
}

func TestNewGenesisBlock(t *testing.T) {
	assert := assert.New(t)

	g := NewGenesisBlock(stamp)
	assert.True(g.IsGenesis())
	assert.Equal(uint64(0), g.Index)
	assert.Equal(GenesisPrevHash, g.PrevHash)
	assert.Equal(GenesisData, g.Payload[GenesisDataKey])
	assert.True(g.VerifyHash())
}

func TestNewBlockCopiesPayload(t *testing.T) {
	p := Payload{"k": "v"}
	b := NewBlock(1, stamp, p, GenesisPrevHash)

	p["k"] = "changed"
	assert.Equal(t, "v", b.Payload["k"])
	assert.True(t, b.VerifyHash())
}

func TestEquals(t *testing.T) {
	assert := assert.New(t)

	b := NewBlock(1, stamp, Payload{"k": "v"}, GenesisPrevHash)
	c := b.Copy()
	assert.True(b.Equals(c))

	c.Payload["k"] = "w"
	assert.False(b.Equals(c))
	assert.False(b.Equals(nil))
}
