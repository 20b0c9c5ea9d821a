// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package helper

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// RandomSlice returns a random slice of size `size`.
func RandomSlice(t *testing.T, size uint32) []byte {
	randSlice := make([]byte, size)
	_, err := rand.Read(randSlice)
	assert.Nil(t, err)
	return randSlice
}

// RandomString returns a random hex string of 2*size characters.
func RandomString(t *testing.T, size uint32) string {
	return hex.EncodeToString(RandomSlice(t, size))
}

// RandomUUID returns a random version 4 UUID.
func RandomUUID(t *testing.T) uuid.UUID {
	id, err := uuid.NewRandom()
	assert.Nil(t, err)
	return id
}
