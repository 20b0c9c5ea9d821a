// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package helper

import (
	"path/filepath"
	"testing"

	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/stretchr/testify/require"

	// Register all drivers.
	_ "github.com/dusk-network/energy-ledger/pkg/core/database/bunt"
	_ "github.com/dusk-network/energy-ledger/pkg/core/database/heavy"
	_ "github.com/dusk-network/energy-ledger/pkg/core/database/lite"
	_ "github.com/dusk-network/energy-ledger/pkg/core/database/pebble"
	_ "github.com/dusk-network/energy-ledger/pkg/core/database/storm"
)

// OpenDB opens a fresh database with the named driver in a temporary
// directory. The database is closed on test cleanup.
func OpenDB(t *testing.T, driverName string) database.DB {
	drvr, err := database.From(driverName)
	require.NoError(t, err)

	db, err := drvr.Open(filepath.Join(t.TempDir(), "db"), false)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// Drivers runs fn as a subtest against a fresh database of every
// registered driver.
func Drivers(t *testing.T, fn func(t *testing.T, db database.DB)) {
	for _, name := range database.Drivers() {
		name := name
		t.Run(name, func(t *testing.T) {
			fn(t, OpenDB(t, name))
		})
	}
}
