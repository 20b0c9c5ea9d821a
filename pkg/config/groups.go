// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

type loggerConfiguration struct {
	Level string
	// Output is "stderr", "stdout" or a file path. Empty logs to stderr.
	Output string
	// Format is "text" or "json".
	Format string
}

// pkg/core/database package configs.
type databaseConfiguration struct {
	Driver string
	Dir    string
}

// pkg/core/chain and pkg/core/contract configs.
type ledgerConfiguration struct {
	// AutoGenesis creates the genesis block when the chain is empty.
	AutoGenesis bool
	// Verify validates the whole chain when the ledger is opened.
	Verify bool
}
