// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package storm

import (
	"github.com/dusk-network/energy-ledger/pkg/core/data/account"
	"github.com/dusk-network/energy-ledger/pkg/core/data/block"
	"github.com/dusk-network/energy-ledger/pkg/core/data/transfer"
)

const (
	// BlockBucket is the storm bucket holding blockRecord values.
	BlockBucket = "blockRecord"

	// MetaBucket holds the tip pointer under tipKey.
	MetaBucket = "meta"
	tipKey     = "tip"
)

// blockRecord stores a block under Position = Index+1, storm rejects a zero
// id.
type blockRecord struct {
	Position uint64 `storm:"id"`
	Block    *block.Block
}

type accountRecord struct {
	ID      string `storm:"id"`
	Account *account.Account
}

// transferRecord keeps commit order in Seq.
type transferRecord struct {
	Seq        uint64 `storm:"id,increment"`
	TransferID string `storm:"unique"`
	Record     *transfer.Record
}
