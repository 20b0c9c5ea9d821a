// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package database

import (
	"github.com/dusk-network/energy-ledger/pkg/core/data/block"
	"github.com/pkg/errors"
)

// CheckExtends verifies that b may be stored on top of tip. A nil tip stands
// for an empty chain, which only accepts a block at index 0 carrying the
// genesis sentinel.
func CheckExtends(tip, b *block.Block) error {
	if tip == nil {
		if b.Index != 0 || b.PrevHash != block.GenesisPrevHash {
			return errors.Wrapf(ErrAppendConflict, "empty chain, got block %d", b.Index)
		}

		return nil
	}

	if b.Index != tip.Index+1 {
		return errors.Wrapf(ErrAppendConflict, "tip %d, got block %d", tip.Index, b.Index)
	}

	if b.PrevHash != tip.Hash {
		return errors.Wrapf(ErrAppendConflict, "block %d does not link to tip hash %s", b.Index, tip.Hash)
	}

	return nil
}
