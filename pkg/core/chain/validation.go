// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package chain

import (
	"fmt"

	"github.com/dusk-network/energy-ledger/pkg/core/data/block"
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

// Reason tells which check a block failed.
type Reason uint8

// Validation failure reasons.
const (
	ReasonNone Reason = iota
	// ReasonIndexMismatch: the block is stored at a position other than its
	// own index.
	ReasonIndexMismatch
	// ReasonBadGenesis: block 0 does not carry the genesis sentinel.
	ReasonBadGenesis
	// ReasonHashMismatch: the stored hash differs from the recomputed one.
	ReasonHashMismatch
	// ReasonBrokenLink: the previous hash differs from the hash of the
	// preceding block.
	ReasonBrokenLink
	// ReasonMissingBlock: no block is stored at this index although later
	// blocks or the tip pointer refer to it.
	ReasonMissingBlock
	// ReasonMissingTip: blocks are stored but the tip pointer is lost.
	ReasonMissingTip
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonIndexMismatch:
		return "index mismatch"
	case ReasonBadGenesis:
		return "bad genesis"
	case ReasonHashMismatch:
		return "hash mismatch"
	case ReasonBrokenLink:
		return "broken link"
	case ReasonMissingBlock:
		return "missing block"
	case ReasonMissingTip:
		return "missing tip"
	default:
		return fmt.Sprintf("reason(%d)", uint8(r))
	}
}

// Report is the outcome of a chain validation. FailedIndex and Reason are
// only meaningful when Valid is false.
type Report struct {
	Valid       bool
	Length      uint64
	FailedIndex uint64
	Reason      Reason
}

// Err returns nil for a valid report, an *IntegrityError otherwise.
func (r Report) Err() error {
	if r.Valid {
		return nil
	}

	return &IntegrityError{Index: r.FailedIndex, Reason: r.Reason}
}

// IntegrityError reports the first block which failed validation.
type IntegrityError struct {
	Index  uint64
	Reason Reason
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("chain integrity: block %d: %s", e.Index, e.Reason)
}

// ValidateChain checks every stored block and the tip pointer. Tampering,
// deletions included, is reported through the Report. The error is set only
// when the storage could not be read.
func (c *Chain) ValidateChain() (Report, error) {
	var blocks []*block.Block

	err := c.db.View(func(t database.Transaction) error {
		var err error
		if blocks, err = t.FetchBlocks(); err != nil {
			return err
		}

		_, err = t.FetchTip()
		if err == database.ErrBlockNotFound {
			return nil
		}

		return err
	})

	var (
		r       Report
		missing *database.MissingBlockError
	)

	switch {
	case err == nil:
		r = ValidateBlocks(blocks)
	case errors.As(err, &missing):
		if r = ValidateBlocks(blocks); r.Valid {
			r = r.fail(missing.Index, ReasonMissingBlock)
		}
	case errors.Is(err, database.ErrCorrupted):
		r = Report{}.fail(0, ReasonMissingTip)
	default:
		return Report{}, err
	}

	if !r.Valid {
		log.WithFields(logger.Fields{
			"index":  r.FailedIndex,
			"reason": r.Reason,
		}).Error("chain validation failed")
	}

	return r, nil
}

// ValidateBlocks checks that blocks, ordered by position, form a valid
// chain: each block sits at its own index, block 0 is a genesis block, every
// hash matches its recomputation and every block links to its predecessor.
// It stops at the first failure.
func ValidateBlocks(blocks []*block.Block) Report {
	r := Report{Length: uint64(len(blocks))}

	for i, b := range blocks {
		pos := uint64(i)

		if b.Index != pos {
			if b.Index > pos && !containsIndex(blocks[i+1:], pos) {
				return r.fail(pos, ReasonMissingBlock)
			}

			return r.fail(pos, ReasonIndexMismatch)
		}

		if !b.VerifyHash() {
			return r.fail(pos, ReasonHashMismatch)
		}

		if i == 0 {
			if b.PrevHash != block.GenesisPrevHash {
				return r.fail(pos, ReasonBadGenesis)
			}

			continue
		}

		prev := blocks[i-1]
		if b.PrevHash != prev.Hash {
			return r.fail(pos, ReasonBrokenLink)
		}

		if b.Timestamp.Before(prev.Timestamp) {
			log.WithField("index", pos).Warn("block timestamp precedes its predecessor")
		}
	}

	r.Valid = true
	return r
}

func (r Report) fail(index uint64, reason Reason) Report {
	r.FailedIndex = index
	r.Reason = reason
	return r
}

func containsIndex(blocks []*block.Block, index uint64) bool {
	for _, b := range blocks {
		if b.Index == index {
			return true
		}
	}

	return false
}
