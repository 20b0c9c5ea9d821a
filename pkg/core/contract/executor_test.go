// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package contract

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/dusk-network/energy-ledger/pkg/core/chain"
	"github.com/dusk-network/energy-ledger/pkg/core/data/transfer"
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/dusk-network/energy-ledger/pkg/core/tests/helper"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	assert "github.com/stretchr/testify/require"
)

type fixture struct {
	db    database.DB
	chain *chain.Chain
	exec  *Executor
}

func newFixture(t *testing.T, db database.DB, balances map[string]string) *fixture {
	c := chain.New(db)
	_, err := c.CreateGenesisBlock()
	assert.NoError(t, err)

	e := NewExecutor(db, c)
	for id, balance := range balances {
		_, err := e.OpenAccount(id, d(balance))
		assert.NoError(t, err)
	}

	return &fixture{db: db, chain: c, exec: e}
}

func (f *fixture) balance(t *testing.T, id string) decimal.Decimal {
	a, err := f.exec.Account(id)
	assert.NoError(t, err)
	return a.Balance
}

func (f *fixture) length(t *testing.T) int {
	blocks, err := f.chain.Blocks()
	assert.NoError(t, err)
	return len(blocks)
}

func TestEndToEnd(t *testing.T) {
	helper.Drivers(t, func(t *testing.T, db database.DB) {
		assert := assert.New(t)
		f := newFixture(t, db, map[string]string{"A": "100", "B": "0"})

		c, err := New("A", "B", d("10"), d("2"))
		assert.NoError(err)

		rec, err := f.exec.Execute(c)
		assert.NoError(err)
		assert.Equal(Committed, c.State())

		assert.True(f.balance(t, "A").Equal(d("80")))
		assert.True(f.balance(t, "B").Equal(d("20")))

		a, err := f.exec.Account("A")
		assert.NoError(err)
		assert.True(a.TotalTransferredOut.Equal(d("10")))

		b, err := f.exec.Account("B")
		assert.NoError(err)
		assert.True(b.TotalTransferredIn.Equal(d("10")))

		genesis, err := f.chain.Block(0)
		assert.NoError(err)

		b1, err := f.chain.Block(1)
		assert.NoError(err)
		assert.Equal(genesis.Hash, b1.PrevHash)
		assert.Equal(uint64(1), rec.BlockIndex)
		assert.Equal(b1.Hash, rec.BlockHash)

		summary, err := transfer.DecodePayload(b1.Payload)
		assert.NoError(err)
		assert.True(summary.Matches(rec))

		stored, err := f.exec.Transfer(rec.ID)
		assert.NoError(err)
		assert.Equal(rec.BlockHash, stored.BlockHash)

		r, err := f.chain.ValidateChain()
		assert.NoError(err)
		assert.True(r.Valid)
	})
}

func TestSameAccount(t *testing.T) {
	helper.Drivers(t, func(t *testing.T, db database.DB) {
		assert := assert.New(t)
		f := newFixture(t, db, map[string]string{"A": "100"})

		c, err := New("A", "A", d("1"), d("1"))
		assert.NoError(err)

		_, err = f.exec.Execute(c)
		assert.Equal(ErrSameAccount, err)
		assert.Equal(Rejected, c.State())
		assert.Equal(1, f.length(t))
	})
}

func TestInsufficientBalanceIsAtomic(t *testing.T) {
	helper.Drivers(t, func(t *testing.T, db database.DB) {
		assert := assert.New(t)
		f := newFixture(t, db, map[string]string{"A": "19.99", "B": "5"})

		c, err := New("A", "B", d("10"), d("2"))
		assert.NoError(err)

		_, err = f.exec.Execute(c)

		var ierr *InsufficientBalanceError
		assert.True(errors.As(err, &ierr))
		assert.True(ierr.Balance.Equal(d("19.99")))
		assert.True(ierr.Required.Equal(d("20")))
		assert.Equal(Rejected, c.State())

		assert.True(f.balance(t, "A").Equal(d("19.99")))
		assert.True(f.balance(t, "B").Equal(d("5")))
		assert.Equal(1, f.length(t))

		records, err := f.exec.Transfers()
		assert.NoError(err)
		assert.Empty(records)

		// A settled contract cannot be executed again.
		_, err = f.exec.Execute(c)
		assert.Equal(ErrAlreadySettled, err)
	})
}

func TestExactBalanceIsEnough(t *testing.T) {
	helper.Drivers(t, func(t *testing.T, db database.DB) {
		assert := assert.New(t)
		f := newFixture(t, db, map[string]string{"A": "20", "B": "0"})

		c, err := New("A", "B", d("10"), d("2"))
		assert.NoError(err)
		assert.NoError(f.exec.Validate(c))
		assert.Equal(Validated, c.State())

		_, err = f.exec.Execute(c)
		assert.NoError(err)
		assert.True(f.balance(t, "A").IsZero())

		_, err = f.exec.Execute(c)
		assert.Equal(ErrAlreadySettled, err)
	})
}

func TestUnknownAccount(t *testing.T) {
	helper.Drivers(t, func(t *testing.T, db database.DB) {
		assert := assert.New(t)
		f := newFixture(t, db, map[string]string{"A": "100"})

		c, err := New("A", "ghost", d("1"), d("1"))
		assert.NoError(err)

		_, err = f.exec.Execute(c)
		assert.True(errors.Is(err, database.ErrAccountNotFound))
		assert.Equal(Rejected, c.State())
		assert.True(f.balance(t, "A").Equal(d("100")))
		assert.Equal(1, f.length(t))
	})
}

func TestConservation(t *testing.T) {
	helper.Drivers(t, func(t *testing.T, db database.DB) {
		assert := assert.New(t)
		ids := []string{"A", "B", "C", "D"}
		f := newFixture(t, db, map[string]string{"A": "500", "B": "250.5", "C": "0", "D": "42.42"})

		total := d("500").Add(d("250.5")).Add(d("42.42"))
		rnd := rand.New(rand.NewSource(7))

		committed := 0
		for i := 0; i < 40; i++ {
			from := ids[rnd.Intn(len(ids))]
			to := ids[rnd.Intn(len(ids))]
			qty := decimal.New(int64(rnd.Intn(1000)+1), -2)
			rate := decimal.New(int64(rnd.Intn(300)+1), -2)

			c, err := New(from, to, qty, rate)
			assert.NoError(err)

			if _, err := f.exec.Execute(c); err == nil {
				committed++
			}
		}

		sum := decimal.Zero
		out := decimal.Zero
		in := decimal.Zero
		for _, id := range ids {
			a, err := f.exec.Account(id)
			assert.NoError(err)
			assert.False(a.Balance.IsNegative())

			sum = sum.Add(a.Balance)
			out = out.Add(a.TotalTransferredOut)
			in = in.Add(a.TotalTransferredIn)
		}

		assert.True(total.Equal(sum), "expected %s, got %s", total, sum)
		assert.True(out.Equal(in))

		records, err := f.exec.Transfers()
		assert.NoError(err)
		assert.Len(records, committed)
		assert.Equal(committed+1, f.length(t))

		for _, rec := range records {
			b, err := f.chain.Block(rec.BlockIndex)
			assert.NoError(err)

			s, err := transfer.DecodePayload(b.Payload)
			assert.NoError(err)
			assert.True(s.Matches(rec))
		}

		r, err := f.chain.ValidateChain()
		assert.NoError(err)
		assert.True(r.Valid)
	})
}

func TestConcurrentExecute(t *testing.T) {
	helper.Drivers(t, func(t *testing.T, db database.DB) {
		assert := assert.New(t)
		f := newFixture(t, db, map[string]string{"A": "100", "B": "0"})

		// Each transfer costs 5, A can only afford 20 of them.
		const workers = 30

		var wg sync.WaitGroup
		records := make([]*transfer.Record, workers)
		errs := make([]error, workers)

		for i := 0; i < workers; i++ {
			c, err := New("A", "B", d("1"), d("5"))
			assert.NoError(err)

			wg.Add(1)
			go func(i int, c *Contract) {
				defer wg.Done()
				records[i], errs[i] = f.exec.Execute(c)
			}(i, c)
		}

		wg.Wait()

		committed := 0
		indexes := make(map[uint64]bool)
		for i, err := range errs {
			if err != nil {
				var ierr *InsufficientBalanceError
				assert.True(errors.As(err, &ierr), "unexpected error %v", err)
				continue
			}

			committed++
			assert.False(indexes[records[i].BlockIndex])
			indexes[records[i].BlockIndex] = true
		}

		assert.Equal(20, committed)
		assert.True(f.balance(t, "A").IsZero())
		assert.True(f.balance(t, "B").Equal(d("100")))
		assert.Equal(committed+1, f.length(t))

		stored, err := f.exec.Transfers()
		assert.NoError(err)
		assert.Len(stored, committed)

		r, err := f.chain.ValidateChain()
		assert.NoError(err)
		assert.True(r.Valid)
	})
}

func TestOpenAccount(t *testing.T) {
	helper.Drivers(t, func(t *testing.T, db database.DB) {
		assert := assert.New(t)

		_, err := OpenAccount(db, "A", d("-1"))
		assert.Equal(ErrNegativeBalance, err)

		a, err := OpenAccount(db, "A", d("0"))
		assert.NoError(err)
		assert.True(a.Balance.IsZero())

		_, err = OpenAccount(db, "A", d("10"))
		assert.Equal(ErrAccountExists, err)
	})
}

func TestExecuteOnEmptyChain(t *testing.T) {
	helper.Drivers(t, func(t *testing.T, db database.DB) {
		assert := assert.New(t)
		c := chain.New(db)
		e := NewExecutor(db, c)

		_, err := e.OpenAccount("A", d("10"))
		assert.NoError(err)
		_, err = e.OpenAccount("B", d("0"))
		assert.NoError(err)

		ct, err := New("A", "B", d("1"), d("1"))
		assert.NoError(err)

		rec, err := e.Execute(ct)
		assert.NoError(err)
		assert.Equal(uint64(1), rec.BlockIndex)

		genesis, err := c.Block(0)
		assert.NoError(err)
		assert.True(genesis.IsGenesis())
	})
}
