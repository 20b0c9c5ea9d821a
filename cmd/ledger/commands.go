// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dusk-network/energy-ledger/pkg/core/chain"
	"github.com/dusk-network/energy-ledger/pkg/core/contract"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func printJSON(ctx *cli.Context, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(ctx.App.Writer, string(b))
	return err
}

func expectArgs(ctx *cli.Context, n int) error {
	if ctx.NArg() != n {
		return errors.Errorf("%s: expected %d arguments, got %d", ctx.Command.Name, n, ctx.NArg())
	}

	return nil
}

func genesisAction(ctx *cli.Context) error {
	l, err := openLedger(ctx, false)
	if err != nil {
		return err
	}
	defer l.Close()

	// Auto genesis may have created it already.
	genesis, err := l.chain.CreateGenesisBlock()
	if err == chain.ErrDoubleGenesis {
		genesis, err = l.chain.Block(0)
	}

	if err != nil {
		return err
	}

	return printJSON(ctx, genesis)
}

func verifyAction(ctx *cli.Context) error {
	l, err := openLedger(ctx, true)
	if err != nil {
		return err
	}
	defer l.Close()

	report, err := l.chain.ValidateChain()
	if err != nil {
		return err
	}

	if err := printJSON(ctx, struct {
		Valid       bool   `json:"valid"`
		Length      uint64 `json:"length"`
		FailedIndex uint64 `json:"failed_index,omitempty"`
		Reason      string `json:"reason,omitempty"`
	}{
		Valid:       report.Valid,
		Length:      report.Length,
		FailedIndex: report.FailedIndex,
		Reason:      failureReason(report),
	}); err != nil {
		return err
	}

	return report.Err()
}

func failureReason(r chain.Report) string {
	if r.Valid {
		return ""
	}

	return r.Reason.String()
}

func accountOpenAction(ctx *cli.Context) error {
	if err := expectArgs(ctx, 2); err != nil {
		return err
	}

	balance, err := contract.ParseAmount(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	l, err := openLedger(ctx, false)
	if err != nil {
		return err
	}
	defer l.Close()

	a, err := l.exec.OpenAccount(ctx.Args().Get(0), balance)
	if err != nil {
		return err
	}

	return printJSON(ctx, a)
}

func accountShowAction(ctx *cli.Context) error {
	if err := expectArgs(ctx, 1); err != nil {
		return err
	}

	l, err := openLedger(ctx, true)
	if err != nil {
		return err
	}
	defer l.Close()

	a, err := l.exec.Account(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	return printJSON(ctx, a)
}

func transferAction(ctx *cli.Context) error {
	if err := expectArgs(ctx, 4); err != nil {
		return err
	}

	args := ctx.Args()

	quantity, err := contract.ParseAmount(args.Get(2))
	if err != nil {
		return errors.Wrap(err, "energy units")
	}

	rate, err := contract.ParseAmount(args.Get(3))
	if err != nil {
		return errors.Wrap(err, "rate per unit")
	}

	c, err := contract.New(args.Get(0), args.Get(1), quantity, rate)
	if err != nil {
		return err
	}

	l, err := openLedger(ctx, false)
	if err != nil {
		return err
	}
	defer l.Close()

	rec, err := l.exec.Execute(c)
	if err != nil {
		return err
	}

	return printJSON(ctx, rec)
}

func transfersAction(ctx *cli.Context) error {
	l, err := openLedger(ctx, true)
	if err != nil {
		return err
	}
	defer l.Close()

	records, err := l.exec.Transfers()
	if err != nil {
		return err
	}

	return printJSON(ctx, records)
}

func blocksAction(ctx *cli.Context) error {
	l, err := openLedger(ctx, true)
	if err != nil {
		return err
	}
	defer l.Close()

	if ctx.NArg() == 0 {
		blocks, err := l.chain.Blocks()
		if err != nil {
			return err
		}

		return printJSON(ctx, blocks)
	}

	index, err := strconv.ParseUint(ctx.Args().Get(0), 10, 64)
	if err != nil {
		return errors.Wrap(err, "block index")
	}

	b, err := l.chain.Block(index)
	if err != nil {
		return err
	}

	return printJSON(ctx, b)
}
