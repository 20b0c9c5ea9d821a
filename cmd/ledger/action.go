// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	cfg "github.com/dusk-network/energy-ledger/pkg/config"
	"github.com/dusk-network/energy-ledger/pkg/core/chain"
	"github.com/dusk-network/energy-ledger/pkg/core/contract"
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/dusk-network/energy-ledger/pkg/util/diagnostics"
	"github.com/dusk-network/energy-ledger/pkg/util/nativeutils/logging"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/urfave/cli"
)

// ledger bundles the opened storage with the engines running on it.
type ledger struct {
	db    database.DB
	chain *chain.Chain
	exec  *contract.Executor

	closeLog func() error
}

func (l *ledger) Close() {
	if err := l.db.Close(); err != nil {
		diagnostics.LogError("closing database", err)
	}

	if err := l.closeLog(); err != nil {
		diagnostics.LogError("closing log output", err)
	}
}

// loadConfig forwards the global flags set on the command line to the
// config registry and loads it.
func loadConfig(ctx *cli.Context) error {
	fs := pflag.NewFlagSet(app.Name, pflag.ContinueOnError)
	cfg.DefineFlags(fs)

	for _, f := range configFlags {
		if !ctx.GlobalIsSet(f.Name) {
			continue
		}

		if err := fs.Set(f.Name, ctx.GlobalString(f.Name)); err != nil {
			return errors.Wrapf(err, "flag %s", f.Name)
		}
	}

	return cfg.Load(ctx.GlobalString(ConfigFlag.Name), fs)
}

// openLedger loads the configuration, sets up logging and opens the ledger.
// Loading all configurations fails fast on a critical error.
func openLedger(ctx *cli.Context, readonly bool) (*ledger, error) {
	if err := loadConfig(ctx); err != nil {
		return nil, errors.Wrap(err, "could not load config")
	}

	// Any subsystem should be initialized after config and logger loading.
	w, closeLog, err := logging.OpenOutput(cfg.Get().Logger.Output)
	if err != nil {
		return nil, err
	}

	logging.InitLog(w)
	log.WithField("config", cfg.Get().UsedConfigFile).Debug("config loaded")

	_, db, err := database.OpenFromConfig(readonly)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	c := chain.New(db)
	l := &ledger{
		db:       db,
		chain:    c,
		exec:     contract.NewExecutor(db, c),
		closeLog: closeLog,
	}

	if err := l.prepare(readonly); err != nil {
		l.Close()
		return nil, err
	}

	return l, nil
}

// prepare applies the ledger settings: genesis creation on an empty chain and
// validation on start.
func (l *ledger) prepare(readonly bool) error {
	r := cfg.Get().Ledger

	if r.AutoGenesis && !readonly {
		_, err := l.chain.CreateGenesisBlock()
		if err != nil && err != chain.ErrDoubleGenesis {
			return err
		}
	}

	if !r.Verify {
		return nil
	}

	report, err := l.chain.ValidateChain()
	if err != nil {
		return err
	}

	return report.Err()
}
