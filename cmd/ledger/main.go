// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver"
	cfg "github.com/dusk-network/energy-ledger/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	// Register the database drivers.
	_ "github.com/dusk-network/energy-ledger/pkg/core/database/bunt"
	_ "github.com/dusk-network/energy-ledger/pkg/core/database/heavy"
	_ "github.com/dusk-network/energy-ledger/pkg/core/database/lite"
	_ "github.com/dusk-network/energy-ledger/pkg/core/database/pebble"
	_ "github.com/dusk-network/energy-ledger/pkg/core/database/storm"
)

var (
	app = cli.NewApp()
	log = logrus.WithFields(logrus.Fields{
		"app":    "ledger",
		"prefix": "main",
	})
)

func init() {
	app.Name = "ledger"
	app.Usage = "Tamper-evident ledger of energy transfers"
	app.Copyright = "Copyright (c) DUSK NETWORK"
	app.Version = semver.MustParse(cfg.NodeVersion).String()
	app.Flags = GlobalFlags
	app.Commands = []cli.Command{
		{
			Name:    "genesis",
			Aliases: []string{"g"},
			Usage:   "creates the genesis block of an empty ledger and prints it",
			Action:  genesisAction,
		},
		{
			Name:   "verify",
			Usage:  "validates hashes and links of the whole chain",
			Action: verifyAction,
		},
		{
			Name:  "account",
			Usage: "manages accounts",
			Subcommands: []cli.Command{
				{
					Name:      "open",
					Usage:     "opens an account with an opening balance",
					ArgsUsage: "<id> <balance>",
					Action:    accountOpenAction,
				},
				{
					Name:      "show",
					Usage:     "prints an account",
					ArgsUsage: "<id>",
					Action:    accountShowAction,
				},
			},
		},
		{
			Name:      "transfer",
			Aliases:   []string{"t"},
			Usage:     "transfers energy units between two accounts",
			ArgsUsage: "<sender> <receiver> <energy_units> <rate_per_unit>",
			Action:    transferAction,
		},
		{
			Name:   "transfers",
			Usage:  "prints all committed transfers",
			Action: transfersAction,
		},
		{
			Name:      "blocks",
			Usage:     "prints the chain, or a single block",
			ArgsUsage: "[index]",
			Action:    blocksAction,
		},
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
