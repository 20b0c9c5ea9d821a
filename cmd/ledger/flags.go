// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"github.com/urfave/cli"
)

var (
	// ConfigFlag flag to use configuration file.
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "ledger.toml configuration file",
	}
	// LogLevelFlag overrides logger.level.
	LogLevelFlag = cli.StringFlag{
		Name:  "logger.level",
		Usage: "log level (trace, debug, info, warn, error)",
	}
	// LogFormatFlag overrides logger.format.
	LogFormatFlag = cli.StringFlag{
		Name:  "logger.format",
		Usage: "log format, text or json",
	}
	// DriverFlag overrides database.driver.
	DriverFlag = cli.StringFlag{
		Name:  "database.driver",
		Usage: "database driver (heavy_v0.1.0, pebble_v0.1.0, bunt_v0.1.0, storm_v0.1.0, lite_v0.1.0)",
	}
	// DataDirFlag overrides database.dir.
	DataDirFlag = cli.StringFlag{
		Name:  "database.dir",
		Usage: "ledger database directory",
	}
)

var (
	// GlobalFlags flags usable in a global context.
	GlobalFlags = []cli.Flag{
		ConfigFlag,
		LogLevelFlag,
		LogFormatFlag,
		DriverFlag,
		DataDirFlag,
	}

	// configFlags are forwarded to the config registry when set.
	configFlags = []cli.StringFlag{
		LogLevelFlag,
		LogFormatFlag,
		DriverFlag,
		DataDirFlag,
	}
)
