// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config package should avoid importing any ledger packages in order to
// prevent any cyclic-dependency issues.

const (
	// current working dir
	searchPath1 = "."
	// home datadir
	searchPath2 = "$HOME/.ledger/"

	// name for the config file. Does not include extension.
	configFileName = "ledger"

	// DefaultDriver is the database driver used when none is configured.
	DefaultDriver = "heavy_v0.1.0"
)

var r *Registry

// Registry stores all loaded configurations according to the config order.
// NB It should be cheap to be copied by value.
type Registry struct {
	UsedConfigFile string

	// All configuration groups
	Logger   loggerConfiguration
	Database databaseConfiguration
	Ledger   ledgerConfiguration
}

// Load makes an attempt to read and unmarshal any configs from flags, env and
// the ledger config file.
//
// It uses the following precedence order. Each item takes precedence over
// the item below it:
//  - flag
//  - env
//  - config
//  - default
//
// confFile, if set, must exist. Otherwise ledger.{toml,yaml,json} is looked
// up in the search paths and may be missing. fs may be nil.
func Load(confFile string, fs *pflag.FlagSet) error {
	v := viper.New()
	setDefaults(v)
	defineENV(v)

	if fs != nil {
		// e.g CLI argument `--logger.level="warn"` will overwrite the value
		// from `[logger] level = "info"` in the loaded config file
		if err := v.BindPFlags(fs); err != nil {
			return errors.Wrap(err, "unable to bind pflags")
		}
	}

	if len(confFile) > 0 {
		v.SetConfigFile(confFile)
	} else {
		v.SetConfigName(configFileName)
		v.AddConfigPath(searchPath1)
		v.AddConfigPath(searchPath2)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || len(confFile) > 0 {
			return errors.Wrap(err, "error reading config file")
		}
	}

	reg := new(Registry)
	if err := v.Unmarshal(reg); err != nil {
		return errors.Wrap(err, "unable to decode into struct")
	}

	reg.UsedConfigFile = v.ConfigFileUsed()
	r = reg
	return nil
}

// Get returns registry by value in order to avoid further modifications after
// initial configuration loading.
func Get() Registry {
	return *r
}

// Mock should be used only in test packages. It could be useful when a unit
// test needs to be rerun with configs different from the default ones.
func Mock(m *Registry) {
	r = m
}

// DefineFlags adds the flags bound to config file settings. The settings that
// are needed to be passed frequently by CLI should be added here.
func DefineFlags(fs *pflag.FlagSet) {
	_ = fs.StringP("logger.level", "l", "", "override logger.level settings in config file")
	_ = fs.StringP("logger.format", "f", "", "log format, text or json")
	_ = fs.StringP("database.driver", "d", "", "sets the database driver")
	_ = fs.StringP("database.dir", "b", "", "sets the ledger database directory")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("database.driver", DefaultDriver)
	v.SetDefault("database.dir", "ledger")
	v.SetDefault("ledger.autogenesis", true)
	v.SetDefault("ledger.verify", false)
}

// define a set of environment variables as bindings to config file settings.
func defineENV(v *viper.Viper) {
	bindings := map[string]string{
		"logger.level":    "LEDGER_LOGGER_LEVEL",
		"database.driver": "LEDGER_DATABASE_DRIVER",
		"database.dir":    "LEDGER_DATABASE_DIR",
	}

	for key, env := range bindings {
		// BindEnv only fails without a key.
		_ = v.BindEnv(key, env)
	}
}

func init() {
	// By default Registry should be empty but not nil. In that way, consumers
	// (packages) can use their default values on unit testing
	r = new(Registry)
	r.Logger.Level = "info"
	r.Database.Driver = DefaultDriver
	r.Database.Dir = "ledger"
	r.Ledger.AutoGenesis = true
}
