// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package bunt

import (
	"github.com/dusk-network/energy-ledger/pkg/core/database"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "database")

// DriverName is the unique identifier for the buntdb driver.
var DriverName = "bunt_v0.1.0"

type driver struct{}

func (d driver) Open(path string, readonly bool) (database.DB, error) {
	return NewDatabase(path, readonly)
}

func (d driver) Close() error {
	return nil
}

func (d driver) Name() string {
	return DriverName
}

func init() {
	if err := database.Register(driver{}); err != nil {
		log.Panic(err)
	}
}
