// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package database

import (
	cfg "github.com/dusk-network/energy-ledger/pkg/config"
	"github.com/pkg/errors"
)

// OpenFromConfig opens a DB with the driver and directory set in the loaded
// configuration. The driver package must be linked in, usually by a blank
// import.
func OpenFromConfig(readonly bool) (Driver, DB, error) {
	r := cfg.Get().Database

	drvr, err := From(r.Driver)
	if err != nil {
		return nil, nil, err
	}

	db, err := drvr.Open(r.Dir, readonly)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s at %s", r.Driver, r.Dir)
	}

	return drvr, db, nil
}
