// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package database

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// ErrDriverNotFound is returned by From for an unknown driver name.
var ErrDriverNotFound = errors.New("database: unknown driver")

// Replicated from "database/sql" pkg.
var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a database driver available under its Name. Registering a
// nil driver or the same name twice is an error.
func Register(driver Driver) error {
	driversMu.Lock()
	defer driversMu.Unlock()

	if driver == nil {
		return errors.New("database: cannot register a nil driver")
	}

	name := driver.Name()
	if _, dup := drivers[name]; dup {
		return errors.Errorf("database: duplicated driver name %s", name)
	}

	drivers[name] = driver
	return nil
}

// Drivers returns the sorted names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	list := make([]string, 0, len(drivers))
	for name := range drivers {
		list = append(list, name)
	}

	sort.Strings(list)
	return list
}

// From returns a registered Driver by name.
func From(name string) (Driver, error) {
	driversMu.RLock()
	defer driversMu.RUnlock()

	d, ok := drivers[name]
	if !ok {
		return nil, errors.Wrap(ErrDriverNotFound, name)
	}

	return d, nil
}
