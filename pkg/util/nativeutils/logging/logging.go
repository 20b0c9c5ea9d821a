// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package logging

import (
	"io"
	"os"

	cfg "github.com/dusk-network/energy-ledger/pkg/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// InitLog applies the logger configuration and directs output to w.
func InitLog(w io.Writer) {
	// apply logger level from configurations
	SetToLevel(cfg.Get().Logger.Level)
	SetFormat(cfg.Get().Logger.Format)
	log.SetOutput(w)
}

// OpenOutput opens the configured log output. Empty or "stderr" selects
// stderr, "stdout" selects stdout and anything else is a file path. The
// returned closer is a no-op for the standard streams.
func OpenOutput(output string) (io.Writer, func() error, error) {
	switch output {
	case "", "stderr":
		return os.Stderr, func() error { return nil }, nil
	case "stdout":
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log output %s", output)
	}

	return f, f.Close, nil
}

// SetToLevel sets the logrus level. An unknown level falls back to trace.
func SetToLevel(l string) {
	level, err := log.ParseLevel(l)
	if err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(log.TraceLevel)
		log.Warnf("Parse logger level from config err: %v", err)
	}
}

// SetFormat selects the JSON formatter for "json" and the text formatter
// otherwise.
func SetFormat(format string) {
	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
