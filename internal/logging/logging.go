// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide logger.
//
// A TUI owns the terminal, so log output goes to a file under the data
// directory instead of stderr. Thread-registry refresh failures and other
// non-fatal backend errors land here per the error policy: logged, never
// shown as a crash.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileName is the log file name inside the data directory.
const FileName = "tickertalk.log"

// Setup directs the standard logrus logger to a file in dir and returns it.
// If the file cannot be opened, logging is discarded rather than corrupting
// the terminal; the app stays usable either way.
func Setup(dir string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetLevel(logrus.InfoLevel)

	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		log.SetOutput(io.Discard)
		return log
	}
	log.SetOutput(f)
	return log
}
