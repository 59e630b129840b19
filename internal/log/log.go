// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package log wraps github.com/rs/zerolog behind a single package-level
// Logger(), in the shape of the teacher's own logger package referenced
// from test/assert_checkcircuit.go (log := logger.Logger()).
package log

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Logger returns the process-wide structured logger, configured once on
// first use with a human-readable console writer.
func Logger() *zerolog.Logger {
	once.Do(func() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
	})
	return &logger
}
