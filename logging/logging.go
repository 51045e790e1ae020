// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging configures the zerolog logger used by rx.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level returns the log level for a verbosity count:
// warnings by default, then info, debug, and trace.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	}
	return zerolog.TraceLevel
}

// Setup installs a console logger writing to w as the global logger
// and returns it. At debug verbosity and above, entries carry the
// caller's file and line.
func Setup(verbosity int, w io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(Level(verbosity))
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    true,
	}
	ctx := zerolog.New(out).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
	log.Debug().Int("verbosity", verbosity).Msg("logger initialized")
	return log.Logger
}
