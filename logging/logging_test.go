// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{5, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		if got := Level(tt.verbosity); got != tt.want {
			t.Errorf("Level(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestSetup(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	var buf bytes.Buffer
	logger := Setup(0, &buf)
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("Setup(0) set level %v, want warn", zerolog.GlobalLevel())
	}
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("Setup(0) output:\n%s", out)
	}

	buf.Reset()
	logger = Setup(2, &buf)
	l := logger.With().Str("component", "dispatch").Logger()
	l.Debug().Msg("hello")
	out = buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "component=dispatch") || !strings.Contains(out, "logging_test.go") {
		t.Errorf("debug output:\n%s", out)
	}
}
