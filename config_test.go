// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("RX_NO_BUILTIN", "true")
	t.Setenv("RX_ONLY", "len-zero")
	cmd := newCommand(t.TempDir(), io.Discard, io.Discard)
	require.NoError(t, cmd.Flags().Parse([]string{"-vv", "--tags", "a,b"}))
	cfg, err := loadConfig(cmd.Flags(), t.TempDir(), "")
	require.NoError(t, err)
	assert.True(t, cfg.NoBuiltin)
	assert.Equal(t, "len-zero", cfg.Only)
	assert.Equal(t, 2, cfg.Verbose)
	assert.Equal(t, []string{"a", "b"}, cfg.Tags)
	assert.Empty(t, cfg.file)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diff: true\nrules: [team.yaml]\n"), 0666))

	cmd := newCommand(dir, io.Discard, io.Discard)
	cfg, err := loadConfig(cmd.Flags(), t.TempDir(), path)
	require.NoError(t, err)
	assert.True(t, cfg.Diff)
	assert.Equal(t, []string{filepath.Join(dir, "team.yaml")}, cfg.Rules)

	require.NoError(t, cmd.Flags().Parse([]string{"--rules", "mine.yaml"}))
	cfg, err = loadConfig(cmd.Flags(), t.TempDir(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"mine.yaml"}, cfg.Rules)
}

func TestLoadConfigBad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diff: [\n"), 0666))
	cmd := newCommand(t.TempDir(), io.Discard, io.Discard)
	_, err := loadConfig(cmd.Flags(), t.TempDir(), path)
	assert.ErrorContains(t, err, "reading config")
}
