// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

const (
	configName = ".rx"
	envPrefix  = "RX"
)

// A config holds the settings of one rx run, merged from flags,
// RX_* environment variables, and an optional .rx.yaml file.
type config struct {
	Diff      bool     `mapstructure:"diff"`
	List      bool     `mapstructure:"list"`
	Rules     []string `mapstructure:"rules"`
	NoBuiltin bool     `mapstructure:"no-builtin"`
	Docs      bool     `mapstructure:"docs"`
	Only      string   `mapstructure:"only"`
	Tags      []string `mapstructure:"tags"`
	Verbose   int      `mapstructure:"verbose"`

	file string // config file used, if any
}

// loadConfig reads the configuration for a run in dir.
// If path is empty, .rx.yaml is looked for in dir; a missing file is not an error.
// Rule file names in a config file are relative to the file.
func loadConfig(flags *pflag.FlagSet, dir, path string) (*config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, xerrors.Errorf("reading config: %w", err)
		}
	}

	cfg := new(config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, xerrors.Errorf("reading config: %w", err)
	}
	cfg.file = v.ConfigFileUsed()
	if cfg.file != "" && !flags.Changed("rules") {
		base := filepath.Dir(cfg.file)
		for i, name := range cfg.Rules {
			if !filepath.IsAbs(name) {
				cfg.Rules[i] = filepath.Join(base, name)
			}
		}
	}
	return cfg, nil
}
