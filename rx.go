// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"rsc.io/rx/logging"
	"rsc.io/rx/refactor"
	"rsc.io/rx/rewrite"
	"rsc.io/rx/rules"
	"rsc.io/rx/syntax"
)

func main() {
	cmd := newCommand(".", os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rx: %v\n", err)
		var u *errUsage
		if errors.As(err, &u) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newCommand(dir string, stdout, stderr io.Writer) *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:           "rx [flags] [packages]",
		Short:         "Rewrite Go packages using structural rewrite rules",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), dir, configFile)
			if err != nil {
				return newErrUsage("%v", err)
			}
			rn := &runner{
				cfg:    cfg,
				dir:    dir,
				stdout: stdout,
				stderr: stderr,
				log:    logging.Setup(cfg.Verbose, stderr),
			}
			if cfg.file != "" {
				rn.log.Debug().Str("file", cfg.file).Msg("config loaded")
			}
			return rn.run(args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "read settings from `file` (default .rx.yaml)")
	f.Bool("diff", false, "show diff instead of writing files")
	f.Bool("list", false, "list the selected rules and exit")
	f.StringSlice("rules", nil, "load rules from YAML `files`")
	f.Bool("no-builtin", false, "do not use the built-in rules")
	f.Bool("docs", false, "also match inside doc comments")
	f.String("only", "", "use only the comma-separated `rules`")
	f.StringSlice("tags", nil, "build `tags` to use when loading packages")
	f.CountP("verbose", "v", "increase logging (-v info, -vv debug, -vvv trace)")
	return cmd
}

// A runner holds the state of one rx invocation.
type runner struct {
	cfg    *config
	dir    string
	stdout io.Writer
	stderr io.Writer
	log    zerolog.Logger
}

func (rn *runner) component(name string) zerolog.Logger {
	return rn.log.With().Str("component", name).Logger()
}

func (rn *runner) run(patterns []string) error {
	reg, err := rn.registry()
	if err != nil {
		return err
	}
	if rn.cfg.List {
		for _, r := range reg.Rules() {
			fmt.Fprintf(rn.stdout, "%s\t%s\n", r.Name, r.Doc)
		}
		return nil
	}
	if reg.Len() == 0 {
		return newErrUsage("no rules to run")
	}

	rf, err := refactor.New(rn.dir)
	if err != nil {
		return err
	}
	rf.Stderr = rn.stderr
	rf.Log = rn.component("refactor")
	rf.BuildTags = rn.cfg.Tags

	snap, err := rf.Load(patterns...)
	if err != nil {
		return err
	}
	defer snap.Errors.FlushOnPanic(rn.stderr)
	if snap.Errors.Len() > 0 {
		fmt.Fprintf(rn.stderr, "%v\n", snap.Errors)
		return newErrPrecondition("packages contain errors")
	}

	d := rewrite.NewDispatcher(reg)
	d.Log = rn.component("dispatch")
	d.IncludeDocs = rn.cfg.Docs
	total := 0
	snap.ForEachFile(func(t *syntax.Tree) {
		applied, skipped := snap.Apply(t, d.Run(t, t.File, nil))
		total += len(applied)
		for _, p := range skipped {
			fmt.Fprintf(rn.stderr, "%s: %s: skipped, overlaps another rewrite\n", snap.Addr(p.Node.Pos()), p.Rule)
		}
	})
	rn.log.Info().Int("rewrites", total).Str("stats", d.Stats.String()).Msg("rules applied")

	if snap.Errors.Len() == 0 {
		snap.Gofmt()
	}
	if snap.Errors.Len() > 0 {
		fmt.Fprintf(rn.stderr, "%v\n", snap.Errors)
		return newErrPrecondition("rewrites failed")
	}

	if rn.cfg.Diff {
		out, err := snap.Diff()
		if err != nil {
			return err
		}
		rn.stdout.Write(out)
		return nil
	}
	if err := snap.Write(); err != nil {
		return err
	}
	if mod := snap.Modified(); len(mod) > 0 {
		rn.log.Info().Strs("packages", mod).Msg("packages rewritten")
	}
	return nil
}

// registry compiles the selected rule files into a registry.
// Rules that fail to compile are reported on stderr and dropped.
func (rn *runner) registry() (*rewrite.Registry, error) {
	var files []*rules.File
	if !rn.cfg.NoBuiltin {
		files = append(files, rules.Builtin())
	}
	for _, name := range rn.cfg.Rules {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(rn.dir, path)
		}
		f, err := rules.Load(path)
		if err != nil {
			return nil, err
		}
		f.Name = name
		files = append(files, f)
	}

	if rn.cfg.Only != "" {
		known := make(map[string]bool)
		for _, f := range files {
			for _, name := range f.Names() {
				known[name] = true
			}
		}
		for _, name := range strings.Split(rn.cfg.Only, ",") {
			if name = strings.TrimSpace(name); name != "" && !known[name] {
				return nil, newErrUsage("unknown rule %s", name)
			}
		}
		for i, f := range files {
			files[i] = f.Select(rn.cfg.Only)
		}
	}

	reg := rewrite.NewRegistry()
	log := rn.component("rules")
	for _, f := range files {
		if err := rules.Compile(reg, f); err != nil {
			fmt.Fprintf(rn.stderr, "%v\n", err)
		}
		log.Debug().Str("file", f.Name).Int("rules", len(f.Rules)).Msg("compiled")
	}
	return reg, nil
}
