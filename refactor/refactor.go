// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refactor loads type-checked Go packages, applies rewrite
// proposals to their source text, and writes or diffs the result.
package refactor

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"
	"golang.org/x/xerrors"
)

// A Refactor holds the state for an active refactoring
// of the module containing a directory.
type Refactor struct {
	Stderr io.Writer
	Log    zerolog.Logger

	// BuildTags are passed to the go command when loading packages.
	BuildTags []string

	dir     string
	modRoot string
	modPath string
}

// New returns a new refactoring of the module containing dir (usually ".").
func New(dir string) (*Refactor, error) {
	dir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, err
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	modRoot := dir
	var data []byte
	for {
		data, err = os.ReadFile(filepath.Join(modRoot, "go.mod"))
		if err == nil {
			break
		}
		if !os.IsNotExist(err) {
			return nil, xerrors.Errorf("loading module: %w", err)
		}
		parent := filepath.Dir(modRoot)
		if parent == modRoot {
			return nil, xerrors.Errorf("no module found for %s", dir)
		}
		modRoot = parent
	}
	modPath := modfile.ModulePath(data)
	if modPath == "" {
		return nil, xerrors.Errorf("%s: no module path", filepath.Join(modRoot, "go.mod"))
	}

	r := &Refactor{
		Stderr:  os.Stderr,
		Log:     zerolog.Nop(),
		dir:     dir,
		modRoot: modRoot,
		modPath: modPath,
	}
	return r, nil
}

func (r *Refactor) Dir() string {
	return r.dir
}

func (r *Refactor) ModPath() string {
	return r.modPath
}

func (r *Refactor) ModRoot() string {
	return r.modRoot
}

// shortPath returns an absolute or relative name for path, whatever is shorter.
func (r *Refactor) shortPath(path string) string {
	if rel, err := filepath.Rel(r.dir, path); err == nil && len(rel) < len(path) {
		return rel
	}
	return path
}

type fileCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (fc *fileCache) cacheRead(name string, src []byte) []byte {
	fc.mu.Lock()
	if fc.data[name] == nil {
		if fc.data == nil {
			fc.data = make(map[string][]byte)
		}
		fc.data[name] = src
	} else {
		src = fc.data[name]
	}
	fc.mu.Unlock()
	return src
}

func (fc *fileCache) ParseFile(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	const mode = parser.AllErrors | parser.ParseComments
	return parser.ParseFile(fset, filename, fc.cacheRead(filename, src), mode)
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedModule

// Load loads and type-checks the packages matching patterns
// (default "."), including their tests.
// Load and type errors do not stop the load: they are collected
// in the snapshot's Errors and the affected files keep whatever
// type information the checker produced.
// Packages outside the main module are reported and skipped.
func (r *Refactor) Load(patterns ...string) (*Snapshot, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	s := newSnapshot(r)
	cfg := &packages.Config{
		Mode:      loadMode,
		Dir:       r.dir,
		Tests:     true,
		Fset:      s.fset,
		ParseFile: s.files.ParseFile,
	}
	if len(r.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(r.BuildTags, ",")}
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, xerrors.Errorf("loading packages: %w", err)
	}

	seen := make(map[string]bool)
	for _, p := range pkgs {
		if strings.HasSuffix(p.ID, ".test") {
			// Test main - we don't care.
			continue
		}
		for _, e := range p.Errors {
			s.Errors.Add(e)
		}
		if p.Module != nil && !p.Module.Main {
			s.ErrorAt(token.NoPos, "%s: package outside main module", p.PkgPath)
			continue
		}
		s.pkgs = append(s.pkgs, &Package{s: s, Pkg: p})
		for _, f := range p.Syntax {
			name := s.fset.Position(f.Package).Filename
			if seen[name] {
				continue
			}
			seen[name] = true
			s.addTree(f, p.Types, p.TypesInfo)
		}
	}
	if len(s.pkgs) == 0 {
		if err := s.Errors.Err(); err != nil {
			return nil, err
		}
		return nil, xerrors.Errorf("no packages matched %s", strings.Join(patterns, " "))
	}
	r.Log.Debug().Int("packages", len(s.pkgs)).Int("files", len(s.trees)).Msg("loaded")
	return s, nil
}
