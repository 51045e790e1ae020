// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/xerrors"

	"rsc.io/rx/diff"
	"rsc.io/rx/syntax"
)

// A Snapshot is a collection of loaded packages
// and pending edits to their files.
type Snapshot struct {
	r     *Refactor
	fset  *token.FileSet
	files fileCache
	pkgs  []*Package
	trees []*syntax.Tree // one per file, in load order

	// edits is keyed by file name and only contains
	// entries for files that have been modified.
	edits map[string]*Buffer

	// imports holds, per edited file, the import paths
	// the applied rewrites need and the names of the
	// packages the file imported before editing.
	imports map[string]*fileImports

	renderers map[*ast.File]*Renderer

	Errors *ErrorList
}

type Package struct {
	s   *Snapshot
	Pkg *packages.Package
}

func (p *Package) String() string { return p.Pkg.PkgPath }

func newSnapshot(r *Refactor) *Snapshot {
	return &Snapshot{
		r:         r,
		fset:      token.NewFileSet(),
		edits:     make(map[string]*Buffer),
		imports:   make(map[string]*fileImports),
		renderers: make(map[*ast.File]*Renderer),
		Errors:    new(ErrorList),
	}
}

func (s *Snapshot) addTree(f *ast.File, pkg *types.Package, info *types.Info) *syntax.Tree {
	t := &syntax.Tree{Fset: s.fset, File: f, Pkg: pkg, Info: info}
	s.trees = append(s.trees, t)
	return t
}

func (s *Snapshot) Refactor() *Refactor { return s.r }

func (s *Snapshot) Fset() *token.FileSet { return s.fset }

func (s *Snapshot) Packages() []*Package { return s.pkgs }

// Trees returns one syntax tree per loaded file.
func (s *Snapshot) Trees() []*syntax.Tree { return s.trees }

// ForEachFile calls f for each loaded file, in load order.
func (s *Snapshot) ForEachFile(f func(t *syntax.Tree)) {
	for _, t := range s.trees {
		f(t)
	}
}

// Tree returns the tree of the file containing pos, or nil.
func (s *Snapshot) Tree(pos token.Pos) *syntax.Tree {
	for _, t := range s.trees {
		tf := s.fset.File(t.File.Package)
		if tf != nil && tf.Base() <= int(pos) && int(pos) <= tf.Base()+tf.Size() {
			return t
		}
	}
	return nil
}

func (s *Snapshot) Position(pos token.Pos) token.Position {
	return s.fset.Position(pos)
}

// Addr returns pos as a file:line:col string with a short file name.
func (s *Snapshot) Addr(pos token.Pos) string {
	p := s.Position(pos)
	p.Filename = s.r.shortPath(p.Filename)
	return p.String()
}

func (s *Snapshot) ErrorAt(pos token.Pos, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	msg = strings.TrimRight(msg, "\n")
	msg = strings.ReplaceAll(msg, "\n", "\n\t")
	if pos == token.NoPos {
		s.Errors.Add(&Error{Msg: msg})
	} else {
		p := s.Position(pos)
		p.Filename = s.r.shortPath(p.Filename)
		s.Errors.Add(&Error{Pos: p, Msg: msg})
	}
}

// Text returns the original source text between lo and hi,
// which must be in the same file.
func (s *Snapshot) Text(lo, hi token.Pos) []byte {
	plo := s.Position(lo)
	phi := s.Position(hi)
	text := s.files.cacheRead(plo.Filename, nil)
	if text == nil {
		return nil
	}
	return text[plo.Offset:phi.Offset]
}

// SyntaxAt returns the nodes enclosing pos, innermost first.
func (s *Snapshot) SyntaxAt(pos token.Pos) []ast.Node {
	t := s.Tree(pos)
	if t == nil {
		return nil
	}

	var stack []ast.Node
	ast.Inspect(t.File, func(n ast.Node) bool {
		if n == nil || pos < n.Pos() || n.End() <= pos {
			return false
		}
		stack = append(stack, n)
		return true
	})
	for i, j := 0, len(stack)-1; i < j; i, j = i+1, j-1 {
		stack[i], stack[j] = stack[j], stack[i]
	}
	return stack
}

// buffer returns the edit buffer for the named file,
// creating it on first use.
func (s *Snapshot) buffer(name string) *Buffer {
	b := s.edits[name]
	if b == nil {
		tf := s.fileNamed(name)
		text := s.files.cacheRead(name, nil)
		if tf == nil || text == nil {
			return nil
		}
		b = NewBufferAt(token.Pos(tf.Base()), text)
		s.edits[name] = b
	}
	return b
}

func (s *Snapshot) fileNamed(name string) *token.File {
	for _, t := range s.trees {
		if tf := s.fset.File(t.File.Package); tf != nil && tf.Name() == name {
			return tf
		}
	}
	return nil
}

// ReplaceAt replaces the original text between lo and hi with repl.
func (s *Snapshot) ReplaceAt(lo, hi token.Pos, repl string) {
	b := s.buffer(s.Position(lo).Filename)
	if b == nil {
		panic("file not found")
	}
	b.Replace(lo, hi, repl)
}

func (s *Snapshot) DeleteAt(lo, hi token.Pos) {
	s.ReplaceAt(lo, hi, "")
}

func (s *Snapshot) editedNames() []string {
	var names []string
	for name := range s.edits {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		di, dj := filepath.Dir(names[i]), filepath.Dir(names[j])
		if di != dj {
			return di < dj
		}
		return names[i] < names[j]
	})
	return names
}

// Diff returns a unified diff of all pending edits,
// with file names relative to the module root.
func (s *Snapshot) Diff() ([]byte, error) {
	var diffs []byte
	for _, name := range s.editedNames() {
		old := s.files.cacheRead(name, nil)
		new := s.edits[name].Bytes()
		if bytes.Equal(old, new) {
			continue
		}
		rel, err := filepath.Rel(s.r.modRoot, name)
		if err != nil {
			rel = name
		}
		rel = filepath.ToSlash(rel)
		d, err := diff.Diff("old/"+rel, old, "new/"+rel, new)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, d...)
	}
	return diffs, nil
}

// Modified returns the import paths of the packages with edited files.
func (s *Snapshot) Modified() []string {
	seen := make(map[string]bool)
	var paths []string
	for _, p := range s.pkgs {
		path := strings.TrimSuffix(p.Pkg.PkgPath, "_test")
		if seen[path] {
			continue
		}
		for _, name := range p.Pkg.GoFiles {
			if _, ok := s.edits[name]; ok {
				seen[path] = true
				paths = append(paths, path)
				break
			}
		}
	}
	return paths
}

// Write writes every edited file back to disk.
func (s *Snapshot) Write() error {
	failed := false
	for _, name := range s.editedNames() {
		old := s.files.cacheRead(name, nil)
		new := s.edits[name].Bytes()
		if bytes.Equal(old, new) {
			continue
		}
		if err := os.WriteFile(name, new, 0666); err != nil {
			fmt.Fprintf(s.r.Stderr, "%s\n", err)
			failed = true
			continue
		}
		s.r.Log.Debug().Str("file", s.r.shortPath(name)).Msg("wrote")
	}
	if failed {
		return xerrors.New("errors writing files")
	}
	return nil
}
