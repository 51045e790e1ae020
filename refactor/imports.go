// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"path"
	"slices"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"

	"rsc.io/rx/syntax"
	"rsc.io/rx/visit"
)

// fileImports records the import bookkeeping for one edited file.
type fileImports struct {
	add   []string          // paths the rewrites need
	names map[string]string // original import path -> package name
}

func (s *Snapshot) needImports(name string, t *syntax.Tree, paths []string) {
	fi := s.imports[name]
	if fi == nil {
		fi = &fileImports{names: make(map[string]string)}
		for _, spec := range t.File.Imports {
			fi.names[importPath(spec)] = importName(t, spec)
		}
		s.imports[name] = fi
	}
	for _, p := range paths {
		if !slices.Contains(fi.add, p) {
			fi.add = append(fi.add, p)
		}
	}
}

func importPath(s *ast.ImportSpec) string {
	t, err := strconv.Unquote(s.Path.Value)
	if err != nil {
		return ""
	}
	return t
}

// importName returns the name the file uses for the package
// imported by spec.
func importName(t *syntax.Tree, spec *ast.ImportSpec) string {
	if spec.Name != nil {
		return spec.Name.Name
	}
	if t.Info != nil {
		if obj := t.Info.PkgNameOf(spec); obj != nil {
			return obj.Imported().Name()
		}
	}
	return path.Base(importPath(spec))
}

// Gofmt adds the imports the applied rewrites need, removes
// imports they left unused, and reformats every edited file.
// Files that no longer parse are reported in s.Errors and left as is.
func (s *Snapshot) Gofmt() {
	for _, name := range s.editedNames() {
		b := s.edits[name]
		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, name, b.Bytes(), parser.ParseComments)
		if err != nil {
			s.Errors.Add(err)
			continue
		}
		if fi := s.imports[name]; fi != nil {
			for _, p := range fi.add {
				astutil.AddImport(fset, file, p)
			}
			deleteUnusedImports(fset, file, fi)
		}

		var out bytes.Buffer
		if err := format.Node(&out, fset, file); err != nil {
			s.Errors.Add(&Error{Pos: token.Position{Filename: s.r.shortPath(name)}, Msg: err.Error()})
			continue
		}
		s.edits[name] = NewBufferAt(b.pos, out.Bytes())
	}
}

// deleteUnusedImports deletes the imports of file that the original
// file had but no longer uses. Blank and dot imports are kept.
func deleteUnusedImports(fset *token.FileSet, file *ast.File, fi *fileImports) {
	used := make(map[string]bool)
	visit.Walk(file, func(stack visit.Stack) {
		id, ok := stack[0].(*ast.Ident)
		if !ok || id.Obj != nil {
			return
		}
		if sel, ok := stack.Parent().(*ast.SelectorExpr); ok && sel.X == id {
			used[id.Name] = true
		}
	})

	var touched []*ast.GenDecl
	for _, spec := range slices.Clone(file.Imports) {
		p := importPath(spec)
		name, ok := fi.names[p]
		if !ok || name == "_" || name == "." {
			continue
		}
		if used[name] {
			continue
		}
		if d := importDecl(file, spec); d != nil && !slices.Contains(touched, d) {
			touched = append(touched, d)
		}
		if spec.Name != nil {
			astutil.DeleteNamedImport(fset, file, spec.Name.Name, p)
		} else {
			astutil.DeleteImport(fset, file, p)
		}
	}
	for _, d := range touched {
		ungroup(file, d)
	}
}

// importDecl returns the import declaration holding spec.
func importDecl(file *ast.File, spec *ast.ImportSpec) *ast.GenDecl {
	for _, decl := range file.Decls {
		d, ok := decl.(*ast.GenDecl)
		if !ok || d.Tok != token.IMPORT {
			continue
		}
		for _, s := range d.Specs {
			if s == spec {
				return d
			}
		}
	}
	return nil
}

// ungroup drops the parentheses of an import declaration left
// with a single spec, unless comments live inside them.
func ungroup(file *ast.File, d *ast.GenDecl) {
	if !d.Lparen.IsValid() || len(d.Specs) != 1 {
		return
	}
	spec := d.Specs[0].(*ast.ImportSpec)
	if spec.Doc != nil || spec.Comment != nil {
		return
	}
	for _, c := range file.Comments {
		if d.Lparen < c.Pos() && c.End() < d.Rparen {
			return
		}
	}
	d.Lparen = token.NoPos
	d.Rparen = token.NoPos
}
