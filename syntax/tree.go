// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"go/ast"
	"go/token"
	"go/types"
)

// A Tree is one parsed file together with whatever type information
// the front end could supply for it. Pkg and Info may be nil:
// every query then answers "unknown" instead of failing.
type Tree struct {
	Fset *token.FileSet
	File *ast.File
	Pkg  *types.Package
	Info *types.Info
}

// Position returns the position of pos, or the zero Position
// if the tree has no file set.
func (t *Tree) Position(pos token.Pos) token.Position {
	if t == nil || t.Fset == nil || !pos.IsValid() {
		return token.Position{}
	}
	return t.Fset.Position(pos)
}

// TypeOf returns the type of the value or type expression x,
// or nil if it is not known.
func (t *Tree) TypeOf(x ast.Expr) types.Type {
	if t == nil || t.Info == nil || x == nil {
		return nil
	}
	if tv, ok := t.Info.Types[x]; ok && tv.Type != nil {
		if b, ok := tv.Type.(*types.Basic); ok && b.Kind() == types.Invalid {
			return nil
		}
		return tv.Type
	}
	if id, ok := Unparen(x).(*ast.Ident); ok {
		if obj := t.ObjectOf(id); obj != nil {
			return obj.Type()
		}
	}
	return nil
}

// IsType reports whether x is known to denote a type.
func (t *Tree) IsType(x ast.Expr) bool {
	if t == nil || t.Info == nil || x == nil {
		return false
	}
	return t.Info.Types[x].IsType()
}

// ObjectOf returns the object id defines or refers to, or nil.
func (t *Tree) ObjectOf(id *ast.Ident) types.Object {
	if t == nil || t.Info == nil || id == nil {
		return nil
	}
	return t.Info.ObjectOf(id)
}

// Children returns the direct children of n in source order.
func Children(n ast.Node) []ast.Node {
	var list []ast.Node
	if n == nil {
		return nil
	}
	ast.Inspect(n, func(c ast.Node) bool {
		if c == nil {
			return false
		}
		if c == n {
			return true
		}
		list = append(list, c)
		return false
	})
	return list
}

// Unparen returns x with any enclosing parentheses removed.
func Unparen(x ast.Expr) ast.Expr {
	for {
		p, ok := x.(*ast.ParenExpr)
		if !ok {
			return x
		}
		x = p.X
	}
}
