// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visit

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsc.io/rx/syntax"
)

const src = `// Package p is a test.
package p

// f does things.
func f(xs []int) {
	a()
	for _, x := range xs {
		if x > 0 {
			b()
		}
		{
			c()
		}
	}
	func() {
		d()
	}()
}

var v = e()
`

func parse(t *testing.T) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "p.go", src, parser.ParseComments)
	require.NoError(t, err)
	return f
}

// calls returns the names of the functions called at the visited
// call expressions, in visit order.
func calls(t *testing.T, f *ast.File, guards ...Guard) []string {
	var names []string
	var b Builder
	Add(&b, func(call *ast.CallExpr, stack Stack) Action {
		if id, ok := call.Fun.(*ast.Ident); ok {
			names = append(names, id.Name)
		}
		return Continue
	}, guards...)
	b.Walk(f)
	return names
}

func TestWalkOrder(t *testing.T) {
	f := parse(t)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, calls(t, f))
}

func TestCallbacksRunInRegistrationOrder(t *testing.T) {
	f := parse(t)
	var log []string
	var b Builder
	b.On(syntax.KindIfStmt, func(Stack) Action { log = append(log, "first"); return SkipChildren })
	b.On(syntax.KindIfStmt, func(Stack) Action { log = append(log, "second"); return Continue })
	b.On(syntax.KindCallExpr, func(s Stack) Action {
		log = append(log, label(s[0]))
		return Continue
	})
	b.Walk(f)
	// The if statement's children are pruned, so b() is never visited.
	assert.Equal(t, []string{"call", "first", "second", "call", "call", "call", "call"}, log)
}

func label(n ast.Node) string {
	if _, ok := n.(*ast.CallExpr); ok {
		return "call"
	}
	return "?"
}

func TestRemove(t *testing.T) {
	f := parse(t)
	count := 0
	var b Builder
	b.On(syntax.KindCallExpr, func(Stack) Action { count++; return Continue })
	b.On(syntax.KindIdent, func(Stack) Action { count++; return Continue })
	require.Equal(t, 2, b.Len())
	b.Remove(syntax.KindIdent)
	assert.Equal(t, 1, b.Len())
	b.Walk(f)
	assert.Equal(t, 6, count)
}

func TestIncludeDocs(t *testing.T) {
	f := parse(t)
	var texts []string
	var b Builder
	Add(&b, func(c *ast.Comment, stack Stack) Action {
		texts = append(texts, c.Text)
		return Continue
	})
	b.Walk(f)
	assert.Empty(t, texts)

	b.IncludeDocs(true).Walk(f)
	assert.Equal(t, []string{"// Package p is a test.", "// f does things."}, texts)
}

func TestAddRejectsInterfaces(t *testing.T) {
	var b Builder
	assert.Panics(t, func() {
		Add(&b, func(x ast.Expr, stack Stack) Action { return Continue })
	})
	assert.Panics(t, func() {
		b.On(syntax.KindInvalid, func(Stack) Action { return Continue })
	})
}

func TestGuards(t *testing.T) {
	f := parse(t)
	assert.Equal(t, []string{"b"}, calls(t, f, Within(syntax.KindIfStmt)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, calls(t, f, InFuncBody))
	assert.Equal(t, []string{"e"}, calls(t, f, Not(InFuncBody)))
	assert.Equal(t, []string{"b", "c"}, calls(t, f, Within(syntax.KindRangeStmt)))
	assert.Equal(t, []string{"c"}, calls(t, f, All(Within(syntax.KindRangeStmt), Not(Within(syntax.KindIfStmt)))))
}

func TestStatementGuards(t *testing.T) {
	f := parse(t)
	kinds := func(g Guard) []syntax.Kind {
		var list []syntax.Kind
		var b Builder
		for _, k := range syntax.Kinds(syntax.Stmt) {
			b.On(k, func(s Stack) Action {
				list = append(list, syntax.KindOf(s[0]))
				return Continue
			}, g)
		}
		b.Walk(f)
		return list
	}
	// a(), the range loop, and the func literal call are directly in f's body;
	// d() is directly in the literal's body.
	assert.Equal(t, []syntax.Kind{syntax.KindExprStmt, syntax.KindRangeStmt, syntax.KindExprStmt, syntax.KindExprStmt}, kinds(TopLevel))
	// The if statement and the nested block are directly in the loop body.
	assert.Equal(t, []syntax.Kind{syntax.KindIfStmt, syntax.KindBlockStmt}, kinds(InLoopBody))
}

func TestStack(t *testing.T) {
	f := parse(t)
	var seen bool
	Walk(f, func(s Stack) {
		id, ok := s.Node().(*ast.Ident)
		if !ok || id.Name != "b" {
			return
		}
		seen = true
		assert.IsType(t, &ast.CallExpr{}, s.Parent())
		assert.IsType(t, &ast.IfStmt{}, s.Enclosing(syntax.KindIfStmt))
		assert.Nil(t, s.Enclosing(syntax.KindFuncLit))
		assert.Same(t, f, s[len(s)-1])
		c := s.Copy()
		assert.Equal(t, len(s), len(c))
	})
	assert.True(t, seen)

	var empty Stack
	assert.Nil(t, empty.Node())
	assert.Nil(t, empty.Parent())
}

func TestWalkRange(t *testing.T) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, 0)
	require.NoError(t, err)
	var v *ast.GenDecl
	for _, d := range f.Decls {
		if g, ok := d.(*ast.GenDecl); ok {
			v = g
		}
	}
	require.NotNil(t, v)
	var names []string
	WalkRange(f, v.Pos(), v.End(), func(s Stack) {
		if id, ok := s.Node().(*ast.Ident); ok {
			names = append(names, id.Name)
		}
	})
	assert.Equal(t, []string{"v", "e"}, names)
}
