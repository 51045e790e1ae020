// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chain

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsc.io/rx/syntax"
)

func expr(t *testing.T, s string) ast.Expr {
	t.Helper()
	x, err := parser.ParseExpr(s)
	require.NoError(t, err)
	return x
}

func TestSingleFire(t *testing.T) {
	var ran []string
	m := On(expr(t, "a + b")).
		If(syntax.KindBinaryExpr, func(ast.Node) { ran = append(ran, "h1") }).
		If(syntax.KindBinaryExpr, func(ast.Node) { ran = append(ran, "h2") })
	m.OrElse(func(ast.Node) { ran = append(ran, "else") })
	m.OrElseDo(func() { ran = append(ran, "do") })

	assert.Equal(t, []string{"h1"}, ran)
	assert.True(t, m.Handled())
	_, ok := OrElseGet(m, func(ast.Node) int { return 1 })
	assert.False(t, ok)
}

func TestPredicates(t *testing.T) {
	isAdd := func(n ast.Node) bool { return n.(*ast.BinaryExpr).Op == token.ADD }
	isMul := func(x *ast.BinaryExpr) bool { return x.Op == token.MUL }

	var ran []string
	m := On(expr(t, "a * b")).
		If(syntax.KindCallExpr, func(ast.Node) { ran = append(ran, "call") }).
		IfWhere(syntax.KindBinaryExpr, isAdd, func(ast.Node) { ran = append(ran, "add") }).
		Try(Case(isMul, func(x *ast.BinaryExpr) { ran = append(ran, "mul "+x.X.(*ast.Ident).Name) })).
		Try(Case[*ast.BinaryExpr](nil, func(*ast.BinaryExpr) { ran = append(ran, "any") }))
	assert.Equal(t, []string{"mul a"}, ran)
	assert.True(t, m.Handled())
}

func TestOrElse(t *testing.T) {
	x := expr(t, "f(x)")
	m := On(x).
		If(syntax.KindBinaryExpr, func(ast.Node) { t.Error("binary case fired") }).
		Try(Case[*ast.Ident](nil, func(*ast.Ident) { t.Error("ident case fired") }))
	require.False(t, m.Handled())
	assert.Same(t, x, m.Node())

	var got ast.Node
	m.OrElse(func(n ast.Node) { got = n })
	assert.Same(t, x, got)

	did := false
	m.OrElseDo(func() { did = true })
	assert.True(t, did)

	s, ok := OrElseGet(m, func(n ast.Node) string { return syntax.KindOf(n).String() })
	assert.True(t, ok)
	assert.Equal(t, "CallExpr", s)
	assert.False(t, m.Handled(), "terminals changed state")
}

func TestNilNode(t *testing.T) {
	m := On(nil).
		If(syntax.KindIdent, func(ast.Node) { t.Error("case fired on nil") }).
		Try(Case[*ast.Ident](nil, nil))
	assert.False(t, m.Handled())
}

func TestNilHandler(t *testing.T) {
	m := On(expr(t, "x")).If(syntax.KindIdent, nil)
	assert.True(t, m.Handled())
}
