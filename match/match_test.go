// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package match

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsc.io/rx/pattern"
	"rsc.io/rx/syntax"
)

var exprTests = []struct {
	pat    string
	target string
	ok     bool
	env    map[string]string
}{
	{`$x + $x`, `a + a`, true, map[string]string{"x": "a"}},
	{`$x + $x`, `a + b`, false, nil},
	{`$x + $x`, `f(1) + f(1)`, true, map[string]string{"x": "f(1)"}},
	{`$x + $x`, `f(1) + f(2)`, false, nil},
	{`$x + $x`, `(a) + a`, true, map[string]string{"x": "a"}},
	{`$x + $y`, `b + a`, true, map[string]string{"x": "b", "y": "a"}},
	{`a + $y`, `b + a`, false, nil},
	{`$x.Len() == 0`, `buf.Len() == 0`, true, map[string]string{"x": "buf"}},
	{`$x.Len() == 0`, `buf.Len() == 1`, false, nil},
	{`$x.Len() == 0`, `buf.Size() == 0`, false, nil},
	{`"" + $x`, `"" + name`, true, map[string]string{"x": "name"}},
	{`"" + $x`, "`` + name", true, map[string]string{"x": "name"}},
	{`"" + $x`, `name + ""`, false, nil},
	{`"" + $x`, `"a" + name`, false, nil},
	{`$x + 16`, `n + 0x10`, true, map[string]string{"x": "n"}},
	{`$x + 16`, `n + 16.0`, false, nil},
	{`len($s) == 0`, `len(list) == 0`, true, map[string]string{"s": "list"}},
	{`len($s) == 0`, `cap(list) == 0`, false, nil},
	{`$f($a)`, `g(1)`, true, map[string]string{"f": "g", "a": "1"}},
	{`$f($a)`, `g(1, 2)`, false, nil},
	{`$f($a)`, `g(xs...)`, false, nil},
	{`$f()`, `g()`, true, map[string]string{"f": "g"}},
	{`$f()`, `g(1)`, false, nil},
	{`$x[$i:$j]`, `s[1:2]`, true, map[string]string{"x": "s", "i": "1", "j": "2"}},
	{`$x[$i:$j]`, `s[1:]`, false, nil},
	{`$x[$i:$j]`, `s[1:2:3]`, false, nil},
	{`$x.$sel`, `a.b`, true, map[string]string{"x": "a", "sel": "b"}},
	{`$x - $y`, `a + b`, false, nil},
	{`$a + $b + $c`, `x + (y + z)`, false, nil},
	{`$a + ($b + $c)`, `x + (y + z)`, true, map[string]string{"a": "x", "b": "y", "c": "z"}},
	{`[]$T{}`, `[]int{}`, true, map[string]string{"T": "int"}},
	{`[]$T{}`, `[]int{1}`, false, nil},
	{`$v.(string)`, `v.(string)`, true, map[string]string{"v": "v"}},
	{`func() { $body }`, `func() { return }`, true, map[string]string{"body": "*ast.ReturnStmt"}},
}

func TestMatchExpr(t *testing.T) {
	for _, tt := range exprTests {
		p := pattern.MustParse(tt.pat, syntax.Expr)
		target, err := parser.ParseExpr(tt.target)
		require.NoError(t, err, tt.target)

		r, ok := Match(p, target, nil)
		if ok != tt.ok {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pat, tt.target, ok, tt.ok)
			continue
		}
		if !ok {
			assert.Nil(t, r)
			continue
		}
		assert.Same(t, target, r.Root)
		assert.Same(t, p, r.Pattern)
		got := make(map[string]string)
		for _, b := range r.Env.Bindings() {
			got[b.Name] = nodeString(b.Node)
		}
		assert.Equal(t, tt.env, got, "Match(%q, %q) bindings", tt.pat, tt.target)
	}
}

func parseFunc(t *testing.T, src string) *ast.FuncDecl {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "x.go", "package p\n\nfunc f() {\n"+src+"\n}\n", 0)
	require.NoError(t, err)
	return f.Decls[0].(*ast.FuncDecl)
}

var stmtTests = []struct {
	pat    string
	target string
	ok     bool
}{
	{`if $c { $then }`, `if x { y() }`, true},
	{`if $c { $then }`, `if x { y() } else { z() }`, false},
	{`if $c { $then }`, `if x { y(); z() }`, false},
	{`if $c { $then }`, `if v := g(); v { y() }`, false},
	{`if $c { $then }`, `if x { for {} }`, true},
	{`$x = $x`, `a = a`, true},
	{`$x = $x`, `a = b`, false},
	{`$x = $x`, `a := a`, false},
	{`$x++`, `n++`, true},
	{`$x++`, `n--`, false},
	{`return $x`, `return err`, true},
	{`return $x`, `return`, false},
	{`return $x`, `return a, b`, false},
	{`for $i := range $s { $body }`, `for i := range xs { use(i) }`, true},
	{`for $i := range $s { $body }`, `for i = range xs { use(i) }`, false},
	{`$s`, `x := 1`, true},
	{`$s`, `go f()`, true},
}

func TestMatchStmt(t *testing.T) {
	for _, tt := range stmtTests {
		p := pattern.MustParse(tt.pat, syntax.Stmt)
		target := parseFunc(t, tt.target).Body.List[0]
		_, ok := Match(p, target, nil)
		assert.Equal(t, tt.ok, ok, "Match(%q, %q)", tt.pat, tt.target)
	}
}

func TestMatchRespectsCategory(t *testing.T) {
	fn := parseFunc(t, "f()")
	stmt := fn.Body.List[0].(*ast.ExprStmt)

	exprPat := pattern.MustParse(`$f()`, syntax.Expr)
	stmtPat := pattern.MustParse(`$f()`, syntax.Stmt)
	wildExpr := pattern.MustParse(`$x`, syntax.Expr)

	_, ok := Match(exprPat, stmt, nil)
	assert.False(t, ok, "expression pattern matched a statement")
	_, ok = Match(stmtPat, stmt.X, nil)
	assert.False(t, ok, "statement pattern matched an expression")
	_, ok = Match(wildExpr, stmt, nil)
	assert.False(t, ok, "expression wildcard matched a statement")

	_, ok = Match(exprPat, stmt.X, nil)
	assert.True(t, ok)
	_, ok = Match(stmtPat, stmt, nil)
	assert.True(t, ok)
	_, ok = Match(wildExpr, fn.Type, nil)
	assert.True(t, ok, "expression wildcard must match a type expression")
}

func TestMatchSkipsParenRoot(t *testing.T) {
	p := pattern.MustParse(`$x + 1`, syntax.Expr)
	x, err := parser.ParseExpr(`(a + 1)`)
	require.NoError(t, err)
	_, ok := Match(p, x, nil)
	assert.False(t, ok, "matched parenthesized root")
	_, ok = Match(p, x.(*ast.ParenExpr).X, nil)
	assert.True(t, ok)
}

func TestMatchDeterministic(t *testing.T) {
	p := pattern.MustParse(`$f($a, $b) + $a`, syntax.Expr)
	x, err := parser.ParseExpr(`g(p, q) + p`)
	require.NoError(t, err)

	m := New(nil)
	first, ok := m.Match(p, x, Env{})
	require.True(t, ok)
	for range 10 {
		env, ok := m.Match(p, x, Env{})
		require.True(t, ok)
		assert.True(t, env.Equal(first))
		assert.Equal(t, []string{"f", "a", "b"}, env.Names())
	}
}

func TestMatcherReuseAfterFailure(t *testing.T) {
	p := pattern.MustParse(`$x + $x`, syntax.Expr)
	bad, _ := parser.ParseExpr(`a + b`)
	good, _ := parser.ParseExpr(`c + c`)

	m := New(nil)
	_, ok := m.Match(p, bad, Env{})
	require.False(t, ok)
	env, ok := m.Match(p, good, Env{})
	require.True(t, ok)
	assert.Equal(t, "c", nodeString(env.Expr("x")))
	assert.Equal(t, 1, env.Len())
}

func TestMatchWithInitialEnv(t *testing.T) {
	p := pattern.MustParse(`$x + 1`, syntax.Expr)
	a, _ := parser.ParseExpr(`a`)
	env, ok := Env{}.Bind("x", a)
	require.True(t, ok)

	x1, _ := parser.ParseExpr(`a + 1`)
	x2, _ := parser.ParseExpr(`b + 1`)
	got, ok := New(nil).Match(p, x1, env)
	assert.True(t, ok)
	assert.Equal(t, 1, got.Len())
	got, ok = New(nil).Match(p, x2, env)
	assert.False(t, ok)
	assert.True(t, got.Equal(env), "failed match changed the environment")
}

func TestEqualUsesObjects(t *testing.T) {
	const src = `package p

func f(x int) int {
	a := x + 1
	{
		x := 2
		b := x + 1
		_ = b
	}
	return a
}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, 0)
	require.NoError(t, err)
	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
	_, err = (&types.Config{Importer: importer.Default()}).Check("p", fset, []*ast.File{file}, info)
	require.NoError(t, err)

	body := file.Decls[0].(*ast.FuncDecl).Body.List
	outer := body[0].(*ast.AssignStmt).Rhs[0]
	inner := body[1].(*ast.BlockStmt).List[1].(*ast.AssignStmt).Rhs[0]

	assert.True(t, Equal(outer, inner, nil), "syntactic comparison")
	assert.False(t, Equal(outer, inner, info), "different x objects compared equal")
	assert.True(t, Equal(outer, outer, info))
}

func TestEnv(t *testing.T) {
	a, _ := parser.ParseExpr(`a`)
	a2, _ := parser.ParseExpr(`(a)`)
	b, _ := parser.ParseExpr(`b`)

	var e Env
	assert.Equal(t, 0, e.Len())
	_, ok := e.Lookup("x")
	assert.False(t, ok)

	e1, ok := e.Bind("x", a)
	require.True(t, ok)
	assert.Equal(t, 0, e.Len(), "Bind modified its receiver")
	assert.Equal(t, 1, e1.Len())

	e2, ok := e1.Bind("x", a2)
	assert.True(t, ok, "rebinding to an equal subtree")
	assert.Equal(t, 1, e2.Len())
	_, ok = e1.Bind("x", b)
	assert.False(t, ok, "rebinding to a different subtree")

	e3, _ := e1.Bind("y", b)
	assert.Equal(t, []string{"x", "y"}, e3.Names())
	n, ok := e3.Lookup("y")
	assert.True(t, ok)
	assert.Same(t, b, n)
	assert.Equal(t, "{$x: a, $y: b}", e3.String())

	other, _ := Env{}.Bind("z", b)
	other, _ = other.Bind("x", a2)
	merged, ok := e3.Merge(other, nil)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y", "z"}, merged.Names())

	conflict, _ := Env{}.Bind("y", a)
	_, ok = e3.Merge(conflict, nil)
	assert.False(t, ok)

	assert.True(t, e1.Equal(e2))
	assert.False(t, e1.Equal(e3))
}
