// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package match matches patterns against Go syntax trees.
//
// Matching is purely structural: a concrete pattern node matches a
// target node of the same type with the same operator, token, name or
// literal value, whose children match pairwise. A metavariable matches
// any single subtree in its slot; a metavariable that appears more than
// once must match structurally equal subtrees each time.
// Parentheses are ignored on both sides.
package match

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"reflect"

	"rsc.io/rx/pattern"
	"rsc.io/rx/syntax"
)

// A Matcher matches patterns against target trees.
// It keeps scratch space between calls and is meant to be reused
// for every node of one traversal. It is not safe for concurrent use.
type Matcher struct {
	info   *types.Info
	p      *pattern.Pattern
	wildOK bool
	env    []Binding
}

// New returns a Matcher that compares identifiers in target trees
// using info, which may be nil.
func New(info *types.Info) *Matcher {
	return &Matcher{info: info}
}

// Match reports whether p matches n, extending env with the
// pattern's bindings. On failure it returns env unchanged.
// The category of n must be the category of p.
func (m *Matcher) Match(p *pattern.Pattern, n ast.Node, env Env) (Env, bool) {
	if p == nil || isNil(n) || syntax.CategoryOf(n) != p.Category {
		return env, false
	}
	// The node inside the parentheses is matched on its own.
	if _, ok := n.(*ast.ParenExpr); ok {
		return env, false
	}
	if k := p.Kind(); k != syntax.KindInvalid && k != syntax.KindOf(n) {
		return env, false
	}

	m.p = p
	m.wildOK = true
	m.env = append(m.env[:0], env.list...)
	ok := m.match(p.Root, n)
	m.p = nil
	if !ok {
		return env, false
	}
	return Env{append([]Binding(nil), m.env...)}, true
}

// Result is like Match but starts from an empty environment
// and packages a successful match as a Result.
func (m *Matcher) Result(p *pattern.Pattern, n ast.Node) (*Result, bool) {
	env, ok := m.Match(p, n, Env{})
	if !ok {
		return nil, false
	}
	return &Result{Root: n, Env: env, Pattern: p}, true
}

// Match reports whether p matches n, using info to compare
// repeated metavariable bindings.
func Match(p *pattern.Pattern, n ast.Node, info *types.Info) (*Result, bool) {
	return New(info).Result(p, n)
}

// Equal reports whether the target subtrees x and y are structurally equal.
// Identifiers that both resolve to objects in info are compared by object;
// others are compared by name.
func Equal(x, y ast.Node, info *types.Info) bool {
	m := &Matcher{info: info}
	return m.match(x, y)
}

func isNil(n ast.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// match reports whether pattern x matches y.
//
// If m.wildOK, metavariables in x are wildcards that match any y
// and are recorded in m.env. Otherwise match simply reports whether
// the two trees are equivalent.
func (m *Matcher) match(x, y ast.Node) bool {
	if xn, yn := isNil(x), isNil(y); xn || yn {
		return xn && yn
	}
	if xe, ok := x.(ast.Expr); ok {
		x = syntax.Unparen(xe)
	}
	if ye, ok := y.(ast.Expr); ok {
		y = syntax.Unparen(ye)
	}

	if m.wildOK {
		if name, ok := m.p.Var(x); ok {
			return m.matchWildcard(name, x, y)
		}
	}

	if reflect.TypeOf(x) != reflect.TypeOf(y) {
		return false
	}
	switch x := x.(type) {
	default:
		panic(fmt.Sprintf("unhandled AST node type: %T", x))

	case *ast.BadExpr, *ast.BadStmt, *ast.BadDecl:
		return false

	case *ast.Ident:
		return m.matchIdent(x, y.(*ast.Ident))

	case *ast.BasicLit:
		y := y.(*ast.BasicLit)
		if x.Kind != y.Kind {
			return false
		}
		xval := constant.MakeFromLiteral(x.Value, x.Kind, 0)
		yval := constant.MakeFromLiteral(y.Value, y.Kind, 0)
		if xval.Kind() == constant.Unknown || yval.Kind() == constant.Unknown {
			return x.Value == y.Value
		}
		return constant.Compare(xval, token.EQL, yval)

	case *ast.Ellipsis:
		return m.match(x.Elt, y.(*ast.Ellipsis).Elt)

	case *ast.FuncLit:
		y := y.(*ast.FuncLit)
		return m.match(x.Type, y.Type) &&
			m.match(x.Body, y.Body)

	case *ast.CompositeLit:
		y := y.(*ast.CompositeLit)
		return m.match(x.Type, y.Type) &&
			matchList(m, x.Elts, y.Elts)

	case *ast.ParenExpr:
		return m.match(x.X, y.(*ast.ParenExpr).X)

	case *ast.SelectorExpr:
		y := y.(*ast.SelectorExpr)
		return m.match(x.X, y.X) &&
			m.match(x.Sel, y.Sel)

	case *ast.IndexExpr:
		y := y.(*ast.IndexExpr)
		return m.match(x.X, y.X) &&
			m.match(x.Index, y.Index)

	case *ast.IndexListExpr:
		y := y.(*ast.IndexListExpr)
		return m.match(x.X, y.X) &&
			matchList(m, x.Indices, y.Indices)

	case *ast.SliceExpr:
		y := y.(*ast.SliceExpr)
		return x.Slice3 == y.Slice3 &&
			m.match(x.X, y.X) &&
			m.match(x.Low, y.Low) &&
			m.match(x.High, y.High) &&
			m.match(x.Max, y.Max)

	case *ast.TypeAssertExpr:
		y := y.(*ast.TypeAssertExpr)
		return m.match(x.X, y.X) &&
			m.match(x.Type, y.Type)

	case *ast.CallExpr:
		y := y.(*ast.CallExpr)
		return x.Ellipsis.IsValid() == y.Ellipsis.IsValid() &&
			m.match(x.Fun, y.Fun) &&
			matchList(m, x.Args, y.Args)

	case *ast.StarExpr:
		return m.match(x.X, y.(*ast.StarExpr).X)

	case *ast.UnaryExpr:
		y := y.(*ast.UnaryExpr)
		return x.Op == y.Op &&
			m.match(x.X, y.X)

	case *ast.BinaryExpr:
		y := y.(*ast.BinaryExpr)
		return x.Op == y.Op &&
			m.match(x.X, y.X) &&
			m.match(x.Y, y.Y)

	case *ast.KeyValueExpr:
		y := y.(*ast.KeyValueExpr)
		return m.match(x.Key, y.Key) &&
			m.match(x.Value, y.Value)

	case *ast.ArrayType:
		y := y.(*ast.ArrayType)
		return m.match(x.Len, y.Len) &&
			m.match(x.Elt, y.Elt)

	case *ast.StructType:
		return m.match(x.Fields, y.(*ast.StructType).Fields)

	case *ast.FuncType:
		y := y.(*ast.FuncType)
		return m.match(x.TypeParams, y.TypeParams) &&
			m.match(x.Params, y.Params) &&
			m.match(x.Results, y.Results)

	case *ast.InterfaceType:
		return m.match(x.Methods, y.(*ast.InterfaceType).Methods)

	case *ast.MapType:
		y := y.(*ast.MapType)
		return m.match(x.Key, y.Key) &&
			m.match(x.Value, y.Value)

	case *ast.ChanType:
		y := y.(*ast.ChanType)
		return x.Dir == y.Dir &&
			m.match(x.Value, y.Value)

	case *ast.DeclStmt:
		return m.match(x.Decl, y.(*ast.DeclStmt).Decl)

	case *ast.EmptyStmt:
		return true

	case *ast.LabeledStmt:
		y := y.(*ast.LabeledStmt)
		return m.match(x.Label, y.Label) &&
			m.match(x.Stmt, y.Stmt)

	case *ast.ExprStmt:
		return m.match(x.X, y.(*ast.ExprStmt).X)

	case *ast.SendStmt:
		y := y.(*ast.SendStmt)
		return m.match(x.Chan, y.Chan) &&
			m.match(x.Value, y.Value)

	case *ast.IncDecStmt:
		y := y.(*ast.IncDecStmt)
		return x.Tok == y.Tok &&
			m.match(x.X, y.X)

	case *ast.AssignStmt:
		y := y.(*ast.AssignStmt)
		return x.Tok == y.Tok &&
			matchList(m, x.Lhs, y.Lhs) &&
			matchList(m, x.Rhs, y.Rhs)

	case *ast.GoStmt:
		return m.match(x.Call, y.(*ast.GoStmt).Call)

	case *ast.DeferStmt:
		return m.match(x.Call, y.(*ast.DeferStmt).Call)

	case *ast.ReturnStmt:
		return matchList(m, x.Results, y.(*ast.ReturnStmt).Results)

	case *ast.BranchStmt:
		y := y.(*ast.BranchStmt)
		return x.Tok == y.Tok &&
			m.match(x.Label, y.Label)

	case *ast.BlockStmt:
		return matchList(m, x.List, y.(*ast.BlockStmt).List)

	case *ast.IfStmt:
		y := y.(*ast.IfStmt)
		return m.match(x.Init, y.Init) &&
			m.match(x.Cond, y.Cond) &&
			m.match(x.Body, y.Body) &&
			m.match(x.Else, y.Else)

	case *ast.CaseClause:
		y := y.(*ast.CaseClause)
		return (x.List == nil) == (y.List == nil) &&
			matchList(m, x.List, y.List) &&
			matchList(m, x.Body, y.Body)

	case *ast.SwitchStmt:
		y := y.(*ast.SwitchStmt)
		return m.match(x.Init, y.Init) &&
			m.match(x.Tag, y.Tag) &&
			m.match(x.Body, y.Body)

	case *ast.TypeSwitchStmt:
		y := y.(*ast.TypeSwitchStmt)
		return m.match(x.Init, y.Init) &&
			m.match(x.Assign, y.Assign) &&
			m.match(x.Body, y.Body)

	case *ast.CommClause:
		y := y.(*ast.CommClause)
		return m.match(x.Comm, y.Comm) &&
			matchList(m, x.Body, y.Body)

	case *ast.SelectStmt:
		return m.match(x.Body, y.(*ast.SelectStmt).Body)

	case *ast.ForStmt:
		y := y.(*ast.ForStmt)
		return m.match(x.Init, y.Init) &&
			m.match(x.Cond, y.Cond) &&
			m.match(x.Post, y.Post) &&
			m.match(x.Body, y.Body)

	case *ast.RangeStmt:
		y := y.(*ast.RangeStmt)
		return x.Tok == y.Tok &&
			m.match(x.Key, y.Key) &&
			m.match(x.Value, y.Value) &&
			m.match(x.X, y.X) &&
			m.match(x.Body, y.Body)

	case *ast.File:
		y := y.(*ast.File)
		return m.match(x.Name, y.Name) &&
			matchList(m, x.Decls, y.Decls)

	case *ast.GenDecl:
		y := y.(*ast.GenDecl)
		return x.Tok == y.Tok &&
			matchList(m, x.Specs, y.Specs)

	case *ast.FuncDecl:
		y := y.(*ast.FuncDecl)
		return m.match(x.Recv, y.Recv) &&
			m.match(x.Name, y.Name) &&
			m.match(x.Type, y.Type) &&
			m.match(x.Body, y.Body)

	case *ast.ImportSpec:
		y := y.(*ast.ImportSpec)
		return m.match(x.Name, y.Name) &&
			m.match(x.Path, y.Path)

	case *ast.ValueSpec:
		y := y.(*ast.ValueSpec)
		return matchList(m, x.Names, y.Names) &&
			m.match(x.Type, y.Type) &&
			matchList(m, x.Values, y.Values)

	case *ast.TypeSpec:
		y := y.(*ast.TypeSpec)
		return x.Assign.IsValid() == y.Assign.IsValid() &&
			m.match(x.Name, y.Name) &&
			m.match(x.TypeParams, y.TypeParams) &&
			m.match(x.Type, y.Type)

	case *ast.Field:
		y := y.(*ast.Field)
		return matchList(m, x.Names, y.Names) &&
			m.match(x.Type, y.Type) &&
			m.match(x.Tag, y.Tag)

	case *ast.FieldList:
		return matchList(m, x.List, y.(*ast.FieldList).List)

	case *ast.Comment:
		return x.Text == y.(*ast.Comment).Text

	case *ast.CommentGroup:
		return matchList(m, x.List, y.(*ast.CommentGroup).List)
	}
}

// matchList reports whether the lists xx and yy have the same length
// and match pairwise.
func matchList[N ast.Node](m *Matcher, xx, yy []N) bool {
	if len(xx) != len(yy) {
		return false
	}
	for i := range xx {
		if !m.match(xx[i], yy[i]) {
			return false
		}
	}
	return true
}

// matchIdent compares two identifiers.
// A concrete pattern identifier matches by name. Two target identifiers
// match when they resolve to the same object, or by name when either
// does not resolve.
func (m *Matcher) matchIdent(x, y *ast.Ident) bool {
	if !m.wildOK && m.info != nil {
		xobj := m.info.ObjectOf(x)
		yobj := m.info.ObjectOf(y)
		if xobj != nil && yobj != nil {
			return xobj == yobj
		}
	}
	return x.Name == y.Name
}

// matchWildcard matches the metavariable x, named name, against y.
// A metavariable in a statement slot matches any statement;
// in any other slot it matches any expression.
func (m *Matcher) matchWildcard(name string, x, y ast.Node) bool {
	switch x.(type) {
	case *ast.ExprStmt:
		if _, ok := y.(ast.Stmt); !ok {
			return false
		}
	default:
		if _, ok := y.(ast.Expr); !ok {
			return false
		}
	}

	// A wildcard matches any subtree.
	// If it appears multiple times in the pattern, it must match
	// the same subtree each time.
	for _, b := range m.env {
		if b.Name == name {
			m.wildOK = false
			r := m.match(b.Node, y)
			m.wildOK = true
			return r
		}
	}
	m.env = append(m.env, Binding{name, y})
	return true
}

func nodeString(n ast.Node) string {
	if x, ok := n.(ast.Expr); ok {
		return types.ExprString(x)
	}
	return fmt.Sprintf("%T", n)
}
