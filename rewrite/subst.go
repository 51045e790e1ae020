// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"go/ast"
	"go/token"
	"reflect"

	"golang.org/x/xerrors"

	"rsc.io/rx/match"
	"rsc.io/rx/pattern"
)

var (
	posType    = reflect.TypeOf(token.NoPos)
	objectType = reflect.TypeOf((*ast.Object)(nil))
	scopeType  = reflect.TypeOf((*ast.Scope)(nil))
	stmtType   = reflect.TypeOf((*ast.Stmt)(nil)).Elem()
)

// Substitute returns a copy of the template's tree in which each
// metavariable is replaced by the subtree env binds it to.
//
// Bound subtrees are shared with the target tree, not copied,
// and keep their positions. Nodes copied from the template have no
// positions, so a printer lays them out from scratch.
// An expression bound to a metavariable in statement position
// becomes an expression statement.
func Substitute(template *pattern.Pattern, env match.Env) (ast.Node, error) {
	s := &substituter{p: template, env: env}
	v := s.copy(reflect.ValueOf(template.Root))
	if s.err != nil {
		return nil, s.err
	}
	return v.Interface().(ast.Node), nil
}

type substituter struct {
	p   *pattern.Pattern
	env match.Env
	err error
}

func (s *substituter) copy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() || v.Type() == objectType || v.Type() == scopeType {
			return reflect.Zero(v.Type())
		}
		if n, ok := v.Interface().(ast.Node); ok {
			if name, ok := s.p.Var(n); ok {
				return s.bound(name, n)
			}
		}
		c := reflect.New(v.Type().Elem())
		c.Elem().Set(s.copy(v.Elem()))
		return c

	case reflect.Struct:
		c := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if f.Type() == posType {
				// Keep markers that change the syntax, like f(x...) and type A = B.
				if f.Interface().(token.Pos).IsValid() {
					switch v.Type().Field(i).Name {
					case "Ellipsis", "Assign":
						c.Field(i).Set(reflect.ValueOf(token.Pos(1)))
					}
				}
				continue
			}
			s.set(c.Field(i), s.copy(f))
		}
		return c

	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			s.set(c.Index(i), s.copy(v.Index(i)))
		}
		return c

	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		return s.copy(v.Elem())
	}
	return v
}

// set stores x into dst, converting an expression into a statement
// when dst holds statements.
func (s *substituter) set(dst, x reflect.Value) {
	if !x.IsValid() {
		return
	}
	if x.Kind() == reflect.Interface && x.IsNil() || x.Kind() == reflect.Pointer && x.IsNil() {
		return
	}
	if x.Type().AssignableTo(dst.Type()) {
		dst.Set(x)
		return
	}
	if dst.Type() == stmtType {
		if e, ok := x.Interface().(ast.Expr); ok {
			dst.Set(reflect.ValueOf(&ast.ExprStmt{X: e}))
			return
		}
	}
	if s.err == nil {
		s.err = xerrors.Errorf("cannot use %s in place of %s", x.Type(), dst.Type())
	}
}

func (s *substituter) bound(name string, n ast.Node) reflect.Value {
	b, ok := s.env.Lookup(name)
	if !ok {
		if s.err == nil {
			s.err = xerrors.Errorf("template uses unbound $%s", name)
		}
		return reflect.Zero(reflect.TypeOf(n))
	}
	if _, isStmt := n.(*ast.ExprStmt); isStmt {
		if e, ok := b.(ast.Expr); ok {
			return reflect.ValueOf(&ast.ExprStmt{X: e})
		}
	}
	return reflect.ValueOf(b)
}
