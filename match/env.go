// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package match

import (
	"go/ast"
	"go/types"
	"strings"

	"rsc.io/rx/pattern"
)

// A Binding records that a metavariable stands for a target subtree.
type Binding struct {
	Name string
	Node ast.Node
}

// An Env is an immutable set of bindings, in binding order.
// The zero Env is empty and ready to use.
// Operations that change an Env return a new one.
type Env struct {
	list []Binding
}

// Len returns the number of bindings in e.
func (e Env) Len() int { return len(e.list) }

// Names returns the bound names in binding order.
func (e Env) Names() []string {
	names := make([]string, len(e.list))
	for i, b := range e.list {
		names[i] = b.Name
	}
	return names
}

// Bindings returns a copy of the bindings in e.
func (e Env) Bindings() []Binding {
	return append([]Binding(nil), e.list...)
}

// Lookup returns the node bound to name, if any.
func (e Env) Lookup(name string) (ast.Node, bool) {
	for _, b := range e.list {
		if b.Name == name {
			return b.Node, true
		}
	}
	return nil, false
}

// Expr is like Lookup but returns the binding as an expression,
// or nil if name is unbound or bound to a statement.
func (e Env) Expr(name string) ast.Expr {
	n, _ := e.Lookup(name)
	x, _ := n.(ast.Expr)
	return x
}

// Bind returns e extended with name bound to n.
// If name is already bound, Bind succeeds only when the
// existing binding is structurally equal to n, and then e is returned unchanged.
func (e Env) Bind(name string, n ast.Node) (Env, bool) {
	if old, ok := e.Lookup(name); ok {
		return e, Equal(old, n, nil)
	}
	list := make([]Binding, len(e.list), len(e.list)+1)
	copy(list, e.list)
	return Env{append(list, Binding{name, n})}, true
}

// Merge returns the union of e and other.
// Names bound in both must be bound to structurally equal subtrees,
// compared using info when it is not nil.
func (e Env) Merge(other Env, info *types.Info) (Env, bool) {
	list := append([]Binding(nil), e.list...)
	for _, b := range other.list {
		if old, ok := e.Lookup(b.Name); ok {
			if !Equal(old, b.Node, info) {
				return Env{}, false
			}
			continue
		}
		list = append(list, b)
	}
	return Env{list}, true
}

// Equal reports whether e and other bind the same names
// to structurally equal subtrees.
func (e Env) Equal(other Env) bool {
	if len(e.list) != len(other.list) {
		return false
	}
	for _, b := range e.list {
		n, ok := other.Lookup(b.Name)
		if !ok || !Equal(b.Node, n, nil) {
			return false
		}
	}
	return true
}

func (e Env) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, b := range e.list {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("$" + b.Name + ": " + nodeString(b.Node))
	}
	sb.WriteString("}")
	return sb.String()
}

// A Result is one successful match: the target node the pattern
// matched and the bindings that made it match.
type Result struct {
	Root    ast.Node
	Env     Env
	Pattern *pattern.Pattern
}
