// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chain provides first-match-wins dispatch on a single node.
//
// A chain starts unhandled. The first case whose kind and predicate
// accept the node runs and marks the chain handled; every later case
// and every terminal is then a no-op.
//
//	chain.On(n).
//		If(syntax.KindIfStmt, rewriteIf).
//		Try(chain.Case(isSimpleReturn, rewriteReturn)).
//		OrElseDo(giveUp)
package chain

import (
	"go/ast"

	"rsc.io/rx/syntax"
)

type state int

const (
	unhandled state = iota
	handled
)

// A Matcher holds one node and the state of the chain applied to it.
type Matcher struct {
	node  ast.Node
	state state
}

// On starts a chain on n.
func On(n ast.Node) *Matcher {
	return &Matcher{node: n}
}

// Node returns the node the chain was started on.
func (m *Matcher) Node() ast.Node {
	return m.node
}

// Handled reports whether some case has fired.
func (m *Matcher) Handled() bool {
	return m.state == handled
}

// fire runs fn and marks the chain handled.
func (m *Matcher) fire(fn func(ast.Node)) *Matcher {
	m.state = handled
	if fn != nil {
		fn(m.node)
	}
	return m
}

// If runs fn if the chain is unhandled and the node has kind k.
func (m *Matcher) If(k syntax.Kind, fn func(ast.Node)) *Matcher {
	return m.IfWhere(k, nil, fn)
}

// IfWhere runs fn if the chain is unhandled, the node has kind k,
// and pred, if not nil, reports true.
func (m *Matcher) IfWhere(k syntax.Kind, pred func(ast.Node) bool, fn func(ast.Node)) *Matcher {
	if m.state != unhandled || m.node == nil || syntax.KindOf(m.node) != k {
		return m
	}
	if pred != nil && !pred(m.node) {
		return m
	}
	return m.fire(fn)
}

// A Clause is one typed case of a chain, built by Case.
type Clause struct {
	accept func(ast.Node) bool
	run    func(ast.Node)
}

// Case returns a case that accepts nodes of type N for which pred,
// if not nil, reports true, and handles them with fn.
func Case[N ast.Node](pred func(N) bool, fn func(N)) Clause {
	return Clause{
		accept: func(n ast.Node) bool {
			x, ok := n.(N)
			return ok && (pred == nil || pred(x))
		},
		run: func(n ast.Node) {
			if fn != nil {
				fn(n.(N))
			}
		},
	}
}

// Try runs c if the chain is unhandled and c accepts the node.
func (m *Matcher) Try(c Clause) *Matcher {
	if m.state != unhandled || m.node == nil || !c.accept(m.node) {
		return m
	}
	return m.fire(c.run)
}

// OrElse runs fn on the node if no case fired.
func (m *Matcher) OrElse(fn func(ast.Node)) {
	if m.state == unhandled {
		fn(m.node)
	}
}

// OrElseDo runs fn if no case fired.
func (m *Matcher) OrElseDo(fn func()) {
	if m.state == unhandled {
		fn()
	}
}

// OrElseGet returns fn applied to the node and true if no case fired,
// or the zero R and false otherwise.
func OrElseGet[R any](m *Matcher, fn func(ast.Node) R) (R, bool) {
	if m.state != unhandled {
		var zero R
		return zero, false
	}
	return fn(m.node), true
}
