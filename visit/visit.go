// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package visit composes many node-kind callbacks into a single
// pre-order traversal of a syntax tree.
//
// Callbacks are registered on a Builder, keyed by node kind and
// optionally restricted by guards on the ancestor stack. Walk then
// visits every node once and, for each, runs every callback registered
// for its kind whose guards hold, in registration order.
package visit

import (
	"fmt"
	"go/ast"
	"go/token"

	"rsc.io/rx/syntax"
)

// An Action tells the walk whether to descend into the current node.
type Action int

const (
	Continue     Action = iota // visit the node's children
	SkipChildren               // do not visit the node's children
)

// A Func is a callback for one node. stack[0] is the node.
type Func func(stack Stack) Action

type entry struct {
	fn     Func
	guards []Guard
}

// A Builder accumulates callbacks for a traversal.
// The zero Builder is ready to use.
type Builder struct {
	byKind [syntax.NumKinds][]entry
	docs   bool
	n      int
}

// On registers fn for nodes of kind k.
// fn runs only at nodes where every guard holds.
func (b *Builder) On(k syntax.Kind, fn Func, guards ...Guard) *Builder {
	if k <= syntax.KindInvalid || k >= syntax.NumKinds {
		panic(fmt.Sprintf("visit: invalid kind %v", k))
	}
	b.byKind[k] = append(b.byKind[k], entry{fn, guards})
	b.n++
	return b
}

// Add registers a typed callback for nodes of type N,
// which must be a concrete node type such as *ast.IfStmt.
func Add[N ast.Node](b *Builder, fn func(n N, stack Stack) Action, guards ...Guard) *Builder {
	var zero N
	k := syntax.KindOf(zero)
	if k == syntax.KindInvalid {
		panic(fmt.Sprintf("visit.Add: %T is not a concrete node type", zero))
	}
	return b.On(k, func(stack Stack) Action {
		return fn(stack[0].(N), stack)
	}, guards...)
}

// Remove deregisters every callback for kind k.
func (b *Builder) Remove(k syntax.Kind) *Builder {
	if k > syntax.KindInvalid && k < syntax.NumKinds {
		b.n -= len(b.byKind[k])
		b.byKind[k] = nil
	}
	return b
}

// IncludeDocs sets whether comment groups and comments are walked.
// They are skipped by default.
func (b *Builder) IncludeDocs(docs bool) *Builder {
	b.docs = docs
	return b
}

// Len returns the number of registered callbacks.
func (b *Builder) Len() int {
	return b.n
}

// Walk visits root and its descendants in pre-order, running
// the registered callbacks at each node.
func (b *Builder) Walk(root ast.Node) {
	if b.n == 0 || root == nil {
		return
	}
	walk(root, func(stack Stack) bool {
		switch stack[0].(type) {
		case *ast.Comment, *ast.CommentGroup:
			if !b.docs {
				return false
			}
		}
		descend := true
		for _, e := range b.byKind[syntax.KindOf(stack[0])] {
			if !holds(e.guards, stack) {
				continue
			}
			if e.fn(stack) == SkipChildren {
				descend = false
			}
		}
		return descend
	})
}

func holds(guards []Guard, stack Stack) bool {
	for _, g := range guards {
		if !g(stack) {
			return false
		}
	}
	return true
}

// walk calls f for each node in the tree rooted at n, in pre-order,
// passing the stack of nodes from the current one out to n.
// If f returns false, walk does not descend into the node.
func walk(n ast.Node, f func(stack Stack) bool) {
	var stack []ast.Node
	var stackPos int

	ast.Inspect(n, func(n ast.Node) bool {
		if n == nil {
			stackPos++
			return true
		}
		if stackPos == 0 {
			old := len(stack)
			stack = append(stack, nil)
			stack = stack[:cap(stack)]
			copy(stack[len(stack)-old:], stack[:old])
			stackPos = len(stack) - old
		}
		stackPos--
		stack[stackPos] = n
		if !f(stack[stackPos:]) {
			stackPos++
			return false
		}
		return true
	})

	if stackPos != len(stack) {
		panic("internal stack error")
	}
}

// Walk calls f for each node in the tree rooted at n, in pre-order.
// stack[0] is the current node; the rest are its ancestors, innermost first.
func Walk(n ast.Node, f func(stack Stack)) {
	walk(n, func(stack Stack) bool {
		f(stack)
		return true
	})
}

// WalkRange is like Walk but only visits nodes overlapping [lo, hi).
func WalkRange(n ast.Node, lo, hi token.Pos, f func(stack Stack)) {
	walk(n, func(stack Stack) bool {
		if stack[0].End() < lo || hi <= stack[0].Pos() {
			return false
		}
		f(stack)
		return true
	})
}
