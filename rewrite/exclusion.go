// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"go/ast"

	"rsc.io/rx/visit"
)

// An Exclusion is the set of nodes that rules have claimed during
// a pass. A claimed node and its whole subtree are off limits to
// every later rule. Nodes are compared by identity.
//
// An Exclusion has a single owner: the pass that created it.
// The zero Exclusion is empty and ready to use.
type Exclusion struct {
	nodes map[ast.Node]bool
}

// NewExclusion returns an empty exclusion set.
func NewExclusion() *Exclusion {
	return new(Exclusion)
}

// Add adds n to the set and reports whether it was newly added.
// Adding a node twice has no further effect.
func (e *Exclusion) Add(n ast.Node) bool {
	if n == nil || e.nodes[n] {
		return false
	}
	if e.nodes == nil {
		e.nodes = make(map[ast.Node]bool)
	}
	e.nodes[n] = true
	return true
}

// Has reports whether n itself is in the set.
func (e *Exclusion) Has(n ast.Node) bool {
	return e != nil && e.nodes[n]
}

// Covers reports whether stack[0] or any of its ancestors is in the set.
func (e *Exclusion) Covers(stack visit.Stack) bool {
	if e == nil || len(e.nodes) == 0 {
		return false
	}
	for _, n := range stack {
		if e.nodes[n] {
			return true
		}
	}
	return false
}

// Len returns the number of nodes in the set.
func (e *Exclusion) Len() int {
	if e == nil {
		return 0
	}
	return len(e.nodes)
}
