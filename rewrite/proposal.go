// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"

	"golang.org/x/xerrors"

	"rsc.io/rx/match"
	"rsc.io/rx/pattern"
	"rsc.io/rx/syntax"
	"rsc.io/rx/visit"
)

// A Proposal is a rewrite suggested by a rule: replace Node
// with Replacement. The engine never renders text; applying a
// proposal is up to the caller.
type Proposal struct {
	Rule    string // name of the proposing rule
	Message string // human-readable description, may be empty

	Node        ast.Node // target node to replace
	Parent      ast.Node // parent of Node in the target tree, if known
	Replacement ast.Node // nil means delete Node, which must be a statement

	// Imports lists import paths the replacement needs.
	Imports []string
}

// IsDelete reports whether p deletes its node.
func (p *Proposal) IsDelete() bool {
	return p.Replacement == nil
}

// Sort sorts proposals by the position of their nodes,
// outer nodes before the nodes they contain.
func Sort(list []*Proposal) {
	sort.SliceStable(list, func(i, j int) bool {
		pi, pj := list[i].Node, list[j].Node
		if pi.Pos() != pj.Pos() {
			return pi.Pos() < pj.Pos()
		}
		return pi.End() > pj.End()
	})
}

// Overlapping returns the proposals in list whose nodes overlap
// the node of an earlier proposal in position order.
// list must be sorted.
func Overlapping(list []*Proposal) []*Proposal {
	var bad []*Proposal
	var end token.Pos
	for i, p := range list {
		if i > 0 && p.Node.Pos() < end {
			bad = append(bad, p)
			continue
		}
		end = p.Node.End()
	}
	return bad
}

// A Match is handed to a rule's handler for one match.
type Match struct {
	match.Result
	Rule  *Rule
	Tree  *syntax.Tree
	Stack visit.Stack // Root and its ancestors, innermost first

	ex *Exclusion
}

// Claim adds nodes to the exclusion set, keeping later rules away
// from them and their subtrees. With no arguments it claims the root.
func (m *Match) Claim(nodes ...ast.Node) {
	if len(nodes) == 0 {
		nodes = []ast.Node{m.Root}
	}
	for _, n := range nodes {
		m.ex.Add(n)
	}
}

// Replace claims the root and proposes replacing it with n.
func (m *Match) Replace(n ast.Node) *Proposal {
	m.Claim()
	return &Proposal{
		Rule:        m.Rule.Name,
		Message:     m.Rule.Doc,
		Node:        m.Root,
		Parent:      m.Stack.Parent(),
		Replacement: n,
	}
}

// Delete claims the root, which must be a statement, and proposes deleting it.
func (m *Match) Delete() (*Proposal, error) {
	if _, ok := m.Root.(ast.Stmt); !ok {
		return nil, xerrors.Errorf("cannot delete %T", m.Root)
	}
	return m.Replace(nil), nil
}

// Subst claims the root and proposes replacing it with template,
// a pattern of the root's category whose metavariables are
// bound by the match.
func (m *Match) Subst(template string) (*Proposal, error) {
	t, err := pattern.Cached(template, syntax.CategoryOf(m.Root))
	if err != nil {
		return nil, err
	}
	n, err := Substitute(t, m.Env)
	if err != nil {
		return nil, err
	}
	return m.Replace(n), nil
}

// Lookup returns the node bound to $name, or nil.
func (m *Match) Lookup(name string) ast.Node {
	n, _ := m.Env.Lookup(name)
	return n
}

// TypeOf returns the type of the expression bound to $name,
// or nil if it is unbound, not an expression, or of unknown type.
func (m *Match) TypeOf(name string) types.Type {
	return m.Tree.TypeOf(m.Env.Expr(name))
}
