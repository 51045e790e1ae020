// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rewrite runs many pattern rules over a syntax tree in a
// single traversal and collects the rewrites they propose.
//
// A Registry maps node kinds to rules. Each rule pairs a pattern,
// or a kind and predicate, with a Handler. RunAll walks the tree once;
// at each node it tries the rules registered for the node's kind in
// registration order. The first rule whose pattern matches and whose
// handler returns a Proposal wins the node.
//
// Handlers coordinate through an Exclusion set: a handler that claims
// a node keeps every later rule away from that node and its subtree.
package rewrite

import (
	"fmt"
	"go/ast"

	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"

	"rsc.io/rx/pattern"
	"rsc.io/rx/syntax"
	"rsc.io/rx/visit"
)

// A Handler is called for each match of its rule.
// It returns a proposed rewrite, or nil to decline.
// A declined match lets later rules try the same node.
type Handler func(m *Match) (*Proposal, error)

// A Rule is one registered pattern or predicate and its handler.
type Rule struct {
	Name    string
	Doc     string
	Pattern *pattern.Pattern // nil for kind rules
	Kind    syntax.Kind      // for kind rules

	pred    func(ast.Node) bool
	guard   visit.Guard
	handler Handler
}

// ScopedTo restricts r to nodes whose ancestor stack satisfies g.
// It returns r.
func (r *Rule) ScopedTo(g visit.Guard) *Rule {
	r.guard = g
	return r
}

// Scope returns the rule's scope guard, or nil if it applies everywhere.
func (r *Rule) Scope() visit.Guard {
	return r.guard
}

// kinds returns the node kinds r can match.
func (r *Rule) kinds() []syntax.Kind {
	if r.Pattern == nil {
		return []syntax.Kind{r.Kind}
	}
	if k := r.Pattern.Kind(); k != syntax.KindInvalid {
		return []syntax.Kind{k}
	}
	return syntax.Kinds(r.Pattern.Category)
}

func (r *Rule) String() string {
	if r.Pattern != nil {
		return fmt.Sprintf("%s: %s", r.Name, r.Pattern)
	}
	return fmt.Sprintf("%s: %v", r.Name, r.Kind)
}

// A Registry holds rules in registration order.
// It must not be modified while a traversal is running.
type Registry struct {
	rules  []*Rule
	byKind [syntax.NumKinds][]*Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return new(Registry)
}

// Register parses text as a pattern of category cat and adds a rule
// running h on each match. On a parse error nothing is registered.
func (reg *Registry) Register(name, text string, cat syntax.Category, h Handler) (*Rule, error) {
	p, err := pattern.Cached(text, cat)
	if err != nil {
		return nil, xerrors.Errorf("rule %s: %w", name, err)
	}
	return reg.RegisterPattern(name, p, h)
}

// RegisterPattern adds a rule running h on each match of p.
func (reg *Registry) RegisterPattern(name string, p *pattern.Pattern, h Handler) (*Rule, error) {
	if p == nil || h == nil {
		return nil, xerrors.Errorf("rule %s: missing pattern or handler", name)
	}
	r := &Rule{Name: name, Pattern: p, handler: h}
	if err := reg.add(r); err != nil {
		return nil, err
	}
	return r, nil
}

// RegisterKind adds a rule running h on every node of kind k
// for which pred, if not nil, reports true.
// The handler's Match has an empty environment.
func (reg *Registry) RegisterKind(name string, k syntax.Kind, pred func(ast.Node) bool, h Handler) (*Rule, error) {
	if k <= syntax.KindInvalid || k >= syntax.NumKinds {
		return nil, xerrors.Errorf("rule %s: invalid kind %v", name, k)
	}
	if h == nil {
		return nil, xerrors.Errorf("rule %s: missing handler", name)
	}
	r := &Rule{Name: name, Kind: k, pred: pred, handler: h}
	if err := reg.add(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (reg *Registry) add(r *Rule) error {
	if r.Name == "" {
		return xerrors.New("rule has no name")
	}
	if reg.Rule(r.Name) != nil {
		return xerrors.Errorf("rule %s: already registered", r.Name)
	}
	reg.rules = append(reg.rules, r)
	for _, k := range r.kinds() {
		reg.byKind[k] = append(reg.byKind[k], r)
	}
	return nil
}

// Rules returns the registered rules in registration order.
func (reg *Registry) Rules() []*Rule {
	return append([]*Rule(nil), reg.rules...)
}

// Rule returns the rule with the given name, or nil.
func (reg *Registry) Rule(name string) *Rule {
	for _, r := range reg.rules {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Len returns the number of registered rules.
func (reg *Registry) Len() int {
	return len(reg.rules)
}

// Remove removes the named rule and reports whether it was registered.
func (reg *Registry) Remove(name string) bool {
	for i, r := range reg.rules {
		if r.Name != name {
			continue
		}
		reg.rules = append(reg.rules[:i:i], reg.rules[i+1:]...)
		for _, k := range r.kinds() {
			list := reg.byKind[k]
			for j, x := range list {
				if x == r {
					reg.byKind[k] = append(list[:j:j], list[j+1:]...)
					break
				}
			}
		}
		return true
	}
	return false
}

// Filter returns a new registry holding the rules of reg
// for which keep reports true, in the same order.
func (reg *Registry) Filter(keep func(*Rule) bool) *Registry {
	out := NewRegistry()
	for _, r := range reg.rules {
		if keep(r) {
			out.add(r)
		}
	}
	return out
}

// RunAll runs the rules of reg over root, which belongs to tree,
// and returns the proposals in traversal order.
// Nodes in ex, and nodes that handlers add to ex during the walk,
// are skipped along with their subtrees. Comments are walked
// only if includeDocs is set. Rule failures are logged to the
// global zerolog logger.
func (reg *Registry) RunAll(tree *syntax.Tree, root ast.Node, ex *Exclusion, includeDocs bool) []*Proposal {
	d := NewDispatcher(reg)
	d.Log = log.Logger
	d.IncludeDocs = includeDocs
	return d.Run(tree, root, ex)
}
