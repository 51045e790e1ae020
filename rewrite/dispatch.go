// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"fmt"
	"go/ast"
	"runtime/debug"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"

	"rsc.io/rx/match"
	"rsc.io/rx/syntax"
	"rsc.io/rx/visit"
)

// Stats counts what a Dispatcher did.
type Stats struct {
	Visited   int // nodes with at least one candidate rule
	Attempted int // rule applications tried
	Matched   int // rule applications whose pattern matched
	Proposed  int // proposals returned
	Failed    int // handler errors and panics
}

func (s Stats) String() string {
	return fmt.Sprintf("visited %d, attempted %d, matched %d, proposed %d, failed %d",
		s.Visited, s.Attempted, s.Matched, s.Proposed, s.Failed)
}

// A Dispatcher runs the rules of a registry over one tree at a time.
// It is not safe for concurrent use; use one Dispatcher per goroutine.
type Dispatcher struct {
	Log         zerolog.Logger
	IncludeDocs bool
	Stats       Stats

	reg     *Registry
	matcher *match.Matcher
	tree    *syntax.Tree
	ex      *Exclusion
	out     []*Proposal

	cur  ast.Node // node being dispatched
	done bool     // cur has a proposal
}

// NewDispatcher returns a dispatcher for the rules in reg.
// It logs nothing until Log is set.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{Log: zerolog.Nop(), reg: reg}
}

// Run walks root, which belongs to tree, and returns the proposals
// made by the rules. ex may be nil, in which case a fresh set is used.
func (d *Dispatcher) Run(tree *syntax.Tree, root ast.Node, ex *Exclusion) []*Proposal {
	if ex == nil {
		ex = NewExclusion()
	}
	if tree == nil {
		tree = new(syntax.Tree)
	}
	d.tree, d.ex, d.out = tree, ex, nil
	d.cur, d.done = nil, false
	d.matcher = match.New(tree.Info)

	var b visit.Builder
	b.IncludeDocs(d.IncludeDocs)
	for k, rules := range d.reg.byKind {
		for _, r := range rules {
			b.On(syntax.Kind(k), func(stack visit.Stack) visit.Action {
				return d.dispatch(r, stack)
			})
		}
	}
	b.Walk(root)

	d.Log.Debug().Str("stats", d.Stats.String()).Int("proposals", len(d.out)).Msg("pass done")
	out := d.out
	d.tree, d.ex, d.out, d.cur = nil, nil, nil, nil
	return out
}

// dispatch tries rule r at stack[0].
func (d *Dispatcher) dispatch(r *Rule, stack visit.Stack) visit.Action {
	n := stack[0]
	if n != d.cur {
		d.cur, d.done = n, false
		d.Stats.Visited++
	}
	if d.ex.Covers(stack) {
		return visit.SkipChildren
	}
	if d.done {
		return visit.Continue
	}
	p, err := d.try(r, stack)
	if err != nil {
		d.Stats.Failed++
		d.Log.Warn().Err(err).
			Str("rule", r.Name).
			Stringer("pos", d.tree.Position(n.Pos())).
			Msg("rule failed")
		return visit.Continue
	}
	if p == nil {
		if d.ex.Covers(stack) {
			return visit.SkipChildren
		}
		return visit.Continue
	}
	if p.Rule == "" {
		p.Rule = r.Name
	}
	if p.Node == nil {
		p.Node = n
	}
	if p.Parent == nil && p.Node == n {
		p.Parent = stack.Parent()
	}
	d.Stats.Proposed++
	d.done = true
	d.out = append(d.out, p)
	if d.ex.Covers(stack) {
		return visit.SkipChildren
	}
	return visit.Continue
}

// try runs rule r at stack[0]: its scope guard, its pattern or
// predicate, and its handler. A panic in any of them becomes an error.
func (d *Dispatcher) try(r *Rule, stack visit.Stack) (p *Proposal, err error) {
	defer func() {
		if e := recover(); e != nil {
			p = nil
			err = xerrors.Errorf("panic: %v\n%s", e, debug.Stack())
		}
	}()

	n := stack[0]
	if r.guard != nil && !r.guard(stack) {
		return nil, nil
	}
	d.Stats.Attempted++
	var res *match.Result
	if r.Pattern != nil {
		var ok bool
		if res, ok = d.matcher.Result(r.Pattern, n); !ok {
			return nil, nil
		}
	} else {
		if r.pred != nil && !r.pred(n) {
			return nil, nil
		}
		res = &match.Result{Root: n}
	}
	d.Stats.Matched++

	return r.handler(&Match{
		Result: *res,
		Rule:   r,
		Tree:   d.tree,
		Stack:  stack.Copy(),
		ex:     d.ex,
	})
}
