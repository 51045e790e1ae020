// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import (
	"go/ast"
	"go/token"
	"go/types"
	"slices"
	"sort"
	"strings"

	"golang.org/x/mod/module"
	"golang.org/x/xerrors"

	"rsc.io/rx/pattern"
	"rsc.io/rx/refactor"
	"rsc.io/rx/rewrite"
	"rsc.io/rx/syntax"
	"rsc.io/rx/visit"
)

const veto = "!"

var scopes = map[string]visit.Guard{
	"loop": visit.InLoopBody,
	"func": visit.InFuncBody,
	"top":  visit.TopLevel,
}

// Compile installs the rules of f in reg, in file order.
// A rule that fails to compile is left out and reported;
// the other rules are still installed. The returned error,
// if any, is a *refactor.ErrorList with one entry per bad rule.
func Compile(reg *rewrite.Registry, f *File) error {
	var errs refactor.ErrorList
	for _, s := range f.Rules {
		if err := compile(reg, s); err != nil {
			name := s.Name
			if name == "" {
				name = "rule"
			}
			errs.Add(&refactor.Error{
				Pos: token.Position{Filename: f.Name, Line: s.Line},
				Msg: name + ": " + err.Error(),
			})
		}
	}
	return errs.Err()
}

// A compiled rule holds what a rule's handler needs at match time.
type compiled struct {
	spec  *Spec
	where []constraint
	kinds []kindConstraint
	mode  int
}

const (
	modeSubst = iota
	modeVeto
	modeDelete
)

type constraint struct {
	name       string
	typ        string
	underlying bool
}

type kindConstraint struct {
	name  string
	kinds []syntax.Kind
}

func compile(reg *rewrite.Registry, s *Spec) error {
	if s.Name == "" {
		return xerrors.New("missing name")
	}
	cat := syntax.Expr
	if s.Category != "" {
		var ok bool
		if cat, ok = syntax.ParseCategory(s.Category); !ok {
			return xerrors.Errorf("unknown category %q", s.Category)
		}
	}
	p, err := pattern.Cached(s.Pattern, cat)
	if err != nil {
		return err
	}

	c := &compiled{spec: s}
	switch strings.TrimSpace(s.Replace) {
	case veto:
		c.mode = modeVeto
	case "":
		if cat != syntax.Stmt {
			return xerrors.New("missing replace; only statement rules can delete")
		}
		c.mode = modeDelete
	default:
		t, err := pattern.Cached(s.Replace, cat)
		if err != nil {
			return xerrors.Errorf("replace: %w", err)
		}
		for _, name := range t.Vars() {
			if !p.HasVar(name) {
				return xerrors.Errorf("replace uses $%s, which the pattern does not bind", name)
			}
		}
	}

	var names []string
	for name := range s.Where {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		typ := strings.TrimSpace(s.Where[name])
		name := strings.TrimPrefix(name, "$")
		if !p.HasVar(name) {
			return xerrors.Errorf("where: $%s not in pattern", name)
		}
		under := strings.HasPrefix(typ, "~")
		typ = strings.TrimSpace(strings.TrimPrefix(typ, "~"))
		if typ == "" {
			return xerrors.Errorf("where: missing type for $%s", name)
		}
		c.where = append(c.where, constraint{name, typ, under})
	}

	names = names[:0]
	for name := range s.Kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, key := range names {
		name := strings.TrimPrefix(key, "$")
		if !p.HasVar(name) {
			return xerrors.Errorf("kinds: $%s not in pattern", name)
		}
		kc := kindConstraint{name: name}
		for _, f := range strings.Split(s.Kinds[key], ",") {
			k, ok := syntax.ParseKind(f)
			if !ok {
				return xerrors.Errorf("kinds: unknown kind %q for $%s", strings.TrimSpace(f), name)
			}
			kc.kinds = append(kc.kinds, k)
		}
		c.kinds = append(c.kinds, kc)
	}

	for _, path := range s.Imports {
		if err := module.CheckImportPath(path); err != nil {
			return xerrors.Errorf("imports: %w", err)
		}
	}

	var guard visit.Guard
	if s.Scope != "" {
		var ok bool
		if guard, ok = scopes[s.Scope]; !ok {
			return xerrors.Errorf("unknown scope %q", s.Scope)
		}
	}

	r, err := reg.RegisterPattern(s.Name, p, c.handle)
	if err != nil {
		return err
	}
	r.Doc = s.Doc
	if guard != nil {
		r.ScopedTo(guard)
	}
	return nil
}

func (c *compiled) handle(m *rewrite.Match) (*rewrite.Proposal, error) {
	for _, k := range c.kinds {
		if !k.holds(m) {
			return nil, nil
		}
	}
	for _, w := range c.where {
		if !w.holds(m) {
			return nil, nil
		}
	}
	switch c.mode {
	case modeVeto:
		m.Claim()
		return nil, nil
	case modeDelete:
		return m.Delete()
	}
	p, err := m.Subst(c.spec.Replace)
	if err != nil {
		return nil, err
	}
	p.Imports = c.spec.Imports
	return p, nil
}

func (w constraint) holds(m *rewrite.Match) bool {
	t := m.TypeOf(w.name)
	if t == nil {
		return false
	}
	if w.underlying {
		t = t.Underlying()
	}
	if b, ok := t.(*types.Basic); ok && b.Info()&types.IsUntyped != 0 {
		t = types.Default(t)
	}
	return types.TypeString(t, types.RelativeTo(m.Tree.Pkg)) == w.typ
}

func (k kindConstraint) holds(m *rewrite.Match) bool {
	n := m.Lookup(k.name)
	if x, ok := n.(ast.Expr); ok {
		n = syntax.Unparen(x)
	}
	return slices.Contains(k.kinds, syntax.KindOf(n))
}
