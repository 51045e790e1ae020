// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"go/ast"
	"go/token"
	"slices"

	"golang.org/x/xerrors"

	"rsc.io/rx/chain"
	"rsc.io/rx/rewrite"
	"rsc.io/rx/syntax"
)

// Apply queues edits carrying out the proposals made against t.
// Proposals that overlap an earlier one, in position order, are not
// applied and are returned as skipped. Proposals that cannot be
// rendered are reported in s.Errors.
func (s *Snapshot) Apply(t *syntax.Tree, list []*rewrite.Proposal) (applied, skipped []*rewrite.Proposal) {
	if len(list) == 0 {
		return nil, nil
	}
	list = slices.Clone(list)
	rewrite.Sort(list)
	bad := make(map[*rewrite.Proposal]bool)
	for _, p := range rewrite.Overlapping(list) {
		bad[p] = true
		skipped = append(skipped, p)
		s.r.Log.Debug().Str("rule", p.Rule).Str("pos", s.Addr(p.Node.Pos())).Msg("overlapping rewrite skipped")
	}

	name := s.Position(t.File.Package).Filename
	buf := s.buffer(name)
	if buf == nil {
		s.ErrorAt(t.File.Package, "file not loaded")
		return nil, skipped
	}
	for _, p := range list {
		if bad[p] {
			continue
		}
		if err := s.apply(buf, t, p); err != nil {
			s.ErrorAt(p.Node.Pos(), "%s: %v", p.Rule, err)
			continue
		}
		s.needImports(name, t, p.Imports)
		applied = append(applied, p)
	}
	return applied, skipped
}

func (s *Snapshot) apply(buf *Buffer, t *syntax.Tree, p *rewrite.Proposal) error {
	if p.IsDelete() {
		return s.delete(buf, p)
	}
	r := s.renderers[t.File]
	if r == nil {
		r = NewRenderer(s.fset, t.File, buf.old)
		s.renderers[t.File] = r
	}
	text, err := r.Render(p)
	if err != nil {
		return err
	}
	buf.ReplaceMinimal(p.Node.Pos(), p.Node.End(), text)
	return nil
}

// delete removes the statement p.Node. A statement alone on its
// lines takes its indentation and line break with it.
// Statements in the init or post slot of a control statement
// are deleted in place; other statements cannot be deleted.
func (s *Snapshot) delete(buf *Buffer, p *rewrite.Proposal) error {
	pos, end := p.Node.Pos(), p.Node.End()
	lines := func(ast.Node) { pos, end = lineRange(buf, pos, end) }
	slot := func(n ast.Node) bool {
		init, post := clauses(n)
		return p.Node == init || p.Node == post
	}
	m := chain.On(p.Parent).
		If(syntax.KindBlockStmt, lines).
		If(syntax.KindCaseClause, lines).
		If(syntax.KindCommClause, lines).
		IfWhere(syntax.KindForStmt, slot, nil).
		IfWhere(syntax.KindIfStmt, slot, nil).
		IfWhere(syntax.KindSwitchStmt, slot, nil).
		IfWhere(syntax.KindTypeSwitchStmt, slot, nil)
	if !m.Handled() {
		return xerrors.Errorf("cannot delete %T in %T", p.Node, p.Parent)
	}
	buf.Delete(pos, end)
	return nil
}

// clauses returns the init and post statements of a control statement.
func clauses(n ast.Node) (init, post ast.Stmt) {
	switch n := n.(type) {
	case *ast.ForStmt:
		return n.Init, n.Post
	case *ast.IfStmt:
		return n.Init, nil
	case *ast.SwitchStmt:
		return n.Init, nil
	case *ast.TypeSwitchStmt:
		return n.Init, nil
	}
	return nil, nil
}

// lineRange widens [pos, end) to whole lines if nothing but
// white space shares those lines with it.
func lineRange(buf *Buffer, pos, end token.Pos) (token.Pos, token.Pos) {
	text := buf.old
	lo, hi := int(pos-buf.pos), int(end-buf.pos)
	i := lo
	for i > 0 && (text[i-1] == ' ' || text[i-1] == '\t') {
		i--
	}
	j := hi
	for j < len(text) && (text[j] == ' ' || text[j] == '\t' || text[j] == '\r') {
		j++
	}
	if (i == 0 || text[i-1] == '\n') && (j == len(text) || text[j] == '\n') {
		if j < len(text) {
			j++
		}
		return buf.pos + token.Pos(i), buf.pos + token.Pos(j)
	}
	return pos, end
}

// needParen reports whether the expression newX needs parentheses
// when it replaces stack[0] as a child of stack[1].
func needParen(newX ast.Node, stack []ast.Node) bool {
	if len(stack) < 2 {
		return false
	}
	inner, outer := stack[0], stack[1]
	if _, ok := outer.(ast.Expr); !ok {
		// Context is not an expression; no chance of an expression breaking apart.
		return false
	}

	var prec int
	switch newX := newX.(type) {
	default:
		return false // nothing can tear these apart
	case *ast.BinaryExpr:
		prec = newX.Op.Precedence()
	case *ast.StarExpr, *ast.UnaryExpr:
		prec = token.UnaryPrec
	case *ast.KeyValueExpr:
		return false
	}

	switch outer := outer.(type) {
	default:
		return false
	case *ast.BinaryExpr:
		if inner == outer.Y {
			// a - (b - c) and a / (b * c) keep their grouping.
			return prec <= outer.Op.Precedence()
		}
		return prec < outer.Op.Precedence()
	case *ast.UnaryExpr:
		if x, ok := newX.(*ast.UnaryExpr); ok && x.Op == outer.Op {
			// - -x and & &x must not fuse into one token.
			return x.Op != token.NOT
		}
		return prec < token.UnaryPrec
	case *ast.StarExpr:
		return prec < token.UnaryPrec
	case *ast.SelectorExpr, *ast.TypeAssertExpr:
		return prec < token.HighestPrec
	case *ast.CallExpr:
		if inner == outer.Fun {
			return prec < token.HighestPrec
		}
		return false // arguments are safe
	case *ast.IndexExpr:
		if inner == outer.X {
			return prec < token.HighestPrec
		}
		return false // arguments are safe
	case *ast.IndexListExpr:
		if inner == outer.X {
			return prec < token.HighestPrec
		}
		return false
	case *ast.SliceExpr:
		if inner == outer.X {
			return prec < token.HighestPrec
		}
		return false // arguments are safe
	}
}
