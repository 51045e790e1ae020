// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pattern parses rewrite patterns: Go expressions or statements
// in which identifiers spelled $name are metavariables.
//
// A metavariable stands for exactly one subtree of whatever the grammar
// expects at its position: an operand, a type, a selector name, or,
// when it appears alone as a statement, a whole statement.
//
//	"" + $x                  // expression pattern
//	len($s) == 0             // expression pattern
//	if $c { $then }          // statement pattern
//
// Everything else in the pattern is concrete and must match verbatim,
// modulo formatting and parentheses.
package pattern

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"rsc.io/rx/syntax"
)

// varPrefix is the spelling of $name after rewriting, so that the
// Go parser sees an ordinary identifier.
const varPrefix = "__rx_"

// A Pattern is a parsed pattern. It is immutable.
type Pattern struct {
	Text     string          // pattern text as written
	Category syntax.Category // syntax.Expr or syntax.Stmt
	Root     ast.Node        // root of the pattern tree
	Fset     *token.FileSet  // positions within the rewritten text

	vars  map[ast.Node]string // metavariable nodes: *ast.Ident, or *ast.ExprStmt in statement slots
	names []string            // metavariable names, in order of first appearance
}

// An Error reports a malformed pattern.
type Error struct {
	Text   string // pattern text
	Offset int    // byte offset in Text, or -1
	Msg    string
}

func (e *Error) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("pattern %q: %s", e.Text, e.Msg)
	}
	return fmt.Sprintf("pattern %q: offset %d: %s", e.Text, e.Offset, e.Msg)
}

// Parse parses text as a pattern of category cat,
// which must be syntax.Expr or syntax.Stmt.
func Parse(text string, cat syntax.Category) (*Pattern, error) {
	if cat != syntax.Expr && cat != syntax.Stmt {
		return nil, &Error{text, -1, fmt.Sprintf("unsupported category %v", cat)}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &Error{text, -1, "empty pattern"}
	}
	if i := strings.Index(text, varPrefix); i >= 0 {
		return nil, &Error{text, i, "reserved identifier prefix " + varPrefix}
	}
	src, origin, err := rewriteVars(text)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	var root ast.Node
	switch cat {
	case syntax.Expr:
		x, err := parser.ParseExprFrom(fset, "pattern", src, 0)
		if err != nil {
			return nil, parseError(text, origin, 0, err)
		}
		root = syntax.Unparen(x)

	case syntax.Stmt:
		const prefix = "func() {\n"
		x, err := parser.ParseExprFrom(fset, "pattern", prefix+src+"\n}", 0)
		if err != nil {
			return nil, parseError(text, origin, len(prefix), err)
		}
		lit, ok := x.(*ast.FuncLit)
		if !ok {
			return nil, &Error{text, -1, "not a statement"}
		}
		switch n := len(lit.Body.List); n {
		case 0:
			return nil, &Error{text, -1, "missing statement"}
		case 1:
			root = lit.Body.List[0]
		default:
			return nil, &Error{text, -1, fmt.Sprintf("found %d statements, want 1", n)}
		}
	}

	p := &Pattern{
		Text:     text,
		Category: cat,
		Root:     root,
		Fset:     fset,
		vars:     make(map[ast.Node]string),
	}
	seen := make(map[string]bool)
	ast.Inspect(root, func(n ast.Node) bool {
		var id *ast.Ident
		switch n := n.(type) {
		case *ast.Ident:
			id = n
		case *ast.ExprStmt:
			if x, ok := n.X.(*ast.Ident); ok && strings.HasPrefix(x.Name, varPrefix) {
				p.vars[n] = strings.TrimPrefix(x.Name, varPrefix)
			}
		}
		if id == nil || !strings.HasPrefix(id.Name, varPrefix) {
			return true
		}
		name := strings.TrimPrefix(id.Name, varPrefix)
		p.vars[id] = name
		if !seen[name] {
			seen[name] = true
			p.names = append(p.names, name)
		}
		return true
	})
	return p, nil
}

// MustParse is like Parse but panics if the pattern cannot be parsed.
// It is meant for patterns fixed at compile time.
func MustParse(text string, cat syntax.Category) *Pattern {
	p, err := Parse(text, cat)
	if err != nil {
		panic(err)
	}
	return p
}

// Var reports whether n is a metavariable occurrence of p,
// and if so, its name (without the $).
func (p *Pattern) Var(n ast.Node) (string, bool) {
	if p == nil || n == nil {
		return "", false
	}
	name, ok := p.vars[n]
	return name, ok
}

// Vars returns the metavariable names of p in order of first appearance.
func (p *Pattern) Vars() []string {
	return append([]string(nil), p.names...)
}

// HasVar reports whether p mentions $name.
func (p *Pattern) HasVar(name string) bool {
	for _, n := range p.names {
		if n == name {
			return true
		}
	}
	return false
}

// IsWildcard reports whether the whole pattern is a single metavariable,
// which matches any node of the pattern's category.
func (p *Pattern) IsWildcard() bool {
	_, ok := p.vars[p.Root]
	return ok
}

// Kind returns the kind of node the pattern can match,
// or syntax.KindInvalid for a wildcard pattern.
func (p *Pattern) Kind() syntax.Kind {
	if p.IsWildcard() {
		return syntax.KindInvalid
	}
	return syntax.KindOf(p.Root)
}

func (p *Pattern) String() string {
	return p.Text
}

// rewriteVars replaces each $name outside literals with varPrefix+name.
// origin[i] is the offset in text of byte i of the result.
func rewriteVars(text string) (string, []int, error) {
	var buf strings.Builder
	origin := make([]int, 0, len(text)+1)
	emit := func(s string, at int) {
		buf.WriteString(s)
		for range len(s) {
			origin = append(origin, at)
		}
	}

	var q byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case q != 0:
			switch c {
			case q:
				q = 0
			case '\\':
				if q != '`' && i+1 < len(text) {
					emit(text[i:i+2], i)
					i++
					continue
				}
			}
		case c == '\'' || c == '"' || c == '`':
			q = c
		case c == '$':
			j := i + 1
			for j < len(text) {
				r, size := utf8.DecodeRuneInString(text[j:])
				if r != '_' && !unicode.IsLetter(r) && (j == i+1 || !unicode.IsDigit(r)) {
					break
				}
				j += size
			}
			if j == i+1 {
				return "", nil, &Error{text, i, "$ must be followed by an identifier"}
			}
			emit(varPrefix+text[i+1:j], i)
			i = j - 1
			continue
		}
		emit(text[i:i+1], i)
	}
	if q != 0 {
		return "", nil, &Error{text, -1, "unterminated literal"}
	}
	origin = append(origin, len(text))
	return buf.String(), origin, nil
}

// parseError converts a parser error on the rewritten source
// into an *Error positioned in the original text.
// skip is the length of any wrapper text before the pattern.
func parseError(text string, origin []int, skip int, err error) error {
	list, ok := err.(scanner.ErrorList)
	if !ok || len(list) == 0 {
		return &Error{text, -1, err.Error()}
	}
	e := list[0]
	off := e.Pos.Offset - skip
	switch {
	case off < 0:
		off = 0
	case off >= len(origin):
		off = len(origin) - 1
	}
	return &Error{text, origin[off], e.Msg}
}
