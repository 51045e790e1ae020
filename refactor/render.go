// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"reflect"
	"strings"

	"golang.org/x/xerrors"

	"rsc.io/rx/rewrite"
)

// A Renderer turns proposals against one file into source text.
//
// Subtrees of a replacement that come from the file itself are
// reproduced from the original source text, comments included.
// Everything else is printed by go/printer. The two are joined with
// parentheses wherever operator precedence requires them.
type Renderer struct {
	fset *token.FileSet
	src  []byte
	orig map[ast.Node]bool
}

// NewRenderer returns a renderer for file, whose text is src.
func NewRenderer(fset *token.FileSet, file *ast.File, src []byte) *Renderer {
	orig := make(map[ast.Node]bool)
	ast.Inspect(file, func(n ast.Node) bool {
		if n != nil {
			orig[n] = true
		}
		return true
	})
	return &Renderer{fset: fset, src: src, orig: orig}
}

// Render returns the text to put in place of p.Node.
// It is an error to render a deletion.
func (r *Renderer) Render(p *rewrite.Proposal) (string, error) {
	if p.IsDelete() {
		return "", xerrors.Errorf("cannot render deletion")
	}
	var text string
	if r.orig[p.Replacement] {
		text = r.text(p.Replacement)
	} else {
		var err error
		text, err = r.print(p.Replacement)
		if err != nil {
			return "", err
		}
	}
	if p.Parent != nil && needParen(p.Replacement, []ast.Node{p.Node, p.Parent}) {
		text = "(" + text + ")"
	}
	return text, nil
}

func (r *Renderer) text(n ast.Node) string {
	lo := r.fset.Position(n.Pos()).Offset
	hi := r.fset.Position(n.End()).Offset
	return string(r.src[lo:hi])
}

// A hole is a placeholder identifier standing in for an original subtree.
type hole struct {
	id     *ast.Ident
	node   ast.Node
	parent ast.Node // copied parent of the hole, nil in statement context
}

func (r *Renderer) print(n ast.Node) (string, error) {
	c := &copier{orig: r.orig}
	root := c.copy(reflect.ValueOf(n), nil).Interface().(ast.Node)

	var buf bytes.Buffer
	if err := format.Node(&buf, token.NewFileSet(), root); err != nil {
		return "", xerrors.Errorf("printing replacement: %w", err)
	}
	text := buf.String()
	for _, h := range c.holes {
		repl := r.text(h.node)
		if h.parent != nil && needParen(h.node, []ast.Node{h.id, h.parent}) {
			repl = "(" + repl + ")"
		}
		if !strings.Contains(text, h.id.Name) {
			return "", xerrors.Errorf("lost %s while printing replacement", h.id.Name)
		}
		text = strings.Replace(text, h.id.Name, repl, 1)
	}
	return text, nil
}

var (
	identType = reflect.TypeOf((*ast.Ident)(nil))
	stmtType  = reflect.TypeOf((*ast.Stmt)(nil)).Elem()
	nodeType  = reflect.TypeOf((*ast.Node)(nil)).Elem()
	objType   = reflect.TypeOf((*ast.Object)(nil))
	scopeType = reflect.TypeOf((*ast.Scope)(nil))
)

// A copier copies the fresh part of a replacement tree,
// cutting holes where original subtrees hang off it.
type copier struct {
	orig  map[ast.Node]bool
	holes []hole
}

func (c *copier) copy(v reflect.Value, parent ast.Node) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() || v.Type() == objType || v.Type() == scopeType {
			return reflect.Zero(v.Type())
		}
		if !v.Type().Implements(nodeType) {
			return v
		}
		n := reflect.New(v.Type().Elem())
		self := n.Interface().(ast.Node)
		elem := v.Elem()
		if elem.Kind() != reflect.Struct {
			return v
		}
		for i := 0; i < elem.NumField(); i++ {
			c.setField(n.Elem().Field(i), elem.Field(i), self)
		}
		return n

	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		s := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			c.setField(s.Index(i), v.Index(i), parent)
		}
		return s

	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		return c.copy(v.Elem(), parent)
	}
	return v
}

// setField stores a copy of x into dst, a field or element of parent.
func (c *copier) setField(dst, x reflect.Value, parent ast.Node) {
	if x.Kind() == reflect.Interface && !x.IsNil() {
		x = x.Elem()
	}
	if x.Kind() == reflect.Pointer && !x.IsNil() {
		if n, ok := x.Interface().(ast.Node); ok && c.orig[n] {
			c.cut(dst, n, parent)
			return
		}
	}
	v := c.copy(x, parent)
	if v.IsValid() && v.Type().AssignableTo(dst.Type()) {
		dst.Set(v)
	}
}

// cut stores a placeholder for the original node n into dst,
// or n itself if no placeholder fits there.
func (c *copier) cut(dst reflect.Value, n ast.Node, parent ast.Node) {
	id := ast.NewIdent(fmt.Sprintf("__rx_%d_", len(c.holes)))
	switch {
	case dst.Type() == stmtType:
		if _, ok := n.(ast.Stmt); !ok {
			break
		}
		c.holes = append(c.holes, hole{id: id, node: n})
		dst.Set(reflect.ValueOf(&ast.ExprStmt{X: id}))
		return
	case identType.AssignableTo(dst.Type()):
		if _, ok := n.(ast.Expr); !ok {
			break
		}
		c.holes = append(c.holes, hole{id: id, node: n, parent: parent})
		dst.Set(reflect.ValueOf(id))
		return
	}
	if reflect.TypeOf(n).AssignableTo(dst.Type()) {
		dst.Set(reflect.ValueOf(n))
	}
}
