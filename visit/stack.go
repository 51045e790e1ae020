// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visit

import (
	"go/ast"

	"rsc.io/rx/syntax"
)

// A Stack is the path from a node out to the root of a walk:
// stack[0] is the node itself and stack[1:] are its ancestors,
// innermost first.
//
// The walk reuses the stack's storage; callers that keep a Stack
// after their callback returns must Copy it.
type Stack []ast.Node

// Node returns the current node.
func (s Stack) Node() ast.Node {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

// Parent returns the parent of the current node, or nil at the root.
func (s Stack) Parent() ast.Node {
	if len(s) < 2 {
		return nil
	}
	return s[1]
}

// Enclosing returns the innermost proper ancestor of kind k, or nil.
func (s Stack) Enclosing(k syntax.Kind) ast.Node {
	for i := 1; i < len(s); i++ {
		if syntax.KindOf(s[i]) == k {
			return s[i]
		}
	}
	return nil
}

// Copy returns a copy of s that is safe to retain.
func (s Stack) Copy() Stack {
	return append(Stack(nil), s...)
}

// A Guard is a predicate on the ancestor stack that restricts
// where a callback runs.
type Guard func(stack Stack) bool

// NearestBlock returns a guard that holds when the current node
// has an enclosing block statement and owner reports true for
// the node that owns that block: an if, for, or range statement,
// a function, a case clause, or another block.
func NearestBlock(owner func(n ast.Node) bool) Guard {
	return func(s Stack) bool {
		// A block that is the body of a statement is not inside a block.
		if _, ok := s.Node().(*ast.BlockStmt); ok && !isBlock(s.Parent()) {
			return false
		}
		for i := 1; i < len(s); i++ {
			if _, ok := s[i].(*ast.BlockStmt); ok {
				if i+1 < len(s) {
					return owner(s[i+1])
				}
				return false
			}
			if _, ok := s[i].(*ast.CaseClause); ok {
				return owner(s[i])
			}
			if _, ok := s[i].(*ast.CommClause); ok {
				return owner(s[i])
			}
		}
		return false
	}
}

func isBlock(n ast.Node) bool {
	switch n.(type) {
	case *ast.BlockStmt, *ast.CaseClause, *ast.CommClause:
		return true
	}
	return false
}

// IsLoop reports whether n is a for or range statement.
func IsLoop(n ast.Node) bool {
	switch n.(type) {
	case *ast.ForStmt, *ast.RangeStmt:
		return true
	}
	return false
}

// IsFunc reports whether n is a function declaration or literal.
func IsFunc(n ast.Node) bool {
	switch n.(type) {
	case *ast.FuncDecl, *ast.FuncLit:
		return true
	}
	return false
}

// InLoopBody holds for nodes directly inside the body of a loop:
// the nearest enclosing block is a for or range body.
var InLoopBody Guard = NearestBlock(IsLoop)

// TopLevel holds for nodes directly inside a function body.
var TopLevel Guard = NearestBlock(IsFunc)

// InFuncBody holds for nodes anywhere inside a function body.
func InFuncBody(s Stack) bool {
	for i := 1; i < len(s); i++ {
		switch fn := s[i].(type) {
		case *ast.FuncDecl:
			return s[i-1] == fn.Body
		case *ast.FuncLit:
			if s[i-1] == fn.Body {
				return true
			}
		}
	}
	return false
}

// Within returns a guard that holds when some proper ancestor has kind k.
func Within(k syntax.Kind) Guard {
	return func(s Stack) bool {
		return s.Enclosing(k) != nil
	}
}

// Not returns the negation of g.
func Not(g Guard) Guard {
	return func(s Stack) bool {
		return !g(s)
	}
}

// All returns a guard that holds when every one of guards holds.
func All(guards ...Guard) Guard {
	return func(s Stack) bool {
		return holds(guards, s)
	}
}
