// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"
)

var kindOfTests = []struct {
	n    ast.Node
	kind Kind
	cat  Category
}{
	{nil, KindInvalid, Other},
	{&ast.Ident{Name: "x"}, KindIdent, Expr},
	{(*ast.BinaryExpr)(nil), KindBinaryExpr, Expr},
	{&ast.ChanType{}, KindChanType, Expr},
	{&ast.IfStmt{}, KindIfStmt, Stmt},
	{&ast.RangeStmt{}, KindRangeStmt, Stmt},
	{&ast.FuncDecl{}, KindFuncDecl, Decl},
	{&ast.Field{}, KindField, Other},
	{&ast.CommentGroup{}, KindCommentGroup, Doc},
}

func TestKindOf(t *testing.T) {
	for _, tt := range kindOfTests {
		k := KindOf(tt.n)
		if k != tt.kind {
			t.Errorf("KindOf(%T) = %v, want %v", tt.n, k, tt.kind)
		}
		if c := k.Category(); c != tt.cat {
			t.Errorf("%v.Category() = %v, want %v", k, c, tt.cat)
		}
	}
}

func TestKindString(t *testing.T) {
	if s := KindIfStmt.String(); s != "IfStmt" {
		t.Errorf("KindIfStmt.String() = %q", s)
	}
	if s := Kind(-1).String(); s != "Kind(-1)" {
		t.Errorf("Kind(-1).String() = %q", s)
	}
}

func TestKindsCoverCategories(t *testing.T) {
	seen := 0
	for _, c := range []Category{Expr, Stmt, Decl, Doc, Other} {
		for _, k := range Kinds(c) {
			if k.Category() != c {
				t.Errorf("Kinds(%v) includes %v of category %v", c, k, k.Category())
			}
			seen++
		}
	}
	if seen != int(NumKinds)-1 {
		t.Errorf("categories cover %d kinds, want %d", seen, NumKinds-1)
	}
}

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{"expr": Expr, "Expression": Expr, " stmt ": Stmt, "statement": Stmt} {
		c, ok := ParseCategory(in)
		if !ok || c != want {
			t.Errorf("ParseCategory(%q) = %v, %v, want %v", in, c, ok, want)
		}
	}
	if _, ok := ParseCategory("decl"); ok {
		t.Errorf("ParseCategory(decl) succeeded")
	}
}

func TestParseKind(t *testing.T) {
	for k := KindInvalid + 1; k < NumKinds; k++ {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v, want %v", k.String(), got, ok, k)
		}
	}
	for _, bad := range []string{"", "Invalid", "NumKinds", "ident", "*ast.Ident"} {
		if k, ok := ParseKind(bad); ok {
			t.Errorf("ParseKind(%q) = %v, want failure", bad, k)
		}
	}
}

func TestChildren(t *testing.T) {
	x, err := parser.ParseExpr("a + f(b, c)")
	if err != nil {
		t.Fatal(err)
	}
	kids := Children(x)
	if len(kids) != 2 || KindOf(kids[0]) != KindIdent || KindOf(kids[1]) != KindCallExpr {
		t.Fatalf("Children(a + f(b, c)) = %v", kids)
	}
	if n := len(Children(kids[1])); n != 3 {
		t.Errorf("Children(f(b, c)) has %d nodes, want 3", n)
	}
}

func TestTreeUnknown(t *testing.T) {
	var tree *Tree
	id := &ast.Ident{Name: "x"}
	if tree.TypeOf(id) != nil || tree.ObjectOf(id) != nil || tree.IsType(id) {
		t.Errorf("nil tree answered a type query")
	}
	tree = &Tree{}
	if tree.TypeOf(id) != nil {
		t.Errorf("tree without info answered TypeOf")
	}
}

func TestTreeTypeOf(t *testing.T) {
	const src = "package p\n\nfunc f(s string) int { return len(s) }\n"
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, 0)
	if err != nil {
		t.Fatal(err)
	}
	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
	conf := types.Config{Importer: importer.Default()}
	pkg, err := conf.Check("p", fset, []*ast.File{f}, info)
	if err != nil {
		t.Fatal(err)
	}
	tree := &Tree{Fset: fset, File: f, Pkg: pkg, Info: info}

	ret := f.Decls[0].(*ast.FuncDecl).Body.List[0].(*ast.ReturnStmt)
	call := ret.Results[0].(*ast.CallExpr)
	if typ := tree.TypeOf(call); typ == nil || typ.String() != "int" {
		t.Errorf("TypeOf(len(s)) = %v, want int", typ)
	}
	if typ := tree.TypeOf(call.Args[0]); typ == nil || typ.String() != "string" {
		t.Errorf("TypeOf(s) = %v, want string", typ)
	}
	if pos := tree.Position(call.Pos()); pos.Line != 3 {
		t.Errorf("Position(len(s)) = %v, want line 3", pos)
	}
}
