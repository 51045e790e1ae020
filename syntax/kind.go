// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax describes the target trees that rx matches against:
// a closed enumeration of node kinds, the category each kind belongs to,
// and best-effort access to type information supplied by go/types.
package syntax

import (
	"go/ast"
	"strings"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// A Kind identifies the concrete type of a go/ast node.
// The set of kinds is closed: KindOf is the single place that maps
// node types to kinds, so adding a kind is a one-line change there.
type Kind int

const (
	KindInvalid Kind = iota

	// Expressions and types.
	KindBadExpr
	KindIdent
	KindEllipsis
	KindBasicLit
	KindFuncLit
	KindCompositeLit
	KindParenExpr
	KindSelectorExpr
	KindIndexExpr
	KindIndexListExpr
	KindSliceExpr
	KindTypeAssertExpr
	KindCallExpr
	KindStarExpr
	KindUnaryExpr
	KindBinaryExpr
	KindKeyValueExpr
	KindArrayType
	KindStructType
	KindFuncType
	KindInterfaceType
	KindMapType
	KindChanType

	// Statements.
	KindBadStmt
	KindDeclStmt
	KindEmptyStmt
	KindLabeledStmt
	KindExprStmt
	KindSendStmt
	KindIncDecStmt
	KindAssignStmt
	KindGoStmt
	KindDeferStmt
	KindReturnStmt
	KindBranchStmt
	KindBlockStmt
	KindIfStmt
	KindCaseClause
	KindSwitchStmt
	KindTypeSwitchStmt
	KindCommClause
	KindSelectStmt
	KindForStmt
	KindRangeStmt

	// Declarations.
	KindFile
	KindBadDecl
	KindGenDecl
	KindFuncDecl
	KindImportSpec
	KindValueSpec
	KindTypeSpec

	KindField
	KindFieldList

	// Documentation.
	KindComment
	KindCommentGroup

	NumKinds
)

// KindOf returns the kind of n.
// A typed nil pointer reports the kind of its type;
// a nil interface or an unknown node type reports KindInvalid.
func KindOf(n ast.Node) Kind {
	switch n.(type) {
	case *ast.BadExpr:
		return KindBadExpr
	case *ast.Ident:
		return KindIdent
	case *ast.Ellipsis:
		return KindEllipsis
	case *ast.BasicLit:
		return KindBasicLit
	case *ast.FuncLit:
		return KindFuncLit
	case *ast.CompositeLit:
		return KindCompositeLit
	case *ast.ParenExpr:
		return KindParenExpr
	case *ast.SelectorExpr:
		return KindSelectorExpr
	case *ast.IndexExpr:
		return KindIndexExpr
	case *ast.IndexListExpr:
		return KindIndexListExpr
	case *ast.SliceExpr:
		return KindSliceExpr
	case *ast.TypeAssertExpr:
		return KindTypeAssertExpr
	case *ast.CallExpr:
		return KindCallExpr
	case *ast.StarExpr:
		return KindStarExpr
	case *ast.UnaryExpr:
		return KindUnaryExpr
	case *ast.BinaryExpr:
		return KindBinaryExpr
	case *ast.KeyValueExpr:
		return KindKeyValueExpr
	case *ast.ArrayType:
		return KindArrayType
	case *ast.StructType:
		return KindStructType
	case *ast.FuncType:
		return KindFuncType
	case *ast.InterfaceType:
		return KindInterfaceType
	case *ast.MapType:
		return KindMapType
	case *ast.ChanType:
		return KindChanType

	case *ast.BadStmt:
		return KindBadStmt
	case *ast.DeclStmt:
		return KindDeclStmt
	case *ast.EmptyStmt:
		return KindEmptyStmt
	case *ast.LabeledStmt:
		return KindLabeledStmt
	case *ast.ExprStmt:
		return KindExprStmt
	case *ast.SendStmt:
		return KindSendStmt
	case *ast.IncDecStmt:
		return KindIncDecStmt
	case *ast.AssignStmt:
		return KindAssignStmt
	case *ast.GoStmt:
		return KindGoStmt
	case *ast.DeferStmt:
		return KindDeferStmt
	case *ast.ReturnStmt:
		return KindReturnStmt
	case *ast.BranchStmt:
		return KindBranchStmt
	case *ast.BlockStmt:
		return KindBlockStmt
	case *ast.IfStmt:
		return KindIfStmt
	case *ast.CaseClause:
		return KindCaseClause
	case *ast.SwitchStmt:
		return KindSwitchStmt
	case *ast.TypeSwitchStmt:
		return KindTypeSwitchStmt
	case *ast.CommClause:
		return KindCommClause
	case *ast.SelectStmt:
		return KindSelectStmt
	case *ast.ForStmt:
		return KindForStmt
	case *ast.RangeStmt:
		return KindRangeStmt

	case *ast.File:
		return KindFile
	case *ast.BadDecl:
		return KindBadDecl
	case *ast.GenDecl:
		return KindGenDecl
	case *ast.FuncDecl:
		return KindFuncDecl
	case *ast.ImportSpec:
		return KindImportSpec
	case *ast.ValueSpec:
		return KindValueSpec
	case *ast.TypeSpec:
		return KindTypeSpec

	case *ast.Field:
		return KindField
	case *ast.FieldList:
		return KindFieldList

	case *ast.Comment:
		return KindComment
	case *ast.CommentGroup:
		return KindCommentGroup
	}
	return KindInvalid
}

// A Category is the grammatical category of a node:
// patterns declare the category they must match.
type Category int

const (
	Other Category = iota
	Expr
	Stmt
	Decl
	Doc
)

func (c Category) String() string {
	switch c {
	case Expr:
		return "expr"
	case Stmt:
		return "stmt"
	case Decl:
		return "decl"
	case Doc:
		return "doc"
	}
	return "other"
}

// ParseCategory parses a category name as written in rule files.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expr", "expression":
		return Expr, true
	case "stmt", "statement":
		return Stmt, true
	}
	return Other, false
}

// ParseKind parses a kind name as printed by Kind.String,
// such as Ident or SelectorExpr.
func ParseKind(s string) (Kind, bool) {
	s = strings.TrimSpace(s)
	for k := KindInvalid + 1; k < NumKinds; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return KindInvalid, false
}

// Category reports the category of nodes of kind k.
func (k Kind) Category() Category {
	switch {
	case k >= KindBadExpr && k <= KindChanType:
		return Expr
	case k >= KindBadStmt && k <= KindRangeStmt:
		return Stmt
	case k >= KindFile && k <= KindTypeSpec:
		return Decl
	case k == KindComment || k == KindCommentGroup:
		return Doc
	}
	return Other
}

// CategoryOf reports the category of n.
func CategoryOf(n ast.Node) Category {
	return KindOf(n).Category()
}

// Kinds returns all valid kinds of category c, in declaration order.
func Kinds(c Category) []Kind {
	var list []Kind
	for k := KindInvalid + 1; k < NumKinds; k++ {
		if k.Category() == c {
			list = append(list, k)
		}
	}
	return list
}
