// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analyzer exposes a rule registry as a go/analysis Analyzer,
// so that rewrite rules can run under go vet style drivers and gopls.
package analyzer

import (
	"fmt"
	"go/ast"
	"strconv"

	"golang.org/x/tools/go/analysis"

	"rsc.io/rx/refactor"
	"rsc.io/rx/rewrite"
	"rsc.io/rx/syntax"
)

// New returns an analyzer reporting one diagnostic, with one suggested
// fix, for each proposal the rules in reg make.
// The registry must not change while the analyzer runs.
func New(name, doc string, reg *rewrite.Registry) *analysis.Analyzer {
	a := &analysis.Analyzer{
		Name: name,
		Doc:  doc,
	}
	a.Run = func(pass *analysis.Pass) (any, error) {
		return nil, run(pass, reg)
	}
	return a
}

func run(pass *analysis.Pass, reg *rewrite.Registry) error {
	for _, f := range pass.Files {
		tf := pass.Fset.File(f.Pos())
		if tf == nil {
			continue
		}
		src, err := pass.ReadFile(tf.Name())
		if err != nil {
			return err
		}
		tree := &syntax.Tree{Fset: pass.Fset, File: f, Pkg: pass.Pkg, Info: pass.TypesInfo}
		r := refactor.NewRenderer(pass.Fset, f, src)
		for _, p := range reg.RunAll(tree, f, nil, false) {
			d, err := diagnostic(r, f, p)
			if err != nil {
				// A proposal that cannot be rendered is still worth reporting.
				d = analysis.Diagnostic{Pos: p.Node.Pos(), End: p.Node.End(), Category: p.Rule, Message: message(p)}
			}
			pass.Report(d)
		}
	}
	return nil
}

func message(p *rewrite.Proposal) string {
	if p.Message == "" {
		return p.Rule
	}
	return p.Rule + ": " + p.Message
}

func diagnostic(r *refactor.Renderer, f *ast.File, p *rewrite.Proposal) (analysis.Diagnostic, error) {
	var text string
	if !p.IsDelete() {
		var err error
		if text, err = r.Render(p); err != nil {
			return analysis.Diagnostic{}, err
		}
	}
	edits := []analysis.TextEdit{{Pos: p.Node.Pos(), End: p.Node.End(), NewText: []byte(text)}}
	for _, path := range p.Imports {
		if !imports(f, path) {
			edits = append(edits, analysis.TextEdit{
				Pos:     f.Name.End(),
				End:     f.Name.End(),
				NewText: []byte(fmt.Sprintf("\n\nimport %q", path)),
			})
		}
	}
	msg := message(p)
	return analysis.Diagnostic{
		Pos:      p.Node.Pos(),
		End:      p.Node.End(),
		Category: p.Rule,
		Message:  msg,
		SuggestedFixes: []analysis.SuggestedFix{{
			Message:   msg,
			TextEdits: edits,
		}},
	}, nil
}

func imports(f *ast.File, path string) bool {
	for _, spec := range f.Imports {
		if p, err := strconv.Unquote(spec.Path.Value); err == nil && p == path {
			return true
		}
	}
	return false
}
