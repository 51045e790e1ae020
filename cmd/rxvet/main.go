// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Rxvet reports the built-in rewrite rules as analysis diagnostics.
//
// Usage:
//
//	rxvet [-fix] [packages]
//
// It can also run as a vet tool: go vet -vettool=$(which rxvet).
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"rsc.io/rx/analyzer"
	"rsc.io/rx/rewrite"
	"rsc.io/rx/rules"
)

func main() {
	reg := rewrite.NewRegistry()
	if err := rules.Compile(reg, rules.Builtin()); err != nil {
		panic(err)
	}
	singlechecker.Main(analyzer.New("rx", "report code that the built-in rewrite rules would simplify", reg))
}
