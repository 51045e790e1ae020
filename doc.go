// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Rx rewrites Go programs using structural rewrite rules.
//
// Usage:
//
//	rx [flags] [packages]
//
// Rx loads and type-checks the named packages (default "."), including
// their tests, runs every rule over every file, and writes the rewritten
// files back to disk. The --diff flag causes rx to print a diff of the
// intended changes instead.
//
// # Rules
//
// A rule pairs a pattern with a replacement. Patterns and replacements
// are Go expressions or statements in which $name stands for any
// expression (or, alone as a statement, any statement). A name used
// twice must match equal code both times, so
//
//	$x = $x
//
// matches self-assignments only. Rules are read from YAML files:
//
//	rules:
//	  - name: concat-empty
//	    doc: concatenating the empty string has no effect
//	    pattern: '"" + $x'
//	    replace: '$x'
//	    where:
//	      x: ~string
//
// The where map constrains the types of matched expressions. A type
// prefixed by ~ matches any type with that underlying type. The kinds
// map limits a metavariable to some kinds of syntax, as in x: Ident,
// keeping rules that drop or repeat an evaluation away from calls
// and other expressions with side effects. Scope
// restricts a rule to loop bodies (loop), function bodies (func),
// or code outside functions (top). Imports lists the packages the
// replacement needs; rx adds them and removes imports the rewrite
// left unused.
//
// A replacement of "!" makes the rule a veto: code it matches is left
// alone by every later rule. An empty replacement in a statement rule
// deletes the statement.
//
// Rules run in order. At most one rule rewrites a given piece of code,
// and code inside a rewritten expression is not rewritten again in the
// same run.
//
// Rx has a built-in rule set, listed by
//
//	rx --list
//
// The --no-builtin flag disables it, --rules adds rule files, and
// --only restricts the run to a comma-separated list of rule names.
//
// # Configuration
//
// Every flag may also be set by an RX_ environment variable, as in
// RX_DIFF=1 or RX_NO_BUILTIN=1, or in a .rx.yaml file in the current
// directory (or the file named by --config):
//
//	diff: true
//	rules: [team.yaml]
//	only: concat-empty,len-zero
//
// Rule files named in a configuration file are relative to that file.
//
// # Vet
//
// The rxvet command runs the built-in rules as a go/analysis checker,
// reporting each rewrite as a diagnostic with a suggested fix.
package main
