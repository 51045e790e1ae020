// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rules reads declarative rewrite rules from YAML
// and installs them in a rewrite.Registry.
//
// A rule file looks like:
//
//	rules:
//	  - name: concat-empty
//	    doc: drop concatenation with the empty string
//	    pattern: '"" + $x'
//	    replace: $x
//	    where:
//	      x: ~string
//
// The category (expr or stmt, default expr) says what kind of syntax
// the pattern and replacement are. A replacement of "!" makes a veto
// rule, which claims the matched node without proposing anything so
// later rules leave it alone. An empty replacement in a statement rule
// deletes the matched statement.
//
// Each where entry constrains the type of a metavariable. A type is
// written as go/types prints it, with packages qualified by path and
// the current package left unqualified; a leading ~ compares the
// underlying type. A metavariable of unknown type never satisfies a
// constraint.
//
// Each kinds entry limits a metavariable to a comma-separated list of
// syntax kinds, named as in go/ast (Ident, SelectorExpr, CallExpr).
// Rules that would drop or repeat the evaluation of an expression use
// it to stay away from expressions with side effects.
//
// The scope is one of loop (inside a loop body), func (inside a
// function body), or top (directly in a function's top-level block).
package rules

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// A File is a parsed rule file.
type File struct {
	Name  string  `yaml:"-"`
	Rules []*Spec `yaml:"rules"`
}

// A Spec is the declaration of one rule.
type Spec struct {
	Name     string            `yaml:"name"`
	Doc      string            `yaml:"doc"`
	Category string            `yaml:"category"`
	Pattern  string            `yaml:"pattern"`
	Replace  string            `yaml:"replace"`
	Where    map[string]string `yaml:"where"`
	Kinds    map[string]string `yaml:"kinds"`
	Scope    string            `yaml:"scope"`
	Imports  []string          `yaml:"imports"`

	Line int `yaml:"-"` // line of the declaration in its file
}

var specFields = map[string]bool{
	"name":     true,
	"doc":      true,
	"category": true,
	"pattern":  true,
	"replace":  true,
	"where":    true,
	"kinds":    true,
	"scope":    true,
	"imports":  true,
}

// UnmarshalYAML decodes a rule, rejecting unknown fields
// and recording the rule's line.
func (s *Spec) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return xerrors.Errorf("line %d: rule must be a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if !specFields[k.Value] {
			return xerrors.Errorf("line %d: field %s not found in rule", k.Line, k.Value)
		}
	}
	type plain Spec
	if err := n.Decode((*plain)(s)); err != nil {
		return err
	}
	s.Line = n.Line
	return nil
}

// Parse parses a rule file. The filename is used in error messages.
func Parse(data []byte, filename string) (*File, error) {
	f := &File{Name: filename}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && err != io.EOF {
		return nil, xerrors.Errorf("%s: %w", filename, err)
	}
	f.Name = filename
	return f, nil
}

// Load reads and parses the rule file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

//go:embed builtin.yaml
var builtinYAML []byte

// Builtin returns the built-in rule set.
func Builtin() *File {
	f, err := Parse(builtinYAML, "builtin.yaml")
	if err != nil {
		panic(err)
	}
	return f
}

// Names returns the names of the rules in f, sorted.
func (f *File) Names() []string {
	var names []string
	for _, s := range f.Rules {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Select returns a copy of f holding only the named rules.
// Names are comma-separated; an empty list selects every rule.
func (f *File) Select(list string) *File {
	if strings.TrimSpace(list) == "" {
		return f
	}
	want := make(map[string]bool)
	for _, name := range strings.Split(list, ",") {
		want[strings.TrimSpace(name)] = true
	}
	out := &File{Name: f.Name}
	for _, s := range f.Rules {
		if want[s.Name] {
			out.Rules = append(out.Rules, s)
		}
	}
	return out
}
