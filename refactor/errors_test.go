// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bytes"
	"errors"
	"go/token"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

func TestErrorList(t *testing.T) {
	var l ErrorList
	if l.Err() != nil {
		t.Fatalf("empty list: Err() = %v, want nil", l.Err())
	}
	at := func(file string, line int) token.Position {
		return token.Position{Filename: file, Line: line, Column: 1}
	}
	l.Add(&Error{Pos: at("b.go", 2), Msg: "second"})
	l.Add(&Error{Pos: at("a.go", 9), Msg: "first"})
	l.Add(&Error{Pos: at("a.go", 9), Msg: "first"})
	l.Add(errors.New("no position"))
	l.Add(nil)

	if n := l.Len(); n != 3 {
		t.Errorf("Len() = %d, want 3", n)
	}
	want := "no position\na.go:9:1: first\nb.go:2:1: second"
	if got := l.Error(); got != want {
		t.Errorf("Error():\nhave %q\nwant %q", got, want)
	}
}

func TestErrorListCollapse(t *testing.T) {
	var l ErrorList
	for i := 1; i <= 5; i++ {
		l.Add(&Error{Pos: token.Position{Filename: "x.go", Line: i}, Msg: "same"})
	}
	l.Add(&Error{Pos: token.Position{Filename: "x.go", Line: 9}, Msg: "other"})
	want := "x.go:1: same [× 5]\nx.go:9: other"
	if got := l.Error(); got != want {
		t.Errorf("Error():\nhave %q\nwant %q", got, want)
	}
}

func TestErrorListMerge(t *testing.T) {
	var a, b ErrorList
	a.Add(&Error{Msg: "one"})
	b.Add(&Error{Msg: "one"})
	b.Add(&Error{Msg: "two"})
	a.Add(&b)
	if n := a.Len(); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}
}

func TestErrorListPackages(t *testing.T) {
	var l ErrorList
	l.Add(packages.Error{Pos: "dir/a.go:3:7", Msg: "undefined: x"})
	l.Add(packages.Error{Pos: "-", Msg: "no Go files"})
	errs := l.Errors()
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2", len(errs))
	}
	if p := errs[0].Pos; p.Filename != "dir/a.go" || p.Line != 3 || p.Column != 7 {
		t.Errorf("position = %+v, want dir/a.go:3:7", p)
	}
	if errs[1].Pos.Filename != "" {
		t.Errorf("position = %+v, want none", errs[1].Pos)
	}
}

func TestFlushOnPanic(t *testing.T) {
	var buf bytes.Buffer
	var l ErrorList
	l.Add(&Error{Msg: "pending"})
	func() {
		defer func() { recover() }()
		defer l.FlushOnPanic(&buf)
		panic("boom")
	}()
	if !strings.Contains(buf.String(), "pending") {
		t.Errorf("FlushOnPanic wrote %q, want pending errors", buf.String())
	}
}
