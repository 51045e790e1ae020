// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff implements a Diff function that compares two inputs
// line by line and formats the result as a unified diff.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// context is the number of unchanged lines shown around each change.
const context = 3

type line struct {
	op   byte // ' ', '-', or '+'
	text string
}

// Diff returns a unified diff of old and new, in the format of diff -u,
// preceded by a "diff oldName newName" header line.
// It returns nil if the inputs are identical.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}
	lines := lineOps(string(old), string(new))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "diff %s %s\n--- %s\n+++ %s\n", oldName, newName, oldName, newName)
	for _, h := range hunks(lines) {
		h.format(&buf, lines)
	}
	return buf.Bytes(), nil
}

// lineOps returns the line-level edit script turning old into new.
// Within each run of changes, deletions come before insertions.
func lineOps(old, new string) []line {
	dmp := diffmatchpatch.New()
	a, b, index := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), index)

	var out, del, ins []line
	flush := func() {
		out = append(out, del...)
		out = append(out, ins...)
		del, ins = del[:0], ins[:0]
	}
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				flush()
				out = append(out, line{' ', text})
			case diffmatchpatch.DiffDelete:
				del = append(del, line{'-', text})
			case diffmatchpatch.DiffInsert:
				ins = append(ins, line{'+', text})
			}
		}
	}
	flush()
	return out
}

func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// A hunk is the half-open range [lo, hi) of lines shown together.
type hunk struct{ lo, hi int }

func hunks(lines []line) []hunk {
	var list []hunk
	for i, l := range lines {
		if l.op == ' ' {
			continue
		}
		lo := max(i-context, 0)
		hi := min(i+1+context, len(lines))
		if n := len(list); n > 0 && lo <= list[n-1].hi {
			list[n-1].hi = hi
			continue
		}
		list = append(list, hunk{lo, hi})
	}
	return list
}

func (h hunk) format(buf *bytes.Buffer, lines []line) {
	oldStart, newStart := 1, 1
	for _, l := range lines[:h.lo] {
		if l.op != '+' {
			oldStart++
		}
		if l.op != '-' {
			newStart++
		}
	}
	oldN, newN := 0, 0
	for _, l := range lines[h.lo:h.hi] {
		if l.op != '+' {
			oldN++
		}
		if l.op != '-' {
			newN++
		}
	}
	fmt.Fprintf(buf, "@@ -%s +%s @@\n", span(oldStart, oldN), span(newStart, newN))
	for _, l := range lines[h.lo:h.hi] {
		buf.WriteByte(l.op)
		buf.WriteString(l.text)
		if !strings.HasSuffix(l.text, "\n") {
			buf.WriteString("\n\\ No newline at end of file\n")
		}
	}
}

func span(start, n int) string {
	switch n {
	case 0:
		return fmt.Sprintf("%d,0", start-1)
	case 1:
		return fmt.Sprint(start)
	}
	return fmt.Sprintf("%d,%d", start, n)
}
