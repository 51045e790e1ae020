// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"go/token"

	"rsc.io/rx/edit"
)

// A Buffer is a queue of edits to apply to a file text.
// It's like edit.Buffer but uses token.Pos as coordinate space.
type Buffer struct {
	pos token.Pos
	end token.Pos
	old []byte
	ed  *edit.Buffer
}

func NewBufferAt(pos token.Pos, text []byte) *Buffer {
	return &Buffer{pos: pos, end: pos + token.Pos(len(text)), old: text, ed: edit.NewBuffer(text)}
}

func (b *Buffer) Bytes() []byte {
	return b.ed.Bytes()
}

func (b *Buffer) String() string {
	return b.ed.String()
}

func (b *Buffer) Delete(pos, end token.Pos) {
	b.ed.Delete(int(pos-b.pos), int(end-b.pos))
}

func (b *Buffer) Insert(pos token.Pos, new string) {
	b.ed.Insert(int(pos-b.pos), new)
}

func (b *Buffer) Replace(pos, end token.Pos, new string) {
	b.ed.Replace(int(pos-b.pos), int(end-b.pos), new)
}

// maxRangeTable bounds the size of the table commonRanges builds.
// Larger replacements are made as one edit.
const maxRangeTable = 1 << 20

// ReplaceMinimal replaces the text between pos and end with repl,
// leaving the bytes the two have in common untouched so that
// neighboring edits and comments survive.
func (b *Buffer) ReplaceMinimal(pos, end token.Pos, repl string) {
	text := string(b.old[pos-b.pos : end-b.pos])
	n := commonPrefix(text, repl)
	text, repl, pos = text[n:], repl[n:], pos+token.Pos(n)
	n = commonSuffix(text, repl)
	text, repl, end = text[:len(text)-n], repl[:len(repl)-n], end-token.Pos(n)
	if text == "" && repl == "" {
		return
	}
	if (len(text)+1)*(len(repl)+1) > maxRangeTable {
		b.Replace(pos, end, repl)
		return
	}

	posX := 0
	posY := 0
	for _, r := range commonRanges(text, repl) {
		b.Replace(pos+token.Pos(posX), pos+token.Pos(r.posX), repl[posY:r.posY])
		posX = r.posX + r.n
		posY = r.posY + r.n
	}
	b.Replace(pos+token.Pos(posX), end, repl[posY:])
}

func commonPrefix(x, y string) int {
	i := 0
	for i < len(x) && i < len(y) && x[i] == y[i] {
		i++
	}
	return i
}

func commonSuffix(x, y string) int {
	i := 0
	for i < len(x) && i < len(y) && x[len(x)-1-i] == y[len(y)-1-i] {
		i++
	}
	return i
}

type rangePair struct{ posX, posY, n int }

func commonRanges(x, y string) []rangePair {
	// t[i,j] = length of longest common substring of x[i:], y[j:]
	// t[i,len(y)] = t[len(x),j] = 0
	// t[i,j] = max {
	//	t[i+1,j]
	//	t[i,j+1]
	//	t[i+1,j+1] + 1 only if x[i] == y[j]
	// }
	t := make([][]int, len(x)+1)
	data := make([]int, (len(x)+1)*(len(y)+1))
	for i := range t {
		t[i], data = data[:len(y)+1], data[len(y)+1:]
	}

	for i := len(x) - 1; i >= 0; i-- {
		for j := len(y) - 1; j >= 0; j-- {
			m := t[i+1][j]
			if m < t[i][j+1] {
				m = t[i][j+1]
			}
			if x[i] == y[j] {
				if m < t[i+1][j+1]+1 {
					m = t[i+1][j+1] + 1
				}
			}
			t[i][j] = m
		}
	}

	i := 0
	j := 0
	var pairs []rangePair
	for i < len(x) && j < len(y) {
		switch m := t[i][j]; {
		case m == t[i+1][j+1]+1 && x[i] == y[j]:
			// Start a new range.
			posX := i
			posY := j
			for i < len(x) && j < len(y) && t[i][j] == t[i+1][j+1]+1 && x[i] == y[j] {
				i++
				j++
			}
			pairs = append(pairs, rangePair{posX, posY, i - posX})

		case m == t[i+1][j]:
			i++

		case m == t[i][j+1]:
			j++

		default:
			panic("inconsistent")
		}
	}
	return pairs
}
