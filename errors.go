// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "fmt"

// errUsage indicates a bad command line or rule selection. Usage errors are
// independent of the source code being rewritten.
type errUsage struct {
	err string
}

func newErrUsage(f string, args ...any) *errUsage {
	return &errUsage{fmt.Sprintf(f, args...)}
}

func (e *errUsage) Error() string {
	return "usage: " + e.err
}

// errPrecondition indicates that the command was well-formed, but the
// loaded packages could not be rewritten. For example, they failed to
// type-check, or a rewrite produced a file that no longer parses.
type errPrecondition struct {
	err string
}

func newErrPrecondition(f string, args ...any) *errPrecondition {
	return &errPrecondition{fmt.Sprintf(f, args...)}
}

func (e *errPrecondition) Error() string {
	return e.err
}
