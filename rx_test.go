// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// TestRun runs the scripts in testdata. The archive comment holds the
// command line. Files named stdout and stderr hold the expected output,
// and files under want/ the expected contents of the rewritten files.
// Every other file is written to a fresh module directory.
func TestRun(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test cases")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			t.Log(file)
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module m\n"), 0666); err != nil {
				t.Fatal(err)
			}
			var wantStdout, wantStderr txtar.File
			var wantFiles []txtar.File
			for _, file := range ar.Files {
				switch {
				case file.Name == "stdout":
					wantStdout = file
					continue
				case file.Name == "stderr":
					wantStderr = file
					continue
				case strings.HasPrefix(file.Name, "want/"):
					wantFiles = append(wantFiles, file)
					continue
				}
				targ := filepath.Join(dir, file.Name)
				if err := os.MkdirAll(filepath.Dir(targ), 0777); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(targ, file.Data, 0666); err != nil {
					t.Fatal(err)
				}
			}

			var stdout, stderr bytes.Buffer
			cmd := newCommand(dir, &stdout, &stderr)
			args := strings.Fields(string(ar.Comment))
			if args == nil {
				args = []string{}
			}
			cmd.SetArgs(args)
			if err := cmd.Execute(); err != nil {
				fmt.Fprintf(&stderr, "ERROR: %v\n", err)
			}

			cmp := func(name string, have, want []byte) {
				have = trimSpace(have)
				want = trimSpace(want)
				if !bytes.Equal(have, want) {
					t.Errorf("%s:\n%s", name, have)
					t.Errorf("want:\n%s", want)
				}
			}
			cmp("stderr", stderr.Bytes(), wantStderr.Data)
			cmp("stdout", stdout.Bytes(), wantStdout.Data)
			for _, f := range wantFiles {
				name := strings.TrimPrefix(f.Name, "want/")
				data, err := os.ReadFile(filepath.Join(dir, name))
				if err != nil {
					t.Error(err)
					continue
				}
				cmp(name, data, f.Data)
			}
		})
	}
}

func trimSpace(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, " ")
	}
	return bytes.TrimRight(bytes.Join(lines, []byte("\n")), "\n")
}
