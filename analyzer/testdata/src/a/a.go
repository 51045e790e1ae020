package a

import (
	"strings"
	"time"
)

type name string

func f(s string, n name, ok bool, t time.Time) (bool, time.Duration) {
	if len(s) == 0 { // want `len-zero: compare the string with "" instead of taking its length`
		return false, 0
	}
	_ = "" + n // want `concat-empty: concatenating the empty string has no effect`

	return strings.Index(s, "x") != -1 && ok == true, time.Now().Sub(t) // want `index-contains: use strings.Contains` `bool-true: comparing with true has no effect` `time-since: use time.Since`
}

func g(ok, done bool) bool {
	return (ok && done) == false // want `bool-false: use ! instead of comparing with false`
}
