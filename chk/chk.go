// Package chk logs a non-nil error at the named level and reports whether there
// was one, for use as `if err = f(); chk.E(err) { return }`.
package chk

import (
	"p256k.lol/lol"
)

var (
	F = lol.Main.Check.F
	E = lol.Main.Check.E
	W = lol.Main.Check.W
	I = lol.Main.Check.I
	D = lol.Main.Check.D
	T = lol.Main.Check.T
)
