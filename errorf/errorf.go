// Package errorf constructs an error with fmt.Errorf semantics and logs it at
// the named level at the site where it was created.
package errorf

import (
	"p256k.lol/lol"
)

var (
	F = lol.Main.Errorf.F
	E = lol.Main.Errorf.E
	W = lol.Main.Errorf.W
	I = lol.Main.Errorf.I
	D = lol.Main.Errorf.D
	T = lol.Main.Errorf.T
)
