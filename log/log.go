// Package log exposes the leveled printers of the main lol.Logger.
package log

import (
	"p256k.lol/lol"
)

var (
	F = lol.Main.Log.F
	E = lol.Main.Log.E
	W = lol.Main.Log.W
	I = lol.Main.Log.I
	D = lol.Main.Log.D
	T = lol.Main.Log.T
)
