// Package hex encodes and decodes lowercase hexadecimal using
// github.com/templexxx/xhex. Decoding accepts either case.
package hex

import (
	"encoding/hex"
	"fmt"

	"github.com/templexxx/xhex"

	"p256k.lol/chk"
)

// InvalidHexError is returned when a string is not an even length sequence of
// hexadecimal digits.
type InvalidHexError struct {
	Len int
	Err error
}

func (e *InvalidHexError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("hex: odd length %d", e.Len)
	}
	return fmt.Sprintf("hex: invalid input of length %d: %v", e.Len, e.Err)
}

func (e *InvalidHexError) Unwrap() error { return e.Err }

// EncLen returns the length of the encoding of n bytes.
func EncLen(n int) int { return n * 2 }

// DecLen returns the length of the decoding of n hex characters.
var DecLen = hex.DecodedLen

// Enc returns the lowercase hex encoding of b.
func Enc(b []byte) (s string) { return string(EncAppend(nil, b)) }

// EncAppend appends the lowercase hex encoding of src to dst.
func EncAppend(dst, src []byte) (b []byte) {
	if len(src) == 0 {
		return dst
	}
	l := len(dst)
	dst = append(dst, make([]byte, EncLen(len(src)))...)
	xhex.Encode(dst[l:], src)
	return dst
}

// Dec decodes a hex string.
func Dec(s string) (b []byte, err error) { return DecAppend(nil, []byte(s)) }

// DecAppend decodes hex src and appends the bytes to dst. On error dst is
// returned unchanged.
func DecAppend(dst, src []byte) (b []byte, err error) {
	if len(src)%2 != 0 {
		return dst, &InvalidHexError{Len: len(src)}
	}
	if len(src) == 0 {
		return dst, nil
	}
	var norm []byte
	if norm, err = normalize(src); chk.D(err) {
		return dst, &InvalidHexError{Len: len(src), Err: err}
	}
	l := len(dst)
	b = append(dst, make([]byte, DecLen(len(src)))...)
	if err = xhex.Decode(b[l:], norm); chk.D(err) {
		return dst, &InvalidHexError{Len: len(src), Err: err}
	}
	return
}

// normalize checks that src holds only hex digits and folds A-F to lowercase,
// copying only when needed so the caller's buffer is never modified.
func normalize(src []byte) (out []byte, err error) {
	out = src
	copied := false
	for i, c := range src {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
			if !copied {
				out = make([]byte, len(src))
				copy(out, src)
				copied = true
			}
			out[i] = c + ('a' - 'A')
		default:
			return nil, hex.InvalidByteError(c)
		}
	}
	return
}
