// Package text has helpers for moving byte strings in and out of buffers:
// compact size length prefixed strings and bounded fixed width copies.
package text

import (
	"p256k.lol/varint"
)

// Prefix returns a new slice holding the compact size length of src followed by
// src.
func Prefix(src []byte) (b []byte) { return AppendBinary(nil, src) }

// AppendBinary is a straight append with a compact size length prefix.
func AppendBinary(dst, src []byte) (b []byte) {
	// if an allocation or two may occur, do it all in one immediately.
	minLen := len(dst) + varint.Size(uint64(len(src))) + len(src)
	if cap(dst) < minLen {
		tmp := make([]byte, 0, minLen)
		dst = append(tmp, dst...)
	}
	dst = varint.Append(dst, uint64(len(src)))
	b = append(dst, src...)
	return
}

// ExtractBinary decodes the data based on the length prefix and returns it and
// the remaining data from the provided slice. The returned slices alias b.
func ExtractBinary(b []byte) (str, rem []byte, err error) {
	var l uint64
	var read int
	if l, read, err = varint.Read(b); chk.D(err) {
		err = errorf.D("failed to read compact size length prefix: %w", err)
		return
	}
	if uint64(len(b)-read) < l {
		err = errorf.D("insufficient data in buffer, require %d have %d",
			l, len(b)-read)
		return
	}
	str = b[read : read+int(l)]
	rem = b[read+int(l):]
	return
}

// CopyFixed copies src into the full capacity of dst, writing at most
// min(len(src), cap(dst)) bytes, and returns the number written. It never
// reads past src or writes past the capacity of dst.
func CopyFixed(dst, src []byte) (n int) {
	n = copy(dst[:cap(dst)], src)
	if n < len(src) {
		log.T.F("truncated copy of %d bytes into %d", len(src), n)
	}
	return
}
