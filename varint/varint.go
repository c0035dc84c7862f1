// Package varint implements the Bitcoin compact size integer: values below 0xfd
// are a single byte, larger values are a marker byte (0xfd, 0xfe or 0xff)
// followed by a little endian uint16, uint32 or uint64. It writes forward using
// an io.Writer and reads forward using an io.Reader.
package varint

import (
	"encoding/binary"
	"errors"
	"io"

	"p256k.lol/chk"
)

const (
	Marker16 = 0xfd
	Marker32 = 0xfe
	Marker64 = 0xff

	// MaxLen is the longest encoding.
	MaxLen = 9
)

// ErrNonCanonical is returned when a value was encoded with a longer form than
// needed.
var ErrNonCanonical = errors.New("varint: non-canonical compact size encoding")

// Size returns the number of bytes the encoding of v occupies.
func Size(v uint64) int {
	switch {
	case v < Marker16:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return MaxLen
	}
}

// Append appends the encoding of v to dst.
func Append(dst []byte, v uint64) []byte {
	switch {
	case v < Marker16:
		return append(dst, byte(v))
	case v <= 0xffff:
		return binary.LittleEndian.AppendUint16(append(dst, Marker16), uint16(v))
	case v <= 0xffffffff:
		return binary.LittleEndian.AppendUint32(append(dst, Marker32), uint32(v))
	default:
		return binary.LittleEndian.AppendUint64(append(dst, Marker64), v)
	}
}

// Encode writes the encoding of v to w.
func Encode(w io.Writer, v uint64) (err error) {
	var buf [MaxLen]byte
	_, err = w.Write(Append(buf[:0], v))
	return
}

// Decode reads one compact size integer from r.
func Decode(r io.Reader) (v uint64, err error) {
	var buf [MaxLen]byte
	if _, err = io.ReadFull(r, buf[:1]); chk.D(err) {
		return
	}
	var n int
	var least uint64
	switch buf[0] {
	case Marker16:
		n, least = 2, Marker16
	case Marker32:
		n, least = 4, 0x10000
	case Marker64:
		n, least = 8, 0x100000000
	default:
		v = uint64(buf[0])
		return
	}
	if _, err = io.ReadFull(r, buf[1:1+n]); chk.D(err) {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return
	}
	switch n {
	case 2:
		v = uint64(binary.LittleEndian.Uint16(buf[1:]))
	case 4:
		v = uint64(binary.LittleEndian.Uint32(buf[1:]))
	default:
		v = binary.LittleEndian.Uint64(buf[1:])
	}
	if v < least {
		err = ErrNonCanonical
	}
	return
}

// Read decodes one compact size integer from the front of b, returning the
// value and the number of bytes consumed.
func Read(b []byte) (v uint64, n int, err error) {
	r := &counter{b: b}
	v, err = Decode(r)
	n = r.n
	return
}

type counter struct {
	b []byte
	n int
}

func (c *counter) Read(p []byte) (n int, err error) {
	if c.n >= len(c.b) {
		return 0, io.EOF
	}
	n = copy(p, c.b[c.n:])
	c.n += n
	return
}
