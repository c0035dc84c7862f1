package der

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"p256k.lol/hex"
)

func TestSignatureRoundTrip(t *testing.T) {
	for range 1000 {
		var r, s [32]byte
		frand.Read(r[:])
		frand.Read(s[:])
		// exercise short integers and the high bit padding byte
		switch frand.Intn(4) {
		case 0:
			r[0], r[1] = 0, 0
		case 1:
			s[0] |= 0x80
		}
		b, err := MarshalSignature(r[:], s[:])
		require.NoError(t, err)
		require.LessOrEqual(t, len(b), MaxSignatureLen)
		r2, s2, err := ParseSignature(b)
		require.NoError(t, err)
		require.Equal(t, r, r2)
		require.Equal(t, s, s2)
	}
}

func TestSignatureHighBits(t *testing.T) {
	var r, s [32]byte
	for i := range r {
		r[i], s[i] = 0xff, 0xff
	}
	b, err := MarshalSignature(r[:], s[:])
	require.NoError(t, err)
	require.Len(t, b, MaxSignatureLen)
	require.Equal(t, []byte{0x30, 0x46, 0x02, 0x21, 0x00, 0xff}, b[:6])
}

func TestParseSignatureErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"300602010102010100",
		"3003020101",
		"300602010102ff01",
		"3006020181020101",
		"3106020101020101",
		"30070202000102010" + "1",
		"3026022101" + strings.Repeat("ff", 32) + "020101",
	} {
		b, err := hex.Dec(in)
		require.NoError(t, err)
		_, _, err = ParseSignature(b)
		require.True(t, errors.Is(err, ErrParse), in)
	}
}
