package der

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/cryptobyte/asn1"
	"lukechampine.com/frand"

	"p256k.lol/hex"
)

const compressedPrefix = "3036301006072a8648ce3d020106052b8104000a032200"
const uncompressedPrefix = "3056301006072a8648ce3d020106052b8104000a034200"

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.Dec(s)
	require.NoError(t, err)
	return b
}

func TestMarshalKnownPrefix(t *testing.T) {
	for _, test := range []struct {
		key    []byte
		prefix string
	}{
		{append([]byte{0x02}, frand.Bytes(32)...), compressedPrefix},
		{append([]byte{0x04}, frand.Bytes(64)...), uncompressedPrefix},
	} {
		b, err := NewSecp256k1(test.key).Marshal()
		require.NoError(t, err)
		require.Equal(t, test.prefix, hex.Enc(b[:len(b)-len(test.key)]))
		require.True(t, bytes.Equal(test.key, b[len(b)-len(test.key):]))
	}
}

func TestRoundTrip(t *testing.T) {
	key := append([]byte{0x03}, frand.Bytes(32)...)
	b, err := NewSecp256k1(key).Marshal()
	require.NoError(t, err)
	spki, err := ParseSubjectPublicKeyInfo(b)
	require.NoError(t, err)
	require.True(t, spki.Algorithm.Equal(Secp256k1()))
	require.Equal(t, key, spki.PublicKey.Bytes)
	require.Zero(t, spki.PublicKey.UnusedBits)
	require.Equal(t, 33*8, spki.PublicKey.BitLength())
	curve, err := spki.Algorithm.NamedCurve()
	require.NoError(t, err)
	require.True(t, curve.Equal(OIDSecp256k1))
	require.Equal(t, "1.3.132.0.10", curve.String())
}

func TestAlgorithmWithoutParameters(t *testing.T) {
	spki := &SubjectPublicKeyInfo{
		Algorithm: AlgorithmIdentifier{Algorithm: OID{1, 3, 101, 112}},
		PublicKey: BitString{Bytes: frand.Bytes(32)},
	}
	b, err := spki.Marshal()
	require.NoError(t, err)
	got, err := ParseSubjectPublicKeyInfo(b)
	require.NoError(t, err)
	require.Nil(t, got.Algorithm.Parameters)
	require.True(t, got.Algorithm.Equal(spki.Algorithm))
	require.False(t, got.Algorithm.Equal(Secp256k1()))
	_, err = got.Algorithm.NamedCurve()
	require.True(t, errors.Is(err, ErrParse))
}

func TestParseErrors(t *testing.T) {
	valid := compressedPrefix + strings.Repeat("02", 33)
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"outer not sequence", "3136" + valid[4:]},
		{"outer is integer", "020100"},
		{"trailing after outer", valid + "00"},
		{"truncated", valid[:len(valid)-2]},
		{"missing oid", "30263000" + "032200" + strings.Repeat("02", 33)},
		{"algorithm not sequence", "30360410" + valid[8:]},
		{"trailing in algorithm", "3038301206072a8648ce3d020106052b8104000a0500032200" +
			strings.Repeat("02", 33)},
		{"missing bit string", "3012301006072a8648ce3d020106052b8104000a"},
		{"extra element", "3038301006072a8648ce3d020106052b8104000a03220002" +
			strings.Repeat("02", 32) + "0500"},
		{"unused bits 8", "3036301006072a8648ce3d020106052b8104000a032208" +
			strings.Repeat("00", 33)},
		{"empty bit string with unused bits", "3015301006072a8648ce3d020106052b8104000a030101"},
		{"nonzero padding", "3016301006072a8648ce3d020106052b8104000a03020101"},
		{"empty bit string content", "3014301006072a8648ce3d020106052b8104000a0300"},
	}
	for _, test := range tests {
		_, err := ParseSubjectPublicKeyInfo(mustHex(t, test.in))
		require.Error(t, err, test.name)
		require.True(t, errors.Is(err, ErrParse), test.name)
	}
}

func TestMarshalRejectsBadBitString(t *testing.T) {
	for _, bs := range []BitString{
		{Bytes: []byte{0xff}, UnusedBits: 8},
		{Bytes: []byte{0xff}, UnusedBits: -1},
		{Bytes: nil, UnusedBits: 1},
		{Bytes: []byte{0x01}, UnusedBits: 1},
	} {
		spki := &SubjectPublicKeyInfo{Algorithm: Secp256k1(), PublicKey: bs}
		_, err := spki.Marshal()
		require.True(t, errors.Is(err, ErrParse))
	}
	spki := &SubjectPublicKeyInfo{Algorithm: Secp256k1(),
		PublicKey: BitString{Bytes: []byte{0xf0}, UnusedBits: 4}}
	b, err := spki.Marshal()
	require.NoError(t, err)
	got, err := ParseSubjectPublicKeyInfo(b)
	require.NoError(t, err)
	require.Equal(t, 4, got.PublicKey.UnusedBits)
	require.Equal(t, 4, got.PublicKey.BitLength())
}

func TestPEM(t *testing.T) {
	key := append([]byte{0x02}, frand.Bytes(32)...)
	s, err := NewSecp256k1(key).EncodePEM()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(s, "-----BEGIN PUBLIC KEY-----\n"))
	spki, err := DecodePEM([]byte(s))
	require.NoError(t, err)
	require.Equal(t, key, spki.PublicKey.Bytes)

	_, err = DecodePEM([]byte("not pem"))
	require.True(t, errors.Is(err, ErrParse))
	_, err = DecodePEM([]byte(strings.ReplaceAll(s, "PUBLIC KEY", "PRIVATE KEY")))
	require.True(t, errors.Is(err, ErrParse))
}

func TestNodes(t *testing.T) {
	oid := Node{Tag: asn1.OBJECT_IDENTIFIER, Content: []byte{0x2b, 0x81, 0x04, 0x00, 0x0a}}
	null := Node{Tag: asn1.NULL}
	seq, err := NewConstructed(asn1.SEQUENCE, oid, null)
	require.NoError(t, err)
	require.True(t, seq.Constructed())
	b, err := seq.Marshal()
	require.NoError(t, err)
	require.Equal(t, "300906052b8104000a0500", hex.Enc(b))
	parsed, err := ParseNode(b)
	require.NoError(t, err)
	require.True(t, parsed.Equal(seq))
	children, err := parsed.Children()
	require.NoError(t, err)
	require.Len(t, children, 2)
	require.True(t, children[0].Equal(oid))
	require.True(t, children[1].Equal(null))
	_, err = oid.Children()
	require.True(t, errors.Is(err, ErrParse))
	_, err = ParseNode(append(b, 0))
	require.True(t, errors.Is(err, ErrParse))
}

func TestConstructedTags(t *testing.T) {
	for _, test := range []struct {
		tag         asn1.Tag
		constructed bool
	}{
		{asn1.INTEGER, false},
		{asn1.BIT_STRING, false},
		{asn1.OBJECT_IDENTIFIER, false},
		{asn1.NULL, false},
		{asn1.SEQUENCE, true},
		{asn1.SET, true},
		{asn1.Tag(0).ContextSpecific().Constructed(), true},
		{asn1.Tag(1).ContextSpecific(), false},
	} {
		n := Node{Tag: test.tag, Content: []byte{1}}
		require.Equal(t, test.constructed, n.Constructed(), "%#x", uint8(test.tag))
		_, err := n.Children()
		if !test.constructed {
			require.True(t, errors.Is(err, ErrParse), "%#x", uint8(test.tag))
		}
	}
}
