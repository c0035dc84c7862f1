package der

import (
	encasn1 "encoding/asn1"
	"encoding/pem"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"p256k.lol/chk"
)

// OID is an ASN.1 OBJECT IDENTIFIER.
type OID = encasn1.ObjectIdentifier

var (
	// OIDECPublicKey is id-ecPublicKey from RFC 5480.
	OIDECPublicKey = OID{1, 2, 840, 10045, 2, 1}
	// OIDSecp256k1 names the secp256k1 curve (SEC 2).
	OIDSecp256k1 = OID{1, 3, 132, 0, 10}
)

// PEMType is the PEM block type of an encoded SubjectPublicKeyInfo.
const PEMType = "PUBLIC KEY"

// BitString is an ASN.1 BIT STRING. UnusedBits counts the padding bits at the
// end of the last byte.
type BitString struct {
	Bytes      []byte
	UnusedBits int
}

// BitLength returns the number of meaningful bits.
func (bs BitString) BitLength() int { return len(bs.Bytes)*8 - bs.UnusedBits }

func (bs BitString) validate() error {
	switch {
	case bs.UnusedBits < 0 || bs.UnusedBits > 7:
		return parseError("bit string unused bit count %d outside 0-7", bs.UnusedBits)
	case len(bs.Bytes) == 0 && bs.UnusedBits != 0:
		return parseError("empty bit string with %d unused bits", bs.UnusedBits)
	case len(bs.Bytes) > 0 &&
		bs.Bytes[len(bs.Bytes)-1]&(1<<uint(bs.UnusedBits)-1) != 0:
		return parseError("bit string padding bits are not zero")
	}
	return nil
}

func readBitString(s *cryptobyte.String) (bs BitString, err error) {
	var content cryptobyte.String
	if !s.ReadASN1(&content, asn1.BIT_STRING) {
		err = parseError("expected BIT STRING")
		return
	}
	var unused uint8
	if !content.ReadUint8(&unused) {
		err = parseError("bit string missing unused bit count")
		return
	}
	bs = BitString{Bytes: append([]byte(nil), content...), UnusedBits: int(unused)}
	err = bs.validate()
	return
}

func (bs BitString) append(b *cryptobyte.Builder) {
	if err := bs.validate(); chk.D(err) {
		b.SetError(err)
		return
	}
	b.AddASN1(asn1.BIT_STRING, func(c *cryptobyte.Builder) {
		c.AddUint8(uint8(bs.UnusedBits))
		c.AddBytes(bs.Bytes)
	})
}

// AlgorithmIdentifier names a key algorithm and its optional parameters.
type AlgorithmIdentifier struct {
	Algorithm  OID
	Parameters *Node
}

// Secp256k1 returns the AlgorithmIdentifier of an EC public key on the
// secp256k1 curve: id-ecPublicKey with the curve OID as parameters.
func Secp256k1() AlgorithmIdentifier {
	return AlgorithmIdentifier{
		Algorithm: OIDECPublicKey,
		Parameters: &Node{
			Tag:     asn1.OBJECT_IDENTIFIER,
			Content: []byte{0x2b, 0x81, 0x04, 0x00, 0x0a},
		},
	}
}

// Equal reports whether both identifiers name the same algorithm with the same
// parameters.
func (a AlgorithmIdentifier) Equal(o AlgorithmIdentifier) bool {
	if !a.Algorithm.Equal(o.Algorithm) {
		return false
	}
	if a.Parameters == nil || o.Parameters == nil {
		return a.Parameters == nil && o.Parameters == nil
	}
	return a.Parameters.Equal(*o.Parameters)
}

// NamedCurve returns the parameters as an OID, as used by EC keys.
func (a AlgorithmIdentifier) NamedCurve() (oid OID, err error) {
	if a.Parameters == nil || a.Parameters.Tag != asn1.OBJECT_IDENTIFIER {
		err = parseError("algorithm parameters are not a named curve")
		return
	}
	b := cryptobyte.NewBuilder(nil)
	a.Parameters.Append(b)
	var enc []byte
	if enc, err = b.Bytes(); chk.D(err) {
		return
	}
	s := cryptobyte.String(enc)
	if !s.ReadASN1ObjectIdentifier(&oid) {
		err = parseError("malformed named curve OID")
	}
	return
}

func readAlgorithmIdentifier(s *cryptobyte.String) (a AlgorithmIdentifier, err error) {
	var seq cryptobyte.String
	if !s.ReadASN1(&seq, asn1.SEQUENCE) {
		err = parseError("expected algorithm identifier SEQUENCE")
		return
	}
	if !seq.ReadASN1ObjectIdentifier(&a.Algorithm) {
		err = parseError("algorithm identifier has no OID")
		return
	}
	if !seq.Empty() {
		var p Node
		if p, err = ReadNode(&seq); chk.D(err) {
			return
		}
		a.Parameters = &p
	}
	if !seq.Empty() {
		err = parseError("%d trailing bytes in algorithm identifier", len(seq))
	}
	return
}

func (a AlgorithmIdentifier) append(b *cryptobyte.Builder) {
	b.AddASN1(asn1.SEQUENCE, func(c *cryptobyte.Builder) {
		c.AddASN1ObjectIdentifier(a.Algorithm)
		if a.Parameters != nil {
			a.Parameters.Append(c)
		}
	})
}

// SubjectPublicKeyInfo is the X.509 public key interchange structure.
type SubjectPublicKeyInfo struct {
	Algorithm AlgorithmIdentifier
	PublicKey BitString
}

// NewSecp256k1 wraps an encoded secp256k1 public key.
func NewSecp256k1(key []byte) *SubjectPublicKeyInfo {
	return &SubjectPublicKeyInfo{
		Algorithm: Secp256k1(),
		PublicKey: BitString{Bytes: append([]byte(nil), key...)},
	}
}

// ParseSubjectPublicKeyInfo decodes a DER SubjectPublicKeyInfo. The outer
// element must be a SEQUENCE holding exactly an AlgorithmIdentifier and a BIT
// STRING, with nothing after it.
func ParseSubjectPublicKeyInfo(b []byte) (spki *SubjectPublicKeyInfo, err error) {
	input := cryptobyte.String(b)
	var outer Node
	if outer, err = ReadNode(&input); chk.D(err) {
		return
	}
	if outer.Tag != asn1.SEQUENCE {
		err = parseError("expected SEQUENCE, got tag %#x", uint8(outer.Tag))
		return
	}
	if !input.Empty() {
		err = parseError("%d trailing bytes after SubjectPublicKeyInfo", len(input))
		return
	}
	s := cryptobyte.String(outer.Content)
	spki = &SubjectPublicKeyInfo{}
	if spki.Algorithm, err = readAlgorithmIdentifier(&s); chk.D(err) {
		spki = nil
		return
	}
	if spki.PublicKey, err = readBitString(&s); chk.D(err) {
		spki = nil
		return
	}
	if !s.Empty() {
		spki, err = nil, parseError("%d trailing bytes in SubjectPublicKeyInfo", len(s))
	}
	return
}

// Marshal returns the DER encoding.
func (spki *SubjectPublicKeyInfo) Marshal() ([]byte, error) {
	b := cryptobyte.NewBuilder(nil)
	b.AddASN1(asn1.SEQUENCE, func(c *cryptobyte.Builder) {
		spki.Algorithm.append(c)
		spki.PublicKey.append(c)
	})
	return b.Bytes()
}

// EncodePEM returns the PEM armored DER encoding.
func (spki *SubjectPublicKeyInfo) EncodePEM() (s string, err error) {
	var b []byte
	if b, err = spki.Marshal(); chk.D(err) {
		return
	}
	s = string(pem.EncodeToMemory(&pem.Block{Type: PEMType, Bytes: b}))
	return
}

// DecodePEM decodes the first PEM block of text, which must be a PUBLIC KEY.
func DecodePEM(text []byte) (spki *SubjectPublicKeyInfo, err error) {
	block, _ := pem.Decode(text)
	if block == nil {
		err = parseError("no PEM block found")
		return
	}
	if block.Type != PEMType {
		err = parseError("PEM block type %q, want %q", block.Type, PEMType)
		return
	}
	return ParseSubjectPublicKeyInfo(block.Bytes)
}
