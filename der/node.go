package der

import (
	"bytes"

	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"p256k.lol/chk"
)

// ErrParse is the cause of every decoding failure in this package.
var ErrParse = errors.New("asn1: parse error")

func parseError(format string, a ...any) error { return errors.Wrapf(ErrParse, format, a...) }

// Node is a single tag-length-value element. Content is the raw value bytes;
// for constructed tags it holds the encoded children.
type Node struct {
	Tag     asn1.Tag
	Content []byte
}

// ReadNode reads one element from the front of s.
func ReadNode(s *cryptobyte.String) (n Node, err error) {
	var content cryptobyte.String
	if !s.ReadAnyASN1(&content, &n.Tag) {
		err = parseError("malformed element")
		return
	}
	n.Content = append([]byte(nil), content...)
	return
}

// ParseNode decodes b as exactly one element.
func ParseNode(b []byte) (n Node, err error) {
	s := cryptobyte.String(b)
	if n, err = ReadNode(&s); chk.D(err) {
		return
	}
	if !s.Empty() {
		err = parseError("%d trailing bytes after element", len(s))
	}
	return
}

// Constructed reports whether the node holds encoded children.
func (n Node) Constructed() bool { return n.Tag&0x20 != 0 }

// Children decodes the content of a constructed node.
func (n Node) Children() (nodes []Node, err error) {
	if !n.Constructed() {
		err = parseError("tag %#x is not constructed", uint8(n.Tag))
		return
	}
	s := cryptobyte.String(n.Content)
	for !s.Empty() {
		var c Node
		if c, err = ReadNode(&s); chk.D(err) {
			return
		}
		nodes = append(nodes, c)
	}
	return
}

// Append writes the encoded node into b.
func (n Node) Append(b *cryptobyte.Builder) {
	b.AddASN1(n.Tag, func(c *cryptobyte.Builder) { c.AddBytes(n.Content) })
}

// Marshal returns the DER encoding of the node.
func (n Node) Marshal() ([]byte, error) {
	b := cryptobyte.NewBuilder(nil)
	n.Append(b)
	return b.Bytes()
}

// Equal reports whether both nodes have the same tag and content.
func (n Node) Equal(o Node) bool { return n.Tag == o.Tag && bytes.Equal(n.Content, o.Content) }

// NewConstructed builds a constructed node from its children.
func NewConstructed(tag asn1.Tag, children ...Node) (n Node, err error) {
	b := cryptobyte.NewBuilder(nil)
	for _, c := range children {
		c.Append(b)
	}
	n.Tag = tag
	n.Content, err = b.Bytes()
	return
}
