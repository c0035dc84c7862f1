package digest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"p256k.lol/sha256"
)

func TestNewIgnoresExtra(t *testing.T) {
	scratch := frand.Bytes(64)
	d, err := New(scratch)
	require.NoError(t, err)
	require.Equal(t, scratch[:Len], d.Bytes())
	require.Len(t, d.Bytes(), Len)
	// the digest holds a copy
	scratch[0] ^= 0xff
	require.NotEqual(t, scratch[0], d.Bytes()[0])
}

func TestNewShort(t *testing.T) {
	for _, n := range []int{0, 1, 31} {
		_, err := New(make([]byte, n))
		require.True(t, errors.Is(err, ErrShort), "length %d", n)
	}
}

func TestSum(t *testing.T) {
	data := []byte("hello world")
	want := sha256.Sum256(data)
	d := Sum(data)
	require.Equal(t, want, d.Array())
	require.Equal(t, d, SHA256(data))
	require.Equal(t,
		"b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		d.String())
}

func TestOrdering(t *testing.T) {
	var a, b [Len]byte
	b[Len-1] = 1
	da, db := FromArray(a), FromArray(b)
	require.True(t, da.Less(db))
	require.False(t, db.Less(da))
	require.Equal(t, -1, da.Compare(db))
	require.Equal(t, 0, da.Compare(da))
	require.True(t, da.Equal(FromArray(a)))
	ds := make([]T, 50)
	for i := range ds {
		ds[i] = Sum(frand.Bytes(8))
	}
	Sort(ds)
	for i := 1; i < len(ds); i++ {
		require.True(t, bytes.Compare(ds[i-1].Bytes(), ds[i].Bytes()) <= 0)
	}
}

func TestMapKey(t *testing.T) {
	m := map[T]int{Sum([]byte("a")): 1}
	require.Equal(t, 1, m[Sum([]byte("a"))])
}

func TestFromHex(t *testing.T) {
	d := Sum([]byte("x"))
	d2, err := FromHex(d.String())
	require.NoError(t, err)
	require.Equal(t, d, d2)
	_, err = FromHex("abcd")
	require.Error(t, err)
	_, err = FromHex("zz")
	require.Error(t, err)
}

func TestTagged(t *testing.T) {
	data := frand.Bytes(100)
	th := sha256.Sum256([]byte("p256k/test"))
	want := sha256.Sum256(append(append(th[:], th[:]...), data...))
	h := Tagged("p256k/test")
	require.Equal(t, want[:], h(data).Bytes())
	require.Equal(t, h(data), h(data))
	require.NotEqual(t, h(data), Tagged("p256k/other")(data))
	require.NotEqual(t, Sum(data), h(data))
}
