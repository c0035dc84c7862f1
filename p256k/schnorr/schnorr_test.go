package schnorr_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"p256k.lol/digest"
	"p256k.lol/hex"
	"p256k.lol/lol"
	"p256k.lol/p256k"
	"p256k.lol/p256k/schnorr"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.Dec(s)
	require.NoError(t, err)
	return b
}

func newKey(t *testing.T) *schnorr.PrivateKey {
	k, err := schnorr.NewPrivateKey()
	require.NoError(t, err)
	return k
}

func TestSignatureFromBytes(t *testing.T) {
	for n := range 130 {
		b := frand.Bytes(n)
		s, err := schnorr.SignatureFromBytes(b)
		if n == schnorr.SignatureLen {
			require.NoError(t, err)
			require.Equal(t, b, s.Bytes())
			continue
		}
		require.True(t, errors.Is(err, p256k.ErrIncorrectParameterSize), n)
	}
}

func TestSignVerify(t *testing.T) {
	for range 100 {
		k := newKey(t)
		x := k.XonlyKey()
		data := frand.Bytes(frand.Intn(300))
		sig, err := k.SignData(data)
		require.NoError(t, err)
		require.True(t, x.VerifyData(sig, data))
		require.True(t, x.VerifyDigest(sig, digest.Sum(data)))
		require.False(t, x.VerifyData(sig, append(data, 1)))
		require.False(t, newKey(t).XonlyKey().VerifyData(sig, data))
		require.False(t, x.VerifyData(nil, data))

		b := sig.Bytes()
		b[frand.Intn(len(b))] ^= 1 << frand.Intn(8)
		bad, err := schnorr.SignatureFromBytes(b)
		require.NoError(t, err)
		require.False(t, x.VerifyData(bad, data))
	}
}

func TestVectors(t *testing.T) {
	for _, v := range []struct {
		sk, pk, aux, msg, sig string
	}{
		{
			sk:  "0000000000000000000000000000000000000000000000000000000000000003",
			pk:  "f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9",
			aux: "0000000000000000000000000000000000000000000000000000000000000000",
			msg: "0000000000000000000000000000000000000000000000000000000000000000",
			sig: "e907831f80848d1069a5371b402410364bdf1c5f8307b0084c55f1ce2dca8215" +
				"25f66a4a85ea8b71e482a74f382d2ce5ebeee8fdb2172f477df4900d310536c0",
		},
		{
			sk:  "b7e151628aed2a6abf7158809cf4f3c762e7160f38b4da56a784d9045190cfef",
			pk:  "dff1d77f2a671c5f36183726db2341be58feae1da2deced843240f7b502ba659",
			aux: "0000000000000000000000000000000000000000000000000000000000000001",
			msg: "243f6a8885a308d313198a2e03707344a4093822299f31d0082efa98ec4e6c89",
			sig: "6896bd60eeae296db48a229ff71dfe071bde413e6d43f917dc8dcf8c78de3341" +
				"8906d11ac976abccb20b091292bff4ea897efcb639ea871cfa95f6de339e4b0a",
		},
	} {
		k, err := schnorr.PrivateKeyFromBytes(mustHex(t, v.sk))
		require.NoError(t, err)
		require.Equal(t, v.pk, hex.Enc(k.XonlyKey().Bytes()))
		d, err := digest.FromHex(v.msg)
		require.NoError(t, err)
		sig, err := k.SignDigestAux(d, mustHex(t, v.aux))
		require.NoError(t, err)
		require.Equal(t, v.sig, sig.String())

		x, err := schnorr.XonlyKeyFromBytes(mustHex(t, v.pk))
		require.NoError(t, err)
		require.True(t, x.VerifyDigest(sig, d))
	}
}

func TestAuxRandomness(t *testing.T) {
	k := newKey(t)
	x := k.XonlyKey()
	d := digest.Sum(frand.Bytes(20))
	a, err := k.SignDigestAux(d, frand.Bytes(schnorr.AuxLen))
	require.NoError(t, err)
	b, err := k.SignDigestAux(d, frand.Bytes(schnorr.AuxLen))
	require.NoError(t, err)
	require.False(t, a.Equal(b))
	require.True(t, x.VerifyDigest(a, d))
	require.True(t, x.VerifyDigest(b, d))

	// same aux, same signature
	aux := frand.Bytes(schnorr.AuxLen)
	a, err = k.SignDigestAux(d, aux)
	require.NoError(t, err)
	b, err = k.SignDigestAux(d, aux)
	require.NoError(t, err)
	require.True(t, a.Equal(b))

	// a missing aux is drawn fresh every time
	a, err = k.SignDigest(d)
	require.NoError(t, err)
	b, err = k.SignDigest(d)
	require.NoError(t, err)
	require.False(t, a.Equal(b))

	for _, n := range []int{0, 31, 33} {
		_, err = k.SignDigestAux(d, make([]byte, n))
		require.True(t, errors.Is(err, p256k.ErrIncorrectParameterSize), n)
	}
}

func TestStrict(t *testing.T) {
	k := newKey(t)
	x := k.XonlyKey()
	for _, n := range []int{0, 31, 33, 100} {
		_, err := k.SignMessage(frand.Bytes(n), nil, true)
		require.True(t, errors.Is(err, p256k.ErrIncorrectParameterSize), n)
	}

	msg := frand.Bytes(schnorr.MessageLen)
	sig, err := k.SignMessage(msg, nil, false)
	require.NoError(t, err)
	require.True(t, x.VerifyMessage(sig, msg, true))
	require.True(t, x.VerifyMessage(sig, msg, false))

	// other lengths depend on the engine: the pure Go one only signs digests
	short := frand.Bytes(10)
	sig, err = k.SignMessage(short, nil, false)
	if err != nil {
		require.True(t, errors.Is(err, p256k.ErrUnderlyingCrypto))
		return
	}
	require.True(t, x.VerifyMessage(sig, short, false))
	require.False(t, x.VerifyMessage(sig, short, true))
}

func TestSigner(t *testing.T) {
	var s schnorr.Signer
	_, err := s.Sign(frand.Bytes(32))
	require.Error(t, err)
	_, err = s.Verify(frand.Bytes(32), frand.Bytes(64))
	require.Error(t, err)

	for range 20 {
		require.NoError(t, s.Generate())
		require.Len(t, s.Sec(), p256k.SecKeyLen)
		require.Len(t, s.Pub(), p256k.XonlyKeyLen)
		ec := s.ECPub()
		require.Equal(t, byte(2), ec[0])
		require.Equal(t, s.Pub(), ec[1:])
		require.False(t, s.SecretKey.PrivateKey.PublicKey().OddY())
	}

	msg := frand.Bytes(32)
	sig, err := s.Sign(msg)
	require.NoError(t, err)
	valid, err := s.Verify(msg, sig)
	require.NoError(t, err)
	require.True(t, valid)
	valid, err = s.Verify(frand.Bytes(32), sig)
	require.NoError(t, err)
	require.False(t, valid)
	_, err = s.Verify(msg, sig[:63])
	require.Error(t, err)

	var v schnorr.Signer
	require.NoError(t, v.InitPub(s.Pub()))
	valid, err = v.Verify(msg, sig)
	require.NoError(t, err)
	require.True(t, valid)
	require.NoError(t, v.InitPub(s.ECPub()))
	valid, err = v.Verify(msg, sig)
	require.NoError(t, err)
	require.True(t, valid)
	require.Nil(t, v.Sec())
	require.Error(t, v.InitPub(frand.Bytes(31)))

	var again schnorr.Signer
	require.NoError(t, again.InitSec(s.Sec()))
	require.Equal(t, s.Pub(), again.Pub())
	require.Error(t, again.InitSec(frand.Bytes(31)))
}

func TestSignerNegate(t *testing.T) {
	var s schnorr.Signer
	require.NoError(t, s.Generate())
	sec, pub := s.Sec(), s.Pub()
	s.Negate()
	require.NotEqual(t, sec, s.Sec())
	require.True(t, s.SecretKey.PrivateKey.PublicKey().OddY())
	// the x-only key is unchanged, so signatures still verify
	require.Equal(t, pub, s.SecretKey.XonlyKey().Bytes())
	msg := frand.Bytes(32)
	sig, err := s.Sign(msg)
	require.NoError(t, err)
	valid, err := s.Verify(msg, sig)
	require.NoError(t, err)
	require.True(t, valid)
	s.Negate()
	require.Equal(t, sec, s.Sec())

	s.Zero()
	require.Equal(t, make([]byte, p256k.SecKeyLen), s.Sec())
}

func TestSignerECDH(t *testing.T) {
	var a, b schnorr.Signer
	require.NoError(t, a.Generate())
	require.NoError(t, b.Generate())
	ab, err := a.ECDH(b.Pub())
	require.NoError(t, err)
	ba, err := b.ECDH(a.ECPub())
	require.NoError(t, err)
	require.Len(t, ab, 32)
	require.Equal(t, ab, ba)
	_, err = a.ECDH(frand.Bytes(20))
	require.Error(t, err)
}

func TestVerifyBatch(t *testing.T) {
	items := make([]schnorr.BatchItem, 30)
	for i := range items {
		k := newKey(t)
		msg := frand.Bytes(schnorr.MessageLen)
		sig, err := k.SignMessage(msg, nil, true)
		require.NoError(t, err)
		items[i] = schnorr.BatchItem{Key: k.XonlyKey(), Sig: sig, Msg: msg}
	}
	invalid, err := schnorr.VerifyBatch(context.Background(), items, 4)
	require.NoError(t, err)
	require.Empty(t, invalid)

	items[3].Msg = frand.Bytes(schnorr.MessageLen)
	items[7].Sig = nil
	items[11].Key = nil
	items[20].Key = items[21].Key
	invalid, err = schnorr.VerifyBatch(context.Background(), items, 0)
	require.NoError(t, err)
	require.Equal(t, []int{3, 7, 11, 20}, invalid)
}

func TestSignTagged(t *testing.T) {
	k := newKey(t)
	x := k.XonlyKey()
	h := digest.Tagged("p256k/message")
	data := frand.Bytes(70)
	sig, err := k.SignDataWith(data, h)
	require.NoError(t, err)
	require.True(t, x.VerifyDataWith(sig, data, h))
	require.False(t, x.VerifyData(sig, data))
	require.False(t, x.VerifyDataWith(sig, data, digest.Tagged("p256k/other")))
}

func TestLogLevels(t *testing.T) {
	buf := new(bytes.Buffer)
	prev := lol.Level.Load()
	lol.SetWriter(buf)
	lol.SetLogLevel("trace")
	defer func() {
		lol.SetWriter(os.Stderr)
		lol.Level.Store(prev)
	}()

	k := newKey(t)
	x := k.XonlyKey()
	msg := frand.Bytes(schnorr.MessageLen)
	sig, err := k.SignMessage(msg, nil, true)
	require.NoError(t, err)
	buf.Reset()
	require.False(t, x.VerifyMessage(sig, frand.Bytes(schnorr.MessageLen), true))
	require.False(t, x.VerifyMessage(sig, msg[:31], false))
	require.False(t, newKey(t).XonlyKey().VerifyMessage(sig, msg, true))
	require.NotContains(t, buf.String(), "ERR")

	buf.Reset()
	_, err = k.SignDigestAux(digest.Sum(msg), make([]byte, 5))
	require.Error(t, err)
	_, err = schnorr.PrivateKeyFromBytes(make([]byte, p256k.SecKeyLen))
	require.Error(t, err)
	require.Contains(t, buf.String(), "ERR")
}
