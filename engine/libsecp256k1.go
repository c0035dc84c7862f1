//go:build cgo && libsecp256k1

package engine

/*
#cgo LDFLAGS: -lsecp256k1
#include <stdlib.h>
#include <string.h>
#include <secp256k1.h>
#include <secp256k1_ecdh.h>
#include <secp256k1_extrakeys.h>
#include <secp256k1_recovery.h>
#include <secp256k1_schnorrsig.h>

static int ecdh_compressed(unsigned char *output, const unsigned char *x32,
	const unsigned char *y32, void *data) {
	(void)data;
	output[0] = 0x02 | (y32[31] & 1);
	memcpy(output + 1, x32, 32);
	return 1;
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/decred/dcrd/crypto/rand"
	"github.com/pkg/errors"

	"p256k.lol/chk"
	"p256k.lol/errorf"
	"p256k.lol/text"
)

// NameLibsecp256k1 names the cgo engine.
const NameLibsecp256k1 = "libsecp256k1"

func init() {
	Register(NameLibsecp256k1, 10, func() (Engine, error) { return newLibsecp256k1() })
}

// Libsecp256k1 calls bitcoin-core libsecp256k1 through one randomized context
// shared by the whole process. Context methods other than randomize are safe
// for concurrent use.
type Libsecp256k1 struct {
	ctx *C.secp256k1_context
}

var _ Engine = (*Libsecp256k1)(nil)

var (
	ctxOnce sync.Once
	ctxErr  error
	ctxLib  *Libsecp256k1
)

func newLibsecp256k1() (e *Libsecp256k1, err error) {
	ctxOnce.Do(func() {
		ctx := C.secp256k1_context_create(C.SECP256K1_CONTEXT_NONE)
		if ctx == nil {
			ctxErr = errors.New("libsecp256k1: context creation failed")
			return
		}
		var seed [32]byte
		rand.Read(seed[:])
		if C.secp256k1_context_randomize(ctx, uchar(seed[:])) != 1 {
			C.secp256k1_context_destroy(ctx)
			ctxErr = errors.New("libsecp256k1: context randomization failed")
			return
		}
		ctxLib = &Libsecp256k1{ctx: ctx}
	})
	return ctxLib, ctxErr
}

func uchar(b []byte) *C.uchar {
	if len(b) == 0 {
		return nil
	}
	return (*C.uchar)(unsafe.Pointer(&b[0]))
}

func (*Libsecp256k1) Name() string { return NameLibsecp256k1 }

func pubFlags(compressed bool) (flags C.uint, n int) {
	if compressed {
		return C.SECP256K1_EC_COMPRESSED, PubKeyLenCompressed
	}
	return C.SECP256K1_EC_UNCOMPRESSED, PubKeyLenUncompressed
}

func (l *Libsecp256k1) checkSec(sk []byte) error {
	if len(sk) != SecKeyLen {
		return errors.Errorf("libsecp256k1: secret key is %d bytes, want %d", len(sk), SecKeyLen)
	}
	if C.secp256k1_ec_seckey_verify(l.ctx, uchar(sk)) != 1 {
		return errors.New("libsecp256k1: invalid secret key")
	}
	return nil
}

func (l *Libsecp256k1) parsePub(pk []byte) (pub C.secp256k1_pubkey, err error) {
	if len(pk) == 0 ||
		C.secp256k1_ec_pubkey_parse(l.ctx, &pub, uchar(pk), C.size_t(len(pk))) != 1 {
		err = errors.New("libsecp256k1: invalid public key")
	}
	return
}

func (l *Libsecp256k1) serializePub(pub *C.secp256k1_pubkey, compressed bool) (pk []byte) {
	flags, n := pubFlags(compressed)
	pk = make([]byte, n)
	size := C.size_t(n)
	C.secp256k1_ec_pubkey_serialize(l.ctx, uchar(pk), &size, pub, flags)
	return pk[:size]
}

func (l *Libsecp256k1) SecKeyVerify(sk []byte) bool { return l.checkSec(sk) == nil }

func (l *Libsecp256k1) SecKeyNegate(sk []byte) (neg []byte, err error) {
	if err = l.checkSec(sk); chk.D(err) {
		return
	}
	neg = append([]byte(nil), sk...)
	C.secp256k1_ec_seckey_negate(l.ctx, uchar(neg))
	return
}

func (l *Libsecp256k1) PubKeyCreate(sk []byte, compressed bool) (pk []byte, err error) {
	if err = l.checkSec(sk); chk.D(err) {
		return
	}
	var pub C.secp256k1_pubkey
	if C.secp256k1_ec_pubkey_create(l.ctx, &pub, uchar(sk)) != 1 {
		err = errorf.E("libsecp256k1: public key derivation failed")
		return
	}
	pk = l.serializePub(&pub, compressed)
	return
}

func (l *Libsecp256k1) PubKeyParse(pk []byte, compressed bool) (out []byte, err error) {
	var pub C.secp256k1_pubkey
	if pub, err = l.parsePub(pk); chk.D(err) {
		return
	}
	out = l.serializePub(&pub, compressed)
	return
}

func (l *Libsecp256k1) PubKeyNegate(pk []byte, compressed bool) (neg []byte, err error) {
	var pub C.secp256k1_pubkey
	if pub, err = l.parsePub(pk); chk.D(err) {
		return
	}
	C.secp256k1_ec_pubkey_negate(l.ctx, &pub)
	neg = l.serializePub(&pub, compressed)
	return
}

func (l *Libsecp256k1) XonlyFromPubKey(pk []byte) (x []byte, odd bool, err error) {
	var pub C.secp256k1_pubkey
	if pub, err = l.parsePub(pk); chk.D(err) {
		return
	}
	var xpub C.secp256k1_xonly_pubkey
	var parity C.int
	if C.secp256k1_xonly_pubkey_from_pubkey(l.ctx, &xpub, &parity, &pub) != 1 {
		err = errors.New("libsecp256k1: x-only conversion failed")
		return
	}
	x = make([]byte, XonlyLen)
	C.secp256k1_xonly_pubkey_serialize(l.ctx, uchar(x), &xpub)
	odd = parity == 1
	return
}

func (l *Libsecp256k1) parseXonly(x []byte) (xpub C.secp256k1_xonly_pubkey, err error) {
	if len(x) != XonlyLen {
		err = errors.Errorf("libsecp256k1: x-only key is %d bytes, want %d", len(x), XonlyLen)
		return
	}
	if C.secp256k1_xonly_pubkey_parse(l.ctx, &xpub, uchar(x)) != 1 {
		err = errors.New("libsecp256k1: invalid x-only public key")
	}
	return
}

func (l *Libsecp256k1) XonlyParse(x []byte) (err error) {
	_, err = l.parseXonly(x)
	return
}

func (l *Libsecp256k1) parseCompact(raw []byte) (sig C.secp256k1_ecdsa_signature, err error) {
	if len(raw) != SignatureLen {
		err = errors.Errorf("libsecp256k1: signature is %d bytes, want %d", len(raw), SignatureLen)
		return
	}
	if C.secp256k1_ecdsa_signature_parse_compact(l.ctx, &sig, uchar(raw)) != 1 {
		err = errors.New("libsecp256k1: signature component is not below the group order")
	}
	return
}

func (l *Libsecp256k1) serializeCompact(sig *C.secp256k1_ecdsa_signature) (raw []byte) {
	raw = make([]byte, SignatureLen)
	C.secp256k1_ecdsa_signature_serialize_compact(l.ctx, uchar(raw), sig)
	return
}

func (l *Libsecp256k1) ECDSASign(sk, hash []byte) (raw []byte, err error) {
	if err = l.checkSec(sk); chk.D(err) {
		return
	}
	if err = checkHash(hash); chk.D(err) {
		return
	}
	var sig C.secp256k1_ecdsa_signature
	if C.secp256k1_ecdsa_sign(l.ctx, &sig, uchar(hash), uchar(sk), nil, nil) != 1 {
		err = errorf.E("libsecp256k1: ecdsa signing failed")
		return
	}
	raw = l.serializeCompact(&sig)
	return
}

func (l *Libsecp256k1) ECDSAVerify(raw, hash, pk []byte) bool {
	if checkHash(hash) != nil {
		return false
	}
	sig, err := l.parseCompact(raw)
	if chk.T(err) {
		return false
	}
	pub, err := l.parsePub(pk)
	if chk.T(err) {
		return false
	}
	return C.secp256k1_ecdsa_verify(l.ctx, &sig, uchar(hash), &pub) == 1
}

func (l *Libsecp256k1) ECDSANormalize(raw []byte) (norm []byte, changed bool, err error) {
	var sig C.secp256k1_ecdsa_signature
	if sig, err = l.parseCompact(raw); chk.D(err) {
		return
	}
	var out C.secp256k1_ecdsa_signature
	changed = C.secp256k1_ecdsa_signature_normalize(l.ctx, &out, &sig) == 1
	norm = l.serializeCompact(&out)
	return
}

func (l *Libsecp256k1) ECDSAParseDER(der []byte) (raw []byte, err error) {
	var sig C.secp256k1_ecdsa_signature
	if len(der) == 0 ||
		C.secp256k1_ecdsa_signature_parse_der(l.ctx, &sig, uchar(der), C.size_t(len(der))) != 1 {
		err = errors.New("libsecp256k1: invalid DER signature")
		return
	}
	raw = l.serializeCompact(&sig)
	return
}

func (l *Libsecp256k1) ECDSASerializeDER(raw, out []byte) (n int, err error) {
	var sig C.secp256k1_ecdsa_signature
	if sig, err = l.parseCompact(raw); chk.D(err) {
		return
	}
	if len(out) < MaxDERLen {
		err = errors.Errorf("libsecp256k1: DER output buffer is %d bytes, want %d", len(out), MaxDERLen)
		return
	}
	size := C.size_t(len(out))
	if C.secp256k1_ecdsa_signature_serialize_der(l.ctx, uchar(out), &size, &sig) != 1 {
		err = errors.New("libsecp256k1: DER serialization failed")
		return
	}
	n = int(size)
	return
}

func (l *Libsecp256k1) ECDSAParseCompact(compact []byte) (raw []byte, err error) {
	var sig C.secp256k1_ecdsa_signature
	if sig, err = l.parseCompact(compact); chk.D(err) {
		return
	}
	raw = l.serializeCompact(&sig)
	return
}

func (l *Libsecp256k1) ECDSASerializeCompact(raw []byte) (compact []byte, err error) {
	return l.ECDSAParseCompact(raw)
}

func (l *Libsecp256k1) ECDSASignRecoverable(sk, hash []byte) (compact []byte, recid int, err error) {
	if err = l.checkSec(sk); chk.D(err) {
		return
	}
	if err = checkHash(hash); chk.D(err) {
		return
	}
	var sig C.secp256k1_ecdsa_recoverable_signature
	if C.secp256k1_ecdsa_sign_recoverable(l.ctx, &sig, uchar(hash), uchar(sk), nil, nil) != 1 {
		err = errorf.E("libsecp256k1: recoverable signing failed")
		return
	}
	compact = make([]byte, SignatureLen)
	var id C.int
	C.secp256k1_ecdsa_recoverable_signature_serialize_compact(l.ctx, uchar(compact), &id, &sig)
	recid = int(id)
	return
}

func (l *Libsecp256k1) ECDSARecover(compact []byte, recid int, hash []byte, compressed bool) (pk []byte, err error) {
	if len(compact) != SignatureLen {
		err = errors.Errorf("libsecp256k1: signature is %d bytes, want %d", len(compact), SignatureLen)
		return
	}
	if recid < 0 || recid > 3 {
		err = errors.Errorf("libsecp256k1: recovery id %d outside 0-3", recid)
		return
	}
	if err = checkHash(hash); chk.D(err) {
		return
	}
	var sig C.secp256k1_ecdsa_recoverable_signature
	if C.secp256k1_ecdsa_recoverable_signature_parse_compact(l.ctx, &sig, uchar(compact), C.int(recid)) != 1 {
		err = errors.New("libsecp256k1: invalid recoverable signature")
		return
	}
	var pub C.secp256k1_pubkey
	if C.secp256k1_ecdsa_recover(l.ctx, &pub, &sig, uchar(hash)) != 1 {
		err = errors.New("libsecp256k1: public key recovery failed")
		return
	}
	pk = l.serializePub(&pub, compressed)
	return
}

func (l *Libsecp256k1) SchnorrSign(sk, msg []byte, params *SchnorrParams) (sig []byte, err error) {
	var aux [AuxLen]byte
	if aux, err = params.check(); chk.D(err) {
		return
	}
	if err = l.checkSec(sk); chk.D(err) {
		return
	}
	var kp C.secp256k1_keypair
	if C.secp256k1_keypair_create(l.ctx, &kp, uchar(sk)) != 1 {
		err = errorf.E("libsecp256k1: keypair creation failed")
		return
	}
	defer zeroKeypair(&kp)
	// extra is passed by pointer, so ndata may not point into Go memory.
	ndata := C.malloc(AuxLen)
	defer C.free(ndata)
	text.CopyFixed(unsafe.Slice((*byte)(ndata), AuxLen), aux[:])
	var extra C.secp256k1_schnorrsig_extraparams
	for i, b := range params.Magic {
		extra.magic[i] = C.uchar(b)
	}
	extra.ndata = ndata
	sig = make([]byte, SignatureLen)
	if C.secp256k1_schnorrsig_sign_custom(l.ctx, uchar(sig), uchar(msg),
		C.size_t(len(msg)), &kp, &extra) != 1 {
		sig, err = nil, errorf.E("libsecp256k1: schnorr signing failed")
	}
	return
}

func (l *Libsecp256k1) SchnorrVerify(sig, msg, x []byte) bool {
	if len(sig) != SignatureLen {
		return false
	}
	xpub, err := l.parseXonly(x)
	if chk.T(err) {
		return false
	}
	return C.secp256k1_schnorrsig_verify(l.ctx, uchar(sig), uchar(msg),
		C.size_t(len(msg)), &xpub) == 1
}

func (l *Libsecp256k1) ECDH(sk, pk []byte) (secret []byte, err error) {
	if err = l.checkSec(sk); chk.D(err) {
		return
	}
	var pub C.secp256k1_pubkey
	if pub, err = l.parsePub(pk); chk.D(err) {
		return
	}
	secret = make([]byte, SharedSecretLen)
	hash := C.secp256k1_ecdh_hash_function(C.ecdh_compressed)
	if C.secp256k1_ecdh(l.ctx, uchar(secret), &pub, uchar(sk), hash, nil) != 1 {
		secret, err = nil, errorf.E("libsecp256k1: ecdh failed")
	}
	return
}

func zeroKeypair(kp *C.secp256k1_keypair) {
	b := (*[unsafe.Sizeof(*kp)]byte)(unsafe.Pointer(kp))
	for i := range b {
		b[i] = 0
	}
}
