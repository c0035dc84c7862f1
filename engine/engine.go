// Package engine is the boundary between the key and signature types and the
// secp256k1 curve arithmetic. An Engine works on plain byte slices in the
// layouts documented on each method; two implementations exist, a pure Go one
// built on btcec and decred secp256k1, and a cgo binding of bitcoin-core
// libsecp256k1 (build tags cgo and libsecp256k1).
package engine

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"

	"p256k.lol/chk"
	"p256k.lol/config"
	"p256k.lol/log"
)

const (
	// SecKeyLen is the length of a secret key scalar.
	SecKeyLen = 32
	// PubKeyLenCompressed is the length of a 02/03 prefixed public key.
	PubKeyLenCompressed = 33
	// PubKeyLenUncompressed is the length of a 04 prefixed public key.
	PubKeyLenUncompressed = 65
	// XonlyLen is the length of a BIP340 x-only public key.
	XonlyLen = 32
	// HashLen is the message length accepted by ECDSA and strict Schnorr.
	HashLen = 32
	// SignatureLen is the length of a raw r‖s ECDSA or a BIP340 signature.
	SignatureLen = 64
	// AuxLen is the length of the BIP340 auxiliary randomness.
	AuxLen = 32
	// SharedSecretLen is the length of an ECDH result, a compressed point.
	SharedSecretLen = 33
	// MaxDERLen is the largest DER encoded ECDSA signature.
	MaxDERLen = 72
)

// ExtraParamsMagic marks a SchnorrParams as initialized. It is the value
// libsecp256k1 expects at the head of secp256k1_schnorrsig_extraparams.
var ExtraParamsMagic = [4]byte{218, 111, 179, 140}

// ErrBadMagic is returned by SchnorrSign when the params magic is wrong.
var ErrBadMagic = errors.New("engine: schnorr extra params magic mismatch")

// SchnorrParams carries the extra inputs of a BIP340 signature.
type SchnorrParams struct {
	Magic   [4]byte
	AuxRand []byte
}

// NewSchnorrParams returns params with the magic set and the given auxiliary
// randomness.
func NewSchnorrParams(aux []byte) *SchnorrParams {
	return &SchnorrParams{Magic: ExtraParamsMagic, AuxRand: aux}
}

func (p *SchnorrParams) check() (aux [AuxLen]byte, err error) {
	if p == nil || p.Magic != ExtraParamsMagic {
		err = ErrBadMagic
		return
	}
	if len(p.AuxRand) != AuxLen {
		err = errors.Errorf("engine: aux randomness is %d bytes, want %d",
			len(p.AuxRand), AuxLen)
		return
	}
	copy(aux[:], p.AuxRand)
	return
}

// Engine is the set of curve operations the key and signature types need.
//
// Raw ECDSA signatures are 64 bytes, r‖s, big endian. Public keys are returned
// compressed (33 bytes) or uncompressed (65 bytes) as requested. Verification
// methods return false for any malformed input and never an error.
type Engine interface {
	// Name identifies the engine in the registry.
	Name() string

	// SecKeyVerify reports whether sk is a nonzero scalar below the group
	// order.
	SecKeyVerify(sk []byte) bool
	// SecKeyNegate returns n - sk.
	SecKeyNegate(sk []byte) (neg []byte, err error)

	// PubKeyCreate derives the public key of sk.
	PubKeyCreate(sk []byte, compressed bool) (pk []byte, err error)
	// PubKeyParse validates a 33 or 65 byte encoding and re-serializes it.
	PubKeyParse(pk []byte, compressed bool) (out []byte, err error)
	// PubKeyNegate returns the point with the same x and the opposite y.
	PubKeyNegate(pk []byte, compressed bool) (neg []byte, err error)
	// XonlyFromPubKey projects a public key to its x coordinate, reporting
	// whether y was odd.
	XonlyFromPubKey(pk []byte) (x []byte, odd bool, err error)
	// XonlyParse checks that x is the x coordinate of a curve point.
	XonlyParse(x []byte) (err error)

	// ECDSASign makes a deterministic low-S signature over a 32 byte hash.
	ECDSASign(sk, hash []byte) (raw []byte, err error)
	// ECDSAVerify checks a lower-S signature.
	ECDSAVerify(raw, hash, pk []byte) bool
	// ECDSANormalize converts a signature to lower-S form.
	ECDSANormalize(raw []byte) (norm []byte, changed bool, err error)
	// ECDSAParseDER decodes a strict DER signature.
	ECDSAParseDER(der []byte) (raw []byte, err error)
	// ECDSASerializeDER writes the DER form into out, which must hold at least
	// MaxDERLen bytes, and returns the number of bytes used.
	ECDSASerializeDER(raw, out []byte) (n int, err error)
	// ECDSAParseCompact decodes a 64 byte compact signature, rejecting r or s
	// not below the group order.
	ECDSAParseCompact(compact []byte) (raw []byte, err error)
	// ECDSASerializeCompact returns the 64 byte compact form.
	ECDSASerializeCompact(raw []byte) (compact []byte, err error)
	// ECDSASignRecoverable signs and returns the compact signature with its
	// recovery id in 0..3.
	ECDSASignRecoverable(sk, hash []byte) (compact []byte, recid int, err error)
	// ECDSARecover returns the public key that made a recoverable signature.
	ECDSARecover(compact []byte, recid int, hash []byte, compressed bool) (pk []byte, err error)

	// SchnorrSign makes a BIP340 signature. params must carry ExtraParamsMagic
	// and 32 bytes of auxiliary randomness.
	SchnorrSign(sk, msg []byte, params *SchnorrParams) (sig []byte, err error)
	// SchnorrVerify checks a BIP340 signature against an x-only key.
	SchnorrVerify(sig, msg, x []byte) bool

	// ECDH returns the compressed encoding of sk·pk.
	ECDH(sk, pk []byte) (secret []byte, err error)
}

// Constructor builds an engine.
type Constructor func() (Engine, error)

type registration struct {
	name     string
	priority int
	ctor     Constructor
}

var registry = xsync.NewMapOf[string, registration]()

// Register makes an engine available by name. When no engine is configured the
// registered engine with the highest priority is used. Register is meant to be
// called from init functions.
func Register(name string, priority int, ctor Constructor) {
	registry.Store(name, registration{name: name, priority: priority, ctor: ctor})
}

// Names lists the registered engines, best first.
func Names() (names []string) {
	var regs []registration
	registry.Range(func(_ string, r registration) bool {
		regs = append(regs, r)
		return true
	})
	sort.Slice(regs, func(i, j int) bool {
		if regs[i].priority != regs[j].priority {
			return regs[i].priority > regs[j].priority
		}
		return regs[i].name < regs[j].name
	})
	for _, r := range regs {
		names = append(names, r.name)
	}
	return
}

// ErrUnknown is returned by Get for a name that was never registered.
var ErrUnknown = errors.New("engine: unknown engine")

// Get constructs the named engine.
func Get(name string) (e Engine, err error) {
	r, ok := registry.Load(name)
	if !ok {
		err = errors.Wrap(ErrUnknown, name)
		return
	}
	return r.ctor()
}

var (
	defaultOnce   sync.Once
	defaultEngine Engine
)

// Default returns the process wide engine, constructed on first use. The
// engine named by P256K_ENGINE is used if it is registered, otherwise the best
// registered engine.
func Default() Engine {
	defaultOnce.Do(func() {
		var name string
		if c, err := config.New(); !chk.E(err) {
			name = c.Engine
		}
		defaultEngine = pick(name)
		log.D.F("using %s EC engine", defaultEngine.Name())
	})
	return defaultEngine
}

func pick(name string) (e Engine) {
	var err error
	if name != "" {
		if e, err = Get(name); !chk.W(err) {
			return
		}
	}
	for _, n := range Names() {
		if e, err = Get(n); !chk.E(err) {
			return
		}
	}
	panic("engine: no usable EC engine registered")
}
