package p256k

import (
	"fmt"

	"p256k.lol/log"
)

// ErrorKind identifies a kind of error. It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

const (
	// ErrIncorrectParameterSize indicates a fixed length input had the wrong
	// length.
	ErrIncorrectParameterSize = ErrorKind("ErrIncorrectParameterSize")

	// ErrUnderlyingCrypto indicates the EC engine rejected an operation, for
	// example an invalid scalar or point, or a failed signing call.
	ErrUnderlyingCrypto = ErrorKind("ErrUnderlyingCrypto")

	// ErrInvalidEncoding indicates malformed DER, PEM or hex input, or an
	// interchange structure for a different algorithm.
	ErrInvalidEncoding = ErrorKind("ErrInvalidEncoding")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string { return string(e) }

// Error identifies an error of this package and the ecdsa and schnorr
// packages. Err is the ErrorKind; Cause, when set, is the failure reported by
// the engine or decoder.
type Error struct {
	Err         error
	Description string
	Cause       error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string { return e.Description }

// Unwrap returns the kind, and the cause if there is one.
func (e Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func makeError(kind ErrorKind, cause error, desc string) Error {
	if cause != nil {
		desc = fmt.Sprintf("%s: %v", desc, cause)
	}
	err := Error{Err: kind, Description: desc, Cause: cause}
	log.D.F("%s: %s", kind, desc)
	return err
}

// SizeError reports that what was got bytes long instead of want.
func SizeError(what string, got, want int) error {
	return makeError(ErrIncorrectParameterSize, nil,
		fmt.Sprintf("%s must be %d bytes, got %d", what, want, got))
}

// CryptoError reports an engine failure of op.
func CryptoError(op string, cause error) error {
	return makeError(ErrUnderlyingCrypto, cause, op)
}

// EncodingError reports malformed input.
func EncodingError(what string, cause error) error {
	return makeError(ErrInvalidEncoding, cause, what)
}
