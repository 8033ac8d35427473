// Package errs is the typed error surface every package in this module
// returns through (§7). No exceptions propagate across the API: every
// fallible operation returns (value, error) and every error carries one
// of the Kinds below, so a caller can branch on failure category without
// string-matching messages.
package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes a failure the way the core distinguishes them.
type Kind int

const (
	// InvalidParameter: length mismatch, out-of-range index, empty list.
	InvalidParameter Kind = iota
	// InvalidKey: secret key is zero, public key is the identity element.
	InvalidKey
	// InvalidEncoding: a byte string does not decode to a group element.
	InvalidEncoding
	// SignatureVerificationFailed: a signature's pairing equation does not hold.
	SignatureVerificationFailed
	// ProofVerificationFailed: a presentation proof failed one of its checks;
	// SubKind says which (challenge, pairing-binding, policy-binding). U1/U2
	// are recomputed rather than transmitted, so a wrong U1 or U2 shows up
	// as a challenge mismatch; there is no separate u1/u2 sub-kind.
	ProofVerificationFailed
	// RandomnessFailure: the RNG kept returning values rejection sampling
	// can't use (e.g. zero) past the retry budget.
	RandomnessFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "InvalidParameter"
	case InvalidKey:
		return "InvalidKey"
	case InvalidEncoding:
		return "InvalidEncoding"
	case SignatureVerificationFailed:
		return "SignatureVerificationFailed"
	case ProofVerificationFailed:
		return "ProofVerificationFailed"
	case RandomnessFailure:
		return "RandomnessFailure"
	default:
		return "Unknown"
	}
}

// Sub-kinds for ProofVerificationFailed, naming which check in the sigma
// protocol or pairing binding rejected the proof (§4.4.6, §8).
const (
	SubKindChallenge      = "challenge"
	SubKindPairingBinding = "pairing-binding"
	SubKindPolicyBinding  = "policy-binding"
)

// Error is the concrete error type every operation in this module returns.
type Error struct {
	Kind    Kind
	SubKind string
	Msg     string
	Err     error
}

func (e *Error) Error() string {
	if e.SubKind != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s{%s}: %s: %v", e.Kind, e.SubKind, e.Msg, e.Err)
		}
		return fmt.Sprintf("%s{%s}: %s", e.Kind, e.SubKind, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error carrying kind and a message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an Error carrying kind, a message, and an underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// ProofFailure builds a ProofVerificationFailed error with a sub-kind.
func ProofFailure(subKind, msg string) *Error {
	return &Error{Kind: ProofVerificationFailed, SubKind: subKind, Msg: msg}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
