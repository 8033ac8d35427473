// Package bbs implements the BBS-style multi-message signature scheme
// used as the credential's underlying signature (§4.2): an issuer signs
// an attribute vector once; a holder can later prove knowledge of the
// signature while disclosing only a subset of the attributes. The
// construction is the Boneh-Boyen-Shacham "weak" variant adapted to
// Type-3 pairings, grounded on the anupsv-BBSplus-signatures reference
// in the example pack and rewritten against this module's curve oracle.
package bbs

import (
	"github.com/kysee/issuer-hiding/internal/curve"
	"github.com/kysee/issuer-hiding/internal/errs"
	"github.com/kysee/issuer-hiding/pkg/params"
)

// SecretKey is the issuer's signing exponent x.
type SecretKey struct {
	X curve.Scalar
}

// PublicKey is ipk = g2^x, published on the trusted-issuer list.
type PublicKey struct {
	IPK curve.G2
}

// Signature is (A, E): A = (g1 + Sum h[i]*m[i]) ^ (x+e)^-1, e random.
type Signature struct {
	A curve.G1
	E curve.Scalar
}

// KeyGen samples a fresh issuer keypair. ipk is derived against pp.G2,
// the same hash-derived base point Sign and Verify pair against — not
// the curve library's raw generator, which no other operation uses.
func KeyGen(pp *params.Params) (*SecretKey, *PublicKey, error) {
	x, err := curve.RandScalar()
	if err != nil {
		return nil, nil, errs.Wrap(errs.RandomnessFailure, "sampling issuer secret key", err)
	}
	ipk := curve.G2ScalarMul(&pp.G2, &x)
	return &SecretKey{X: x}, &PublicKey{IPK: ipk}, nil
}

// Sign computes a BBS signature over the attribute vector m, using the
// shared Params for the base point g1 and the per-attribute generators
// H[0:len(m)].
func Sign(sk *SecretKey, pp *params.Params, m []curve.Scalar) (*Signature, error) {
	if len(m) == 0 {
		return nil, errs.New(errs.InvalidParameter, "attribute vector must be non-empty")
	}
	h, err := pp.MessageGenerators(len(m))
	if err != nil {
		return nil, err
	}

	e, err := curve.RandScalar()
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "sampling signature randomizer", err)
	}

	b := messageCommitment(pp, h, m)

	exp := curve.ScalarAdd(&sk.X, &e)
	inv, err := curve.ScalarInverse(&exp)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidKey, "x+e is zero, resample", err)
	}
	a := curve.G1ScalarMul(&b, &inv)

	return &Signature{A: a, E: e}, nil
}

// Verify checks e(A, ipk + g2^e) == e(B, g2), where B = g1 + Sum h[i]*m[i].
func Verify(pk *PublicKey, pp *params.Params, m []curve.Scalar, sig *Signature) error {
	if len(m) == 0 {
		return errs.New(errs.InvalidParameter, "attribute vector must be non-empty")
	}
	if curve.G1IsIdentity(&sig.A) {
		return errs.New(errs.SignatureVerificationFailed, "signature A is the identity")
	}
	h, err := pp.MessageGenerators(len(m))
	if err != nil {
		return err
	}

	b := messageCommitment(pp, h, m)

	g2e := curve.G2ScalarMul(&pp.G2, &sig.E)
	rhsG2 := curve.G2Add(&pk.IPK, &g2e)

	negA := curve.G1Neg(&sig.A)
	ok, err := curve.PairingProductIsOne(
		[]curve.G1{negA, b},
		[]curve.G2{rhsG2, pp.G2},
	)
	if err != nil {
		return errs.Wrap(errs.SignatureVerificationFailed, "pairing computation failed", err)
	}
	if !ok {
		return errs.New(errs.SignatureVerificationFailed, "BBS signature pairing check failed")
	}
	return nil
}

// messageCommitment computes B = g1 + Sum h[i]*m[i].
func messageCommitment(pp *params.Params, h []curve.G1, m []curve.Scalar) curve.G1 {
	lc := curve.G1LinearCombination(h, m)
	return curve.G1Add(&pp.G1, &lc)
}
