// Package groth implements the two Groth signature variants (§4.3) used
// to certify public keys in this module: Groth1 signs a G1 message
// (here, a verifier's public key during root-authority certification),
// Groth2 signs a G2 message (here, an issuer's public key when a
// verifier commits to its trusted-issuer policy). Both are
// structure-preserving and rerandomizable: a holder of a signature can
// produce a fresh, unlinkable copy of it without the signer.
package groth

import (
	"github.com/kysee/issuer-hiding/internal/curve"
	"github.com/kysee/issuer-hiding/internal/errs"
	"github.com/kysee/issuer-hiding/pkg/params"
)

// SecretKey1 is the Groth1 signer's exponent x.
type SecretKey1 struct {
	X curve.Scalar
}

// PublicKey1 is ipk = g2^x.
type PublicKey1 struct {
	IPK curve.G2
}

// Signature1 certifies a G1 message M: R2 = g2^r, S1 = (y1 + g1^x)^(1/r),
// T1 = (y1^x + M)^(1/r).
type Signature1 struct {
	R2 curve.G2
	S1 curve.G1
	T1 curve.G1
}

// KeyGen1 samples a fresh Groth1 signing key. ipk is derived against
// pp.G2, the same base point Sign1/Verify1 pair against.
func KeyGen1(pp *params.Params) (*SecretKey1, *PublicKey1, error) {
	x, err := curve.RandScalar()
	if err != nil {
		return nil, nil, errs.Wrap(errs.RandomnessFailure, "sampling groth1 secret key", err)
	}
	ipk := curve.G2ScalarMul(&pp.G2, &x)
	return &SecretKey1{X: x}, &PublicKey1{IPK: ipk}, nil
}

// Sign1 certifies message M in G1.
func Sign1(sk *SecretKey1, pp *params.Params, m *curve.G1) (*Signature1, error) {
	r, err := curve.RandScalar()
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "sampling groth1 randomizer", err)
	}
	rInv, err := curve.ScalarInverse(&r)
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "r inverse failed, resample", err)
	}

	r2 := curve.G2ScalarMul(&pp.G2, &r)

	g1x := curve.G1ScalarMul(&pp.G1, &sk.X)
	s1Base := curve.G1Add(&pp.Y1, &g1x)
	s1 := curve.G1ScalarMul(&s1Base, &rInv)

	y1x := curve.G1ScalarMul(&pp.Y1, &sk.X)
	t1Base := curve.G1Add(&y1x, m)
	t1 := curve.G1ScalarMul(&t1Base, &rInv)

	return &Signature1{R2: r2, S1: s1, T1: t1}, nil
}

// Rerandomize1 produces a fresh, independently-distributed signature on
// the same message, unlinkable to the original (§8 randomization
// invariance property).
func Rerandomize1(sig *Signature1) (*Signature1, error) {
	rPrime, err := curve.RandScalar()
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "sampling rerandomizer", err)
	}
	rPrimeInv, err := curve.ScalarInverse(&rPrime)
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "rerandomizer inverse failed, resample", err)
	}
	return &Signature1{
		R2: curve.G2ScalarMul(&sig.R2, &rPrime),
		S1: curve.G1ScalarMul(&sig.S1, &rPrimeInv),
		T1: curve.G1ScalarMul(&sig.T1, &rPrimeInv),
	}, nil
}

// Verify1 checks:
//
//	each rearranged as a single product-equals-one check, same as Verify
//	in pkg/bbs:
//	  e(S1, R2) == e(y1, g2) * e(g1, ipk)    (signature well-formedness)
//	  e(T1, R2) == e(y1, ipk) * e(M, g2)     (message binding)
func Verify1(pk *PublicKey1, pp *params.Params, m *curve.G1, sig *Signature1) error {
	negS1 := curve.G1Neg(&sig.S1)
	ok1, err := curve.PairingProductIsOne(
		[]curve.G1{negS1, pp.Y1, pp.G1},
		[]curve.G2{sig.R2, pp.G2, pk.IPK},
	)
	if err != nil {
		return errs.Wrap(errs.SignatureVerificationFailed, "pairing computation failed", err)
	}
	if !ok1 {
		return errs.New(errs.SignatureVerificationFailed, "groth1 well-formedness check failed")
	}

	negT1 := curve.G1Neg(&sig.T1)
	ok2, err := curve.PairingProductIsOne(
		[]curve.G1{negT1, pp.Y1, *m},
		[]curve.G2{sig.R2, pk.IPK, pp.G2},
	)
	if err != nil {
		return errs.Wrap(errs.SignatureVerificationFailed, "pairing computation failed", err)
	}
	if !ok2 {
		return errs.New(errs.SignatureVerificationFailed, "groth1 message-binding check failed")
	}
	return nil
}
