package groth

import (
	"github.com/kysee/issuer-hiding/internal/curve"
	"github.com/kysee/issuer-hiding/internal/errs"
	"github.com/kysee/issuer-hiding/pkg/params"
)

// SecretKey2 is the Groth2 signer's exponent xv.
type SecretKey2 struct {
	XV curve.Scalar
}

// PublicKey2 is vk = g1^xv, the dual of PublicKey1.
type PublicKey2 struct {
	VK curve.G1
}

// Signature2 certifies a G2 message M: R1 = g1^r, S2 = (y2 + g2^xv)^(1/r),
// T2 = (y2^xv + M)^(1/r).
type Signature2 struct {
	R1 curve.G1
	S2 curve.G2
	T2 curve.G2
}

// KeyGen2 samples a fresh Groth2 signing key. vk is derived against
// pp.G1, the same base point Sign2/Verify2 pair against.
func KeyGen2(pp *params.Params) (*SecretKey2, *PublicKey2, error) {
	xv, err := curve.RandScalar()
	if err != nil {
		return nil, nil, errs.Wrap(errs.RandomnessFailure, "sampling groth2 secret key", err)
	}
	vk := curve.G1ScalarMul(&pp.G1, &xv)
	return &SecretKey2{XV: xv}, &PublicKey2{VK: vk}, nil
}

// Sign2 certifies message M in G2.
func Sign2(sk *SecretKey2, pp *params.Params, m *curve.G2) (*Signature2, error) {
	r, err := curve.RandScalar()
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "sampling groth2 randomizer", err)
	}
	rInv, err := curve.ScalarInverse(&r)
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "r inverse failed, resample", err)
	}

	r1 := curve.G1ScalarMul(&pp.G1, &r)

	g2xv := curve.G2ScalarMul(&pp.G2, &sk.XV)
	s2Base := curve.G2Add(&pp.Y2, &g2xv)
	s2 := curve.G2ScalarMul(&s2Base, &rInv)

	y2xv := curve.G2ScalarMul(&pp.Y2, &sk.XV)
	t2Base := curve.G2Add(&y2xv, m)
	t2 := curve.G2ScalarMul(&t2Base, &rInv)

	return &Signature2{R1: r1, S2: s2, T2: t2}, nil
}

// Rerandomize2 produces a fresh, unlinkable signature on the same message.
func Rerandomize2(sig *Signature2) (*Signature2, error) {
	rPrime, err := curve.RandScalar()
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "sampling rerandomizer", err)
	}
	rPrimeInv, err := curve.ScalarInverse(&rPrime)
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "rerandomizer inverse failed, resample", err)
	}
	return &Signature2{
		R1: curve.G1ScalarMul(&sig.R1, &rPrime),
		S2: curve.G2ScalarMul(&sig.S2, &rPrimeInv),
		T2: curve.G2ScalarMul(&sig.T2, &rPrimeInv),
	}, nil
}

// Verify2 checks:
//
//	e(R1, S2) == e(g1, y2) * e(vk, g2)   (signature well-formedness)
//	e(R1, T2) == e(vk, y2) * e(g1, M)    (message binding)
func Verify2(pk *PublicKey2, pp *params.Params, m *curve.G2, sig *Signature2) error {
	negR1 := curve.G1Neg(&sig.R1)
	ok1, err := curve.PairingProductIsOne(
		[]curve.G1{negR1, pp.G1, pk.VK},
		[]curve.G2{sig.S2, pp.Y2, pp.G2},
	)
	if err != nil {
		return errs.Wrap(errs.SignatureVerificationFailed, "pairing computation failed", err)
	}
	if !ok1 {
		return errs.New(errs.SignatureVerificationFailed, "groth2 well-formedness check failed")
	}

	ok2, err := curve.PairingProductIsOne(
		[]curve.G1{negR1, pk.VK, pp.G1},
		[]curve.G2{sig.T2, pp.Y2, *m},
	)
	if err != nil {
		return errs.Wrap(errs.SignatureVerificationFailed, "pairing computation failed", err)
	}
	if !ok2 {
		return errs.New(errs.SignatureVerificationFailed, "groth2 message-binding check failed")
	}
	return nil
}
