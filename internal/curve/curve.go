// Package curve is the BLS12-381 oracle the rest of this module is built
// against: Fr arithmetic, G1/G2/GT group operations, hash-to-curve and
// canonical byte encoding for Fiat-Shamir transcripts.
//
// Every operation here is a thin wrapper around gnark-crypto's
// ecc/bls12-381 package. No field or group arithmetic is reimplemented;
// this package only fixes the conventions (Jacobian-accumulate-then-
// normalize, big.Int scalars at the ScalarMultiplication boundary,
// reject-zero sampling) that the rest of the module relies on.
package curve

import (
	"errors"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Scalar is an element of Fr, the BLS12-381 scalar field.
type Scalar = fr.Element

// G1 and G2 are affine points on the two source groups of the pairing.
// GT is an element of the target group.
type G1 = bls12381.G1Affine
type G2 = bls12381.G2Affine
type GT = bls12381.GT

// Byte lengths of the canonical compressed encodings (§6.1).
const (
	ScalarSize = fr.Bytes
	G1Size     = 48
	G2Size     = 96
)

var (
	ErrZeroScalar      = errors.New("curve: sampled zero scalar")
	ErrIdentityElement = errors.New("curve: group element is the identity")
	ErrInvalidEncoding = errors.New("curve: bytes do not decode to a valid element")
)

const maxRandAttempts = 16

// RandScalar draws a uniform element of Fr, rejecting zero.
func RandScalar() (Scalar, error) {
	var s Scalar
	for i := 0; i < maxRandAttempts; i++ {
		if _, err := s.SetRandom(); err != nil {
			return Scalar{}, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
	return Scalar{}, ErrZeroScalar
}

// ScalarFromUint64 builds a small constant scalar (e.g. for index encoding
// in places that want it as a field element rather than raw bytes).
func ScalarFromUint64(v uint64) Scalar {
	var s Scalar
	s.SetUint64(v)
	return s
}

// ScalarInverse inverts a nonzero scalar.
func ScalarInverse(x *Scalar) (Scalar, error) {
	if x.IsZero() {
		return Scalar{}, ErrZeroScalar
	}
	var out Scalar
	out.Inverse(x)
	return out, nil
}

// ScalarAdd, ScalarSub, ScalarMul, ScalarNeg are free functions rather than
// methods so call sites read as ordinary algebra: curve.ScalarAdd(a, b).
func ScalarAdd(a, b *Scalar) Scalar {
	var out Scalar
	out.Add(a, b)
	return out
}

func ScalarSub(a, b *Scalar) Scalar {
	var out Scalar
	out.Sub(a, b)
	return out
}

func ScalarMul(a, b *Scalar) Scalar {
	var out Scalar
	out.Mul(a, b)
	return out
}

func ScalarNeg(a *Scalar) Scalar {
	var out Scalar
	out.Neg(a)
	return out
}

func scalarToBigInt(s *Scalar) *big.Int {
	var bi big.Int
	s.BigInt(&bi)
	return &bi
}

// G1Generator and G2Generator return the curve's standard generators (g1, g2).
func G1Generator() G1 {
	_, _, g1, _ := bls12381.Generators()
	return g1
}

func G2Generator() G2 {
	_, _, _, g2 := bls12381.Generators()
	return g2
}

func G1Identity() G1 {
	var p G1
	p.SetInfinity()
	return p
}

func G2Identity() G2 {
	var p G2
	p.SetInfinity()
	return p
}

func G1IsIdentity(p *G1) bool { return p.IsInfinity() }
func G2IsIdentity(p *G2) bool { return p.IsInfinity() }

func G1Equal(a, b *G1) bool { return a.Equal(b) }
func G2Equal(a, b *G2) bool { return a.Equal(b) }

func G1Add(a, b *G1) G1 {
	var out G1
	out.Add(a, b)
	return out
}

func G2Add(a, b *G2) G2 {
	var out G2
	out.Add(a, b)
	return out
}

func G1Sub(a, b *G1) G1 {
	var negB G1
	negB.Neg(b)
	return G1Add(a, &negB)
}

func G2Sub(a, b *G2) G2 {
	var negB G2
	negB.Neg(b)
	return G2Add(a, &negB)
}

func G1Neg(p *G1) G1 {
	var out G1
	out.Neg(p)
	return out
}

func G2Neg(p *G2) G2 {
	var out G2
	out.Neg(p)
	return out
}

// G1ScalarMul and G2ScalarMul accumulate in Jacobian coordinates and
// normalize once, the pattern used throughout the rest of this module for
// any multi-term linear combination (e.g. B = g1 + Sum h[i]*m[i]).
func G1ScalarMul(p *G1, s *Scalar) G1 {
	var jac bls12381.G1Jac
	jac.FromAffine(p)
	jac.ScalarMultiplication(&jac, scalarToBigInt(s))
	var out G1
	out.FromJacobian(&jac)
	return out
}

func G2ScalarMul(p *G2, s *Scalar) G2 {
	var jac bls12381.G2Jac
	jac.FromAffine(p)
	jac.ScalarMultiplication(&jac, scalarToBigInt(s))
	var out G2
	out.FromJacobian(&jac)
	return out
}

// G1LinearCombination computes Sum_i points[i]*scalars[i] in one Jacobian
// accumulation, normalizing to affine only at the end. points and scalars
// must have equal length.
func G1LinearCombination(points []G1, scalars []Scalar) G1 {
	identity := G1Identity()
	var acc bls12381.G1Jac
	acc.FromAffine(&identity)
	var tmp bls12381.G1Jac
	for i := range points {
		tmp.FromAffine(&points[i])
		tmp.ScalarMultiplication(&tmp, scalarToBigInt(&scalars[i]))
		acc.AddAssign(&tmp)
	}
	var out G1
	out.FromJacobian(&acc)
	return out
}

// Pairing computes e(P, Q).
func Pairing(p *G1, q *G2) (GT, error) {
	return bls12381.Pair([]bls12381.G1Affine{*p}, []bls12381.G2Affine{*q})
}

// PairingProductIsOne checks that the product of e(ps[i], qs[i]) over all i
// equals the identity of GT. This is how every multiplicative pairing
// equation in §4 is actually checked (moving every term to one side).
func PairingProductIsOne(ps []G1, qs []G2) (bool, error) {
	return bls12381.PairingCheck(ps, qs)
}

// HashToG1 and HashToG2 are RFC-9380-style hash-to-curve, domain separated
// by dst. Output is never the identity.
func HashToG1(msg, dst []byte) (G1, error) {
	return bls12381.HashToG1(msg, dst)
}

func HashToG2(msg, dst []byte) (G2, error) {
	return bls12381.HashToG2(msg, dst)
}

// HashToFr derives a scalar from a transcript, used for every Fiat-Shamir
// challenge in this module.
func HashToFr(msg, dst []byte) (Scalar, error) {
	elems, err := fr.Hash(msg, dst, 1)
	if err != nil {
		return Scalar{}, err
	}
	return elems[0], nil
}

// Canonical byte encodings, used to feed Fiat-Shamir transcripts (§6.3)
// and, in the demo command, to log a point's hex prefix: this module does
// not persist credentials or proofs.

func EncodeScalar(s *Scalar) []byte {
	b := s.Bytes()
	return b[:]
}

func DecodeScalar(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, ErrInvalidEncoding
	}
	var s Scalar
	s.SetBytes(b)
	return s, nil
}

func EncodeG1(p *G1) []byte {
	b := p.Bytes()
	return b[:]
}

func DecodeG1(b []byte) (G1, error) {
	var p G1
	if _, err := p.SetBytes(b); err != nil {
		return G1{}, ErrInvalidEncoding
	}
	return p, nil
}

func EncodeG2(p *G2) []byte {
	b := p.Bytes()
	return b[:]
}

func DecodeG2(b []byte) (G2, error) {
	var p G2
	if _, err := p.SetBytes(b); err != nil {
		return G2{}, ErrInvalidEncoding
	}
	return p, nil
}
