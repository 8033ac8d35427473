// Package params derives the public parameters shared by every scheme in
// this module: the base points g1, g2 used throughout the protocol, the
// Groth-signature bases y1, y2, and the per-attribute BBS message
// generators h[0..n-1]. Every one of them is hash-derived from a fixed
// domain-separated tag (§6.2) rather than taken from the curve library's
// arbitrary standard generator, so no party — including whoever wrote
// this code — can know a discrete-log relation between any two of them.
// That's the "nothing up my sleeve" property these protocols rely on.
package params

import (
	"github.com/kysee/issuer-hiding/internal/curve"
	"github.com/kysee/issuer-hiding/internal/errs"
)

// Domain separation tags for deriving public parameters (§6.2).
const (
	dstGrothG1 = "GROTH-SIG-GENERATOR-DST-V1"
	dstGrothG2 = "GROTH-SIG-GENERATOR-DST-V2"
	dstBBSG1   = "BBS-SIG-GENERATOR-DST-V1"
	dstBBSG2   = "BBS-SIG-GENERATOR-DST-V2"
	dstMessage = "BLS12381G1_XMD:SHA-256_SSWU_RO_"
)

// DefaultMaxAttributes bounds the attribute vector length this module
// provisions generators for out of the box; Setup accepts any positive n.
const DefaultMaxAttributes = 50

// Params holds every generator the rest of the module builds on. G1/G2
// are the protocol's base points (hash-derived, not the curve library's
// raw generator); Y1/Y2 are the Groth-signature bases; H is the BBS
// message-generator vector, one entry per attribute slot.
type Params struct {
	G1 curve.G1
	G2 curve.G2
	Y1 curve.G1
	Y2 curve.G2
	H  []curve.G1
}

// Setup derives a Params good for attribute vectors of up to nMax
// entries. Deterministic: the same nMax always yields the same Params,
// since every generator is hash-derived from a fixed tag, never sampled.
func Setup(nMax int) (*Params, error) {
	if nMax <= 0 {
		return nil, errs.New(errs.InvalidParameter, "nMax must be positive")
	}

	g1, err := curve.HashToG1([]byte("BASE_POINT"), []byte(dstBBSG1))
	if err != nil {
		return nil, errs.Wrap(errs.InvalidParameter, "deriving g1", err)
	}
	g2, err := curve.HashToG2([]byte("BASE_POINT"), []byte(dstBBSG2))
	if err != nil {
		return nil, errs.Wrap(errs.InvalidParameter, "deriving g2", err)
	}
	y1, err := curve.HashToG1([]byte("BASE_POINT"), []byte(dstGrothG1))
	if err != nil {
		return nil, errs.Wrap(errs.InvalidParameter, "deriving y1", err)
	}
	y2, err := curve.HashToG2([]byte("BASE_POINT"), []byte(dstGrothG2))
	if err != nil {
		return nil, errs.Wrap(errs.InvalidParameter, "deriving y2", err)
	}

	h := make([]curve.G1, nMax)
	for i := 0; i < nMax; i++ {
		msg := []byte{byte(i >> 24), byte(i >> 16), byte(i >> 8), byte(i)}
		p, err := curve.HashToG1(append([]byte("MESSAGE_GENERATOR_SEED_"), msg...), []byte(dstMessage))
		if err != nil {
			return nil, errs.Wrap(errs.InvalidParameter, "deriving message generator", err)
		}
		h[i] = p
	}

	return &Params{G1: g1, G2: g2, Y1: y1, Y2: y2, H: h}, nil
}

// MessageGenerators returns the first n entries of H, or an error if
// more generators are requested than Setup provisioned.
func (p *Params) MessageGenerators(n int) ([]curve.G1, error) {
	if n < 0 || n > len(p.H) {
		return nil, errs.New(errs.InvalidParameter, "attribute count exceeds provisioned generators")
	}
	return p.H[:n], nil
}
