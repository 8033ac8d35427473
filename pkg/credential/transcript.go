package credential

import (
	"encoding/binary"

	"github.com/kysee/issuer-hiding/internal/curve"
)

// Domain separation tags for Fiat-Shamir challenges (§6.2).
const (
	dstPresentChallenge = "CHALLENGE_GENERATOR_DST_Bobolz_Issuer_Hiding_V1"
	dstPolicyChallenge  = "POLICY_CHALLENGE_GENERATOR_DST_V1"
)

// transcript accumulates the canonical byte encodings fed to a
// Fiat-Shamir challenge (§6.3), in a fixed field order so two honest
// parties always hash the same bytes for the same logical inputs.
type transcript struct {
	buf []byte
}

func newTranscript() *transcript {
	return &transcript{}
}

func (t *transcript) g1(p *curve.G1) *transcript {
	t.buf = append(t.buf, curve.EncodeG1(p)...)
	return t
}

func (t *transcript) g2(p *curve.G2) *transcript {
	t.buf = append(t.buf, curve.EncodeG2(p)...)
	return t
}

func (t *transcript) scalar(s *curve.Scalar) *transcript {
	t.buf = append(t.buf, curve.EncodeScalar(s)...)
	return t
}

func (t *transcript) index(i int) *transcript {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(i))
	t.buf = append(t.buf, b[:]...)
	return t
}

func (t *transcript) bytes(b []byte) *transcript {
	t.buf = append(t.buf, b...)
	return t
}

// challenge derives the Fiat-Shamir scalar for the accumulated
// transcript under the given DST.
func (t *transcript) challenge(dst string) (curve.Scalar, error) {
	return curve.HashToFr(t.buf, []byte(dst))
}
