package bbs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kysee/issuer-hiding/internal/curve"
	"github.com/kysee/issuer-hiding/internal/errs"
	"github.com/kysee/issuer-hiding/pkg/params"
)

func setup(t *testing.T) *params.Params {
	pp, err := params.Setup(8)
	require.NoError(t, err)
	return pp
}

func TestSignVerifyRoundTrip(t *testing.T) {
	pp := setup(t)
	sk, pk, err := KeyGen(pp)
	require.NoError(t, err)

	m := []curve.Scalar{
		curve.ScalarFromUint64(1),
		curve.ScalarFromUint64(2),
		curve.ScalarFromUint64(3),
	}
	sig, err := Sign(sk, pp, m)
	require.NoError(t, err)
	require.NoError(t, Verify(pk, pp, m, sig))
}

func TestVerifyRejectsTamperedAttribute(t *testing.T) {
	pp := setup(t)
	sk, pk, err := KeyGen(pp)
	require.NoError(t, err)

	m := []curve.Scalar{curve.ScalarFromUint64(1), curve.ScalarFromUint64(2)}
	sig, err := Sign(sk, pp, m)
	require.NoError(t, err)

	tampered := []curve.Scalar{curve.ScalarFromUint64(1), curve.ScalarFromUint64(99)}
	err = Verify(pk, pp, tampered, sig)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.SignatureVerificationFailed))
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	pp := setup(t)
	sk, _, err := KeyGen(pp)
	require.NoError(t, err)
	_, otherPK, err := KeyGen(pp)
	require.NoError(t, err)

	m := []curve.Scalar{curve.ScalarFromUint64(42)}
	sig, err := Sign(sk, pp, m)
	require.NoError(t, err)

	err = Verify(otherPK, pp, m, sig)
	require.Error(t, err)
}

func TestSignRejectsEmptyAttributes(t *testing.T) {
	pp := setup(t)
	sk, _, err := KeyGen(pp)
	require.NoError(t, err)

	_, err = Sign(sk, pp, nil)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.InvalidParameter))
}

func TestSignRejectsTooManyAttributes(t *testing.T) {
	pp := setup(t)
	sk, _, err := KeyGen(pp)
	require.NoError(t, err)

	m := make([]curve.Scalar, len(pp.H)+1)
	for i := range m {
		m[i] = curve.ScalarFromUint64(uint64(i))
	}
	_, err = Sign(sk, pp, m)
	require.Error(t, err)
}
