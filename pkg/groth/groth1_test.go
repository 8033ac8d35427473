package groth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kysee/issuer-hiding/internal/curve"
	"github.com/kysee/issuer-hiding/pkg/params"
)

func TestGroth1SignVerifyRoundTrip(t *testing.T) {
	pp, err := params.Setup(4)
	require.NoError(t, err)

	sk, pk, err := KeyGen1(pp)
	require.NoError(t, err)

	g1 := curve.G1Generator()
	mScalar, err := curve.RandScalar()
	require.NoError(t, err)
	m := curve.G1ScalarMul(&g1, &mScalar)

	sig, err := Sign1(sk, pp, &m)
	require.NoError(t, err)
	require.NoError(t, Verify1(pk, pp, &m, sig))
}

func TestGroth1RerandomizePreservesValidity(t *testing.T) {
	pp, err := params.Setup(4)
	require.NoError(t, err)

	sk, pk, err := KeyGen1(pp)
	require.NoError(t, err)

	g1 := curve.G1Generator()
	mScalar, err := curve.RandScalar()
	require.NoError(t, err)
	m := curve.G1ScalarMul(&g1, &mScalar)

	sig, err := Sign1(sk, pp, &m)
	require.NoError(t, err)

	fresh, err := Rerandomize1(sig)
	require.NoError(t, err)
	require.NoError(t, Verify1(pk, pp, &m, fresh))

	require.False(t, curve.G2Equal(&sig.R2, &fresh.R2))
}

func TestGroth1VerifyRejectsTamperedMessage(t *testing.T) {
	pp, err := params.Setup(4)
	require.NoError(t, err)

	sk, pk, err := KeyGen1(pp)
	require.NoError(t, err)

	g1 := curve.G1Generator()
	mScalar, err := curve.RandScalar()
	require.NoError(t, err)
	m := curve.G1ScalarMul(&g1, &mScalar)

	sig, err := Sign1(sk, pp, &m)
	require.NoError(t, err)

	otherScalar, err := curve.RandScalar()
	require.NoError(t, err)
	other := curve.G1ScalarMul(&g1, &otherScalar)

	err = Verify1(pk, pp, &other, sig)
	require.Error(t, err)
}
