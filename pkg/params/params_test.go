package params

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kysee/issuer-hiding/internal/curve"
)

func TestSetupRejectsNonPositiveMax(t *testing.T) {
	_, err := Setup(0)
	require.Error(t, err)
	_, err = Setup(-1)
	require.Error(t, err)
}

func TestSetupIsDeterministic(t *testing.T) {
	pp1, err := Setup(4)
	require.NoError(t, err)
	pp2, err := Setup(4)
	require.NoError(t, err)

	require.True(t, curve.G1Equal(&pp1.G1, &pp2.G1))
	require.True(t, curve.G2Equal(&pp1.G2, &pp2.G2))
	require.True(t, curve.G1Equal(&pp1.Y1, &pp2.Y1))
	require.True(t, curve.G2Equal(&pp1.Y2, &pp2.Y2))
	require.Len(t, pp1.H, 4)
	for i := range pp1.H {
		require.True(t, curve.G1Equal(&pp1.H[i], &pp2.H[i]))
	}
}

func TestGeneratorsAreDistinct(t *testing.T) {
	pp, err := Setup(3)
	require.NoError(t, err)

	require.False(t, curve.G1IsIdentity(&pp.G1))
	require.False(t, curve.G1IsIdentity(&pp.Y1))
	require.False(t, curve.G1Equal(&pp.G1, &pp.Y1))
	for i := range pp.H {
		require.False(t, curve.G1IsIdentity(&pp.H[i]))
		require.False(t, curve.G1Equal(&pp.H[i], &pp.G1))
		require.False(t, curve.G1Equal(&pp.H[i], &pp.Y1))
		for j := range pp.H {
			if i != j {
				require.False(t, curve.G1Equal(&pp.H[i], &pp.H[j]))
			}
		}
	}
}

func TestMessageGenerators(t *testing.T) {
	pp, err := Setup(5)
	require.NoError(t, err)

	h, err := pp.MessageGenerators(3)
	require.NoError(t, err)
	require.Len(t, h, 3)
	require.True(t, curve.G1Equal(&h[0], &pp.H[0]))

	_, err = pp.MessageGenerators(6)
	require.Error(t, err)

	_, err = pp.MessageGenerators(-1)
	require.Error(t, err)

	h0, err := pp.MessageGenerators(0)
	require.NoError(t, err)
	require.Len(t, h0, 0)
}
