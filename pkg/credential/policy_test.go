package credential

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kysee/issuer-hiding/internal/curve"
)

func TestIssueAndVerifyListSigned(t *testing.T) {
	pp := setupParams(t)
	vsk, vpk, err := VerifierKeyGen(pp)
	require.NoError(t, err)

	_, pk1, err := IssuerKeyGen(pp)
	require.NoError(t, err)
	_, pk2, err := IssuerKeyGen(pp)
	require.NoError(t, err)

	list, err := IssueListSigned(vsk, vpk, pp, []curve.G2{pk1.IPK, pk2.IPK})
	require.NoError(t, err)
	require.NoError(t, VerifyListSigned(pp, list))
}

func TestVerifyListSignedRejectsTamperedEntry(t *testing.T) {
	pp := setupParams(t)
	vsk, vpk, err := VerifierKeyGen(pp)
	require.NoError(t, err)

	_, pk1, err := IssuerKeyGen(pp)
	require.NoError(t, err)

	list, err := IssueListSigned(vsk, vpk, pp, []curve.G2{pk1.IPK})
	require.NoError(t, err)

	_, otherPK, err := IssuerKeyGen(pp)
	require.NoError(t, err)
	list.Entries[0].IPK = otherPK.IPK

	require.Error(t, VerifyListSigned(pp, list))
}

func TestIssueListSignedRejectsEmptyList(t *testing.T) {
	pp := setupParams(t)
	vsk, vpk, err := VerifierKeyGen(pp)
	require.NoError(t, err)

	_, err = IssueListSigned(vsk, vpk, pp, nil)
	require.Error(t, err)
}

func TestIssueAndAuditAggregatePolicy(t *testing.T) {
	pp := setupParams(t)
	_, pk1, err := IssuerKeyGen(pp)
	require.NoError(t, err)
	_, pk2, err := IssuerKeyGen(pp)
	require.NoError(t, err)

	policy, secret, err := IssueListAggregate(pp, []curve.G2{pk1.IPK, pk2.IPK})
	require.NoError(t, err)
	require.False(t, secret.A.IsZero())
	require.NoError(t, AuditPolicy(pp, policy))
}

func TestAuditPolicyRejectsTamperedEntry(t *testing.T) {
	pp := setupParams(t)
	_, pk1, err := IssuerKeyGen(pp)
	require.NoError(t, err)

	policy, _, err := IssueListAggregate(pp, []curve.G2{pk1.IPK})
	require.NoError(t, err)

	_, otherPK, err := IssuerKeyGen(pp)
	require.NoError(t, err)
	policy.IPKs[0] = otherPK.IPK

	require.Error(t, AuditPolicy(pp, policy))
}

func TestIssueListAggregateRejectsEmptyList(t *testing.T) {
	pp := setupParams(t)
	_, _, err := IssueListAggregate(pp, nil)
	require.Error(t, err)
}
