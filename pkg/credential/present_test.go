package credential

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kysee/issuer-hiding/internal/curve"
	"github.com/kysee/issuer-hiding/internal/errs"
)

func TestPresentAndVerifyFullReveal(t *testing.T) {
	pp := setupParams(t)
	sk, pk, err := IssuerKeyGen(pp)
	require.NoError(t, err)

	attrs := []curve.Scalar{
		curve.ScalarFromUint64(1990),
		curve.ScalarFromUint64(1),
		curve.ScalarFromUint64(7),
	}
	cred, err := Issue(sk, pp, attrs)
	require.NoError(t, err)

	policy, policySK, err := IssueListAggregate(pp, []curve.G2{pk.IPK})
	require.NoError(t, err)
	require.NoError(t, AuditPolicy(pp, policy))

	reveal := []int{0, 1, 2}
	pres, err := Present(pp, cred, pk.IPK, attrs, reveal, policy)
	require.NoError(t, err)
	require.NoError(t, VerifyPresent(pp, policy, policySK, pres))
}

func TestPresentAndVerifyPartialReveal(t *testing.T) {
	pp := setupParams(t)
	sk, pk, err := IssuerKeyGen(pp)
	require.NoError(t, err)

	attrs := []curve.Scalar{
		curve.ScalarFromUint64(1990),
		curve.ScalarFromUint64(1),
		curve.ScalarFromUint64(7),
	}
	cred, err := Issue(sk, pp, attrs)
	require.NoError(t, err)

	policy, policySK, err := IssueListAggregate(pp, []curve.G2{pk.IPK})
	require.NoError(t, err)

	pres, err := Present(pp, cred, pk.IPK, attrs, []int{1}, policy)
	require.NoError(t, err)
	require.NoError(t, VerifyPresent(pp, policy, policySK, pres))
}

func TestPresentAndVerifyNoReveal(t *testing.T) {
	pp := setupParams(t)
	sk, pk, err := IssuerKeyGen(pp)
	require.NoError(t, err)

	attrs := []curve.Scalar{curve.ScalarFromUint64(5), curve.ScalarFromUint64(6)}
	cred, err := Issue(sk, pp, attrs)
	require.NoError(t, err)

	policy, policySK, err := IssueListAggregate(pp, []curve.G2{pk.IPK})
	require.NoError(t, err)

	pres, err := Present(pp, cred, pk.IPK, attrs, nil, policy)
	require.NoError(t, err)
	require.Empty(t, pres.Reveal)
	require.Len(t, pres.V, len(attrs))
	require.NoError(t, VerifyPresent(pp, policy, policySK, pres))
}

func TestPresentRejectsIssuerNotInPolicy(t *testing.T) {
	pp := setupParams(t)
	sk, pk, err := IssuerKeyGen(pp)
	require.NoError(t, err)

	attrs := []curve.Scalar{curve.ScalarFromUint64(5)}
	cred, err := Issue(sk, pp, attrs)
	require.NoError(t, err)

	_, otherPK, err := IssuerKeyGen(pp)
	require.NoError(t, err)
	policy, _, err := IssueListAggregate(pp, []curve.G2{otherPK.IPK})
	require.NoError(t, err)

	_, err = Present(pp, cred, pk.IPK, attrs, nil, policy)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.ProofVerificationFailed))
}

func TestVerifyPresentRejectsTamperedDisclosedAttribute(t *testing.T) {
	pp := setupParams(t)
	sk, pk, err := IssuerKeyGen(pp)
	require.NoError(t, err)

	attrs := []curve.Scalar{curve.ScalarFromUint64(1990), curve.ScalarFromUint64(1)}
	cred, err := Issue(sk, pp, attrs)
	require.NoError(t, err)

	policy, policySK, err := IssueListAggregate(pp, []curve.G2{pk.IPK})
	require.NoError(t, err)

	pres, err := Present(pp, cred, pk.IPK, attrs, []int{0}, policy)
	require.NoError(t, err)

	pres.Revealed[0] = curve.ScalarFromUint64(1991)
	err = VerifyPresent(pp, policy, policySK, pres)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.ProofVerificationFailed))
}

func TestVerifyPresentRejectsWrongPolicy(t *testing.T) {
	pp := setupParams(t)
	sk, pk, err := IssuerKeyGen(pp)
	require.NoError(t, err)

	attrs := []curve.Scalar{curve.ScalarFromUint64(5)}
	cred, err := Issue(sk, pp, attrs)
	require.NoError(t, err)

	policy, _, err := IssueListAggregate(pp, []curve.G2{pk.IPK})
	require.NoError(t, err)

	pres, err := Present(pp, cred, pk.IPK, attrs, nil, policy)
	require.NoError(t, err)

	_, otherPK, err := IssuerKeyGen(pp)
	require.NoError(t, err)
	otherPolicy, otherPolicySK, err := IssueListAggregate(pp, []curve.G2{otherPK.IPK})
	require.NoError(t, err)

	err = VerifyPresent(pp, otherPolicy, otherPolicySK, pres)
	require.Error(t, err)
}

func TestPresentRejectsDuplicateRevealIndex(t *testing.T) {
	pp := setupParams(t)
	sk, pk, err := IssuerKeyGen(pp)
	require.NoError(t, err)

	attrs := []curve.Scalar{curve.ScalarFromUint64(5), curve.ScalarFromUint64(6)}
	cred, err := Issue(sk, pp, attrs)
	require.NoError(t, err)

	policy, _, err := IssueListAggregate(pp, []curve.G2{pk.IPK})
	require.NoError(t, err)

	_, err = Present(pp, cred, pk.IPK, attrs, []int{0, 0}, policy)
	require.Error(t, err)
}

func TestPresentRejectsOutOfRangeRevealIndex(t *testing.T) {
	pp := setupParams(t)
	sk, pk, err := IssuerKeyGen(pp)
	require.NoError(t, err)

	attrs := []curve.Scalar{curve.ScalarFromUint64(5), curve.ScalarFromUint64(6)}
	cred, err := Issue(sk, pp, attrs)
	require.NoError(t, err)

	policy, _, err := IssueListAggregate(pp, []curve.G2{pk.IPK})
	require.NoError(t, err)

	_, err = Present(pp, cred, pk.IPK, attrs, []int{2}, policy)
	require.Error(t, err)
}
