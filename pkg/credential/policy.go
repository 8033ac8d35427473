package credential

import (
	"github.com/kysee/issuer-hiding/internal/curve"
	"github.com/kysee/issuer-hiding/internal/errs"
	"github.com/kysee/issuer-hiding/pkg/groth"
	"github.com/kysee/issuer-hiding/pkg/params"
)

// VerifierSecretKey and VerifierPublicKey are the Groth2 keypair a
// verifier uses to commit to its trusted-issuer list (§4.4.2).
type VerifierSecretKey = groth.SecretKey2
type VerifierPublicKey = groth.PublicKey2

// VerifierKeyGen samples a fresh verifier keypair.
func VerifierKeyGen(pp *params.Params) (*VerifierSecretKey, *VerifierPublicKey, error) {
	return groth.KeyGen2(pp)
}

// --- Variant A: per-entry Groth2 signatures (Bobolz/Shigeo, §4.4.2) ---

// PolicyEntrySigned binds one trust-listed issuer key to the verifier's
// signature over it.
type PolicyEntrySigned struct {
	IPK curve.G2
	Sig *groth.Signature2
}

// PolicyListSigned is the published variant-A policy: the verifier's
// public key plus one Groth2 signature per listed issuer key.
type PolicyListSigned struct {
	VPK     *VerifierPublicKey
	Entries []PolicyEntrySigned
}

// IssueListSigned signs every issuer key in L under the verifier's
// Groth2 key, producing a policy a holder can present against.
func IssueListSigned(vsk *VerifierSecretKey, vpk *VerifierPublicKey, pp *params.Params, issuerIPKs []curve.G2) (*PolicyListSigned, error) {
	if len(issuerIPKs) == 0 {
		return nil, errs.New(errs.InvalidParameter, "trust list must be non-empty")
	}
	entries := make([]PolicyEntrySigned, len(issuerIPKs))
	for i, ipk := range issuerIPKs {
		sig, err := groth.Sign2(vsk, pp, &ipk)
		if err != nil {
			return nil, err
		}
		entries[i] = PolicyEntrySigned{IPK: ipk, Sig: sig}
	}
	return &PolicyListSigned{VPK: vpk, Entries: entries}, nil
}

// VerifyListSigned accepts iff every entry's signature verifies.
func VerifyListSigned(pp *params.Params, policy *PolicyListSigned) error {
	if len(policy.Entries) == 0 {
		return errs.New(errs.InvalidParameter, "trust list must be non-empty")
	}
	for _, e := range policy.Entries {
		ipk := e.IPK
		if err := groth.Verify2(policy.VPK, pp, &ipk, e.Sig); err != nil {
			return err
		}
	}
	return nil
}

// --- Variant B: aggregate commitment (Katz/Sanders, §4.4.2') ---
//
// §4.4.2' names a polynomial-interpolation construction ("ipk_i_y[j]")
// that doesn't reduce to a concrete byte-level definition. Resolved per
// the process rule for source ambiguity: follow what the original
// implementation actually does. The Katz/Sanders Rust source
// (issuer-hiding_katz/src/issuer_hiding.rs) is concrete and simpler
// than §4.4.2''s prose: one secret pair (a, b) rather than a
// coefficient per attribute slot. The verifier samples a, b; publishes
// s = g2*a and, per listed entry, t_i = (ipk_i + g2*b)*a, together with
// a Schnorr-style proof of knowledge of (a^-1, b) satisfying those two
// relations (PolicyProof). AuditPolicy recomputes the proof's
// commitments from its responses and re-derives the challenge,
// accepting iff it matches the transmitted one — the standard
// Fiat-Shamir verification pattern, ported directly from audit_policy.
//
// The policy challenge transcript lists every ipk_i, then s, then every
// t_i, in trust-list order, so the list order is bound by the challenge;
// no separate index values are hashed. At presentation time the sorted
// reveal indices are folded into the challenge transcript. The original
// omits the reveal indices, which is exactly the
// index-shuffling weakness spec.md §9's first Open Question flags as
// "almost certainly a bug"; §6.3 is normative here over the original.
//
// VerifyPresent needs the verifier's own policy secret to check a
// presentation (see present.go) — this matches §4.4.4's literal text
// ("a scalar computed from the verifier's policy secret") and the
// original's verify_present, which takes the policy keypair, not just
// its public half.

// PolicySecretKey is the verifier's variant-B policy secret (a, b).
// Needed again at presentation-verification time, unlike Variant A.
type PolicySecretKey struct {
	A curve.Scalar
	B curve.Scalar
}

// PolicyProof is the Schnorr-style proof of knowledge of (a^-1, b)
// accompanying a published PolicyAggregate.
type PolicyProof struct {
	C curve.Scalar
	S curve.Scalar
	T curve.Scalar
}

// PolicyAggregate is the published variant-B policy.
type PolicyAggregate struct {
	IPKs []curve.G2
	S    curve.G2   // g2 * a
	T    []curve.G2 // (ipk_i + g2*b) * a, parallel to IPKs
	Pi   PolicyProof
}

func policyTranscriptPrefix(ipks []curve.G2, s *curve.G2, t []curve.G2) *transcript {
	tr := newTranscript()
	for i := range ipks {
		tr.g2(&ipks[i])
	}
	tr.g2(s)
	for i := range t {
		tr.g2(&t[i])
	}
	return tr
}

// IssueListAggregate samples the policy secret (a, b), derives the
// aggregate commitments (s, t), and proves knowledge of (a^-1, b).
func IssueListAggregate(pp *params.Params, issuerIPKs []curve.G2) (*PolicyAggregate, *PolicySecretKey, error) {
	if len(issuerIPKs) == 0 {
		return nil, nil, errs.New(errs.InvalidParameter, "trust list must be non-empty")
	}
	a, err := curve.RandScalar()
	if err != nil {
		return nil, nil, errs.Wrap(errs.RandomnessFailure, "sampling policy secret a", err)
	}
	b, err := curve.RandScalar()
	if err != nil {
		return nil, nil, errs.Wrap(errs.RandomnessFailure, "sampling policy secret b", err)
	}

	s := curve.G2ScalarMul(&pp.G2, &a)
	g2b := curve.G2ScalarMul(&pp.G2, &b)
	t := make([]curve.G2, len(issuerIPKs))
	for i := range issuerIPKs {
		base := curve.G2Add(&issuerIPKs[i], &g2b)
		t[i] = curve.G2ScalarMul(&base, &a)
	}

	alpha, err := curve.RandScalar()
	if err != nil {
		return nil, nil, errs.Wrap(errs.RandomnessFailure, "sampling alpha", err)
	}
	beta, err := curve.RandScalar()
	if err != nil {
		return nil, nil, errs.Wrap(errs.RandomnessFailure, "sampling beta", err)
	}

	u1 := curve.G2ScalarMul(&s, &alpha)
	u2 := make([]curve.G2, len(t))
	for i := range t {
		ta := curve.G2ScalarMul(&t[i], &alpha)
		g2beta := curve.G2ScalarMul(&pp.G2, &beta)
		u2[i] = curve.G2Add(&ta, &g2beta)
	}

	tr := policyTranscriptPrefix(issuerIPKs, &s, t)
	tr.g2(&u1)
	for i := range u2 {
		tr.g2(&u2[i])
	}
	c, err := tr.challenge(dstPolicyChallenge)
	if err != nil {
		return nil, nil, errs.Wrap(errs.RandomnessFailure, "deriving policy challenge", err)
	}

	aInv, err := curve.ScalarInverse(&a)
	if err != nil {
		return nil, nil, errs.Wrap(errs.RandomnessFailure, "policy secret a inverse failed, resample", err)
	}
	cAInv := curve.ScalarMul(&c, &aInv)
	respS := curve.ScalarAdd(&alpha, &cAInv)
	cb := curve.ScalarMul(&c, &b)
	respT := curve.ScalarSub(&beta, &cb)

	policy := &PolicyAggregate{
		IPKs: append([]curve.G2(nil), issuerIPKs...),
		S:    s,
		T:    t,
		Pi:   PolicyProof{C: c, S: respS, T: respT},
	}
	return policy, &PolicySecretKey{A: a, B: b}, nil
}

// AuditPolicy recomputes the proof's commitments from its responses
// and re-derives the Fiat-Shamir challenge, accepting iff it matches
// policy.Pi.C. Requires no secret.
func AuditPolicy(pp *params.Params, policy *PolicyAggregate) error {
	k := len(policy.IPKs)
	if k == 0 || k != len(policy.T) {
		return errs.New(errs.InvalidParameter, "malformed policy: length mismatch")
	}
	if curve.G2IsIdentity(&policy.S) {
		return errs.ProofFailure(errs.SubKindPolicyBinding, "policy commitment s is the identity")
	}

	negC := curve.ScalarNeg(&policy.Pi.C)
	sRespS := curve.G2ScalarMul(&policy.S, &policy.Pi.S)
	g2NegC := curve.G2ScalarMul(&pp.G2, &negC)
	u1Prime := curve.G2Add(&sRespS, &g2NegC)

	u2Prime := make([]curve.G2, k)
	for i := range policy.T {
		tRespS := curve.G2ScalarMul(&policy.T[i], &policy.Pi.S)
		g2RespT := curve.G2ScalarMul(&pp.G2, &policy.Pi.T)
		ipkNegC := curve.G2ScalarMul(&policy.IPKs[i], &negC)
		sum := curve.G2Add(&tRespS, &g2RespT)
		u2Prime[i] = curve.G2Add(&sum, &ipkNegC)
	}

	tr := policyTranscriptPrefix(policy.IPKs, &policy.S, policy.T)
	tr.g2(&u1Prime)
	for i := range u2Prime {
		tr.g2(&u2Prime[i])
	}
	cPrime, err := tr.challenge(dstPolicyChallenge)
	if err != nil {
		return errs.Wrap(errs.RandomnessFailure, "deriving policy challenge", err)
	}
	if !cPrime.Equal(&policy.Pi.C) {
		return errs.ProofFailure(errs.SubKindPolicyBinding, "policy challenge recomputation failed")
	}
	return nil
}
