package credential

import (
	"sort"

	"github.com/kysee/issuer-hiding/internal/curve"
	"github.com/kysee/issuer-hiding/internal/errs"
	"github.com/kysee/issuer-hiding/pkg/params"
)

// Presentation is the output of Present (§4.4.3): a zero-knowledge proof
// that the holder carries a valid credential from some issuer bound into
// the published policy, with the attributes in Reveal disclosed verbatim
// and every other attribute proved-of-knowledge only. U1 and U2 are
// never transmitted — the verifier recomputes them from the responses
// and checks that doing so reproduces the same challenge.
type Presentation struct {
	ABar curve.G1
	BBar curve.G1
	D    curve.G1

	// SigmaTilde is the variant-B signature-of-knowledge binding the
	// credential to one (unidentified) entry of the policy list:
	// S*r + Sum_{i != idx} T[i], where idx is the holder's own entry.
	SigmaTilde curve.G2

	NumAttributes int
	Reveal        []int
	Revealed      []curve.Scalar // parallel to Reveal

	C curve.Scalar
	S curve.Scalar
	T curve.Scalar
	Z curve.Scalar
	V []curve.Scalar // parallel to the ascending hidden-index sequence
}

func hideIndices(n int, reveal []int) []int {
	revealed := make(map[int]bool, len(reveal))
	for _, i := range reveal {
		revealed[i] = true
	}
	hide := make([]int, 0, n-len(reveal))
	for i := 0; i < n; i++ {
		if !revealed[i] {
			hide = append(hide, i)
		}
	}
	return hide
}

func validateReveal(n int, reveal []int) ([]int, error) {
	sorted := append([]int(nil), reveal...)
	sort.Ints(sorted)
	seen := make(map[int]bool, len(sorted))
	for _, i := range sorted {
		if i < 0 || i >= n {
			return nil, errs.New(errs.InvalidParameter, "reveal index out of range")
		}
		if seen[i] {
			return nil, errs.New(errs.InvalidParameter, "duplicate reveal index")
		}
		seen[i] = true
	}
	return sorted, nil
}

// buildTranscript assembles the canonical Fiat-Shamir transcript (§6.3)
// shared by Present and VerifyPresent. Unlike the Katz/Sanders
// reference this folds the sorted reveal indices in — §9's first Open
// Question names their omission as the likely index-shuffling bug, and
// §6.3 is normative here.
func buildTranscript(h []curve.G1, reveal []int, revealed []curve.Scalar, aBar, bBar, d *curve.G1, u1, u2 *curve.G1) *transcript {
	t := newTranscript()
	for i := range h {
		t.g1(&h[i])
	}
	for _, i := range reveal {
		t.index(i)
	}
	for _, m := range revealed {
		m := m
		t.scalar(&m)
	}
	t.g1(aBar).g1(bBar).g1(d).g1(u1).g1(u2)
	return t
}

// findEntry locates the holder's issuer key in the policy, returning its
// index. Returns an error if the issuer is not trust-listed (§4.4.3 item 2).
func findEntry(policy *PolicyAggregate, ipk *curve.G2) (int, error) {
	for i := range policy.IPKs {
		if curve.G2Equal(&policy.IPKs[i], ipk) {
			return i, nil
		}
	}
	return -1, errs.ProofFailure(errs.SubKindPolicyBinding, "issuer key not present in trust-list policy")
}

// Present proves that the holder carries a valid credential from some
// issuer trust-listed in policy, disclosing the attributes in reveal and
// nothing else.
func Present(pp *params.Params, cred *Credential, holderIPK curve.G2, m []curve.Scalar, reveal []int, policy *PolicyAggregate) (*Presentation, error) {
	n := len(m)
	if n == 0 || n > len(pp.H) {
		return nil, errs.New(errs.InvalidParameter, "attribute count out of bounds")
	}
	sortedReveal, err := validateReveal(n, reveal)
	if err != nil {
		return nil, err
	}
	hide := hideIndices(n, sortedReveal)

	idx, err := findEntry(policy, &holderIPK)
	if err != nil {
		return nil, err
	}

	h, err := pp.MessageGenerators(n)
	if err != nil {
		return nil, err
	}

	// Variant-B list-binding randomizer: sigmaTilde = S*r + Sum_{i != idx} T[i].
	r, err := curve.RandScalar()
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "sampling list-binding randomizer", err)
	}
	sigmaTilde := curve.G2ScalarMul(&policy.S, &r)
	for i := range policy.T {
		if i == idx {
			continue
		}
		sigmaTilde = curve.G2Add(&sigmaTilde, &policy.T[i])
	}

	r1, err := curve.RandScalar()
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "sampling r1", err)
	}
	r2, err := curve.RandScalar()
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "sampling r2", err)
	}
	r2Inv, err := curve.ScalarInverse(&r2)
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "r2 inverse failed, resample", err)
	}

	lc := curve.G1LinearCombination(h, m)
	b := curve.G1Add(&pp.G1, &lc)

	d := curve.G1ScalarMul(&b, &r2Inv)
	r1r2Inv := curve.ScalarMul(&r1, &r2Inv)
	aBar := curve.G1ScalarMul(&cred.Sig.A, &r1r2Inv)

	// The credential's randomizer e is folded together with the
	// list-binding randomizer r: bBar = D*r1 - ABar*(e+r), so the final
	// pairing check can absorb sigmaTilde's r term (see VerifyPresent).
	ePlusR := curve.ScalarAdd(&cred.Sig.E, &r)
	dr1 := curve.G1ScalarMul(&d, &r1)
	aBarEr := curve.G1ScalarMul(&aBar, &ePlusR)
	bBar := curve.G1Sub(&dr1, &aBarEr)

	alpha, err := curve.RandScalar()
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "sampling alpha", err)
	}
	beta, err := curve.RandScalar()
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "sampling beta", err)
	}
	gamma, err := curve.RandScalar()
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "sampling gamma", err)
	}
	delta := make([]curve.Scalar, len(hide))
	for i := range hide {
		delta[i], err = curve.RandScalar()
		if err != nil {
			return nil, errs.Wrap(errs.RandomnessFailure, "sampling delta", err)
		}
	}

	dAlpha := curve.G1ScalarMul(&d, &alpha)
	aBarBeta := curve.G1ScalarMul(&aBar, &beta)
	u1 := curve.G1Add(&dAlpha, &aBarBeta)

	hHide := make([]curve.G1, len(hide))
	for i, j := range hide {
		hHide[i] = h[j]
	}
	u2Terms := curve.G1LinearCombination(hHide, delta)
	dGamma := curve.G1ScalarMul(&d, &gamma)
	u2 := curve.G1Add(&dGamma, &u2Terms)

	revealedValues := make([]curve.Scalar, len(sortedReveal))
	for i, j := range sortedReveal {
		revealedValues[i] = m[j]
	}

	tr := buildTranscript(h, sortedReveal, revealedValues, &aBar, &bBar, &d, &u1, &u2)
	c, err := tr.challenge(dstPresentChallenge)
	if err != nil {
		return nil, errs.Wrap(errs.RandomnessFailure, "deriving challenge", err)
	}

	cr1 := curve.ScalarMul(&c, &r1)
	sResp := curve.ScalarAdd(&alpha, &cr1)

	cEr := curve.ScalarMul(&c, &ePlusR)
	tResp := curve.ScalarSub(&beta, &cEr)

	cr2 := curve.ScalarMul(&c, &r2)
	zResp := curve.ScalarAdd(&gamma, &cr2)

	v := make([]curve.Scalar, len(hide))
	for i, j := range hide {
		cm := curve.ScalarMul(&c, &m[j])
		v[i] = curve.ScalarSub(&delta[i], &cm)
	}

	return &Presentation{
		ABar:          aBar,
		BBar:          bBar,
		D:             d,
		SigmaTilde:    sigmaTilde,
		NumAttributes: n,
		Reveal:        sortedReveal,
		Revealed:      revealedValues,
		C:             c,
		S:             sResp,
		T:             tResp,
		Z:             zResp,
		V:             v,
	}, nil
}

// VerifyPresent checks a Presentation against a published variant-B
// aggregate trust-list policy (§4.4.4). Variant B's final pairing check
// uses the verifier's own policy secret (policySK), per §4.4.4's
// literal text and the Katz/Sanders reference's verify_present, which
// takes the full policy keypair rather than only its public half.
func VerifyPresent(pp *params.Params, policy *PolicyAggregate, policySK *PolicySecretKey, pres *Presentation) error {
	n := pres.NumAttributes
	if n == 0 || n > len(pp.H) {
		return errs.New(errs.InvalidParameter, "attribute count out of bounds")
	}
	if len(pres.Reveal) != len(pres.Revealed) {
		return errs.New(errs.InvalidParameter, "reveal/revealed length mismatch")
	}
	sortedReveal, err := validateReveal(n, pres.Reveal)
	if err != nil {
		return err
	}
	for i := range sortedReveal {
		if sortedReveal[i] != pres.Reveal[i] {
			return errs.New(errs.InvalidParameter, "reveal indices not canonically sorted")
		}
	}
	hide := hideIndices(n, sortedReveal)
	if len(hide) != len(pres.V) {
		return errs.New(errs.InvalidParameter, "hidden-response length mismatch")
	}

	h, err := pp.MessageGenerators(n)
	if err != nil {
		return err
	}

	// U1' = D*s + ABar*t - BBar*c
	ds := curve.G1ScalarMul(&pres.D, &pres.S)
	aBarT := curve.G1ScalarMul(&pres.ABar, &pres.T)
	bBarC := curve.G1ScalarMul(&pres.BBar, &pres.C)
	dsPlusABarT := curve.G1Add(&ds, &aBarT)
	u1Prime := curve.G1Sub(&dsPlusABarT, &bBarC)

	// U2' = D*z - g1*c - Sum_{reveal} h[i]*m[i]*c + Sum_{hide} h[j]*v_j
	dz := curve.G1ScalarMul(&pres.D, &pres.Z)
	g1c := curve.G1ScalarMul(&pp.G1, &pres.C)
	revealTerms := make([]curve.G1, len(sortedReveal))
	revealScalars := make([]curve.Scalar, len(sortedReveal))
	for i, j := range sortedReveal {
		revealTerms[i] = h[j]
		revealScalars[i] = curve.ScalarMul(&pres.C, &pres.Revealed[i])
	}
	revealSum := curve.G1LinearCombination(revealTerms, revealScalars)

	hHide := make([]curve.G1, len(hide))
	for i, j := range hide {
		hHide[i] = h[j]
	}
	hideSum := curve.G1LinearCombination(hHide, pres.V)

	dzMinusG1c := curve.G1Sub(&dz, &g1c)
	dzMinusG1cMinusReveal := curve.G1Sub(&dzMinusG1c, &revealSum)
	u2Prime := curve.G1Add(&dzMinusG1cMinusReveal, &hideSum)

	tr := buildTranscript(h, sortedReveal, pres.Revealed, &pres.ABar, &pres.BBar, &pres.D, &u1Prime, &u2Prime)
	cPrime, err := tr.challenge(dstPresentChallenge)
	if err != nil {
		return errs.Wrap(errs.RandomnessFailure, "deriving challenge", err)
	}
	if !cPrime.Equal(&pres.C) {
		return errs.ProofFailure(errs.SubKindChallenge, "recomputed challenge does not match transmitted challenge")
	}

	// Policy binding: e(ABar, sigmaTilde*(-a^-1) + g2*(k-1)*b + Sum ipk_i) == e(BBar, g2).
	k := len(policy.IPKs)
	aInv, err := curve.ScalarInverse(&policySK.A)
	if err != nil {
		return errs.Wrap(errs.InvalidKey, "policy secret a inverse failed", err)
	}
	negAInv := curve.ScalarNeg(&aInv)
	pairingRight := curve.G2ScalarMul(&pres.SigmaTilde, &negAInv)

	kMinus1 := curve.ScalarFromUint64(uint64(k - 1))
	kMinus1B := curve.ScalarMul(&kMinus1, &policySK.B)
	g2Term := curve.G2ScalarMul(&pp.G2, &kMinus1B)
	pairingRight = curve.G2Add(&pairingRight, &g2Term)

	for i := range policy.IPKs {
		pairingRight = curve.G2Add(&pairingRight, &policy.IPKs[i])
	}

	negBBar := curve.G1Neg(&pres.BBar)
	ok, err := curve.PairingProductIsOne(
		[]curve.G1{pres.ABar, negBBar},
		[]curve.G2{pairingRight, pp.G2},
	)
	if err != nil {
		return errs.Wrap(errs.ProofVerificationFailed, "pairing computation failed", err)
	}
	if !ok {
		return errs.ProofFailure(errs.SubKindPolicyBinding, "credential not bound to any trust-listed issuer")
	}

	return nil
}
