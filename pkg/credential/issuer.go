// Package credential implements the issuer-hiding anonymous credential
// protocol (§4.4): issuance of BBS-signed attribute vectors, verifier
// trust-list policies, and zero-knowledge presentation that proves a
// holder carries a signature from some listed issuer while selectively
// disclosing attributes, without revealing the issuer's identity or any
// undisclosed attribute.
package credential

import (
	"github.com/kysee/issuer-hiding/internal/curve"
	"github.com/kysee/issuer-hiding/internal/errs"
	"github.com/kysee/issuer-hiding/pkg/bbs"
	"github.com/kysee/issuer-hiding/pkg/params"
)

// IssuerSecretKey and IssuerPublicKey are the BBS keypair an issuer uses
// to sign attribute vectors.
type IssuerSecretKey = bbs.SecretKey
type IssuerPublicKey = bbs.PublicKey

// Credential is a BBS signature over a holder's attribute vector.
type Credential struct {
	Sig *bbs.Signature
}

// IssuerKeyGen samples a fresh issuer keypair (§4.4.1 delegates to BBS keygen).
func IssuerKeyGen(pp *params.Params) (*IssuerSecretKey, *IssuerPublicKey, error) {
	return bbs.KeyGen(pp)
}

// Issue signs an attribute vector, producing a credential the holder
// keeps alongside the plaintext attributes. 1 <= len(m) <= N_max.
func Issue(sk *IssuerSecretKey, pp *params.Params, m []curve.Scalar) (*Credential, error) {
	if len(m) == 0 || len(m) > len(pp.H) {
		return nil, errs.New(errs.InvalidParameter, "attribute count out of bounds")
	}
	sig, err := bbs.Sign(sk, pp, m)
	if err != nil {
		return nil, err
	}
	return &Credential{Sig: sig}, nil
}

// VerifyCredential checks that cred is a valid signature on m under ipk.
func VerifyCredential(ipk *IssuerPublicKey, pp *params.Params, m []curve.Scalar, cred *Credential) error {
	return bbs.Verify(ipk, pp, m, cred.Sig)
}
