package credential

import (
	"github.com/kysee/issuer-hiding/pkg/groth"
	"github.com/kysee/issuer-hiding/pkg/params"
)

// RootSecretKey and RootPublicKey are the Groth1 keypair a root authority
// uses to certify verifier public keys, giving Groth1 (message in G1) a
// role alongside Groth2's use for issuer-list commitments: spec §4.3
// describes Groth1/Groth2 as structurally dual, but the credential
// protocol itself only calls for Groth2. A deployment still needs some
// way to decide which verifier public keys are themselves trustworthy;
// certifying them with Groth1 is the natural symmetric use of the other
// half of the signature pair.
type RootSecretKey = groth.SecretKey1
type RootPublicKey = groth.PublicKey1

// VerifierCertificate attests that vpk belongs to a verifier the root
// authority vouches for.
type VerifierCertificate struct {
	Sig *groth.Signature1
}

// RootKeyGen samples a fresh root-authority keypair.
func RootKeyGen(pp *params.Params) (*RootSecretKey, *RootPublicKey, error) {
	return groth.KeyGen1(pp)
}

// CertifyVerifier signs a verifier's public key under the root authority's key.
func CertifyVerifier(rsk *RootSecretKey, pp *params.Params, vpk *VerifierPublicKey) (*VerifierCertificate, error) {
	sig, err := groth.Sign1(rsk, pp, &vpk.VK)
	if err != nil {
		return nil, err
	}
	return &VerifierCertificate{Sig: sig}, nil
}

// VerifyVerifierCertificate checks that cert certifies vpk under rpk.
func VerifyVerifierCertificate(rpk *RootPublicKey, pp *params.Params, vpk *VerifierPublicKey, cert *VerifierCertificate) error {
	vk := vpk.VK
	return groth.Verify1(rpk, pp, &vk, cert.Sig)
}

// RerandomizeCertificate produces a fresh, unlinkable copy of cert for
// presentation-time use, so a verifier doesn't hand out the same
// certificate bytes to every relying party it talks to.
func RerandomizeCertificate(cert *VerifierCertificate) (*VerifierCertificate, error) {
	sig, err := groth.Rerandomize1(cert.Sig)
	if err != nil {
		return nil, err
	}
	return &VerifierCertificate{Sig: sig}, nil
}
