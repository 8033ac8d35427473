// Command issuerhiding runs one end-to-end credential lifecycle — issue,
// publish a trust-list policy, present with selective disclosure, verify
// — and logs each stage. It exists to exercise the library the way a
// relying party would, not as a production service.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/kysee/issuer-hiding/internal/curve"
	"github.com/kysee/issuer-hiding/internal/encoding"
	"github.com/kysee/issuer-hiding/internal/logging"
	"github.com/kysee/issuer-hiding/pkg/credential"
	"github.com/kysee/issuer-hiding/pkg/params"
)

func main() {
	log := logging.New(zerolog.InfoLevel)

	pp, err := params.Setup(params.DefaultMaxAttributes)
	if err != nil {
		log.Fatal().Err(err).Msg("parameter setup failed")
	}

	issuerSK, issuerPK, err := credential.IssuerKeyGen(pp)
	if err != nil {
		log.Fatal().Err(err).Msg("issuer keygen failed")
	}

	attrs := []curve.Scalar{
		curve.ScalarFromUint64(1990),
		curve.ScalarFromUint64(1),
		curve.ScalarFromUint64(7),
	}
	cred, err := credential.Issue(issuerSK, pp, attrs)
	if err != nil {
		log.Fatal().Err(err).Msg("issuance failed")
	}
	credBytes := encoding.HexBytes(curve.EncodeG1(&cred.Sig.A))
	log.Info().Str("sig_a", credBytes.Short()).Msg("credential issued")

	if err := credential.VerifyCredential(issuerPK, pp, attrs, cred); err != nil {
		log.Fatal().Err(err).Msg("issued credential failed to verify")
	}

	_, otherIssuerPK, err := credential.IssuerKeyGen(pp)
	if err != nil {
		log.Fatal().Err(err).Msg("second issuer keygen failed")
	}

	policy, policySK, err := credential.IssueListAggregate(pp, []curve.G2{otherIssuerPK.IPK, issuerPK.IPK})
	if err != nil {
		log.Fatal().Err(err).Msg("policy construction failed")
	}
	if err := credential.AuditPolicy(pp, policy); err != nil {
		log.Fatal().Err(err).Msg("policy audit failed")
	}
	log.Info().Int("list_size", len(policy.IPKs)).Msg("policy published and audited")

	reveal := []int{1}
	pres, err := credential.Present(pp, cred, issuerPK.IPK, attrs, reveal, policy)
	if err != nil {
		log.Fatal().Err(err).Msg("presentation failed")
	}

	if err := credential.VerifyPresent(pp, policy, policySK, pres); err != nil {
		log.Fatal().Err(err).Msg("presentation verification failed")
	}
	log.Info().Ints("revealed_indices", reveal).Msg("presentation verified without revealing issuer or hidden attributes")

	os.Exit(0)
}
