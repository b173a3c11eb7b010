package kzg

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Key used to make opening proofs.
type CommitKey struct {
	// PowersOfG = [G, beta*G, beta^2*G, ..., beta^maxDegree*G]
	PowersOfG []bls12381.G1Affine

	// PowersOfGammaG = [gamma*G, gamma*beta*G, ...] -- the blinding row.
	// Commitments to blinding polynomials are made against this basis so
	// that hiding randomness lives on an independent generator.
	PowersOfGammaG []bls12381.G1Affine
}

// Key used to verify opening proofs.
type OpeningKey struct {
	G      bls12381.G1Affine
	GammaG bls12381.G1Affine
	H      bls12381.G2Affine
	BetaH  bls12381.G2Affine
}

// Structured reference string (SRS) for making and verifying KZG proofs.
//
// The secret scalars are provided as input, so this must never be used
// in production; it stands in for the output of a setup ceremony.
type SRS struct {
	CommitKey  CommitKey
	OpeningKey OpeningKey
}

// NewSRSInsecure generates an SRS supporting polynomials up to `maxDegree`
// from explicit toxic waste (beta, gamma). Deterministic given its inputs.
func NewSRSInsecure(maxDegree uint64, bBeta, bGamma *big.Int) (*SRS, error) {
	if maxDegree < 1 {
		return nil, ErrMinSRSSize
	}

	var beta, gamma fr.Element
	beta.SetBigInt(bBeta)
	gamma.SetBigInt(bGamma)

	_, _, gen1Aff, gen2Aff := bls12381.Generators()

	var commitKey CommitKey
	var openKey OpeningKey

	openKey.G = gen1Aff
	openKey.H = gen2Aff
	openKey.BetaH.ScalarMultiplication(&gen2Aff, bBeta)

	// [beta, beta^2, ..., beta^maxDegree]
	betas := make([]fr.Element, maxDegree)
	betas[0] = beta
	for i := 1; i < len(betas); i++ {
		betas[i].Mul(&betas[i-1], &beta)
	}

	commitKey.PowersOfG = make([]bls12381.G1Affine, maxDegree+1)
	commitKey.PowersOfG[0] = gen1Aff
	copy(commitKey.PowersOfG[1:], bls12381.BatchScalarMultiplicationG1(&gen1Aff, betas))

	// [gamma, gamma*beta, ..., gamma*beta^(maxDegree+1)]
	gammas := make([]fr.Element, maxDegree+2)
	gammas[0] = gamma
	for i := 1; i < len(gammas); i++ {
		gammas[i].Mul(&gammas[i-1], &beta)
	}
	commitKey.PowersOfGammaG = bls12381.BatchScalarMultiplicationG1(&gen1Aff, gammas)

	openKey.GammaG = commitKey.PowersOfGammaG[0]

	return &SRS{
		CommitKey:  commitKey,
		OpeningKey: openKey,
	}, nil
}
