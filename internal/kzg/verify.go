package kzg

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-sonic-pc/internal/multiexp"
	"github.com/crate-crypto/go-sonic-pc/internal/utils"
)

// Claim is a single evaluation claim: the polynomial behind `Commitment`
// evaluates to `Value` at `Point`.
type Claim struct {
	Commitment bls12381.G1Affine
	Point      fr.Element
	Value      fr.Element
}

// VerifyMultiPoints checks a batch of opening proofs, one per claim, with a
// single pairing equality.
//
// The claims are folded with powers of `foldingChallenge`: powers of one
// scalar produce a Vandermonde matrix, which is linearly independent, so a
// single random challenge suffices. The challenge must be derived from a
// transcript binding every commitment and claimed value, or sampled after
// the proofs are fixed; it is the caller's soundness obligation.
//
// The point-weighted quotient fold is computed here, on the verifier side.
// It must never be accepted from the prover: a prover free to choose that
// term could set it to cancel the folded claims and forge.
func VerifyMultiPoints(claims []Claim, proofs []OpeningProof, foldingChallenge fr.Element, openKey *OpeningKey) (bool, error) {
	if len(claims) != len(proofs) {
		return false, ErrInvalidNumProofs
	}

	// Nothing to verify.
	if len(claims) == 0 {
		return true, nil
	}

	foldingPowers := utils.ComputePowers(foldingChallenge, uint(len(claims)))

	quotients := make([]bls12381.G1Affine, len(proofs))
	for i := range proofs {
		quotients[i] = proofs[i].W
	}

	// sum_i u^i * W_i
	foldedQuotients, err := multiexp.MultiExpG1(foldingPowers, quotients, 0)
	if err != nil {
		return false, err
	}

	// sum_i u^i * C_i
	commitments := make([]bls12381.G1Affine, len(claims))
	for i := range claims {
		commitments[i] = claims[i].Commitment
	}
	foldedCommitments, err := multiexp.MultiExpG1(foldingPowers, commitments, 0)
	if err != nil {
		return false, err
	}

	// sum_i u^i * v_i and sum_i u^i * randomV_i
	var foldedEvals, foldedRandom, tmp fr.Element
	haveRandom := false
	for i := range claims {
		tmp.Mul(&claims[i].Value, &foldingPowers[i])
		foldedEvals.Add(&foldedEvals, &tmp)

		if proofs[i].RandomV != nil {
			tmp.Mul(proofs[i].RandomV, &foldingPowers[i])
			foldedRandom.Add(&foldedRandom, &tmp)
			haveRandom = true
		}
	}

	var foldedEvalsCommit bls12381.G1Affine
	var foldedEvalsBigInt big.Int
	foldedEvals.BigInt(&foldedEvalsBigInt)
	foldedEvalsCommit.ScalarMultiplication(&openKey.G, &foldedEvalsBigInt)

	foldedCommitments.Sub(foldedCommitments, &foldedEvalsCommit)

	if haveRandom {
		var foldedRandomCommit bls12381.G1Affine
		var foldedRandomBigInt big.Int
		foldedRandom.BigInt(&foldedRandomBigInt)
		foldedRandomCommit.ScalarMultiplication(&openKey.GammaG, &foldedRandomBigInt)
		foldedCommitments.Sub(foldedCommitments, &foldedRandomCommit)
	}

	// sum_i u^i * z_i * W_i
	for i := range claims {
		foldingPowers[i].Mul(&foldingPowers[i], &claims[i].Point)
	}
	foldedPointsQuotients, err := multiexp.MultiExpG1(foldingPowers, quotients, 0)
	if err != nil {
		return false, err
	}

	// lhs first pairing
	foldedCommitments.Add(foldedCommitments, foldedPointsQuotients)

	// lhs second pairing
	foldedQuotients.Neg(foldedQuotients)

	return bls12381.PairingCheck(
		[]bls12381.G1Affine{*foldedCommitments, *foldedQuotients},
		[]bls12381.G2Affine{openKey.H, openKey.BetaH},
	)
}
