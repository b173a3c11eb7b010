package sonicpc

import (
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-sonic-pc/internal/kzg"
	"github.com/crate-crypto/go-sonic-pc/internal/multiexp"
	"github.com/crate-crypto/go-sonic-pc/sponge"
)

// BatchCheck verifies a batch opening proof against the claimed
// evaluations.
//
// It replays the prover's transcript from its own copies of the
// commitments and claimed values, reconstructs the per-point combined
// commitments and values with the same challenges, and decides everything
// with a single aggregated pairing equality. A rejected proof is
// (false, nil): rejection is an expected outcome, not an error.
func BatchCheck(vk *UniversalVerifierKey, comms []LabeledCommitment, querySet QuerySet, values Evaluations, proof BatchProof, s sponge.Sponge) (bool, error) {
	byLabel := make(map[string]*LabeledCommitment, len(comms))
	for i := range comms {
		byLabel[comms[i].Label] = &comms[i]
	}

	for q := range querySet {
		c, ok := byLabel[q.Label]
		if !ok {
			return false, fmt.Errorf("%w: %q", ErrMissingPolynomial, q.Label)
		}
		if c.DegreeBound != nil {
			if *c.DegreeBound == 0 || *c.DegreeBound > vk.MaxDegree {
				return false, fmt.Errorf("%w: commitment %q declares bound %d, srs degree is %d", ErrUnsupportedDegreeBound, q.Label, *c.DegreeBound, vk.MaxDegree)
			}
			if c.ShiftedComm == nil {
				return false, fmt.Errorf("%w: commitment %q declares a degree bound but has no shifted element", ErrMalformedCommitment, q.Label)
			}
		}
		if _, ok := values.Get(q.Label, q.Point); !ok {
			return false, fmt.Errorf("%w: label %q", ErrMissingEvaluation, q.Label)
		}
	}

	groups := groupQueries(querySet)

	// A proof with the wrong number of witnesses cannot have been produced
	// by this transcript.
	if len(proof.Proofs) != len(groups) {
		return false, nil
	}

	pointChallenges, foldingChallenge, err := squeezeChallenges(s, byLabel, groups, values)
	if err != nil {
		return false, err
	}

	claims := make([]kzg.Claim, len(groups))
	kzgProofs := make([]kzg.OpeningProof, len(groups))
	for i, g := range groups {
		claim, err := foldClaims(vk, byLabel, g, pointChallenges[i], values)
		if err != nil {
			return false, err
		}
		claims[i] = claim
		kzgProofs[i] = kzg.OpeningProof{W: proof.Proofs[i].W, RandomV: proof.Proofs[i].RandomV}
	}

	return kzg.VerifyMultiPoints(claims, kzgProofs, foldingChallenge, vk.openingKey())
}

// foldClaims reconstructs, for one point, the combined commitment and
// combined claimed value under the same challenge powers the prover used.
// A degree-bounded commitment contributes its shifted element with claimed
// value z^(N-d) * v.
func foldClaims(vk *UniversalVerifierKey, byLabel map[string]*LabeledCommitment, g pointGroup, challenge fr.Element, values Evaluations) (kzg.Claim, error) {
	var scalars []fr.Element
	var points []bls12381.G1Affine
	var combinedValue, tmp fr.Element

	weight := fr.One()
	for _, label := range g.labels {
		c := byLabel[label]
		value, _ := values.Get(label, g.point)

		scalars = append(scalars, weight)
		points = append(points, c.Comm)
		tmp.Mul(&weight, &value)
		combinedValue.Add(&combinedValue, &tmp)
		weight.Mul(&weight, &challenge)

		if c.DegreeBound == nil {
			continue
		}

		scalars = append(scalars, weight)
		points = append(points, *c.ShiftedComm)

		var shiftedValue fr.Element
		shift := new(big.Int).SetUint64(vk.MaxDegree - *c.DegreeBound)
		shiftedValue.Exp(g.point, shift)
		shiftedValue.Mul(&shiftedValue, &value)

		tmp.Mul(&weight, &shiftedValue)
		combinedValue.Add(&combinedValue, &tmp)
		weight.Mul(&weight, &challenge)
	}

	combinedComm, err := multiexp.MultiExpG1(scalars, points, 0)
	if err != nil {
		return kzg.Claim{}, err
	}

	return kzg.Claim{
		Commitment: *combinedComm,
		Point:      g.point,
		Value:      combinedValue,
	}, nil
}
