package sonicpc

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-sonic-pc/internal/kzg"
	"github.com/crate-crypto/go-sonic-pc/sponge"
)

// BatchOpen produces one evaluation proof for every (label, point) query in
// the set, batched into one witness per distinct point.
//
// rands must line up one-to-one with polys, as returned by Commit. The
// sponge must be freshly domain-separated and driven by nothing else; the
// verifier replays the same transcript from its own copies of the data.
func BatchOpen(pk *UniversalProverKey, polys []LabeledPolynomial, querySet QuerySet, rands []Randomness, s sponge.Sponge) (BatchProof, error) {
	if len(rands) != len(polys) {
		return BatchProof{}, ErrMismatchedRandomness
	}

	byLabel := make(map[string]int, len(polys))
	for i := range polys {
		byLabel[polys[i].Label] = i
	}
	for q := range querySet {
		if _, ok := byLabel[q.Label]; !ok {
			return BatchProof{}, fmt.Errorf("%w: %q", ErrMissingPolynomial, q.Label)
		}
	}

	groups := groupQueries(querySet)

	// Recompute the queried commitments: a commitment is deterministic
	// given the polynomial and its blinding randomness, so this matches
	// the verifier's copies bit for bit without taking them as input.
	comms := make(map[string]*LabeledCommitment, len(byLabel))
	for _, label := range queriedLabels(groups) {
		i := byLabel[label]
		c, err := commitLabeled(pk, &polys[i], &rands[i])
		if err != nil {
			return BatchProof{}, err
		}
		comms[label] = &c
	}

	values := NewEvaluations()
	for _, g := range groups {
		for _, label := range g.labels {
			values.Insert(label, g.point, polys[byLabel[label]].Evaluate(g.point))
		}
	}

	// The folding challenge is squeezed here solely to keep the sponge
	// state aligned with the verifier; only the verifier consumes it.
	pointChallenges, _, err := squeezeChallenges(s, comms, groups, values)
	if err != nil {
		return BatchProof{}, err
	}

	proofs := make([]OpeningProof, len(groups))
	for i, g := range groups {
		combined, blind, err := combineForPoint(pk, polys, rands, byLabel, g, pointChallenges[i])
		if err != nil {
			return BatchProof{}, err
		}

		proof, err := kzg.Open(&pk.ck, combined, g.point, blind, 0)
		if err != nil {
			return BatchProof{}, err
		}
		proofs[i] = OpeningProof{W: proof.W, RandomV: proof.RandomV}
	}

	return BatchProof{Proofs: proofs}, nil
}

// combineForPoint folds every polynomial queried at one point into a single
// virtual polynomial using powers of the point's challenge. KZG opening is
// linear, so one witness for the virtual polynomial certifies all claims.
//
// A degree-bounded polynomial contributes a second term, its shift
// x^(N-d) * p(x), under the next challenge power; the shifted claim is what
// certifies the bound. Blinding polynomials fold with the same weights.
func combineForPoint(pk *UniversalProverKey, polys []LabeledPolynomial, rands []Randomness, byLabel map[string]int, g pointGroup, challenge fr.Element) (kzg.Polynomial, kzg.Polynomial, error) {
	var combined, blind []fr.Element
	hiding := false

	weight := fr.One()
	nextWeight := func() {
		weight.Mul(&weight, &challenge)
	}

	for _, label := range g.labels {
		i := byLabel[label]
		p := &polys[i]
		r := &rands[i]

		combined = addScaled(combined, weight, p.Coeffs)
		if r.Blind != nil {
			blind = addScaled(blind, weight, r.Blind)
			hiding = true
		}
		nextWeight()

		if p.DegreeBound == nil {
			continue
		}
		bound := *p.DegreeBound
		if _, ok := pk.shiftedPowers[bound]; !ok {
			return nil, nil, fmt.Errorf("%w: polynomial %q declares bound %d", ErrUnsupportedDegreeBound, label, bound)
		}

		shift := pk.maxDegree - bound
		coeffs := p.trimmedCoeffs()
		shifted := make([]fr.Element, shift+uint64(len(coeffs)))
		copy(shifted[shift:], coeffs)

		combined = addScaled(combined, weight, shifted)
		if r.ShiftedBlind != nil {
			blind = addScaled(blind, weight, r.ShiftedBlind)
			hiding = true
		}
		nextWeight()
	}

	if len(combined) == 0 {
		combined = make([]fr.Element, 1)
	}
	if !hiding {
		blind = nil
	}
	return combined, blind, nil
}

// addScaled returns dst += scale * src, growing dst as needed.
func addScaled(dst []fr.Element, scale fr.Element, src []fr.Element) []fr.Element {
	if len(src) > len(dst) {
		grown := make([]fr.Element, len(src))
		copy(grown, dst)
		dst = grown
	}
	var tmp fr.Element
	for i := range src {
		tmp.Mul(&scale, &src[i])
		dst[i].Add(&dst[i], &tmp)
	}
	return dst
}
