package sonicpc

import (
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-sonic-pc/internal/multiexp"
	"github.com/crate-crypto/go-sonic-pc/sponge"
)

// OpenCombinations proves evaluations of named weighted sums of committed
// polynomials. No commitment to a sum is ever formed: the prover opens the
// virtual polynomials directly and the verifier reconstructs their
// commitments by homomorphism, Commit(sum c_i * P_i) = sum c_i * Commit(P_i).
//
// The query set is keyed by combination label.
func OpenCombinations(pk *UniversalProverKey, lcs []LinearCombination, polys []LabeledPolynomial, rands []Randomness, querySet QuerySet, s sponge.Sponge) (BatchLCProof, error) {
	if len(rands) != len(polys) {
		return BatchLCProof{}, ErrMismatchedRandomness
	}

	byLabel := make(map[string]int, len(polys))
	for i := range polys {
		byLabel[polys[i].Label] = i
	}

	virtualPolys := make([]LabeledPolynomial, 0, len(lcs))
	virtualRands := make([]Randomness, 0, len(lcs))
	for i := range lcs {
		vp, vr, err := combineLC(&lcs[i], polys, rands, byLabel)
		if err != nil {
			return BatchLCProof{}, err
		}
		virtualPolys = append(virtualPolys, vp)
		virtualRands = append(virtualRands, vr)
	}

	proof, err := BatchOpen(pk, virtualPolys, querySet, virtualRands, s)
	if err != nil {
		return BatchLCProof{}, err
	}
	return BatchLCProof{Proof: proof}, nil
}

// combineLC materializes the virtual polynomial of one combination, along
// with the matching virtual blinding randomness.
func combineLC(lc *LinearCombination, polys []LabeledPolynomial, rands []Randomness, byLabel map[string]int) (LabeledPolynomial, Randomness, error) {
	if lc.IsEmpty() {
		return LabeledPolynomial{}, Randomness{}, fmt.Errorf("%w: %q is empty", ErrInvalidLinearCombination, lc.Label)
	}

	degreeBound, err := combinationDegreeBound(lc, func(label string) (*uint64, bool) {
		i, ok := byLabel[label]
		if !ok {
			return nil, false
		}
		return polys[i].DegreeBound, true
	})
	if err != nil {
		return LabeledPolynomial{}, Randomness{}, err
	}

	var coeffs []fr.Element
	var rand Randomness
	for _, term := range lc.Terms {
		i := byLabel[term.Label]
		coeffs = addScaled(coeffs, term.Coeff, polys[i].Coeffs)
		if rands[i].Blind != nil {
			rand.Blind = addScaled(rand.Blind, term.Coeff, rands[i].Blind)
		}
		if rands[i].ShiftedBlind != nil {
			rand.ShiftedBlind = addScaled(rand.ShiftedBlind, term.Coeff, rands[i].ShiftedBlind)
		}
	}
	if len(coeffs) == 0 {
		coeffs = make([]fr.Element, 1)
	}

	return LabeledPolynomial{
		Label:       lc.Label,
		Coeffs:      coeffs,
		DegreeBound: degreeBound,
	}, rand, nil
}

// CheckCombinations verifies evaluation claims for linear combinations of
// committed polynomials: it derives each combination's commitment from the
// referenced ones by homomorphism, cross-checks the claimed values against
// the referenced polynomials' claimed values where those are supplied, and
// then runs the underlying batch check.
func CheckCombinations(vk *UniversalVerifierKey, lcs []LinearCombination, comms []LabeledCommitment, querySet QuerySet, values Evaluations, proof BatchLCProof, s sponge.Sponge) (bool, error) {
	byLabel := make(map[string]*LabeledCommitment, len(comms))
	for i := range comms {
		byLabel[comms[i].Label] = &comms[i]
	}

	derived := make([]LabeledCommitment, 0, len(lcs))
	lcByLabel := make(map[string]*LinearCombination, len(lcs))
	for i := range lcs {
		lc := &lcs[i]
		lcByLabel[lc.Label] = lc

		c, err := deriveCommitment(lc, byLabel)
		if err != nil {
			return false, err
		}
		derived = append(derived, c)
	}

	// Arithmetic consistency: whenever the caller supplied claimed values
	// for every referenced polynomial at a queried point, the combination's
	// claimed value must be their weighted sum.
	for q := range querySet {
		lc, ok := lcByLabel[q.Label]
		if !ok {
			continue
		}
		claimed, ok := values.Get(q.Label, q.Point)
		if !ok {
			return false, fmt.Errorf("%w: combination %q", ErrMissingEvaluation, q.Label)
		}

		var sum, tmp fr.Element
		complete := true
		for _, term := range lc.Terms {
			value, ok := values.Get(term.Label, q.Point)
			if !ok {
				complete = false
				break
			}
			tmp.Mul(&term.Coeff, &value)
			sum.Add(&sum, &tmp)
		}
		if complete && !sum.Equal(&claimed) {
			return false, nil
		}
	}

	return BatchCheck(vk, derived, querySet, values, proof.Proof, s)
}

// deriveCommitment folds the referenced commitments of one combination into
// the commitment of its virtual polynomial.
func deriveCommitment(lc *LinearCombination, byLabel map[string]*LabeledCommitment) (LabeledCommitment, error) {
	if lc.IsEmpty() {
		return LabeledCommitment{}, fmt.Errorf("%w: %q is empty", ErrInvalidLinearCombination, lc.Label)
	}

	degreeBound, err := combinationDegreeBound(lc, func(label string) (*uint64, bool) {
		c, ok := byLabel[label]
		if !ok {
			return nil, false
		}
		return c.DegreeBound, true
	})
	if err != nil {
		return LabeledCommitment{}, err
	}

	scalars := make([]fr.Element, len(lc.Terms))
	points := make([]bls12381.G1Affine, len(lc.Terms))
	for i, term := range lc.Terms {
		scalars[i] = term.Coeff
		points[i] = byLabel[term.Label].Comm
	}
	comm, err := multiexp.MultiExpG1(scalars, points, 0)
	if err != nil {
		return LabeledCommitment{}, err
	}

	c := LabeledCommitment{
		Label:       lc.Label,
		DegreeBound: degreeBound,
		Commitment:  Commitment{Comm: *comm},
	}

	if degreeBound != nil {
		// Degenerate single-term combination: the shifted element scales
		// along with the base one.
		ref := byLabel[lc.Terms[0].Label]
		if ref.ShiftedComm == nil {
			return LabeledCommitment{}, fmt.Errorf("%w: commitment %q declares a degree bound but has no shifted element", ErrMalformedCommitment, ref.Label)
		}
		var shifted bls12381.G1Affine
		var coeffBig big.Int
		lc.Terms[0].Coeff.BigInt(&coeffBig)
		shifted.ScalarMultiplication(ref.ShiftedComm, &coeffBig)
		c.ShiftedComm = &shifted
	}

	return c, nil
}

// combinationDegreeBound applies the mixed-bound rule: a combination may
// reference a degree-bounded polynomial only as its sole term, in which case
// the combination inherits that bound. lookup resolves a referenced label to
// its degree bound, reporting whether the label is known at all.
func combinationDegreeBound(lc *LinearCombination, lookup func(label string) (*uint64, bool)) (*uint64, error) {
	var bound *uint64
	for _, term := range lc.Terms {
		termBound, ok := lookup(term.Label)
		if !ok {
			return nil, fmt.Errorf("%w: combination %q references %q", ErrMissingPolynomial, lc.Label, term.Label)
		}
		if termBound != nil {
			bound = termBound
		}
	}
	if bound != nil && len(lc.Terms) > 1 {
		return nil, fmt.Errorf("%w: %q mixes a degree-bounded term with other terms", ErrInvalidLinearCombination, lc.Label)
	}
	return bound, nil
}
