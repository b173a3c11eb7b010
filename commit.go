package sonicpc

import (
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"

	"github.com/crate-crypto/go-sonic-pc/internal/kzg"
)

// Commit turns labeled polynomials into commitments plus blinding
// randomness, one pair per input, order-preserving: coefficient-form
// polynomials first, then Lagrange-basis ones, each in input order.
//
// rng supplies the hiding blinds and may be nil when no polynomial declares
// a hiding bound. It is consumed sequentially before any parallel work, so
// concurrent Commit calls need independent randomness streams.
func Commit(pk *UniversalProverKey, polys []LabeledPolynomial, lagrangePolys []LabeledPolynomialWithBasis, rng io.Reader) ([]LabeledCommitment, []Randomness, error) {
	total := len(polys) + len(lagrangePolys)
	comms := make([]LabeledCommitment, total)
	rands := make([]Randomness, total)

	for i := range polys {
		p := &polys[i]
		if err := validatePolynomial(pk, p); err != nil {
			return nil, nil, err
		}
		r, err := sampleRandomness(rng, p.HidingBound, p.DegreeBound != nil)
		if err != nil {
			return nil, nil, err
		}
		rands[i] = r
	}
	for j := range lagrangePolys {
		p := &lagrangePolys[j]
		if err := validateLagrangePolynomial(pk, p); err != nil {
			return nil, nil, err
		}
		r, err := sampleRandomness(rng, p.HidingBound, false)
		if err != nil {
			return nil, nil, err
		}
		rands[len(polys)+j] = r
	}

	// Each commitment touches disjoint inputs and writes to its own slot,
	// so the per-polynomial loop forks freely.
	var group errgroup.Group
	for i := range polys {
		i := i
		group.Go(func() error {
			c, err := commitLabeled(pk, &polys[i], &rands[i])
			if err != nil {
				return err
			}
			comms[i] = c
			return nil
		})
	}
	for j := range lagrangePolys {
		j := j
		group.Go(func() error {
			c, err := commitLagrange(pk, &lagrangePolys[j], &rands[len(polys)+j])
			if err != nil {
				return err
			}
			comms[len(polys)+j] = c
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return comms, rands, nil
}

func validatePolynomial(pk *UniversalProverKey, p *LabeledPolynomial) error {
	if len(p.Coeffs) == 0 {
		return fmt.Errorf("%w: polynomial %q is empty", kzg.ErrInvalidPolynomialSize, p.Label)
	}
	degree := p.Degree()
	if degree > pk.supportedDegree {
		return fmt.Errorf("%w: polynomial %q has degree %d, key supports %d", ErrDegreeTooLarge, p.Label, degree, pk.supportedDegree)
	}
	if p.DegreeBound != nil {
		bound := *p.DegreeBound
		if _, ok := pk.shiftedPowers[bound]; !ok {
			return fmt.Errorf("%w: polynomial %q declares bound %d", ErrUnsupportedDegreeBound, p.Label, bound)
		}
		if bound < degree {
			return fmt.Errorf("%w: polynomial %q has degree %d above its declared bound %d", ErrDegreeTooLarge, p.Label, degree, bound)
		}
	}
	if p.HidingBound != nil && *p.HidingBound > pk.hidingBound {
		return fmt.Errorf("%w: polynomial %q requests hiding bound %d, key supports %d", ErrDegreeTooLarge, p.Label, *p.HidingBound, pk.hidingBound)
	}
	return nil
}

func validateLagrangePolynomial(pk *UniversalProverKey, p *LabeledPolynomialWithBasis) error {
	size := uint64(len(p.Evals))
	if _, ok := pk.lagrangeBases[size]; !ok {
		return fmt.Errorf("%w: polynomial %q has domain size %d", ErrUnsupportedLagrangeSize, p.Label, size)
	}
	if p.HidingBound != nil && *p.HidingBound > pk.hidingBound {
		return fmt.Errorf("%w: polynomial %q requests hiding bound %d, key supports %d", ErrDegreeTooLarge, p.Label, *p.HidingBound, pk.hidingBound)
	}
	return nil
}

// sampleRandomness draws the blinding polynomial(s) for one commitment. A
// degree-bounded hiding polynomial gets an independent blind for its shifted
// commitment: the shifted element is otherwise deterministic in p and would
// leak it.
func sampleRandomness(rng io.Reader, hidingBound *uint64, bounded bool) (Randomness, error) {
	if hidingBound == nil || *hidingBound == 0 {
		return Randomness{}, nil
	}
	if rng == nil {
		return Randomness{}, ErrMissingRNG
	}

	blind, err := sampleBlind(rng, *hidingBound)
	if err != nil {
		return Randomness{}, err
	}
	r := Randomness{Blind: blind}

	if bounded {
		shifted, err := sampleBlind(rng, *hidingBound)
		if err != nil {
			return Randomness{}, err
		}
		r.ShiftedBlind = shifted
	}
	return r, nil
}

func sampleBlind(rng io.Reader, degree uint64) ([]fr.Element, error) {
	blind := make([]fr.Element, degree+1)
	var buf [48]byte
	for i := range blind {
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			return nil, err
		}
		// 48 uniform bytes reduced mod r keep the bias negligible.
		blind[i].SetBigInt(new(big.Int).SetBytes(buf[:]))
	}
	return blind, nil
}

// commitLabeled computes the commitment for one polynomial given its
// blinding randomness. It is deterministic, which BatchOpen relies on to
// replay the verifier's transcript without being handed the commitments.
func commitLabeled(pk *UniversalProverKey, p *LabeledPolynomial, rand *Randomness) (LabeledCommitment, error) {
	comm, err := kzg.Commit(p.Coeffs, pk.ck.PowersOfG, 0)
	if err != nil {
		return LabeledCommitment{}, err
	}
	if rand.Blind != nil {
		gammaComm, err := kzg.Commit(rand.Blind, pk.ck.PowersOfGammaG, 0)
		if err != nil {
			return LabeledCommitment{}, err
		}
		comm.Add(comm, gammaComm)
	}

	c := LabeledCommitment{
		Label:       p.Label,
		DegreeBound: p.DegreeBound,
		Commitment:  Commitment{Comm: *comm},
	}

	if p.DegreeBound != nil {
		shifted, err := kzg.Commit(p.trimmedCoeffs(), pk.shiftedPowers[*p.DegreeBound], 0)
		if err != nil {
			return LabeledCommitment{}, err
		}
		if rand.ShiftedBlind != nil {
			gammaComm, err := kzg.Commit(rand.ShiftedBlind, pk.ck.PowersOfGammaG, 0)
			if err != nil {
				return LabeledCommitment{}, err
			}
			shifted.Add(shifted, gammaComm)
		}
		c.ShiftedComm = shifted
	}

	return c, nil
}

func commitLagrange(pk *UniversalProverKey, p *LabeledPolynomialWithBasis, rand *Randomness) (LabeledCommitment, error) {
	comm, err := kzg.Commit(p.Evals, pk.lagrangeBases[uint64(len(p.Evals))], 0)
	if err != nil {
		return LabeledCommitment{}, err
	}
	if rand.Blind != nil {
		gammaComm, err := kzg.Commit(rand.Blind, pk.ck.PowersOfGammaG, 0)
		if err != nil {
			return LabeledCommitment{}, err
		}
		comm.Add(comm, gammaComm)
	}
	return LabeledCommitment{Label: p.Label, Commitment: Commitment{Comm: *comm}}, nil
}
