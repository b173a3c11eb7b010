package sonicpc

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-sonic-pc/internal/kzg"
)

// LabeledPolynomial wraps a polynomial in coefficient form with the label the
// protocol refers to it by, and the per-polynomial commitment options.
type LabeledPolynomial struct {
	// Label must be unique within one proving session; query sets and
	// linear combinations reference polynomials by it.
	Label string

	// Coeffs in monomial order, lowest degree first.
	Coeffs []fr.Element

	// DegreeBound, when non-nil, makes the commitment additionally certify
	// deg(p) <= *DegreeBound. The bound must be part of the prover key's
	// supported set.
	DegreeBound *uint64

	// HidingBound, when non-nil and nonzero, is the degree of the blinding
	// polynomial mixed into the commitment.
	HidingBound *uint64
}

func NewLabeledPolynomial(label string, coeffs []fr.Element, degreeBound, hidingBound *uint64) LabeledPolynomial {
	return LabeledPolynomial{Label: label, Coeffs: coeffs, DegreeBound: degreeBound, HidingBound: hidingBound}
}

// Degree returns the degree of the polynomial, ignoring trailing zero
// coefficients. The zero polynomial has degree 0.
func (p *LabeledPolynomial) Degree() uint64 {
	for i := len(p.Coeffs) - 1; i > 0; i-- {
		if !p.Coeffs[i].IsZero() {
			return uint64(i)
		}
	}
	return 0
}

func (p *LabeledPolynomial) Evaluate(point fr.Element) fr.Element {
	return kzg.EvaluatePolynomial(p.Coeffs, point)
}

// trimmedCoeffs returns the coefficients with trailing zeros removed, so that
// shifted commitments never ask for more basis elements than the degree
// bound allows.
func (p *LabeledPolynomial) trimmedCoeffs() []fr.Element {
	return p.Coeffs[:p.Degree()+1]
}

// LabeledPolynomialWithBasis is a polynomial given by its evaluations over
// the radix-2 domain of size len(Evals). Committing to it directly against
// the Lagrange-basis SRS avoids an interpolation, and must produce the same
// commitment as interpolating and committing in coefficient form.
type LabeledPolynomialWithBasis struct {
	Label string

	// Evals over the roots-of-unity domain whose size is len(Evals).
	// The size must be a power of two from the prover key's supported set.
	Evals []fr.Element

	HidingBound *uint64
}

func NewLagrangePolynomial(label string, evals []fr.Element, hidingBound *uint64) LabeledPolynomialWithBasis {
	return LabeledPolynomialWithBasis{Label: label, Evals: evals, HidingBound: hidingBound}
}

// Commitment binds one polynomial. ShiftedComm is set iff the polynomial
// declared a degree bound d: it commits to x^(N-d) * p(x), where N is the
// SRS cap, and can only exist when deg(p) <= d since the SRS holds no powers
// beyond beta^N.
type Commitment struct {
	Comm        bls12381.G1Affine
	ShiftedComm *bls12381.G1Affine
}

// LabeledCommitment pairs a commitment with the label and degree bound it
// was produced under, which the verifier needs to replay the transcript.
type LabeledCommitment struct {
	Label       string
	DegreeBound *uint64
	Commitment
}

// Randomness is the blinding material sampled at commit time for a hiding
// commitment. It must be kept by the prover: opening a hiding commitment
// requires the blinding polynomial to mask the witness.
//
// Randomness is generated fresh per commitment and never reused.
type Randomness struct {
	// Blind is the blinding polynomial for the base commitment, nil when
	// the commitment is not hiding.
	Blind []fr.Element

	// ShiftedBlind blinds the shifted (degree-bound) commitment. Only set
	// when the polynomial is both hiding and degree-bounded.
	ShiftedBlind []fr.Element
}
