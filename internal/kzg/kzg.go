package kzg

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-sonic-pc/internal/multiexp"
)

// Polynomial is a list of coefficients in monomial order, lowest degree first.
type Polynomial = []fr.Element

type Commitment = bls12381.G1Affine

// Proof to the claim that a polynomial f(x) was evaluated at a point `a` and
// resulted in `f(a)`
type OpeningProof struct {
	// W is a commitment to the quotient polynomial (f - f(a))/(x-a).
	//
	// When the commitment is hiding, the blinding quotient is folded
	// into W on the gamma generator row.
	W bls12381.G1Affine

	// RandomV is the evaluation of the blinding polynomial at `a`.
	// It is nil when the commitment being opened is not hiding.
	RandomV *fr.Element
}

// Commit commits to a polynomial using a multi exponentiation with the given basis.
//
// The basis may be the monomial SRS powers, a shifted slice of them, the gamma
// (blinding) row, or a Lagrange basis; the caller chooses which claim the
// resulting group element binds.
func Commit(p Polynomial, basis []bls12381.G1Affine, numGoRoutines int) (*Commitment, error) {
	if len(p) == 0 || len(p) > len(basis) {
		return nil, ErrInvalidPolynomialSize
	}

	return multiexp.MultiExpG1(p, basis[:len(p)], numGoRoutines)
}

// EvaluatePolynomial evaluates a polynomial in coefficient form at `point`
// using Horner's method.
func EvaluatePolynomial(p Polynomial, point fr.Element) fr.Element {
	var result fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		result.Mul(&result, &point)
		result.Add(&result, &p[i])
	}
	return result
}

// DividePolyByXminusA computes the quotient (f - f(a))/(x - a) by synthetic
// division. The remainder f(a) is discarded.
func DividePolyByXminusA(f Polynomial, a fr.Element) Polynomial {
	if len(f) <= 1 {
		return Polynomial{}
	}

	quotient := make(Polynomial, len(f)-1)
	quotient[len(f)-2] = f[len(f)-1]
	for i := len(f) - 2; i >= 1; i-- {
		quotient[i-1].Mul(&quotient[i], &a)
		quotient[i-1].Add(&quotient[i-1], &f[i])
	}
	return quotient
}
