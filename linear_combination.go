package sonicpc

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// LCTerm is one coefficient-weighted reference to a committed polynomial.
type LCTerm struct {
	Coeff fr.Element
	Label string
}

// LinearCombination names a virtual polynomial defined as the weighted sum
// of committed polynomials. It is never committed to directly: the verifier
// reconstructs its commitment from the referenced ones by homomorphism.
//
// A combination referencing a degree-bounded polynomial must consist of that
// single term; mixing a bounded term with further terms is malformed.
type LinearCombination struct {
	Label string
	Terms []LCTerm
}

func EmptyLinearCombination(label string) LinearCombination {
	return LinearCombination{Label: label}
}

func (lc *LinearCombination) Add(coeff fr.Element, label string) {
	lc.Terms = append(lc.Terms, LCTerm{Coeff: coeff, Label: label})
}

func (lc *LinearCombination) IsEmpty() bool {
	return len(lc.Terms) == 0
}
