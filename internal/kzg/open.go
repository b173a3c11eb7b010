package kzg

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Open creates a KZG proof that p(point) equals the value obtained by
// evaluating `p` at `point`.
//
// `blind` is the blinding polynomial attached to the commitment being opened;
// it is nil for non-hiding commitments. When present, the blinding quotient is
// committed on the gamma row and folded into the same witness, and the proof
// carries the blinding evaluation so the verifier can strip the mask.
func Open(ck *CommitKey, p Polynomial, point fr.Element, blind Polynomial, numGoRoutines int) (OpeningProof, error) {
	if len(p) == 0 || len(p) > len(ck.PowersOfG) {
		return OpeningProof{}, ErrInvalidPolynomialSize
	}

	var proof OpeningProof

	quotient := DividePolyByXminusA(p, point)
	if len(quotient) > 0 {
		w, err := Commit(quotient, ck.PowersOfG, numGoRoutines)
		if err != nil {
			return OpeningProof{}, err
		}
		proof.W = *w
	}

	if blind != nil {
		blindQuotient := DividePolyByXminusA(blind, point)
		if len(blindQuotient) > 0 {
			if len(blindQuotient) > len(ck.PowersOfGammaG) {
				return OpeningProof{}, ErrInvalidPolynomialSize
			}
			wGamma, err := Commit(blindQuotient, ck.PowersOfGammaG, numGoRoutines)
			if err != nil {
				return OpeningProof{}, err
			}
			proof.W.Add(&proof.W, wGamma)
		}

		randomV := EvaluatePolynomial(blind, point)
		proof.RandomV = &randomV
	}

	return proof, nil
}
