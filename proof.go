package sonicpc

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// OpeningProof is the witness for all claims at one evaluation point.
type OpeningProof struct {
	// W commits to the quotient of the challenge-weighted virtual
	// polynomial for this point.
	W bls12381.G1Affine

	// RandomV is the combined blinding evaluation, nil when none of the
	// claims at this point are hiding.
	RandomV *fr.Element
}

// BatchProof is the opening evidence for a whole query set: one witness per
// distinct evaluation point, ordered by the canonical point order of the
// transcript. It verifies only against the exact transcript used to
// produce it.
type BatchProof struct {
	Proofs []OpeningProof
}

// BatchLCProof is the opening evidence for a set of linear combinations.
// The underlying batch proof is over the virtual polynomials, keyed by
// combination label.
type BatchLCProof struct {
	Proof BatchProof
}
