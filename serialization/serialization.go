// Package serialization defines the canonical byte encodings for the
// artifacts that end up inside an outer proof: commitments, opening
// witnesses and challenge scalars.
package serialization

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// CompressedG1Size is the number of bytes needed to represent a group
// element in G1 when compressed.
const CompressedG1Size = 48

// ScalarSize is the number of bytes needed to represent a field element
// corresponding to the order of the G1 group.
const ScalarSize = 32

type G1Point = [CompressedG1Size]byte
type Scalar = [ScalarSize]byte

func SerializeG1Point(affine bls12381.G1Affine) G1Point {
	return affine.Bytes()
}

// DeserializeG1Point performs a subgroup check on deserialization, so the
// returned point is always safe to use in a pairing.
func DeserializeG1Point(serPoint G1Point) (bls12381.G1Affine, error) {
	var point bls12381.G1Affine
	if _, err := point.SetBytes(serPoint[:]); err != nil {
		return bls12381.G1Affine{}, err
	}
	return point, nil
}

func SerializeScalar(element fr.Element) Scalar {
	return element.Bytes()
}

// DeserializeScalar rejects non-canonical encodings, ie byte strings whose
// big integer interpretation is not below the field modulus.
func DeserializeScalar(serScalar Scalar) (fr.Element, error) {
	var scalar fr.Element
	err := scalar.SetBytesCanonical(serScalar[:])
	return scalar, err
}
