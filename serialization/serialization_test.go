package serialization

import (
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestScalarRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	properties.Property("deserialization(serialization(scalar)) == scalar", prop.ForAll(
		func(a uint64) bool {
			scalar := fr.NewElement(a)
			got, err := DeserializeScalar(SerializeScalar(scalar))
			return err == nil && got.Equal(&scalar)
		},
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestG1PointRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)
	properties.Property("deserialization(serialization(point)) == point", prop.ForAll(
		func(a uint64) bool {
			_, _, g1, _ := bls12381.Generators()
			var point bls12381.G1Affine
			point.ScalarMultiplication(&g1, new(big.Int).SetUint64(a))

			got, err := DeserializeG1Point(SerializeG1Point(point))
			return err == nil && got.Equal(&point)
		},
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDeserializeScalarNonCanonical(t *testing.T) {
	// The modulus itself is the smallest non-canonical encoding
	var serScalar Scalar
	fr.Modulus().FillBytes(serScalar[:])

	if _, err := DeserializeScalar(serScalar); err == nil {
		t.Error("non-canonical scalar was accepted")
	}
}

func TestDeserializeG1PointInvalid(t *testing.T) {
	var serPoint G1Point
	// A compressed encoding of all 0xff bytes is not on the curve
	for i := range serPoint {
		serPoint[i] = 0xff
	}
	if _, err := DeserializeG1Point(serPoint); err == nil {
		t.Error("invalid point encoding was accepted")
	}
}
