package multiexp

import (
	"errors"
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

func TestMultiExpSmoke(t *testing.T) {
	instanceSize := 64

	scalars := make([]fr.Element, instanceSize)
	points := genG1Points(instanceSize)
	for i := range scalars {
		scalars[i].SetUint64(uint64(i*i + 1))
	}

	got, err := MultiExpG1(scalars, points, 0)
	if err != nil {
		t.Fatal(err)
	}
	expected := slowMultiExp(scalars, points)
	if !got.Equal(expected) {
		t.Error("inconsistent multi-exp result")
	}
}

func TestMultiExpErrOnMoreThan1024(t *testing.T) {
	_, err := MultiExpG1([]fr.Element{}, []bls12381.G1Affine{}, 1024)
	if err == nil {
		t.Error("when the number of go-routines is set to more than 1024, an error is expected")
	}
	if !errors.Is(err, ErrTooManyGoRoutines) {
		t.Errorf("expected %v but got %v", ErrTooManyGoRoutines, err)
	}
}

func slowMultiExp(scalars []fr.Element, points []bls12381.G1Affine) *bls12381.G1Affine {
	var result bls12381.G1Affine
	for i := range scalars {
		var tmp bls12381.G1Affine
		var bi big.Int
		tmp.ScalarMultiplication(&points[i], scalars[i].BigInt(&bi))
		result.Add(&result, &tmp)
	}
	return &result
}

func genG1Points(n int) []bls12381.G1Affine {
	_, _, g1Gen, _ := bls12381.Generators()

	points := make([]bls12381.G1Affine, 0, n)
	points = append(points, g1Gen)
	for i := 1; i < n; i++ {
		var tmp bls12381.G1Affine
		tmp.Add(&g1Gen, &points[i-1])
		points = append(points, tmp)
	}
	return points
}
