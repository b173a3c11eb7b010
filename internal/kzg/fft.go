package kzg

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// In this file we implement a simple radix-2 FFT over G1 without any
// optimizations. It is used once per Lagrange domain size at key derivation
// time, to convert the monomial SRS into a Lagrange-basis SRS.
// See: https://faculty.sites.iastate.edu/jia/files/inline-files/polymultiply.pdf
// for a reference.

// IfftG1 maps SRS powers [G, beta*G, ...] for a power-of-two sized slice into
// the Lagrange basis [L_0(beta)*G, L_1(beta)*G, ...] over the domain whose
// inverse generator is `inverseNthRoot`.
func IfftG1(values []bls12381.G1Affine, inverseNthRoot fr.Element) []bls12381.G1Affine {
	var invDomain fr.Element
	invDomain.SetInt64(int64(len(values)))
	invDomain.Inverse(&invDomain)
	var invDomainBI big.Int
	invDomain.BigInt(&invDomainBI)

	inverseFFT := fftG1(values, inverseNthRoot)

	// scale by the inverse of the domain size
	for i := 0; i < len(inverseFFT); i++ {
		inverseFFT[i].ScalarMultiplication(&inverseFFT[i], &invDomainBI)
	}
	return inverseFFT
}

func fftG1(values []bls12381.G1Affine, nthRootOfUnity fr.Element) []bls12381.G1Affine {
	n := len(values)
	if n == 1 {
		return values
	}

	var generatorSquared fr.Element
	generatorSquared.Square(&nthRootOfUnity) // generator with order n/2

	even, odd := takeEvenOdd(values)

	fftEven := fftG1(even, generatorSquared)
	fftOdd := fftG1(odd, generatorSquared)

	inputPoint := fr.One()
	evaluations := make([]bls12381.G1Affine, n)
	for k := 0; k < n/2; k++ {
		var inputPointBI big.Int
		inputPoint.BigInt(&inputPointBI)

		var tmp bls12381.G1Affine
		tmp.ScalarMultiplication(&fftOdd[k], &inputPointBI)

		evaluations[k].Add(&fftEven[k], &tmp)
		evaluations[k+n/2].Sub(&fftEven[k], &tmp)

		inputPoint.Mul(&inputPoint, &nthRootOfUnity)
	}
	return evaluations
}

// Takes a slice and returns two slices: the elements at even indices and the
// elements at odd indices. The input length is assumed to be even, which is
// the case for a radix-2 FFT.
func takeEvenOdd[T any](values []T) ([]T, []T) {
	var even []T
	var odd []T
	for i := 0; i < len(values); i++ {
		if i%2 == 0 {
			even = append(even, values[i])
		} else {
			odd = append(odd, values[i])
		}
	}
	return even, odd
}
