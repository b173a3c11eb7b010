package sponge

import (
	"hash"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/mimc"
)

// MiMCSponge is an algebraic transcript over the MiMC permutation, for
// callers that need challenge derivation to be cheap inside a circuit.
//
// MiMC only accepts canonical field elements, so absorbed bytes are packed
// into 31-byte limbs (always below the modulus) before being written.
type MiMCSponge struct {
	state hash.Hash
}

var _ Sponge = (*MiMCSponge)(nil)

func NewMiMCSponge(label string) *MiMCSponge {
	s := &MiMCSponge{state: mimc.NewMiMC()}
	s.AbsorbBytes([]byte(label))
	return s
}

func (s *MiMCSponge) AbsorbBytes(data []byte) {
	// Pack into 31-byte limbs, left-padded to the 32-byte block size.
	// 2^248 is below the scalar field modulus, so every limb is canonical.
	var block [32]byte
	for len(data) > 0 {
		chunk := len(data)
		if chunk > 31 {
			chunk = 31
		}
		for i := range block {
			block[i] = 0
		}
		copy(block[32-chunk:], data[:chunk])
		data = data[chunk:]

		// Write only errors on non-canonical blocks, which the packing rules out.
		_, _ = s.state.Write(block[:])
	}
}

func (s *MiMCSponge) AbsorbScalars(scalars ...fr.Element) {
	for _, scalar := range scalars {
		b := scalar.Bytes()
		// Canonical big-endian scalar bytes are a valid MiMC block as-is.
		_, _ = s.state.Write(b[:])
	}
}

func (s *MiMCSponge) AbsorbPoints(points ...bls12381.G1Affine) {
	for _, point := range points {
		b := point.Bytes()
		s.AbsorbBytes(b[:])
	}
}

func (s *MiMCSponge) SqueezeChallenges(n int) []fr.Element {
	challenges := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		var index fr.Element
		index.SetUint64(uint64(i))
		b := index.Bytes()
		_, _ = s.state.Write(b[:])

		// Sum does not reset the hasher, so the absorbed history stays bound
		// to every later challenge.
		challenges[i].SetBytes(s.state.Sum(nil))
	}
	return challenges
}
