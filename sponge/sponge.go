// Package sponge implements the Fiat-Shamir transcript used to derive
// challenge scalars.
//
// The prover and verifier each drive their own sponge; soundness requires
// both sides to absorb the same values in the same order, so the protocol
// code owns the absorption schedule and this package only provides the
// primitive.
package sponge

import (
	"crypto/sha256"
	"hash"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-sonic-pc/internal/utils"
)

// Sponge absorbs public protocol values and squeezes pseudorandom challenge
// scalars. Implementations must be deterministic: two sponges fed the same
// sequence of absorb calls squeeze the same challenges.
type Sponge interface {
	AbsorbBytes(data []byte)
	AbsorbScalars(scalars ...fr.Element)
	AbsorbPoints(points ...bls12381.G1Affine)

	// SqueezeChallenges returns n challenge scalars. Squeezing mutates the
	// sponge state, so successive calls yield independent challenges.
	SqueezeChallenges(n int) []fr.Element
}

// Sha256Sponge is a byte-oriented transcript over SHA-256.
type Sha256Sponge struct {
	state hash.Hash
}

var _ Sponge = (*Sha256Sponge)(nil)

// NewSha256Sponge creates a transcript domain-separated by `label`.
func NewSha256Sponge(label string) *Sha256Sponge {
	s := &Sha256Sponge{state: sha256.New()}
	s.AbsorbBytes([]byte(label))
	return s
}

func (s *Sha256Sponge) AbsorbBytes(data []byte) {
	s.state.Write(data)
}

// AbsorbScalars converts each scalar to 32 bytes, then appends it to the state.
func (s *Sha256Sponge) AbsorbScalars(scalars ...fr.Element) {
	for _, scalar := range scalars {
		tmpBytes := scalar.Bytes()
		utils.ReverseSlice(tmpBytes[:]) // Reverse bytes so that we use little-endian
		s.state.Write(tmpBytes[:])
	}
}

// AbsorbPoints serializes each point into 48 bytes, then appends it to the state.
func (s *Sha256Sponge) AbsorbPoints(points ...bls12381.G1Affine) {
	for _, point := range points {
		tmpBytes := point.Bytes() // Do not reverse the bytes, use zcash encoding format
		s.state.Write(tmpBytes[:])
	}
}

// Hash the transcript. This is so that we can compress the inner buffer,
// the compressed inner buffer can then be cheaply copied to create many challenges.
func (s *Sha256Sponge) compressState() []byte {
	return s.state.Sum(nil)
}

// SqueezeChallenges hashes the transcript state, then reduces the hash modulo
// the size of the scalar field, appending an integer to denote the challenge
// index.
//
// The compressed state is absorbed back into the transcript after squeezing,
// so the sponge keeps mimicking a random oracle across multiple rounds.
func (s *Sha256Sponge) SqueezeChallenges(n int) []fr.Element {
	compressedState := s.compressState()
	challenges := make([]fr.Element, n)
	for challengeIndex := 0; challengeIndex < n; challengeIndex++ {
		hashedData := make([]byte, len(compressedState)+1)
		copy(hashedData, compressedState)
		hashedData[len(hashedData)-1] = byte(challengeIndex)

		digest := sha256.Sum256(hashedData)

		// Reverse the digest, so that we reduce the little-endian
		// representation
		utils.ReverseSlice(digest[:])

		// Interpret those bytes as a field element
		challenges[challengeIndex].SetBytes(digest[:])
	}

	// Clear the state and summarise the previous state with its hash,
	// which is enough given collision resistance.
	s.state.Reset()
	s.state.Write(compressedState)

	return challenges
}
