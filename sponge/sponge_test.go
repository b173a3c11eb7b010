package sponge

import (
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"
)

func newSponges(label string) []Sponge {
	return []Sponge{
		NewSha256Sponge(label),
		NewMiMCSponge(label),
	}
}

// Two sponges fed the same transcript must squeeze the same challenges.
func TestSqueezeDeterministic(t *testing.T) {
	_, _, g1, _ := bls12381.Generators()

	feed := func(s Sponge) {
		s.AbsorbBytes([]byte("poly_a"))
		s.AbsorbPoints(g1)
		s.AbsorbScalars(fr.NewElement(7), fr.NewElement(11))
	}

	a := newSponges("test")
	b := newSponges("test")
	for i := range a {
		feed(a[i])
		feed(b[i])

		got := a[i].SqueezeChallenges(3)
		want := b[i].SqueezeChallenges(3)
		require.Equal(t, want, got)
	}
}

// Challenges within one squeeze, and across successive squeezes, must all
// differ.
func TestSqueezeChallengesDistinct(t *testing.T) {
	for _, s := range newSponges("test") {
		s.AbsorbBytes([]byte("data"))

		first := s.SqueezeChallenges(2)
		require.False(t, first[0].Equal(&first[1]))

		second := s.SqueezeChallenges(2)
		for i := range first {
			for j := range second {
				require.False(t, first[i].Equal(&second[j]))
			}
		}
	}
}

// A different domain separation label must change the challenges.
func TestDomainSeparation(t *testing.T) {
	a := NewSha256Sponge("protocol a")
	b := NewSha256Sponge("protocol b")

	ca := a.SqueezeChallenges(1)
	cb := b.SqueezeChallenges(1)
	require.False(t, ca[0].Equal(&cb[0]))

	am := NewMiMCSponge("protocol a")
	bm := NewMiMCSponge("protocol b")
	require.False(t, am.SqueezeChallenges(1)[0].Equal(&bm.SqueezeChallenges(1)[0]))
}

// Absorbing after a squeeze must influence the next squeeze.
func TestAbsorbAfterSqueeze(t *testing.T) {
	for _, pair := range [][2]Sponge{
		{NewSha256Sponge("test"), NewSha256Sponge("test")},
		{NewMiMCSponge("test"), NewMiMCSponge("test")},
	} {
		a, b := pair[0], pair[1]
		a.SqueezeChallenges(1)
		b.SqueezeChallenges(1)

		a.AbsorbScalars(fr.NewElement(1))
		b.AbsorbScalars(fr.NewElement(2))

		ca := a.SqueezeChallenges(1)
		cb := b.SqueezeChallenges(1)
		require.False(t, ca[0].Equal(&cb[0]))
	}
}

// The two constructions must not collide with each other on the same input.
func TestConstructionsDiffer(t *testing.T) {
	a := NewSha256Sponge("test")
	b := NewMiMCSponge("test")
	a.AbsorbScalars(fr.NewElement(5))
	b.AbsorbScalars(fr.NewElement(5))

	ca := a.SqueezeChallenges(1)
	cb := b.SqueezeChallenges(1)
	require.False(t, ca[0].Equal(&cb[0]))
}
