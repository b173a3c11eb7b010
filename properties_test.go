package sonicpc_test

import (
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	sonicpc "github.com/crate-crypto/go-sonic-pc"
	"github.com/crate-crypto/go-sonic-pc/sponge"
)

// Honest prover runs must verify for any polynomial degree and query point.
func TestCompletenessProperty(t *testing.T) {
	const supportedDegree = 16
	pk, vk := setupKeys(t, 32, sonicpc.DegreeInfo{MaxDegree: supportedDegree})

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)
	properties.Property("batch_check(batch_open(p, z)) == true", prop.ForAll(
		func(coeffSeeds []uint64, pointSeed uint64) bool {
			coeffs := make([]fr.Element, len(coeffSeeds))
			for i, s := range coeffSeeds {
				coeffs[i] = fr.NewElement(s)
			}
			polys := []sonicpc.LabeledPolynomial{
				sonicpc.NewLabeledPolynomial("f", coeffs, nil, nil),
			}

			comms, rands, err := sonicpc.Commit(pk, polys, nil, nil)
			if err != nil {
				return false
			}

			point := fr.NewElement(pointSeed)
			querySet := sonicpc.NewQuerySet()
			querySet.Insert("f", "q", point)
			values := sonicpc.NewEvaluations()
			values.Insert("f", point, polys[0].Evaluate(point))

			proof, err := sonicpc.BatchOpen(pk, polys, querySet, rands, sponge.NewSha256Sponge("prop"))
			if err != nil {
				return false
			}
			ok, err := sonicpc.BatchCheck(vk, comms, querySet, values, proof, sponge.NewSha256Sponge("prop"))
			return err == nil && ok
		},
		gen.SliceOfN(supportedDegree+1, gen.UInt64()),
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Commitments are linear: Commit(a*p + b*q) == a*Commit(p) + b*Commit(q).
func TestCommitHomomorphismProperty(t *testing.T) {
	const supportedDegree = 8
	pk, _ := setupKeys(t, 8, sonicpc.DegreeInfo{MaxDegree: supportedDegree})

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)
	properties.Property("commit(a*p + b*q) == a*commit(p) + b*commit(q)", prop.ForAll(
		func(pSeeds, qSeeds []uint64, aSeed, bSeed uint64) bool {
			p := make([]fr.Element, len(pSeeds))
			q := make([]fr.Element, len(qSeeds))
			for i := range pSeeds {
				p[i] = fr.NewElement(pSeeds[i])
				q[i] = fr.NewElement(qSeeds[i])
			}
			a := fr.NewElement(aSeed)
			b := fr.NewElement(bSeed)

			combined := make([]fr.Element, len(p))
			var tmp fr.Element
			for i := range combined {
				combined[i].Mul(&a, &p[i])
				tmp.Mul(&b, &q[i])
				combined[i].Add(&combined[i], &tmp)
			}

			polys := []sonicpc.LabeledPolynomial{
				sonicpc.NewLabeledPolynomial("p", p, nil, nil),
				sonicpc.NewLabeledPolynomial("q", q, nil, nil),
				sonicpc.NewLabeledPolynomial("combined", combined, nil, nil),
			}
			comms, _, err := sonicpc.Commit(pk, polys, nil, nil)
			if err != nil {
				return false
			}

			var expected, scaled bls12381.G1Affine
			expected.ScalarMultiplication(&comms[0].Comm, new(big.Int).SetUint64(aSeed))
			scaled.ScalarMultiplication(&comms[1].Comm, new(big.Int).SetUint64(bSeed))
			expected.Add(&expected, &scaled)

			return expected.Equal(&comms[2].Comm)
		},
		gen.SliceOfN(supportedDegree+1, gen.UInt64()),
		gen.SliceOfN(supportedDegree+1, gen.UInt64()),
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// The transcript must be order-insensitive at the API level: inserting the
// same queries in any order yields the same proof bytes.
func TestCanonicalTranscriptOrder(t *testing.T) {
	pk, _ := setupKeys(t, 16, sonicpc.DegreeInfo{MaxDegree: 10})

	polys := []sonicpc.LabeledPolynomial{
		sonicpc.NewLabeledPolynomial("a", randPoly(t, 4), nil, nil),
		sonicpc.NewLabeledPolynomial("b", randPoly(t, 7), nil, nil),
	}
	_, rands, err := sonicpc.Commit(pk, polys, nil, nil)
	require.NoError(t, err)

	p1 := randPoint(t)
	p2 := randPoint(t)

	forward := sonicpc.NewQuerySet()
	forward.Insert("a", "q1", p1)
	forward.Insert("b", "q1", p1)
	forward.Insert("a", "q2", p2)

	backward := sonicpc.NewQuerySet()
	backward.Insert("a", "q2", p2)
	backward.Insert("b", "q1", p1)
	backward.Insert("a", "q1", p1)

	proofForward, err := sonicpc.BatchOpen(pk, polys, forward, rands, sponge.NewSha256Sponge("order"))
	require.NoError(t, err)
	proofBackward, err := sonicpc.BatchOpen(pk, polys, backward, rands, sponge.NewSha256Sponge("order"))
	require.NoError(t, err)

	require.Equal(t, proofForward.Bytes(), proofBackward.Bytes())
}
