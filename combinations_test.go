package sonicpc_test

import (
	"crypto/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"

	sonicpc "github.com/crate-crypto/go-sonic-pc"
	"github.com/crate-crypto/go-sonic-pc/sponge"
)

// evaluateCombination computes the claimed value of a combination the way a
// protocol caller would: as the weighted sum of the component evaluations.
func evaluateCombination(lc *sonicpc.LinearCombination, polys []sonicpc.LabeledPolynomial, point fr.Element) fr.Element {
	byLabel := make(map[string]*sonicpc.LabeledPolynomial)
	for i := range polys {
		byLabel[polys[i].Label] = &polys[i]
	}

	var sum, tmp fr.Element
	for _, term := range lc.Terms {
		value := byLabel[term.Label].Evaluate(point)
		tmp.Mul(&term.Coeff, &value)
		sum.Add(&sum, &tmp)
	}
	return sum
}

func TestSingleEquationSmoke(t *testing.T) {
	pk, vk := setupKeys(t, 16, sonicpc.DegreeInfo{MaxDegree: 10})

	polys := []sonicpc.LabeledPolynomial{
		sonicpc.NewLabeledPolynomial("a", randPoly(t, 6), nil, nil),
		sonicpc.NewLabeledPolynomial("b", randPoly(t, 9), nil, nil),
	}
	comms, rands, err := sonicpc.Commit(pk, polys, nil, nil)
	require.NoError(t, err)

	lc := sonicpc.EmptyLinearCombination("eq")
	lc.Add(fr.NewElement(2), "a")
	lc.Add(fr.NewElement(3), "b")
	lcs := []sonicpc.LinearCombination{lc}

	point := randPoint(t)
	querySet := sonicpc.NewQuerySet()
	querySet.Insert("eq", "q", point)

	values := sonicpc.NewEvaluations()
	values.Insert("eq", point, evaluateCombination(&lc, polys, point))

	proof, err := sonicpc.OpenCombinations(pk, lcs, polys, rands, querySet, sponge.NewSha256Sponge("test"))
	require.NoError(t, err)

	ok, err := sonicpc.CheckCombinations(vk, lcs, comms, querySet, values, proof, sponge.NewSha256Sponge("test"))
	require.NoError(t, err)
	require.True(t, ok)
}

// Two combinations over two polynomials, both queried at one shared point.
func TestTwoEquationsSharedPoint(t *testing.T) {
	pk, vk := setupKeys(t, 16, sonicpc.DegreeInfo{MaxDegree: 10, HidingBound: 1})

	polys := []sonicpc.LabeledPolynomial{
		sonicpc.NewLabeledPolynomial("a", randPoly(t, 6), nil, uintPtr(1)),
		sonicpc.NewLabeledPolynomial("b", randPoly(t, 9), nil, nil),
	}
	comms, rands, err := sonicpc.Commit(pk, polys, nil, rand.Reader)
	require.NoError(t, err)

	lc1 := sonicpc.EmptyLinearCombination("eq1")
	lc1.Add(fr.NewElement(5), "a")
	lc1.Add(fr.NewElement(7), "b")

	lc2 := sonicpc.EmptyLinearCombination("eq2")
	var minusOne fr.Element
	minusOne.SetOne()
	minusOne.Neg(&minusOne)
	lc2.Add(minusOne, "a")
	lc2.Add(fr.One(), "b")

	lcs := []sonicpc.LinearCombination{lc1, lc2}

	point := randPoint(t)
	querySet := sonicpc.NewQuerySet()
	querySet.Insert("eq1", "q", point)
	querySet.Insert("eq2", "q", point)

	values := sonicpc.NewEvaluations()
	values.Insert("eq1", point, evaluateCombination(&lc1, polys, point))
	values.Insert("eq2", point, evaluateCombination(&lc2, polys, point))

	proof, err := sonicpc.OpenCombinations(pk, lcs, polys, rands, querySet, sponge.NewSha256Sponge("test"))
	require.NoError(t, err)

	ok, err := sonicpc.CheckCombinations(vk, lcs, comms, querySet, values, proof, sponge.NewSha256Sponge("test"))
	require.NoError(t, err)
	require.True(t, ok)
}

// A combination holding exactly one degree-bounded term is allowed; the
// derived commitment scales the shifted element along with the base one.
func TestDegenerateDegreeBoundCombination(t *testing.T) {
	pk, vk := setupKeys(t, 16, sonicpc.DegreeInfo{
		MaxDegree:    10,
		DegreeBounds: map[uint64]struct{}{12: {}},
	})

	polys := []sonicpc.LabeledPolynomial{
		sonicpc.NewLabeledPolynomial("a", randPoly(t, 6), uintPtr(12), nil),
	}
	comms, rands, err := sonicpc.Commit(pk, polys, nil, nil)
	require.NoError(t, err)

	lc := sonicpc.EmptyLinearCombination("eq")
	lc.Add(fr.NewElement(9), "a")
	lcs := []sonicpc.LinearCombination{lc}

	point := randPoint(t)
	querySet := sonicpc.NewQuerySet()
	querySet.Insert("eq", "q", point)
	values := sonicpc.NewEvaluations()
	values.Insert("eq", point, evaluateCombination(&lc, polys, point))

	proof, err := sonicpc.OpenCombinations(pk, lcs, polys, rands, querySet, sponge.NewSha256Sponge("test"))
	require.NoError(t, err)

	ok, err := sonicpc.CheckCombinations(vk, lcs, comms, querySet, values, proof, sponge.NewSha256Sponge("test"))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMixedBoundCombinationRejected(t *testing.T) {
	pk, _ := setupKeys(t, 16, sonicpc.DegreeInfo{
		MaxDegree:    10,
		DegreeBounds: map[uint64]struct{}{12: {}},
	})

	polys := []sonicpc.LabeledPolynomial{
		sonicpc.NewLabeledPolynomial("a", randPoly(t, 6), uintPtr(12), nil),
		sonicpc.NewLabeledPolynomial("b", randPoly(t, 4), nil, nil),
	}
	_, rands, err := sonicpc.Commit(pk, polys, nil, nil)
	require.NoError(t, err)

	lc := sonicpc.EmptyLinearCombination("eq")
	lc.Add(fr.One(), "a")
	lc.Add(fr.One(), "b")
	lcs := []sonicpc.LinearCombination{lc}

	querySet := sonicpc.NewQuerySet()
	querySet.Insert("eq", "q", randPoint(t))

	_, err = sonicpc.OpenCombinations(pk, lcs, polys, rands, querySet, sponge.NewSha256Sponge("test"))
	require.ErrorIs(t, err, sonicpc.ErrInvalidLinearCombination)
}

func TestEmptyCombinationRejected(t *testing.T) {
	pk, _ := setupKeys(t, 8, sonicpc.DegreeInfo{MaxDegree: 8})

	polys := []sonicpc.LabeledPolynomial{
		sonicpc.NewLabeledPolynomial("a", randPoly(t, 2), nil, nil),
	}
	_, rands, err := sonicpc.Commit(pk, polys, nil, nil)
	require.NoError(t, err)

	lcs := []sonicpc.LinearCombination{sonicpc.EmptyLinearCombination("eq")}
	_, err = sonicpc.OpenCombinations(pk, lcs, polys, rands, sonicpc.NewQuerySet(), sponge.NewSha256Sponge("test"))
	require.ErrorIs(t, err, sonicpc.ErrInvalidLinearCombination)
}

func TestUnknownLabelInCombination(t *testing.T) {
	pk, _ := setupKeys(t, 8, sonicpc.DegreeInfo{MaxDegree: 8})

	polys := []sonicpc.LabeledPolynomial{
		sonicpc.NewLabeledPolynomial("a", randPoly(t, 2), nil, nil),
	}
	_, rands, err := sonicpc.Commit(pk, polys, nil, nil)
	require.NoError(t, err)

	lc := sonicpc.EmptyLinearCombination("eq")
	lc.Add(fr.One(), "missing")
	lcs := []sonicpc.LinearCombination{lc}

	querySet := sonicpc.NewQuerySet()
	querySet.Insert("eq", "q", randPoint(t))

	_, err = sonicpc.OpenCombinations(pk, lcs, polys, rands, querySet, sponge.NewSha256Sponge("test"))
	require.ErrorIs(t, err, sonicpc.ErrMissingPolynomial)
}

// When the caller supplies component evaluations alongside the combination's
// claimed value, an inconsistent weighted sum is rejected outright.
func TestInconsistentEquationValues(t *testing.T) {
	pk, vk := setupKeys(t, 16, sonicpc.DegreeInfo{MaxDegree: 10})

	polys := []sonicpc.LabeledPolynomial{
		sonicpc.NewLabeledPolynomial("a", randPoly(t, 6), nil, nil),
		sonicpc.NewLabeledPolynomial("b", randPoly(t, 9), nil, nil),
	}
	comms, rands, err := sonicpc.Commit(pk, polys, nil, nil)
	require.NoError(t, err)

	lc := sonicpc.EmptyLinearCombination("eq")
	lc.Add(fr.NewElement(2), "a")
	lc.Add(fr.NewElement(3), "b")
	lcs := []sonicpc.LinearCombination{lc}

	point := randPoint(t)
	querySet := sonicpc.NewQuerySet()
	querySet.Insert("eq", "q", point)

	values := sonicpc.NewEvaluations()
	values.Insert("eq", point, evaluateCombination(&lc, polys, point))

	proof, err := sonicpc.OpenCombinations(pk, lcs, polys, rands, querySet, sponge.NewSha256Sponge("test"))
	require.NoError(t, err)

	// Supply component claims that do not sum to the combination's claim
	values.Insert("a", point, fr.NewElement(1))
	values.Insert("b", point, fr.NewElement(2))

	ok, err := sonicpc.CheckCombinations(vk, lcs, comms, querySet, values, proof, sponge.NewSha256Sponge("test"))
	require.NoError(t, err)
	require.False(t, ok)
}
