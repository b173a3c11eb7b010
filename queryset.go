package sonicpc

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Query is a single evaluation request: the polynomial committed under
// Label, evaluated at Point. Name disambiguates multiple points queried
// under one label and plays no role in the transcript.
type Query struct {
	Label string
	Name  string
	Point fr.Element
}

// QuerySet is the set of evaluation requests covered by one batch proof.
type QuerySet map[Query]struct{}

func NewQuerySet() QuerySet {
	return make(QuerySet)
}

func (qs QuerySet) Insert(label, name string, point fr.Element) {
	qs[Query{Label: label, Name: name, Point: point}] = struct{}{}
}

// EvalKey identifies a claimed evaluation: (label, point).
type EvalKey struct {
	Label string
	Point fr.Element
}

// Evaluations maps each queried (label, point) pair to the claimed value.
// It must contain an entry for every pair in the associated QuerySet.
type Evaluations map[EvalKey]fr.Element

func NewEvaluations() Evaluations {
	return make(Evaluations)
}

func (ev Evaluations) Insert(label string, point, value fr.Element) {
	ev[EvalKey{Label: label, Point: point}] = value
}

func (ev Evaluations) Get(label string, point fr.Element) (fr.Element, bool) {
	value, ok := ev[EvalKey{Label: label, Point: point}]
	return value, ok
}
