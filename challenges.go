package sonicpc

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-sonic-pc/sponge"
)

// The transcript schedule below is the soundness-critical contract between
// BatchOpen and BatchCheck: both sides absorb the queried commitments in
// ascending label order (base element first, then the shifted element when
// present), then every claimed evaluation in ascending (label, point) order,
// and only then squeeze one challenge per distinct point plus one folding
// challenge. Any deviation on either side makes honest proofs fail, and any
// value left out of the transcript is a value a malicious prover could pick
// after seeing the challenges.

// pointGroup collects the labels queried at one evaluation point, in
// canonical (ascending) label order.
type pointGroup struct {
	point  fr.Element
	labels []string
}

// groupQueries buckets a query set by evaluation point and fixes the
// canonical iteration order: points ascending by their big-endian encoding,
// labels ascending within each point. Two queries for the same label and
// point under different query names collapse into one claim.
func groupQueries(qs QuerySet) []pointGroup {
	byPoint := make(map[fr.Element]map[string]struct{})
	for q := range qs {
		labels, ok := byPoint[q.Point]
		if !ok {
			labels = make(map[string]struct{})
			byPoint[q.Point] = labels
		}
		labels[q.Label] = struct{}{}
	}

	groups := make([]pointGroup, 0, len(byPoint))
	for point, labelSet := range byPoint {
		labels := make([]string, 0, len(labelSet))
		for label := range labelSet {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		groups = append(groups, pointGroup{point: point, labels: labels})
	}

	sort.Slice(groups, func(i, j int) bool {
		bi := groups[i].point.Bytes()
		bj := groups[j].point.Bytes()
		return bytes.Compare(bi[:], bj[:]) < 0
	})
	return groups
}

// queriedLabels returns the distinct labels referenced by the groups, in
// ascending order.
func queriedLabels(groups []pointGroup) []string {
	seen := make(map[string]struct{})
	for _, g := range groups {
		for _, label := range g.labels {
			seen[label] = struct{}{}
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// squeezeChallenges drives one full transcript round: it absorbs the queried
// commitments and claimed evaluations and squeezes len(groups) point
// challenges plus the final folding challenge.
func squeezeChallenges(s sponge.Sponge, comms map[string]*LabeledCommitment, groups []pointGroup, values Evaluations) ([]fr.Element, fr.Element, error) {
	for _, label := range queriedLabels(groups) {
		c, ok := comms[label]
		if !ok {
			return nil, fr.Element{}, fmt.Errorf("%w: %q", ErrMissingPolynomial, label)
		}
		s.AbsorbBytes([]byte(label))
		s.AbsorbPoints(c.Comm)
		if c.ShiftedComm != nil {
			s.AbsorbPoints(*c.ShiftedComm)
		}
	}

	for _, g := range groups {
		for _, label := range g.labels {
			value, ok := values.Get(label, g.point)
			if !ok {
				return nil, fr.Element{}, fmt.Errorf("%w: label %q", ErrMissingEvaluation, label)
			}
			s.AbsorbBytes([]byte(label))
			s.AbsorbScalars(g.point, value)
		}
	}

	challenges := s.SqueezeChallenges(len(groups) + 1)
	return challenges[:len(groups)], challenges[len(groups)], nil
}
