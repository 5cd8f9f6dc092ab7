package genphen

import (
	"fmt"
	"math"
)

// ConflictWeights are the two weights applied when Merge encounters
// differing non-missing values for the same (entry, feature) cell in both
// sources: the first weight applies to the receiver, the second to the
// argument. Both must be non-negative and sum to 1.0.
type ConflictWeights [2]float64

const weightSumTolerance = 1e-9

// Validate returns an *ErrInvalidWeights unless both weights are
// non-negative and sum to 1.0 (within a small tolerance, so decimal pairs
// like 0.3/0.7 are accepted).
func (w ConflictWeights) Validate() error {
	if w[0] < 0 || w[1] < 0 || math.Abs(w[0]+w[1]-1) > weightSumTolerance {
		return &ErrInvalidWeights{Weights: w}
	}
	return nil
}

// Merge combines two datasets into a new one covering the set-union of
// their entries and features. Ordering is stable: the receiver's entries and
// features come first in their original order, followed by the argument's
// elements not already present, in the argument's order.
//
// Per merged entry, the population string is kept when both sources agree,
// copied from the single source that has the entry, or replaced by a
// conflict marker embedding both originals when they disagree.
//
// Per (entry, feature) cell:
//   - present in both with equal values (or missing in both): the
//     receiver's value and mask are copied;
//   - present in both with differing values: the weighted combination
//     w[0]*a + w[1]*b when both are non-missing, otherwise the one
//     non-missing value; the mask becomes round(w[0]*maskA + w[1]*maskB)
//     as a boolean, rounding half away from zero;
//   - present in only one source: that source's value and mask are copied;
//   - present in neither (the entry comes from one source only and the
//     feature from the other): the cell stays missing with mask false.
func (d *Dataset) Merge(other *Dataset, weights ConflictWeights) (*Dataset, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := other.Validate(); err != nil {
		return nil, err
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	entries := unionOrdered(d.Entries, other.Entries)
	features := unionOrdered(d.Features, other.Features)

	aEntries, aFeatures := d.entryIndex(), d.featureIndex()
	bEntries, bFeatures := other.entryIndex(), other.featureIndex()

	out := New(len(entries), len(features))
	copy(out.Entries, entries)
	copy(out.Features, features)

	for i, entry := range entries {
		ai, inA := aEntries[entry]
		bi, inB := bEntries[entry]

		out.Populations[i] = mergedPopulation(d, other, ai, bi, inA, inB)

		for j, feature := range features {
			aj, aHasF := aFeatures[feature]
			bj, bHasF := bFeatures[feature]
			cellInA := inA && aHasF
			cellInB := inB && bHasF

			switch {
			case cellInA && cellInB:
				mergeCell(out, i, j, d, ai, aj, other, bi, bj, weights)
			case cellInA:
				out.Values[i][j] = d.Values[ai][aj]
				out.Missing[i][j] = d.Missing[ai][aj]
				out.Mask[i][j] = d.Mask[ai][aj]
			case cellInB:
				out.Values[i][j] = other.Values[bi][bj]
				out.Missing[i][j] = other.Missing[bi][bj]
				out.Mask[i][j] = other.Mask[bi][bj]
			default:
				// Neither source covers this (entry, feature): the entry
				// comes from one source only and the feature from the other.
				// The cell stays missing and is marked unusable.
				out.Mask[i][j] = false
			}
		}
	}

	if err := out.Validate(); err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// mergeCell resolves a cell present in both sources.
func mergeCell(out *Dataset, i, j int, a *Dataset, ai, aj int, b *Dataset, bi, bj int, w ConflictWeights) {
	aMissing, bMissing := a.Missing[ai][aj], b.Missing[bi][bj]
	aVal, bVal := a.Values[ai][aj], b.Values[bi][bj]

	bothMissing := aMissing && bMissing
	equal := !aMissing && !bMissing && aVal == bVal

	if bothMissing || equal {
		out.Values[i][j] = aVal
		out.Missing[i][j] = aMissing
		out.Mask[i][j] = a.Mask[ai][aj]
		return
	}

	switch {
	case !aMissing && !bMissing:
		out.Values[i][j] = w[0]*aVal + w[1]*bVal
		out.Missing[i][j] = false
	case aMissing:
		out.Values[i][j] = bVal
		out.Missing[i][j] = false
	default:
		out.Values[i][j] = aVal
		out.Missing[i][j] = false
	}

	out.Mask[i][j] = math.Round(w[0]*boolToFloat(a.Mask[ai][aj])+w[1]*boolToFloat(b.Mask[bi][bj])) >= 1
}

// mergedPopulation resolves the population string for a merged entry.
func mergedPopulation(a, b *Dataset, ai, bi int, inA, inB bool) string {
	switch {
	case inA && inB:
		if a.Populations[ai] == b.Populations[bi] {
			return a.Populations[ai]
		}
		return fmt.Sprintf("CONFLICT (%s, %s)", a.Populations[ai], b.Populations[bi])
	case inA:
		return a.Populations[ai]
	default:
		return b.Populations[bi]
	}
}

// unionOrdered returns the set-union of a and b, keeping a's elements first
// in a's order, then b's unseen elements in b's order.
func unionOrdered(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, s := range a {
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for _, s := range b {
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
