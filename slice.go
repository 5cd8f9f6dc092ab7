package genphen

import (
	"slices"
	"sort"
)

// Slice returns a new dataset restricted to the given entry and feature
// positions. Indices are 0-based positions into the current ordering; a nil
// slice selects the whole axis. Indices are deduplicated and sorted
// ascending before use, so the output ordering always follows the receiver's
// ordering, never the caller's request order.
//
// Any index outside the axis range yields an *ErrIndexOutOfRange.
func (d *Dataset) Slice(entryIndices, featureIndices []int) (*Dataset, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	rows, err := normalizeIndices(entryIndices, d.N(), "entries")
	if err != nil {
		return nil, err
	}
	cols, err := normalizeIndices(featureIndices, d.P(), "features")
	if err != nil {
		return nil, err
	}

	out := New(len(rows), len(cols))
	for oi, i := range rows {
		out.Entries[oi] = d.Entries[i]
		out.Populations[oi] = d.Populations[i]
		for oj, j := range cols {
			out.Values[oi][oj] = d.Values[i][j]
			out.Missing[oi][oj] = d.Missing[i][j]
			out.Mask[oi][oj] = d.Mask[i][j]
		}
	}
	for oj, j := range cols {
		out.Features[oj] = d.Features[j]
	}

	// Slicing unique names cannot introduce duplicates; a failure here is a
	// slicing bug, not a caller error.
	if err := out.Validate(); err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// normalizeIndices validates, deduplicates, and sorts axis indices.
// nil means the full axis.
func normalizeIndices(indices []int, size int, axis string) ([]int, error) {
	if indices == nil {
		all := make([]int, size)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	for _, idx := range indices {
		if idx < 0 || idx >= size {
			return nil, &ErrIndexOutOfRange{Axis: axis, Index: idx, Size: size}
		}
	}
	out := slices.Clone(indices)
	sort.Ints(out)
	return slices.Compact(out), nil
}

// Filter returns a new dataset keeping only entries and features whose mask
// is true everywhere along their full row or column. The drop decision is
// made on the complete matrix before any selection: a single false mask cell
// removes both its entry and its feature, even if the offending cell would
// not survive the other axis' selection. With sparse masks this can drop
// every row or column.
func (d *Dataset) Filter() (*Dataset, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	n, p := d.N(), d.P()

	var rows []int
	for i := 0; i < n; i++ {
		keep := true
		for j := 0; j < p; j++ {
			if !d.Mask[i][j] {
				keep = false
				break
			}
		}
		if keep {
			rows = append(rows, i)
		}
	}

	var cols []int
	for j := 0; j < p; j++ {
		keep := true
		for i := 0; i < n; i++ {
			if !d.Mask[i][j] {
				keep = false
				break
			}
		}
		if keep {
			cols = append(cols, j)
		}
	}

	if rows == nil {
		rows = []int{}
	}
	if cols == nil {
		cols = []int{}
	}
	return d.Slice(rows, cols)
}
