package genphen

import (
	"math"
	"slices"
)

// Dataset is the generic entry × feature container.
//
// Fields are exported so that simulation and import collaborators can
// populate a freshly constructed container by assignment. Every
// transformation in this package treats its receiver as read-only and
// returns a newly allocated Dataset.
//
// A cell has three states: present (Missing false, Values holds the
// measurement, which may itself be NaN or infinite), or missing (Missing
// true, Values content irrelevant). Mask marks per-cell usability for
// downstream analyses and is independent of missingness.
type Dataset struct {
	Entries     []string    // unique sample identifiers, length n
	Populations []string    // length n, parallel to Entries, not required unique
	Features    []string    // unique column identifiers, length p
	Values      [][]float64 // n×p measurements
	Missing     [][]bool    // n×p, true marks an absent measurement
	Mask        [][]bool    // n×p usability flags, default true
}

// New constructs an empty n×p dataset: all names empty, all cells missing,
// all mask flags true.
func New(n, p int) *Dataset {
	d := &Dataset{
		Entries:     make([]string, n),
		Populations: make([]string, n),
		Features:    make([]string, p),
		Values:      make([][]float64, n),
		Missing:     make([][]bool, n),
		Mask:        make([][]bool, n),
	}
	for i := 0; i < n; i++ {
		d.Values[i] = make([]float64, p)
		d.Missing[i] = make([]bool, p)
		d.Mask[i] = make([]bool, p)
		for j := 0; j < p; j++ {
			d.Missing[i][j] = true
			d.Mask[i][j] = true
		}
	}
	return d
}

// N returns the number of entries (rows).
func (d *Dataset) N() int { return len(d.Entries) }

// P returns the number of features (columns).
func (d *Dataset) P() int { return len(d.Features) }

// CheckDims reports whether the dataset satisfies its structural invariant:
// consistent axis lengths across all parallel fields and no duplicate entry
// or feature names.
func (d *Dataset) CheckDims() bool {
	return d.Validate() == nil
}

// Validate checks the structural invariant and returns an
// *ErrInvalidDataset naming the first violation, or nil.
func (d *Dataset) Validate() error {
	n := len(d.Entries)
	p := len(d.Features)

	if len(d.Populations) != n {
		return &ErrInvalidDataset{Reason: "populations length does not match entries length"}
	}
	if len(d.Values) != n {
		return &ErrInvalidDataset{Reason: "values row count does not match entries length"}
	}
	if len(d.Missing) != n {
		return &ErrInvalidDataset{Reason: "missing row count does not match entries length"}
	}
	if len(d.Mask) != n {
		return &ErrInvalidDataset{Reason: "mask row count does not match entries length"}
	}
	for i := 0; i < n; i++ {
		if len(d.Values[i]) != p {
			return &ErrInvalidDataset{Reason: "values column count does not match features length"}
		}
		if len(d.Missing[i]) != p {
			return &ErrInvalidDataset{Reason: "missing column count does not match features length"}
		}
		if len(d.Mask[i]) != p {
			return &ErrInvalidDataset{Reason: "mask column count does not match features length"}
		}
	}

	seen := make(map[string]struct{}, n)
	for _, e := range d.Entries {
		if _, dup := seen[e]; dup {
			return &ErrInvalidDataset{Reason: "duplicate entry name: " + e}
		}
		seen[e] = struct{}{}
	}
	seenF := make(map[string]struct{}, p)
	for _, f := range d.Features {
		if _, dup := seenF[f]; dup {
			return &ErrInvalidDataset{Reason: "duplicate feature name: " + f}
		}
		seenF[f] = struct{}{}
	}

	return nil
}

// Clone returns a deep copy sharing no storage with the receiver.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Entries:     slices.Clone(d.Entries),
		Populations: slices.Clone(d.Populations),
		Features:    slices.Clone(d.Features),
		Values:      make([][]float64, len(d.Values)),
		Missing:     make([][]bool, len(d.Missing)),
		Mask:        make([][]bool, len(d.Mask)),
	}
	for i := range d.Values {
		out.Values[i] = slices.Clone(d.Values[i])
	}
	for i := range d.Missing {
		out.Missing[i] = slices.Clone(d.Missing[i])
	}
	for i := range d.Mask {
		out.Mask[i] = slices.Clone(d.Mask[i])
	}
	return out
}

// Equal reports structural deep equality across all fields. Two present
// NaN cells compare equal; the numeric payload of a missing cell is ignored.
func (d *Dataset) Equal(other *Dataset) bool {
	if d == nil || other == nil {
		return d == other
	}
	if !slices.Equal(d.Entries, other.Entries) ||
		!slices.Equal(d.Populations, other.Populations) ||
		!slices.Equal(d.Features, other.Features) {
		return false
	}
	if len(d.Values) != len(other.Values) {
		return false
	}
	for i := range d.Values {
		if len(d.Values[i]) != len(other.Values[i]) ||
			len(d.Missing[i]) != len(other.Missing[i]) ||
			len(d.Mask[i]) != len(other.Mask[i]) {
			return false
		}
		for j := range d.Values[i] {
			if d.Mask[i][j] != other.Mask[i][j] {
				return false
			}
			if d.Missing[i][j] != other.Missing[i][j] {
				return false
			}
			if d.Missing[i][j] {
				continue
			}
			a, b := d.Values[i][j], other.Values[i][j]
			if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
				return false
			}
		}
	}
	return true
}

// Dimensions returns a read-only summary of the dataset: the number of
// unique entries, unique populations, and features. It fails when the
// structural invariant is violated.
func (d *Dataset) Dimensions() (map[string]int, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	pops := make(map[string]struct{}, len(d.Populations))
	for _, p := range d.Populations {
		pops[p] = struct{}{}
	}
	return map[string]int{
		"entries":     len(d.Entries),
		"populations": len(pops),
		"features":    len(d.Features),
	}, nil
}

// entryIndex builds a name→position map over Entries. Uniqueness is a
// container invariant, so at most one position exists per name.
func (d *Dataset) entryIndex() map[string]int {
	m := make(map[string]int, len(d.Entries))
	for i, e := range d.Entries {
		m[e] = i
	}
	return m
}

// featureIndex builds a name→position map over Features.
func (d *Dataset) featureIndex() map[string]int {
	m := make(map[string]int, len(d.Features))
	for j, f := range d.Features {
		m[f] = j
	}
	return m
}
