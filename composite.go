package genphen

import (
	"github.com/hupe1980/genphen/formula"
)

// AddCompositeFeature derives a new feature column by evaluating an
// arithmetic expression whose free variables are existing feature names,
// once per entry. The result is appended as a new column when name is not
// an existing feature, or overwrites the existing column in place. Either
// way the written column's mask is reset to fully usable.
//
// A missing operand makes the derived cell missing; NaN and infinite
// operands propagate arithmetically. The receiver is never mutated.
func (d *Dataset) AddCompositeFeature(name, expr string) (*Dataset, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	f, err := formula.Parse(expr)
	if err != nil {
		return nil, err
	}

	features := d.featureIndex()
	for _, v := range f.Vars() {
		if _, ok := features[v]; !ok {
			return nil, &ErrUnknownFeature{Name: v}
		}
	}

	// Locate the target column. Uniqueness is a container invariant, so a
	// second match can only come from a logic defect upstream.
	target := -1
	for j, feat := range d.Features {
		if feat != name {
			continue
		}
		if target >= 0 {
			return nil, ErrInternal
		}
		target = j
	}

	out := d.Clone()
	if target < 0 {
		out.Features = append(out.Features, name)
		target = len(out.Features) - 1
		for i := range out.Values {
			out.Values[i] = append(out.Values[i], 0)
			out.Missing[i] = append(out.Missing[i], true)
			out.Mask[i] = append(out.Mask[i], true)
		}
	}

	vars := make(map[string]float64, len(f.Vars()))
	for i := 0; i < out.N(); i++ {
		missing := false
		for _, v := range f.Vars() {
			j := features[v]
			if d.Missing[i][j] {
				missing = true
				break
			}
			vars[v] = d.Values[i][j]
		}
		if missing {
			out.Values[i][target] = 0
			out.Missing[i][target] = true
			out.Mask[i][target] = true
			continue
		}
		val, err := f.Eval(vars)
		if err != nil {
			return nil, err
		}
		out.Values[i][target] = val
		out.Missing[i][target] = false
		out.Mask[i][target] = true
	}

	if err := out.Validate(); err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
