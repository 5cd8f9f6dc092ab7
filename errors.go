package genphen

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal indicates a post-operation invariant violation. It signals
	// a logic defect inside this package, not bad caller input, and should
	// not be caught and retried.
	ErrInternal = errors.New("internal: dataset invariant violated after construction")
)

// ErrInvalidDataset indicates a dataset that fails its structural invariant.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDataset struct {
	Reason string
	cause  error
}

func (e *ErrInvalidDataset) Error() string {
	return fmt.Sprintf("invalid dataset: %s", e.Reason)
}

func (e *ErrInvalidDataset) Unwrap() error { return e.cause }

// ErrIndexOutOfRange indicates a slice index outside the valid range of an
// axis.
type ErrIndexOutOfRange struct {
	Axis  string // "entries" or "features"
	Index int
	Size  int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("%s index out of range: %d (axis size %d)", e.Axis, e.Index, e.Size)
}

// ErrInvalidWeights indicates conflict-resolution weights that are negative
// or do not sum to 1.0.
type ErrInvalidWeights struct {
	Weights ConflictWeights
}

func (e *ErrInvalidWeights) Error() string {
	return fmt.Sprintf("invalid conflict weights: (%g, %g) must be non-negative and sum to 1.0", e.Weights[0], e.Weights[1])
}

// ErrUnknownFeature indicates a composite-feature formula referencing a
// variable that is not a feature of the dataset.
type ErrUnknownFeature struct {
	Name string
}

func (e *ErrUnknownFeature) Error() string {
	return fmt.Sprintf("unknown feature: %q", e.Name)
}
