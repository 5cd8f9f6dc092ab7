package distance

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMetrics is returned when Pairwise is invoked with an empty
	// metric set.
	ErrNoMetrics = errors.New("no metrics requested")

	// ErrTooSparse is returned when neither axis has more than one element,
	// so no pairwise matrix can be produced.
	ErrTooSparse = errors.New("dataset too sparse: both axes have at most one element")
)

// ErrUnknownMetric indicates an unrecognized metric name.
type ErrUnknownMetric struct {
	Name string
}

func (e *ErrUnknownMetric) Error() string {
	return fmt.Sprintf("unknown metric: %q", e.Name)
}
