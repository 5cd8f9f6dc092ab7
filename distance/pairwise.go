package distance

import (
	"context"
	"math"
	"runtime"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/genphen"
	"github.com/hupe1980/genphen/resource"
)

// Sentinel marks a pair with no defined comparison (fewer than two usable
// positions, or a variance-guarded correlation). It is negative infinity.
var Sentinel = math.Inf(-1)

// Axis names used in Result.Matrices keys.
const (
	AxisFeatures = "features"
	AxisEntries  = "entries"
)

// CountsMetric is the pseudo-metric key of the usable-set size matrices.
const CountsMetric = "counts"

// Result holds the pairwise matrices of one Pairwise call. Matrices is
// keyed "<axis>|<metric>" (e.g. "features|euclidean") plus
// "<axis>|counts"; only axes with more than one element contribute keys.
type Result struct {
	Features []string
	Entries  []string
	Matrices map[string][][]float64
}

// Key builds a Matrices key from axis and metric name.
func Key(axis, metric string) string { return axis + "|" + metric }

type options struct {
	metrics     []Metric
	standardize bool
	parallelism int
	controller  *resource.Controller
	logger      *genphen.Logger
}

// Option configures Pairwise.
type Option func(*options)

// WithMetrics sets the requested metrics. Duplicates are deduplicated.
func WithMetrics(metrics ...Metric) Option {
	return func(o *options) { o.metrics = metrics }
}

// WithStandardize z-scores every feature column over its finite,
// non-missing subset before any computation. Pairwise operates on an
// internal copy either way; the input dataset is never mutated.
func WithStandardize() Option {
	return func(o *options) { o.standardize = true }
}

// WithParallelism bounds the number of concurrent pair-loop workers.
// Defaults to runtime.GOMAXPROCS(0). All per-pair computations are
// independent, so the numeric results do not depend on the bound.
func WithParallelism(n int) Option {
	return func(o *options) { o.parallelism = n }
}

// WithController derives the worker bound from a resource controller.
func WithController(c *resource.Controller) Option {
	return func(o *options) { o.controller = c }
}

// WithLogger attaches a logger for operation-level diagnostics.
func WithLogger(l *genphen.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Pairwise computes the requested pairwise statistics over both axes of d:
// feature columns against feature columns, then entry rows against entry
// rows. An axis is skipped when it has fewer than two elements; if both
// axes are skipped, ErrTooSparse is returned.
func Pairwise(d *genphen.Dataset, opts ...Option) (*Result, error) {
	o := options{parallelism: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.controller != nil {
		o.parallelism = int(o.controller.WorkerSlots())
	}
	if o.parallelism < 1 {
		o.parallelism = 1
	}

	metrics, err := normalizeMetrics(o.metrics)
	if err != nil {
		return nil, err
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	work := d
	if o.standardize {
		work = standardize(d)
	}

	res := &Result{
		Features: slices.Clone(d.Features),
		Entries:  slices.Clone(d.Entries),
		Matrices: make(map[string][][]float64),
	}

	ran := false
	if work.P() > 1 {
		runAxis(res, AxisFeatures, columnVectors(work), metrics, o.parallelism)
		ran = true
	}
	if work.N() > 1 {
		runAxis(res, AxisEntries, rowVectors(work), metrics, o.parallelism)
		ran = true
	}
	if !ran {
		return nil, ErrTooSparse
	}

	if o.logger != nil {
		names := make([]string, len(metrics))
		for i, m := range metrics {
			names[i] = m.String()
		}
		o.logger.LogPairwise(context.Background(), names, len(res.Matrices), nil)
	}
	return res, nil
}

func normalizeMetrics(metrics []Metric) ([]Metric, error) {
	seen := make(map[Metric]struct{}, len(metrics))
	var out []Metric
	for _, m := range metrics {
		if !m.Valid() {
			return nil, &ErrUnknownMetric{Name: string(m)}
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, ErrNoMetrics
	}
	return out, nil
}

// vectorSet is one axis of the dataset: m parallel vectors of equal length
// plus, per vector, the bitmap of its usable (non-missing, finite)
// positions.
type vectorSet struct {
	vecs   [][]float64
	usable []*roaring.Bitmap
}

func columnVectors(d *genphen.Dataset) vectorSet {
	n, p := d.N(), d.P()
	vs := vectorSet{
		vecs:   make([][]float64, p),
		usable: make([]*roaring.Bitmap, p),
	}
	for j := 0; j < p; j++ {
		vec := make([]float64, n)
		bm := roaring.New()
		for i := 0; i < n; i++ {
			vec[i] = d.Values[i][j]
			if usableCell(d, i, j) {
				bm.Add(uint32(i))
			}
		}
		vs.vecs[j] = vec
		vs.usable[j] = bm
	}
	return vs
}

func rowVectors(d *genphen.Dataset) vectorSet {
	n, p := d.N(), d.P()
	vs := vectorSet{
		vecs:   make([][]float64, n),
		usable: make([]*roaring.Bitmap, n),
	}
	for i := 0; i < n; i++ {
		vec := make([]float64, p)
		bm := roaring.New()
		for j := 0; j < p; j++ {
			vec[j] = d.Values[i][j]
			if usableCell(d, i, j) {
				bm.Add(uint32(j))
			}
		}
		vs.vecs[i] = vec
		vs.usable[i] = bm
	}
	return vs
}

func usableCell(d *genphen.Dataset, i, j int) bool {
	if d.Missing[i][j] {
		return false
	}
	v := d.Values[i][j]
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// runAxis fills one matrix per metric plus the counts matrix for a single
// axis. Rows of the pair loop are independent, so they fan out over an
// errgroup with disjoint result rows and no locking.
func runAxis(res *Result, axis string, vs vectorSet, metrics []Metric, parallelism int) {
	m := len(vs.vecs)

	mats := make(map[Metric][][]float64, len(metrics))
	for _, metric := range metrics {
		mats[metric] = newMatrix(m, Sentinel)
	}
	counts := newMatrix(m, 0)

	var g errgroup.Group
	g.SetLimit(parallelism)
	for i := 0; i < m; i++ {
		i := i
		g.Go(func() error {
			pairRow(vs, i, metrics, mats, counts)
			return nil
		})
	}
	_ = g.Wait() // tasks never fail

	for _, metric := range metrics {
		res.Matrices[Key(axis, metric.String())] = mats[metric]
	}
	res.Matrices[Key(axis, CountsMetric)] = counts
}

// pairRow computes row i of every metric matrix.
func pairRow(vs vectorSet, i int, metrics []Metric, mats map[Metric][][]float64, counts [][]float64) {
	m := len(vs.vecs)
	pair := roaring.New()
	for j := 0; j < m; j++ {
		pair.Clear()
		pair.Or(vs.usable[i])
		pair.And(vs.usable[j])

		card := pair.GetCardinality()
		counts[i][j] = float64(card)
		if card < 2 {
			continue
		}

		idx := pair.ToArray()
		u := gather(vs.vecs[i], idx)
		v := gather(vs.vecs[j], idx)

		for _, metric := range metrics {
			switch metric {
			case Euclidean:
				mats[metric][i][j] = euclidean(u, v)
			case Correlation:
				if r, ok := pearson(u, v); ok {
					mats[metric][i][j] = r
				}
			case MAD:
				mats[metric][i][j] = meanAbsoluteDeviation(u, v)
			case RMSD:
				mats[metric][i][j] = rootMeanSquareDeviation(u, v)
			case ChiSquare:
				mats[metric][i][j] = chiSquare(u, v)
			}
		}
	}
}

func gather(vec []float64, idx []uint32) []float64 {
	out := make([]float64, len(idx))
	for k, pos := range idx {
		out[k] = vec[pos]
	}
	return out
}

func newMatrix(m int, fill float64) [][]float64 {
	out := make([][]float64, m)
	for i := range out {
		row := make([]float64, m)
		if fill != 0 {
			for j := range row {
				row[j] = fill
			}
		}
		out[i] = row
	}
	return out
}

// standardize z-scores every feature column of a copy of d over the rows
// where the column is non-missing and finite; other cells are left
// untouched.
func standardize(d *genphen.Dataset) *genphen.Dataset {
	out := d.Clone()
	n, p := out.N(), out.P()

	for j := 0; j < p; j++ {
		var rows []int
		for i := 0; i < n; i++ {
			if usableCell(out, i, j) {
				rows = append(rows, i)
			}
		}
		if len(rows) == 0 {
			continue
		}

		var mean float64
		for _, i := range rows {
			mean += out.Values[i][j]
		}
		mean /= float64(len(rows))

		var ss float64
		for _, i := range rows {
			dv := out.Values[i][j] - mean
			ss += dv * dv
		}
		std := math.Sqrt(ss / float64(len(rows)-1))

		for _, i := range rows {
			out.Values[i][j] = (out.Values[i][j] - mean) / std
		}
	}
	return out
}
