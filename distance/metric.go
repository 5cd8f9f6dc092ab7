package distance

import "math"

// Metric names a pairwise statistic.
type Metric string

const (
	// Euclidean is sqrt(sum((u-v)^2)).
	Euclidean Metric = "euclidean"
	// Correlation is the Pearson correlation coefficient, guarded against
	// near-zero variance in either operand.
	Correlation Metric = "correlation"
	// MAD is the mean absolute deviation mean(|u-v|).
	MAD Metric = "mad"
	// RMSD is the root-mean-square deviation sqrt(mean((u-v)^2)).
	RMSD Metric = "rmsd"
	// ChiSquare is sum((u-v)^2 / (v + eps)). The denominator uses only the
	// second vector, making the metric intentionally asymmetric; the
	// asymmetry is preserved exactly.
	ChiSquare Metric = "chi_square"
)

// Valid reports whether m is a recognized metric name.
func (m Metric) Valid() bool {
	switch m {
	case Euclidean, Correlation, MAD, RMSD, ChiSquare:
		return true
	}
	return false
}

func (m Metric) String() string { return string(m) }

// varianceFloor is the sample-variance threshold below which a vector is
// treated as constant and its correlations are left at the Sentinel.
const varianceFloor = 1e-7

// epsilon is the float64 machine epsilon used by the chi-square
// denominator guard.
var epsilon = math.Nextafter(1, 2) - 1

func euclidean(u, v []float64) float64 {
	var s float64
	for k := range u {
		d := u[k] - v[k]
		s += d * d
	}
	return math.Sqrt(s)
}

func meanAbsoluteDeviation(u, v []float64) float64 {
	var s float64
	for k := range u {
		s += math.Abs(u[k] - v[k])
	}
	return s / float64(len(u))
}

func rootMeanSquareDeviation(u, v []float64) float64 {
	var s float64
	for k := range u {
		d := u[k] - v[k]
		s += d * d
	}
	return math.Sqrt(s / float64(len(u)))
}

func chiSquare(u, v []float64) float64 {
	var s float64
	for k := range u {
		d := u[k] - v[k]
		s += d * d / (v[k] + epsilon)
	}
	return s
}

// pearson returns the Pearson correlation coefficient of u and v, or false
// when either sample variance falls below varianceFloor.
func pearson(u, v []float64) (float64, bool) {
	n := float64(len(u))
	var mu, mv float64
	for k := range u {
		mu += u[k]
		mv += v[k]
	}
	mu /= n
	mv /= n

	var suu, svv, suv float64
	for k := range u {
		du := u[k] - mu
		dv := v[k] - mv
		suu += du * du
		svv += dv * dv
		suv += du * dv
	}

	varU := suu / (n - 1)
	varV := svv / (n - 1)
	if varU < varianceFloor || varV < varianceFloor {
		return 0, false
	}
	return suv / math.Sqrt(suu*svv), true
}
