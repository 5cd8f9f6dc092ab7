// Package distance computes multi-metric pairwise statistics over both axes
// of a dataset, tolerating missing, NaN, and infinite cells.
//
// For every pair of vectors along an axis (feature columns, then entry
// rows), the comparison is restricted to the usable-index set: positions
// where both vectors are simultaneously non-missing and finite. Pairs with
// fewer than two usable positions keep the Sentinel value (negative
// infinity), which consumers must treat as "no comparison available", never
// as a real distance. A counts matrix per axis records the usable-set size
// for every pair.
//
//	res, err := distance.Pairwise(d,
//	    distance.WithMetrics(distance.Euclidean, distance.Correlation),
//	    distance.WithStandardize(),
//	)
//	m := res.Matrices["features|correlation"]
package distance
