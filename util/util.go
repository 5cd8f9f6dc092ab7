// Package util provides seeded random dataset fixtures for tests and
// benchmarks.
package util

import (
	"fmt"
	"math/rand"

	"github.com/hupe1980/genphen"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Dataset generates a fully-populated valid n×p dataset: unique entry and
// feature names, round-robin populations, uniform values in [0,1), nothing
// missing, all mask flags true.
func (r *RNG) Dataset(n, p int) *genphen.Dataset {
	d := genphen.New(n, p)
	for i := 0; i < n; i++ {
		d.Entries[i] = fmt.Sprintf("entry_%03d", i+1)
		d.Populations[i] = fmt.Sprintf("pop_%d", i%3+1)
		for j := 0; j < p; j++ {
			d.Values[i][j] = r.rand.Float64()
			d.Missing[i][j] = false
		}
	}
	for j := 0; j < p; j++ {
		d.Features[j] = fmt.Sprintf("feature_%03d", j+1)
	}
	return d
}

// SparseDataset generates a dataset where each cell is missing with
// probability missingRate and unmasked with probability maskFalseRate.
func (r *RNG) SparseDataset(n, p int, missingRate, maskFalseRate float64) *genphen.Dataset {
	d := r.Dataset(n, p)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			if r.rand.Float64() < missingRate {
				d.Values[i][j] = 0
				d.Missing[i][j] = true
			}
			if r.rand.Float64() < maskFalseRate {
				d.Mask[i][j] = false
			}
		}
	}
	return d
}
