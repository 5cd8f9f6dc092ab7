package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset(t *testing.T) {
	d := NewRNG(1).Dataset(5, 3)

	require.NoError(t, d.Validate())
	assert.Equal(t, 5, d.N())
	assert.Equal(t, 3, d.P())
	for i := range d.Missing {
		for j := range d.Missing[i] {
			assert.False(t, d.Missing[i][j])
			assert.True(t, d.Mask[i][j])
		}
	}
}

func TestDatasetDeterministic(t *testing.T) {
	a := NewRNG(42).Dataset(4, 4)
	b := NewRNG(42).Dataset(4, 4)
	assert.True(t, a.Equal(b))

	c := NewRNG(43).Dataset(4, 4)
	assert.False(t, a.Equal(c))
}

func TestSparseDataset(t *testing.T) {
	d := NewRNG(7).SparseDataset(50, 20, 0.3, 0.1)
	require.NoError(t, d.Validate())

	var missing, unmasked int
	for i := range d.Missing {
		for j := range d.Missing[i] {
			if d.Missing[i][j] {
				missing++
				assert.Equal(t, float64(0), d.Values[i][j], "missing payload is zeroed")
			}
			if !d.Mask[i][j] {
				unmasked++
			}
		}
	}
	assert.Greater(t, missing, 0)
	assert.Greater(t, unmasked, 0)
	assert.Less(t, missing, 1000)
}
