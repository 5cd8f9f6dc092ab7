package genphen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDataset builds a fully-populated n×p dataset with deterministic
// values: cell (i,j) holds i*10+j.
func testDataset(n, p int) *Dataset {
	d := New(n, p)
	for i := 0; i < n; i++ {
		d.Entries[i] = "entry_" + string(rune('a'+i))
		d.Populations[i] = "pop_1"
		for j := 0; j < p; j++ {
			d.Values[i][j] = float64(i*10 + j)
			d.Missing[i][j] = false
		}
	}
	for j := 0; j < p; j++ {
		d.Features[j] = "feature_" + string(rune('a'+j))
	}
	return d
}

func TestNew(t *testing.T) {
	d := New(3, 2)

	assert.Equal(t, 3, d.N())
	assert.Equal(t, 2, d.P())
	assert.True(t, d.CheckDims())

	for i := 0; i < 3; i++ {
		assert.Equal(t, "", d.Entries[i])
		assert.Equal(t, "", d.Populations[i])
		for j := 0; j < 2; j++ {
			assert.True(t, d.Missing[i][j], "cells start missing")
			assert.True(t, d.Mask[i][j], "mask starts true")
		}
	}
}

func TestNew_DuplicateEmptyNamesAreInvalidOncePopulatedPartially(t *testing.T) {
	// Two empty entry names are duplicates; an empty container with n > 1
	// does not satisfy the invariant until names are assigned.
	d := New(2, 1)
	assert.False(t, d.CheckDims())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Dataset)
		reason string
	}{
		{
			name:   "DuplicateEntries",
			mutate: func(d *Dataset) { d.Entries[1] = d.Entries[0] },
			reason: "duplicate entry name",
		},
		{
			name:   "DuplicateFeatures",
			mutate: func(d *Dataset) { d.Features[1] = d.Features[0] },
			reason: "duplicate feature name",
		},
		{
			name:   "PopulationsLength",
			mutate: func(d *Dataset) { d.Populations = d.Populations[:2] },
			reason: "populations length",
		},
		{
			name:   "ValuesRows",
			mutate: func(d *Dataset) { d.Values = d.Values[:2] },
			reason: "values row count",
		},
		{
			name:   "MaskColumns",
			mutate: func(d *Dataset) { d.Mask[0] = d.Mask[0][:1] },
			reason: "mask column count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDataset(3, 2)
			require.True(t, d.CheckDims())

			tt.mutate(d)
			err := d.Validate()
			require.Error(t, err)

			var invalid *ErrInvalidDataset
			require.ErrorAs(t, err, &invalid)
			assert.Contains(t, invalid.Reason, tt.reason)
			assert.False(t, d.CheckDims())
		})
	}
}

func TestClone(t *testing.T) {
	d := testDataset(3, 2)
	d.Values[1][1] = math.NaN()
	d.Missing[2][0] = true
	d.Mask[0][1] = false

	c := d.Clone()
	assert.True(t, d.Equal(c))

	// Mutating the clone must not leak into the original.
	c.Entries[0] = "mutated"
	c.Values[0][0] = -1
	c.Missing[0][1] = true
	c.Mask[2][1] = false

	assert.Equal(t, "entry_a", d.Entries[0])
	assert.Equal(t, float64(0), d.Values[0][0])
	assert.False(t, d.Missing[0][1])
	assert.True(t, d.Mask[2][1])
}

func TestEqual(t *testing.T) {
	a := testDataset(3, 2)
	b := testDataset(3, 2)
	assert.True(t, a.Equal(b))

	t.Run("NaNCellsCompareEqual", func(t *testing.T) {
		a, b := testDataset(2, 2), testDataset(2, 2)
		a.Values[0][0] = math.NaN()
		b.Values[0][0] = math.NaN()
		assert.True(t, a.Equal(b))
	})

	t.Run("MissingPayloadIgnored", func(t *testing.T) {
		a, b := testDataset(2, 2), testDataset(2, 2)
		a.Missing[0][0], b.Missing[0][0] = true, true
		a.Values[0][0], b.Values[0][0] = 1, 2
		assert.True(t, a.Equal(b))
	})

	t.Run("ValueDiff", func(t *testing.T) {
		a, b := testDataset(2, 2), testDataset(2, 2)
		b.Values[1][1] = -99
		assert.False(t, a.Equal(b))
	})

	t.Run("MaskDiff", func(t *testing.T) {
		a, b := testDataset(2, 2), testDataset(2, 2)
		b.Mask[0][0] = false
		assert.False(t, a.Equal(b))
	})

	t.Run("NameDiff", func(t *testing.T) {
		a, b := testDataset(2, 2), testDataset(2, 2)
		b.Features[0] = "other"
		assert.False(t, a.Equal(b))
	})
}

func TestDimensions(t *testing.T) {
	d := testDataset(4, 3)
	d.Populations[0] = "pop_2"

	dims, err := d.Dimensions()
	require.NoError(t, err)
	assert.Equal(t, 4, dims["entries"])
	assert.Equal(t, 2, dims["populations"])
	assert.Equal(t, 3, dims["features"])

	d.Entries[1] = d.Entries[0]
	_, err = d.Dimensions()
	assert.Error(t, err)
}
