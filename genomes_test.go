package genphen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenomes(t *testing.T) {
	g := NewGenomes(2, 3)
	g.Dataset = testDataset(2, 3)

	assert.Equal(t, g.Features, g.LociAlleles())

	c := g.Clone()
	c.Values[0][0] = -1
	assert.Equal(t, float64(0), g.Values[0][0])

	out, err := g.Merge(g, ConflictWeights{0.5, 0.5})
	require.NoError(t, err)
	assert.True(t, out.Dataset.Equal(g.Dataset))
}

func TestPhenomes(t *testing.T) {
	p := NewPhenomes(2, 2)
	p.Dataset = testDataset(2, 2)

	assert.Equal(t, p.Features, p.Traits())

	out, err := p.AddCompositeTrait("ratio", "feature_b / (feature_a + 1)")
	require.NoError(t, err)
	require.Equal(t, 3, out.P())
	for i := 0; i < 2; i++ {
		want := p.Values[i][1] / (p.Values[i][0] + 1)
		assert.InDelta(t, want, out.Values[i][2], 1e-12)
	}
}

func TestPhenomesDimensions(t *testing.T) {
	p := &Phenomes{Dataset: testDataset(3, 3)}
	p.Values[0][0] = 0
	p.Values[0][1] = math.NaN()
	p.Values[0][2] = math.Inf(-1)
	p.Missing[1][0] = true
	p.Values[1][1] = math.NaN() // hidden behind missing below
	p.Missing[1][1] = true

	dims, err := p.Dimensions()
	require.NoError(t, err)

	assert.Equal(t, 3, dims["entries"])
	assert.Equal(t, 1, dims["populations"])
	assert.Equal(t, 3, dims["features"])
	assert.Equal(t, 9, dims["total"])
	assert.Equal(t, 1, dims["zeroes"])
	assert.Equal(t, 2, dims["missing"])
	assert.Equal(t, 1, dims["nan"], "missing cells do not count as NaN")
	assert.Equal(t, 1, dims["inf"])
}
