package genphen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/genphen/formula"
)

func TestAddCompositeFeature(t *testing.T) {
	t.Run("IdentityFormula", func(t *testing.T) {
		d := testDataset(3, 2)

		out, err := d.AddCompositeFeature("copy", "feature_a")
		require.NoError(t, err)
		require.Equal(t, 3, out.P())
		assert.Equal(t, "copy", out.Features[2])
		for i := 0; i < out.N(); i++ {
			assert.Equal(t, d.Values[i][0], out.Values[i][2])
			assert.False(t, out.Missing[i][2])
			assert.True(t, out.Mask[i][2])
		}
	})

	t.Run("Arithmetic", func(t *testing.T) {
		d := testDataset(2, 3)

		out, err := d.AddCompositeFeature("score", "(feature_a + feature_b) * feature_c - 1")
		require.NoError(t, err)
		for i := 0; i < 2; i++ {
			a, b, c := d.Values[i][0], d.Values[i][1], d.Values[i][2]
			assert.InDelta(t, (a+b)*c-1, out.Values[i][3], 1e-12)
		}
	})

	t.Run("OverwriteExistingColumn", func(t *testing.T) {
		d := testDataset(3, 2)
		d.Mask[1][1] = false

		out, err := d.AddCompositeFeature("feature_b", "feature_a * 2")
		require.NoError(t, err)
		assert.Equal(t, 2, out.P())
		for i := 0; i < 3; i++ {
			assert.Equal(t, d.Values[i][0]*2, out.Values[i][1])
			assert.True(t, out.Mask[i][1], "overwritten column is fully usable")
		}
		assert.False(t, d.Mask[1][1], "receiver untouched")
	})

	t.Run("MissingOperandPropagates", func(t *testing.T) {
		d := testDataset(3, 2)
		d.Missing[1][0] = true

		out, err := d.AddCompositeFeature("sum", "feature_a + feature_b")
		require.NoError(t, err)
		assert.False(t, out.Missing[0][2])
		assert.True(t, out.Missing[1][2])
		assert.False(t, out.Missing[2][2])
	})

	t.Run("NaNOperandPropagates", func(t *testing.T) {
		d := testDataset(2, 2)
		d.Values[0][0] = math.NaN()

		out, err := d.AddCompositeFeature("sum", "feature_a + feature_b")
		require.NoError(t, err)
		assert.True(t, math.IsNaN(out.Values[0][2]))
		assert.False(t, out.Missing[0][2])
	})

	t.Run("QuotedNamesAreNotSubstringMatched", func(t *testing.T) {
		d := New(2, 2)
		d.Entries = []string{"e1", "e2"}
		d.Populations = []string{"p", "p"}
		d.Features = []string{"A", "AB"}
		for i := range d.Values {
			for j := range d.Values[i] {
				d.Values[i][j] = float64(10*i + j + 1)
				d.Missing[i][j] = false
			}
		}
		require.True(t, d.CheckDims())

		out, err := d.AddCompositeFeature("sum", "`A` + `AB`")
		require.NoError(t, err)
		assert.Equal(t, d.Values[0][0]+d.Values[0][1], out.Values[0][2])
		assert.Equal(t, d.Values[1][0]+d.Values[1][1], out.Values[1][2])
	})

	t.Run("UnknownFeature", func(t *testing.T) {
		d := testDataset(2, 2)
		_, err := d.AddCompositeFeature("x", "feature_a + nope")
		var unknown *ErrUnknownFeature
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "nope", unknown.Name)
	})

	t.Run("ParseError", func(t *testing.T) {
		d := testDataset(2, 2)
		_, err := d.AddCompositeFeature("x", "feature_a +")
		var parse *formula.ErrParse
		assert.ErrorAs(t, err, &parse)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		d := testDataset(2, 2)
		d.Entries[1] = d.Entries[0]
		_, err := d.AddCompositeFeature("x", "feature_a")
		var invalid *ErrInvalidDataset
		assert.ErrorAs(t, err, &invalid)
	})
}
