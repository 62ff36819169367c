package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noiseMetric() Metric {
	return Metric{
		Buckets: []Bucket{
			{Name: "ultra_halk", Max: 25},
			{Name: "halk", Max: 35},
			{Name: "atlagos", Max: 45},
		},
		Overflow: "zajos",
		Average:  35,
	}
}

func TestMetricClassify(t *testing.T) {
	t.Parallel()
	m := noiseMetric()

	t.Run("below first bound", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "ultra_halk", m.Classify(22))
	})

	t.Run("bound is exclusive, value on bound falls into next bucket", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "halk", m.Classify(25))
		assert.Equal(t, "atlagos", m.Classify(35))
		assert.Equal(t, "zajos", m.Classify(45))
	})

	t.Run("overflow above every bound", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "zajos", m.Classify(60))
	})
}

func TestMetricValidate(t *testing.T) {
	t.Parallel()

	t.Run("ordered buckets pass", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, noiseMetric().Validate())
	})

	t.Run("non-increasing bounds fail", func(t *testing.T) {
		t.Parallel()
		m := Metric{
			Buckets:  []Bucket{{Name: "a", Max: 30}, {Name: "b", Max: 30}},
			Overflow: "c",
		}
		assert.Error(t, m.Validate())
	})

	t.Run("missing overflow fails", func(t *testing.T) {
		t.Parallel()
		m := Metric{Buckets: []Bucket{{Name: "a", Max: 30}}}
		assert.Error(t, m.Validate())
	})
}

func TestBenchmarkTableForCategory(t *testing.T) {
	t.Parallel()

	table := &BenchmarkTable{Categories: map[Category]CategoryBenchmark{
		CategoryBathroomAxial: {Name: "Fürdőszobai axiális", Metrics: map[string]Metric{FieldNoiseDB: noiseMetric()}},
	}}

	assert.NotNil(t, table.ForCategory(CategoryBathroomAxial))
	assert.Nil(t, table.ForCategory(CategoryIndustrial))

	var nilTable *BenchmarkTable
	assert.Nil(t, nilTable.ForCategory(CategoryBathroomAxial))
}
