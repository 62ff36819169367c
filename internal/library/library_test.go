package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBenchmarksEmbedded(t *testing.T) {
	t.Parallel()

	table, err := LoadBenchmarks("")
	require.NoError(t, err)
	require.NotEmpty(t, table.Categories)

	bench := table.ForCategory(model.CategoryBathroomAxial)
	require.NotNil(t, bench)
	assert.Contains(t, bench.Metrics, model.FieldNoiseDB)
	assert.Contains(t, bench.Metrics, model.FieldAirflowM3H)
}

func TestLoadBenchmarksFromFile(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "bench.json", `{
			"categories": {
				"ipari": {
					"name": "Ipari ventilátor",
					"metrics": {
						"zajszint_db": {
							"buckets": [{"name": "halk", "max": 50}],
							"overflow": "zajos",
							"average": 55
						}
					}
				}
			}
		}`)

		table, err := LoadBenchmarks(path)
		require.NoError(t, err)
		bench := table.ForCategory(model.CategoryIndustrial)
		require.NotNil(t, bench)
		assert.Equal(t, "halk", bench.Metrics[model.FieldNoiseDB].Classify(40))
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "bench.yaml", `
categories:
  ipari:
    name: Ipari ventilátor
    metrics:
      zajszint_db:
        buckets:
          - name: halk
            max: 50
        overflow: zajos
`)

		table, err := LoadBenchmarks(path)
		require.NoError(t, err)
		bench := table.ForCategory(model.CategoryIndustrial)
		require.NotNil(t, bench)
		assert.Equal(t, "zajos", bench.Metrics[model.FieldNoiseDB].Classify(60))
	})
}

func TestLoadBenchmarksRejectsBadBounds(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "bench.json", `{
		"categories": {
			"ipari": {
				"name": "Ipari",
				"metrics": {
					"zajszint_db": {
						"buckets": [{"name": "a", "max": 50}, {"name": "b", "max": 40}],
						"overflow": "c"
					}
				}
			}
		}
	}`)

	_, err := LoadBenchmarks(path)
	assert.Error(t, err)
}

func TestLoadBenchmarksMissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadBenchmarks(filepath.Join(t.TempDir(), "nincs.json"))
	assert.Error(t, err)
}

func TestLoadUspLibraryEmbedded(t *testing.T) {
	t.Parallel()

	lib, err := LoadUspLibrary("")
	require.NoError(t, err)
	require.NotEmpty(t, lib.Categories)

	entries := 0
	for _, cat := range lib.Categories {
		require.NotEmpty(t, cat.Key)
		for _, usp := range cat.Usps {
			require.NotEmpty(t, usp.ID)
			require.NotEmpty(t, usp.Title)
			require.NotEmpty(t, usp.Condition.Field)
			require.NotEmpty(t, usp.Condition.Operator)
			entries++
		}
	}
	assert.Greater(t, entries, 10)
}

func TestLoadUspLibraryFromFile(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "usps.yaml", `
usp_categories:
  - key: zajszint
    name: Zajszint
    usps:
      - id: zaj-1
        condition:
          field: zajszint_kategoria
          operator: eq
          value: halk
        title: Halk {termek_nev}
        paragraph_1: Csendes üzem.
        image_suggestion: halk.jpg
`)

	lib, err := LoadUspLibrary(path)
	require.NoError(t, err)
	require.Len(t, lib.Categories, 1)
	require.Len(t, lib.Categories[0].Usps, 1)

	usp := lib.Categories[0].Usps[0]
	assert.Equal(t, "zaj-1", usp.ID)
	assert.Equal(t, model.OpEq, usp.Condition.Operator)
	assert.Equal(t, "halk", usp.Condition.Value)
	assert.Equal(t, "halk.jpg", usp.ImageSuggestion)
}

func TestLoadUspLibraryInvalidJSON(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "usps.json", `{"usp_categories": [`)
	_, err := LoadUspLibrary(path)
	assert.Error(t, err)
}
