// Package library loads the benchmark table and the USP catalog from JSON
// or YAML documents, falling back to the embedded shop defaults.
package library

import (
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

//go:embed defaults/benchmark.json defaults/usp_library.json
var defaultsFS embed.FS

// LoadBenchmarks reads the benchmark table from path, or the embedded
// default when path is empty. Bucket bound monotonicity is validated so
// classification stays well defined.
func LoadBenchmarks(path string) (*model.BenchmarkTable, error) {
	data, name, err := readDocument(path, "defaults/benchmark.json")
	if err != nil {
		return nil, err
	}

	var table model.BenchmarkTable
	if err := unmarshalDocument(name, data, &table); err != nil {
		return nil, eris.Wrapf(err, "library: parse benchmark %s", name)
	}
	if err := table.Validate(); err != nil {
		return nil, eris.Wrapf(err, "library: invalid benchmark %s", name)
	}

	zap.L().Debug("benchmark table loaded",
		zap.String("source", name),
		zap.Int("categories", len(table.Categories)),
	)
	return &table, nil
}

// LoadUspLibrary reads the USP catalog from path, or the embedded default
// when path is empty. Category and entry order is the declaration order of
// the document.
func LoadUspLibrary(path string) (*model.UspLibrary, error) {
	data, name, err := readDocument(path, "defaults/usp_library.json")
	if err != nil {
		return nil, err
	}

	var lib model.UspLibrary
	if err := unmarshalDocument(name, data, &lib); err != nil {
		return nil, eris.Wrapf(err, "library: parse usp library %s", name)
	}

	count := 0
	for _, cat := range lib.Categories {
		count += len(cat.Usps)
	}
	zap.L().Debug("usp library loaded",
		zap.String("source", name),
		zap.Int("categories", len(lib.Categories)),
		zap.Int("entries", count),
	)
	return &lib, nil
}

func readDocument(path, embedded string) ([]byte, string, error) {
	if path == "" {
		data, err := defaultsFS.ReadFile(embedded)
		if err != nil {
			return nil, "", eris.Wrap(err, "library: read embedded default")
		}
		return data, embedded, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", eris.Wrapf(err, "library: read %s", path)
	}
	return data, path, nil
}

func unmarshalDocument(name string, data []byte, out any) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	default:
		return json.Unmarshal(data, out)
	}
}
