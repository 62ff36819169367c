package model

import "github.com/rotisserie/eris"

// Bucket is one ordinal band of a metric. Max is an exclusive upper bound:
// a value equal to Max falls into the next bucket, not this one.
type Bucket struct {
	Name string  `json:"name" yaml:"name"`
	Max  float64 `json:"max" yaml:"max"`
}

// Metric holds the ordered buckets for one numeric product attribute plus
// the catch-all overflow bucket used when every declared bound is exceeded.
// Average, when non-zero, enables the percent-below-average figure.
type Metric struct {
	Buckets  []Bucket `json:"buckets" yaml:"buckets"`
	Overflow string   `json:"overflow" yaml:"overflow"`
	Average  float64  `json:"average,omitempty" yaml:"average,omitempty"`
}

// Classify returns the name of the first bucket whose bound exceeds v, or
// the overflow bucket when none does. Bounds are compared with strict <.
func (m Metric) Classify(v float64) string {
	for _, b := range m.Buckets {
		if v < b.Max {
			return b.Name
		}
	}
	return m.Overflow
}

// Validate checks that bucket bounds are strictly increasing so that
// classification is well defined.
func (m Metric) Validate() error {
	for i := 1; i < len(m.Buckets); i++ {
		if m.Buckets[i].Max <= m.Buckets[i-1].Max {
			return eris.Errorf("bucket %q bound %v not above %q bound %v",
				m.Buckets[i].Name, m.Buckets[i].Max, m.Buckets[i-1].Name, m.Buckets[i-1].Max)
		}
	}
	if m.Overflow == "" {
		return eris.New("missing overflow bucket name")
	}
	return nil
}

// CategoryBenchmark holds the per-category breakpoints, keyed by field name
// (zajszint_db, legszallitas_m3h, teljesitmeny_w, ar_ft).
type CategoryBenchmark struct {
	Name    string            `json:"name" yaml:"name"`
	Metrics map[string]Metric `json:"metrics" yaml:"metrics"`
}

// BenchmarkTable maps category keys to their benchmarks. Static, read-only
// within a wizard session.
type BenchmarkTable struct {
	Categories map[Category]CategoryBenchmark `json:"categories" yaml:"categories"`
}

// ForCategory returns the benchmark for c, or nil when the category has no
// benchmark data. A nil benchmark yields an empty positioning result.
func (t *BenchmarkTable) ForCategory(c Category) *CategoryBenchmark {
	if t == nil {
		return nil
	}
	b, ok := t.Categories[c]
	if !ok {
		return nil
	}
	return &b
}

// Validate checks every metric of every category.
func (t *BenchmarkTable) Validate() error {
	for key, cat := range t.Categories {
		for field, m := range cat.Metrics {
			if err := m.Validate(); err != nil {
				return eris.Wrapf(err, "benchmark %s/%s", key, field)
			}
		}
	}
	return nil
}
