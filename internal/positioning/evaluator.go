// Package positioning classifies a product's numeric metrics against the
// category benchmark breakpoints and derives the qualitative highlight tags
// the USP matcher and the rendered page build on.
package positioning

import (
	"math"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

// Bucket names referenced by the highlight tag rules. The benchmark files
// use the same names; unknown names simply produce no tag.
const (
	BucketUltraQuiet  = "ultra_halk"
	BucketQuiet       = "halk"
	BucketHighAirflow = "magas"
	BucketTopAirflow  = "nagyon_magas"
	BucketEconomical  = "takarekos"
)

// Highlight tags, in the wording the shop templates expect.
const (
	TagUltraQuiet     = "Ultra halk működés"
	TagQuiet          = "Halk működés"
	TagHighAirflow    = "Magas légszállítás"
	TagTopAirflow     = "Kiemelkedő légszállítás"
	TagLowConsumption = "Alacsony fogyasztás"
	TagSplashProof    = "Vízvédett (IPX4)"
	TagJetProof       = "Sugár víz ellen védett (IPX5)"
	TagBallBearing    = "Golyóscsapágyas"
	TagCheckValve     = "Visszacsapó szeleppel"
)

// Evaluate positions the extracted fields against the category benchmark.
// A nil benchmark or a missing metric degrades to an empty classification,
// never an error: USP matching must keep working on partial extractions.
func Evaluate(fields []model.ExtractedField, bench *model.CategoryBenchmark) model.PositioningResult {
	r := model.PositioningResult{Highlights: []string{}}
	if bench == nil {
		return r
	}

	vals := model.NewValues(fields, nil)

	if v, ok := metricValue(vals, bench, model.FieldNoiseDB); ok {
		m := bench.Metrics[model.FieldNoiseDB]
		r.NoiseCategory = m.Classify(v)
		switch r.NoiseCategory {
		case BucketUltraQuiet:
			r.Highlights = append(r.Highlights, TagUltraQuiet)
		case BucketQuiet:
			r.Highlights = append(r.Highlights, TagQuiet)
		}
		if pct := percentBelowAverage(v, m.Average); pct > 0 {
			r.NoiseDiffPercent = pct
		}
	}

	if v, ok := metricValue(vals, bench, model.FieldAirflowM3H); ok {
		m := bench.Metrics[model.FieldAirflowM3H]
		r.AirflowCategory = m.Classify(v)
		switch r.AirflowCategory {
		case BucketHighAirflow:
			r.Highlights = append(r.Highlights, TagHighAirflow)
		case BucketTopAirflow:
			r.Highlights = append(r.Highlights, TagTopAirflow)
		}
	}

	if v, ok := metricValue(vals, bench, model.FieldPowerW); ok {
		m := bench.Metrics[model.FieldPowerW]
		r.PowerCategory = m.Classify(v)
		if r.PowerCategory == BucketEconomical {
			r.Highlights = append(r.Highlights, TagLowConsumption)
		}
	}

	if v, ok := metricValue(vals, bench, model.FieldPriceHUF); ok {
		r.PriceCategory = bench.Metrics[model.FieldPriceHUF].Classify(v)
	}

	// Feature tags are independent of the bucket math.
	if ip, ok := vals.String(model.FieldIPRating); ok {
		switch ip {
		case "IPX4", "IP44":
			r.Highlights = append(r.Highlights, TagSplashProof)
		case "IPX5", "IP65":
			r.Highlights = append(r.Highlights, TagJetProof)
		}
	}
	if bearing, ok := vals.String(model.FieldBearingType); ok && bearing == model.BearingBall {
		r.Highlights = append(r.Highlights, TagBallBearing)
	}
	if valve, ok := vals.Bool(model.FieldCheckValve); ok && valve {
		r.Highlights = append(r.Highlights, TagCheckValve)
	}

	return r
}

// metricValue resolves a numeric field that also has benchmark breakpoints.
// Either side missing means the metric is skipped silently.
func metricValue(vals model.Values, bench *model.CategoryBenchmark, field string) (float64, bool) {
	if _, ok := bench.Metrics[field]; !ok {
		return 0, false
	}
	return vals.Number(field)
}

// percentBelowAverage returns round(100*(avg-v)/avg) when v is strictly
// below a defined average, and 0 otherwise.
func percentBelowAverage(v, avg float64) int {
	if avg <= 0 || v >= avg {
		return 0
	}
	return int(math.Round(100 * (avg - v) / avg))
}
