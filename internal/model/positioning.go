package model

// Positioning result keys, addressable from USP conditions and template
// placeholders alongside extracted field names.
const (
	KeyNoiseCategory    = "zajszint_kategoria"
	KeyNoiseDiffPercent = "zajszint_diff_percent"
	KeyAirflowCategory  = "legszallitas_kategoria"
	KeyPowerCategory    = "teljesitmeny_kategoria"
	KeyPriceCategory    = "ar_kategoria"
	KeyHighlights       = "kiemelkedo_tulajdonsagok"
)

// PositioningResult is a pure function of (extracted fields, category
// benchmark): it is recomputed whenever the fields change and has no
// independent lifecycle. NoiseDiffPercent is present only when the product
// is strictly below the category average and the rounded figure is positive.
type PositioningResult struct {
	NoiseCategory    string   `json:"zajszint_kategoria,omitempty"`
	NoiseDiffPercent int      `json:"zajszint_diff_percent,omitempty"`
	AirflowCategory  string   `json:"legszallitas_kategoria,omitempty"`
	PowerCategory    string   `json:"teljesitmeny_kategoria,omitempty"`
	PriceCategory    string   `json:"ar_kategoria,omitempty"`
	Highlights       []string `json:"kiemelkedo_tulajdonsagok"`
}

// lookup exposes the result under its wire keys for the condition language.
// Empty categories and a zero diff percent resolve as absent.
func (r *PositioningResult) lookup() map[string]any {
	if r == nil {
		return nil
	}
	m := make(map[string]any, 6)
	if r.NoiseCategory != "" {
		m[KeyNoiseCategory] = r.NoiseCategory
	}
	if r.NoiseDiffPercent > 0 {
		m[KeyNoiseDiffPercent] = float64(r.NoiseDiffPercent)
	}
	if r.AirflowCategory != "" {
		m[KeyAirflowCategory] = r.AirflowCategory
	}
	if r.PowerCategory != "" {
		m[KeyPowerCategory] = r.PowerCategory
	}
	if r.PriceCategory != "" {
		m[KeyPriceCategory] = r.PriceCategory
	}
	if len(r.Highlights) > 0 {
		m[KeyHighlights] = normalize(r.Highlights)
	}
	return m
}
