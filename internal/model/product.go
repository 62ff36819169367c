package model

// DataStatus records how an extracted field value was obtained. Only
// confirmed values may appear verbatim in generated prose.
type DataStatus string

const (
	StatusConfirmed DataStatus = "biztos"
	StatusInferred  DataStatus = "kovetkeztetett"
	StatusMissing   DataStatus = "hianyzo"
)

// Category identifies a product category in the benchmark and USP libraries.
type Category string

const (
	CategoryBathroomAxial  Category = "furdoszoba_axialis"
	CategoryBathroomRadial Category = "furdoszoba_radialis"
	CategoryDuct           Category = "csoventilator"
	CategoryIndustrial     Category = "ipari"
	CategoryHeatRecovery   Category = "hovisszanyero"
)

// Categories lists every known product category.
var Categories = []Category{
	CategoryBathroomAxial,
	CategoryBathroomRadial,
	CategoryDuct,
	CategoryIndustrial,
	CategoryHeatRecovery,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Well-known field keys. The condition language and template placeholders
// address fields by these names.
const (
	FieldProductName   = "termek_nev"
	FieldManufacturer  = "gyarto"
	FieldCategory      = "kategoria"
	FieldPriceHUF      = "ar_ft"
	FieldNoiseDB       = "zajszint_db"
	FieldAirflowM3H    = "legszallitas_m3h"
	FieldPressurePa    = "nyomas_pa"
	FieldPowerW        = "teljesitmeny_w"
	FieldCurrentA      = "aramfelvetel_a"
	FieldRPM           = "fordulatszam_rpm"
	FieldDuctDiameter  = "csoatmero_mm"
	FieldIPRating      = "ip_vedelem"
	FieldBearingType   = "csapagy_tipus"
	FieldCheckValve    = "visszacsapo_szelep"
	FieldEasyCleaning  = "konnyu_tisztitas"
	FieldAntistatic    = "antisztatikus"
	FieldCoveredBlades = "fedett_lapat"
	FieldFunctions     = "funkciok"
	FieldLifetimeHours = "elettartam_ora"
	FieldMinTempC      = "min_uzemi_homerseklet"
	FieldMaxTempC      = "max_uzemi_homerseklet"
)

// BearingBall is the ball-bearing value of csapagy_tipus; the alternative
// is "siklócsapágy" (sleeve bearing).
const BearingBall = "golyóscsapágy"

// ExtractedField is one product attribute together with its extraction
// provenance. Values are JSON scalars or arrays; numbers normalize to
// float64 when looked up through Values.
type ExtractedField struct {
	Field  string     `json:"field"`
	Value  any        `json:"value"`
	Status DataStatus `json:"status"`
	Source string     `json:"source,omitempty"`
}

// Confirmed reports whether the field value was explicitly present in the
// datasheet, as opposed to inferred or missing.
func (f ExtractedField) Confirmed() bool {
	return f.Status == StatusConfirmed
}
