package usp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

func testValues() model.Values {
	fields := []model.ExtractedField{
		{Field: model.FieldProductName, Value: "Silenta 100", Status: model.StatusConfirmed},
		{Field: model.FieldNoiseDB, Value: 26, Status: model.StatusConfirmed},
		{Field: model.FieldIPRating, Value: "IPX4", Status: model.StatusConfirmed},
		{Field: model.FieldCheckValve, Value: true, Status: model.StatusInferred},
		{Field: model.FieldFunctions, Value: []string{"időrelé", "páraérzékelő"}, Status: model.StatusConfirmed},
	}
	pos := &model.PositioningResult{
		NoiseCategory:    "halk",
		NoiseDiffPercent: 26,
		Highlights:       []string{"Halk működés"},
	}
	return model.NewValues(fields, pos)
}

func cond(field, op string, value any) model.Condition {
	return model.Condition{Field: field, Operator: op, Value: value}
}

func TestEval(t *testing.T) {
	t.Parallel()
	vals := testValues()

	tests := []struct {
		name string
		c    model.Condition
		want bool
	}{
		{"eq string match", cond(model.KeyNoiseCategory, model.OpEq, "halk"), true},
		{"eq string mismatch", cond(model.KeyNoiseCategory, model.OpEq, "ultra_halk"), false},
		{"eq number with int condition value", cond(model.FieldNoiseDB, model.OpEq, 26), true},
		{"eq bool", cond(model.FieldCheckValve, model.OpEq, true), true},
		{"eq cross-type never matches", cond(model.FieldNoiseDB, model.OpEq, "26"), false},
		{"in membership", cond(model.FieldIPRating, model.OpIn, []any{"IPX4", "IP44"}), true},
		{"in no membership", cond(model.FieldIPRating, model.OpIn, []any{"IPX5", "IP65"}), false},
		{"in non-array value", cond(model.FieldIPRating, model.OpIn, "IPX4"), false},
		{"gt", cond(model.FieldNoiseDB, model.OpGt, 25), true},
		{"gt equal is false", cond(model.FieldNoiseDB, model.OpGt, 26), false},
		{"gte equal is true", cond(model.FieldNoiseDB, model.OpGte, 26), true},
		{"lt", cond(model.FieldNoiseDB, model.OpLt, 30), true},
		{"lte", cond(model.FieldNoiseDB, model.OpLte, 26), true},
		{"numeric op on string field", cond(model.FieldIPRating, model.OpGt, 3), false},
		{"contains array member", cond(model.FieldFunctions, model.OpContains, "időrelé"), true},
		{"contains missing member", cond(model.FieldFunctions, model.OpContains, "mozgásérzékelő"), false},
		{"contains on scalar field", cond(model.FieldIPRating, model.OpContains, "IP"), false},
		{"missing field", cond("nincs_ilyen", model.OpEq, 1), false},
		{"unknown operator", cond(model.FieldNoiseDB, "regex", ".*"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Eval(tt.c, vals))
		})
	}
}

func TestSubstitute(t *testing.T) {
	t.Parallel()
	vals := testValues()

	t.Run("replaces known tokens", func(t *testing.T) {
		t.Parallel()
		got := Substitute("A {termek_nev} {zajszint_db} dB, {zajszint_diff_percent}%-kal az átlag alatt.", vals)
		assert.Equal(t, "A Silenta 100 26 dB, 26%-kal az átlag alatt.", got)
	})

	t.Run("unresolved tokens stay verbatim", func(t *testing.T) {
		t.Parallel()
		got := Substitute("Ára {ar_ft} Ft", vals)
		assert.Equal(t, "Ára {ar_ft} Ft", got)
	})

	t.Run("idempotent when nothing resolves", func(t *testing.T) {
		t.Parallel()
		once := Substitute("{hianyzo_mezo}", vals)
		assert.Equal(t, once, Substitute(once, vals))
	})
}

func TestMatch(t *testing.T) {
	t.Parallel()

	lib := &model.UspLibrary{Categories: []model.UspCategory{
		{
			Key:  "zajszint",
			Name: "Zajszint",
			Usps: []model.UspLibraryEntry{
				{
					ID:         "zaj-1",
					Condition:  cond(model.KeyNoiseCategory, model.OpEq, "halk"),
					Title:      "Halk {termek_nev}",
					Paragraph1: "Csak {zajszint_db} dB.",
				},
				{
					ID:         "zaj-2",
					Condition:  cond(model.KeyNoiseCategory, model.OpEq, "ultra_halk"),
					Title:      "Ultra halk",
					Paragraph1: "Nem illik erre a termékre.",
				},
			},
		},
		{
			Key:  "vedelem",
			Name: "Védettség",
			Usps: []model.UspLibraryEntry{
				{
					ID:              "ved-1",
					Condition:       cond(model.FieldIPRating, model.OpIn, []any{"IPX4", "IP44"}),
					Title:           "Fröccsenésvédett",
					Paragraph1:      "IPX4.",
					ImageSuggestion: "ipx4.jpg",
				},
			},
		},
	}}

	vals := testValues()
	matched := Match(lib, vals)
	require.Len(t, matched, 2)

	t.Run("declaration order with contiguous order fields", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "zaj-1", matched[0].ID)
		assert.Equal(t, "ved-1", matched[1].ID)
		assert.Equal(t, 0, matched[0].Order)
		assert.Equal(t, 1, matched[1].Order)
	})

	t.Run("substitution applied to title and body", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Halk Silenta 100", matched[0].Title)
		assert.Equal(t, "Csak 26 dB.", matched[0].Paragraph1)
		assert.Equal(t, "Halk Silenta 100", matched[0].ImageAlt)
	})

	t.Run("image path from suggestion or default", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "/images/usps/default.jpg", matched[0].ImageURL)
		assert.Equal(t, "/images/usps/ipx4.jpg", matched[1].ImageURL)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, matched, Match(lib, vals))
	})
}
