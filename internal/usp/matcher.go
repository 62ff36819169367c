// Package usp implements the marketing block machinery: matching library
// entries against product data, template substitution, the bounded
// selection session and cross-product SEO duplicate detection.
package usp

import (
	"regexp"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

// DefaultImage is used when a library entry has no image suggestion.
const DefaultImage = "default.jpg"

// imageBasePath prefixes image suggestions from the library; the shop CMS
// serves USP images from this directory.
const imageBasePath = "/images/usps/"

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// Match evaluates every library entry against vals in declaration order
// (categories first, entries within a category second) and materializes the
// entries whose condition holds. Matched blocks get a monotonically
// increasing Order in scan order. Match never fails: a condition over a
// missing field or an unknown operator is simply false.
func Match(lib *model.UspLibrary, vals model.Values) []model.UspBlock {
	var matched []model.UspBlock
	order := 0
	for _, cat := range lib.Categories {
		for _, entry := range cat.Usps {
			if !Eval(entry.Condition, vals) {
				continue
			}
			img := entry.ImageSuggestion
			if img == "" {
				img = DefaultImage
			}
			title := Substitute(entry.Title, vals)
			block := model.UspBlock{
				ID:         entry.ID,
				Title:      title,
				Paragraph1: Substitute(entry.Paragraph1, vals),
				ImageURL:   imageBasePath + img,
				ImageAlt:   title,
				Selected:   true,
				Order:      order,
			}
			if entry.Paragraph2 != "" {
				block.Paragraph2 = Substitute(entry.Paragraph2, vals)
			}
			matched = append(matched, block)
			order++
		}
	}
	return matched
}

// Eval applies a single condition to the value table. Exact, not coercive:
// numeric operators require both sides numeric, eq compares like types only.
func Eval(c model.Condition, vals model.Values) bool {
	actual, ok := vals.Get(c.Field)
	if !ok {
		return false
	}
	switch c.Operator {
	case model.OpEq:
		return equalValues(actual, model.Normalize(c.Value))
	case model.OpIn:
		arr, ok := model.Normalize(c.Value).([]any)
		if !ok {
			return false
		}
		return member(arr, actual)
	case model.OpGt, model.OpGte, model.OpLt, model.OpLte:
		a, aok := model.AsNumber(actual)
		b, bok := model.AsNumber(c.Value)
		if !aok || !bok {
			return false
		}
		switch c.Operator {
		case model.OpGt:
			return a > b
		case model.OpGte:
			return a >= b
		case model.OpLt:
			return a < b
		default:
			return a <= b
		}
	case model.OpContains:
		arr, ok := actual.([]any)
		if !ok {
			return false
		}
		return member(arr, model.Normalize(c.Value))
	default:
		return false
	}
}

// Substitute replaces {name} tokens using the field-then-positioning
// precedence. Unresolved tokens stay verbatim so missing data is visible to
// the operator instead of silently blanked.
func Substitute(text string, vals model.Values) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(tok string) string {
		name := tok[1 : len(tok)-1]
		if v, ok := vals.Get(name); ok {
			return model.FormatValue(v)
		}
		return tok
	})
}

func equalValues(a, b any) bool {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	default:
		return false
	}
}

func member(arr []any, v any) bool {
	for _, e := range arr {
		if equalValues(e, v) {
			return true
		}
	}
	return false
}
