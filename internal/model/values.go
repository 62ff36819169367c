package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Values is the read-only lookup table over the union of extracted fields
// and positioning outputs. Extracted fields win on key collision; a name
// found in neither resolves as absent, which makes the condition that
// references it false rather than an error.
type Values struct {
	fields      map[string]any
	positioning map[string]any
}

// NewValues indexes the field list and positioning result once. pos may be
// nil before the positioning phase has run.
func NewValues(fields []ExtractedField, pos *PositioningResult) Values {
	v := Values{fields: make(map[string]any, len(fields))}
	for _, f := range fields {
		v.fields[f.Field] = normalize(f.Value)
	}
	v.positioning = pos.lookup()
	return v
}

// Get resolves name with field-then-positioning precedence.
func (v Values) Get(name string) (any, bool) {
	if val, ok := v.fields[name]; ok {
		return val, true
	}
	if val, ok := v.positioning[name]; ok {
		return val, true
	}
	return nil, false
}

// Number resolves name to a float64, reporting false for absent or
// non-numeric values.
func (v Values) Number(name string) (float64, bool) {
	val, ok := v.Get(name)
	if !ok {
		return 0, false
	}
	return AsNumber(val)
}

// String resolves name to a string, reporting false for absent or
// non-string values.
func (v Values) String(name string) (string, bool) {
	val, ok := v.Get(name)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// Bool resolves name to a bool, reporting false for absent or non-bool
// values.
func (v Values) Bool(name string) (bool, bool) {
	val, ok := v.Get(name)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// normalize collapses the numeric types JSON decoding and typed callers
// produce into float64, and slices into []any, so equality and membership
// checks compare values rather than representations.
func normalize(val any) any {
	switch x := val.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return x.String()
		}
		return f
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	default:
		return val
	}
}

// Normalize is the exported form used by the condition matcher on condition
// values from the library.
func Normalize(val any) any { return normalize(val) }

// AsNumber converts a normalized value to float64 when it is numeric.
func AsNumber(val any) (float64, bool) {
	f, ok := normalize(val).(float64)
	return f, ok
}

// FormatValue renders a value for template substitution. Numbers drop
// trailing zeros, booleans render as true/false, arrays join on commas.
func FormatValue(val any) string {
	switch x := normalize(val).(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = FormatValue(e)
		}
		return strings.Join(parts, ",")
	case nil:
		return ""
	default:
		return ""
	}
}
