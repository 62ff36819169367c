package render

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Hungarian locale: space-grouped thousands, comma decimal separator.
var hu = message.NewPrinter(language.Hungarian)

// FormatHUF renders a forint price with Hungarian thousand grouping,
// e.g. 24 990 Ft.
func FormatHUF(v float64) string {
	return hu.Sprintf("%d Ft", int64(v+0.5))
}

// FormatNumber renders a measurement value in the Hungarian locale, keeping
// at most one decimal and dropping it when whole.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return hu.Sprintf("%d", int64(v))
	}
	return hu.Sprintf("%.1f", v)
}

// FormatMeasure renders value plus unit, e.g. "95 m³/h".
func FormatMeasure(v float64, unit string) string {
	return fmt.Sprintf("%s %s", FormatNumber(v), unit)
}
