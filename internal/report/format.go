package report

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// Int formats an integer with thousands separators.
func Int(value int) string {
	return numberPrinter.Sprintf("%d", value)
}

// Int64 formats a 64-bit integer with thousands separators.
func Int64(value int64) string {
	return numberPrinter.Sprintf("%d", value)
}

// Float formats a float with the given number of decimals.
func Float(value float64, decimals int) string {
	return fmt.Sprintf("%.*f", decimals, value)
}

// Date formats a timestamp as a calendar date, or "-" for the zero time.
func Date(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02")
}
