package utils

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sanity-io/litter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

var dumpOpts = litter.Options{
	HidePrivateFields: true,
	StripPackageNames: true,
}

// Works exactly like fmt.Sprintf, but numbers are formatted for the English locale,
// meaning integers get thousands separators. For example:
//
//	HumanizedSprintf("%d chunks", 12345) // "12,345 chunks"
func HumanizedSprintf(format string, a ...any) string {
	return printer.Sprintf(format, a...)
}

// Renders n with locale-style thousands separators, e.g. 12345 → "12,345".
func GroupDigits(n int) string {
	return printer.Sprintf("%d", n)
}

// Abbreviates a currency amount, picking the bracket from the raw (unabbreviated) value.
// Each bracket includes its lower bound, so exactly 1000 is "$1.0K".
//
//	FormatCurrency(999)           // "$999"
//	FormatCurrency(1_500_000)     // "$1.5M"
//	FormatCurrency(2_000_000_000) // "$2.0B"
//
// Negative amounts are bracketed by magnitude and rendered as "-$1.5K".
func FormatCurrency(amount float64) string {
	mag := math.Abs(amount)

	var str string
	switch {
	case mag >= 1_000_000_000:
		str = fmt.Sprintf("%.1fB", mag/1_000_000_000)
	case mag >= 1_000_000:
		str = fmt.Sprintf("%.1fM", mag/1_000_000)
	case mag >= 1_000:
		str = fmt.Sprintf("%.1fK", mag/1_000)
	default:
		str = strconv.FormatFloat(mag, 'f', 0, 64)
	}

	if amount < 0 && str != "0" {
		return "-$" + str
	}

	return "$" + str
}

// Dumps any value as a readable Go-like literal. Used for debug logging only.
func Prettify(v any) string {
	return dumpOpts.Sdump(v)
}
