// Package money holds the currency formatter and the financial
// calculator. Everything here is pure and safe to call on every render.
package money

import "fmt"

// Code identifies a supported display currency. The set is closed;
// unrecognized codes keep their label but format with the USD symbol.
type Code string

const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	GHS Code = "GHS"
	NGN Code = "NGN"
	ZAR Code = "ZAR"
	JPY Code = "JPY"
	CNY Code = "CNY"
	CAD Code = "CAD"
	AUD Code = "AUD"
)

var symbols = map[Code]string{
	USD: "$",
	EUR: "€",
	GBP: "£",
	GHS: "₵",
	NGN: "₦",
	ZAR: "R",
	JPY: "¥",
	CNY: "¥",
	CAD: "C$",
	AUD: "A$",
}

// Symbol returns the display symbol for a currency code. Unknown codes
// fall back to the dollar sign; this is a lenient default, not an error.
func Symbol(code Code) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return "$"
}

// Known reports whether code belongs to the supported set.
func Known(code Code) bool {
	_, ok := symbols[code]
	return ok
}

// Format renders an amount as a symbol-prefixed string with exactly two
// decimal places. No thousands separators, no locale variation.
// Negative amounts keep their sign after the symbol.
func Format(amount float64, code Code) string {
	return fmt.Sprintf("%s%.2f", Symbol(code), amount)
}

// FormatNumber formats a form-sourced numeric field, treating a
// transiently empty value as zero.
func FormatNumber(n Number, code Code) string {
	return Format(n.Float64(), code)
}
