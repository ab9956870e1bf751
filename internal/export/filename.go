package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	fallbackBusiness = "Invoice"
	fallbackNumber   = "temp"
)

// Filename derives the download name deterministically from the
// business name and invoice number, with safe fallbacks when either is
// absent: {businessName|"Invoice"}_{invoiceNumber|"temp"}.pdf.
func Filename(businessName, invoiceNumber string) string {
	b := sanitize(businessName)
	if b == "" {
		b = fallbackBusiness
	}
	n := sanitize(invoiceNumber)
	if n == "" {
		n = fallbackNumber
	}
	return b + "_" + n + ".pdf"
}

// sanitize folds accents to ASCII and strips anything a filesystem or
// Content-Disposition header could choke on.
func sanitize(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err == nil {
		s = folded
	}
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			sb.WriteRune(r)
		case r == ' ', r == '_':
			sb.WriteRune('_')
		}
	}
	return strings.Trim(sb.String(), "._")
}
