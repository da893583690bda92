package parser

import (
	"strconv"
	"strings"
)

// NormalizeAmount converts a locale-formatted monetary string to a float64.
// Statement amounts use dot as thousands separator and comma as decimal
// marker, e.g. "1.000.000,00" -> 1000000.00. Quoting, currency signs and
// whitespace are tolerated. Anything unparseable yields 0.0 — normalization
// never fails, so a noisy OCR field degrades to zero instead of killing
// the row.
func NormalizeAmount(s string) float64 {
	v, _ := normalizeAmount(s)
	return v
}

// normalizeAmount reports whether the input actually parsed, so the
// assembler can flag degraded fields without giving up totality.
func normalizeAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "") // non-breaking space

	if s == "" || s == "-" {
		return 0, false
	}

	// Dot groups thousands, comma marks decimals.
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
