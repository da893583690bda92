package parser

import (
	"regexp"
	"time"
)

// The statement text carries exactly three structural anchors we can trust:
//
//	"SALDO","ANTERIOR",,,  "<opening balance>"
//	"FECHA","COMBTE","DESCRIPCION","DEBITO","CREDITO","SALDO"
//	"SALDO","AL <DD/MM/YY>",,,  "<closing balance>"
//
// Everything else on the page (institutional headers, page footers, legal
// text) is noise. The comma runs between the marker pair and the value vary
// with the extraction tool, so [,\s]* absorbs them.
var (
	openingBalancePattern = regexp.MustCompile(`"SALDO"\s*,\s*"ANTERIOR"[,\s]*"([^"]*)"`)
	closingBalancePattern = regexp.MustCompile(`"SALDO"\s*,\s*"AL\s+(\d{1,2}/\d{1,2}/\d{2,4})"[,\s]*"([^"]*)"`)

	// Non-greedy DOTALL match for everything strictly between the column
	// header row and the closing-balance marker.
	movementsBlockPattern = regexp.MustCompile(
		`(?s)"FECHA"\s*,\s*"COMBTE"\s*,\s*"DESCRIPCION"\s*,\s*"DEBITO"\s*,\s*"CREDITO"\s*,\s*"SALDO"(.*?)"SALDO"\s*,\s*"AL\s`)
)

// findOpeningBalance extracts the opening balance printed above the movement
// table. A missing marker is not fatal; the balance defaults to zero.
func findOpeningBalance(text string) float64 {
	m := openingBalancePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	return NormalizeAmount(m[1])
}

// findClosingBalance extracts the closing balance and its "AL <date>" cutoff
// date. Both default to zero values when the marker is absent.
func findClosingBalance(text string) (float64, time.Time) {
	m := closingBalancePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, time.Time{}
	}
	return NormalizeAmount(m[2]), parseStatementDate(m[1])
}

// findMovementsBlock isolates the raw text of the movement table. This is
// the one place where failure is fatal: without the header anchor and the
// closing marker there is no way to tell movements from page noise, and
// fabricating partial rows would silently corrupt every downstream figure.
func findMovementsBlock(text string) (string, bool) {
	m := movementsBlockPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// parseStatementDate parses the DD/MM/YY (or DD/MM/YYYY) dates the source
// uses. Returns the zero time when the value does not parse.
func parseStatementDate(s string) time.Time {
	for _, layout := range []string{"02/01/06", "02/01/2006", "2/1/06", "2/1/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
