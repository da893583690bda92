package parser

import (
	"regexp"
	"strings"
)

// cuitPattern matches an Argentine tax id (CUIT/CUIL), dashes optional.
var cuitPattern = regexp.MustCompile(`\b\d{2}-?\d{8}-?\d\b`)

// holderLabels are the labels banks print next to the account holder name.
var holderLabels = []string{"Titular", "TITULAR", "Razón Social", "RAZON SOCIAL", "Denominación", "DENOMINACION"}

// FindCUIT returns the first CUIT found in the text, or "".
func FindCUIT(text string) string {
	return cuitPattern.FindString(text)
}

// findAccountInfo scrapes the account holder and CUIT from the free-form
// text around the movement table. Both are best-effort; either may be "".
func findAccountInfo(text string) (holder, cuit string) {
	cuit = FindCUIT(text)

	for _, line := range strings.Split(text, "\n") {
		for _, label := range holderLabels {
			idx := strings.Index(line, label)
			if idx < 0 {
				continue
			}
			rest := strings.TrimSpace(line[idx+len(label):])
			rest = strings.TrimPrefix(rest, ":")
			rest = strings.TrimSpace(rest)
			// Drop trailing columns past a wide gap.
			if cut := strings.Index(rest, "  "); cut > 0 {
				rest = rest[:cut]
			}
			if rest != "" {
				return rest, cuit
			}
		}
	}
	return "", cuit
}
