// Package classifier assigns a category to each movement from its
// description. The rule set is data, not code: an ordered list of
// (label, keywords) pairs injected at construction, with a built-in
// default table and optional loading from a YAML file.
package classifier

import (
	"strings"

	"github.com/aiesanjusto/resumen-bancario/internal/models"
	"github.com/aiesanjusto/resumen-bancario/internal/parser"
)

// Rule maps a category label to the keywords that select it. Keywords are
// matched case-insensitively as substrings of the description; the first
// rule with a matching keyword wins, so order encodes precedence.
type Rule struct {
	Label    models.Category `yaml:"label"`
	Keywords []string        `yaml:"keywords"`
}

// Classifier is immutable after construction and safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// New builds a classifier from the given ordered rules. A nil or empty
// slice falls back to the built-in default table.
func New(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify returns the category for a description. It is total: when no
// rule and no fallback heuristic matches, it returns models.CategoryOtros.
func (c *Classifier) Classify(description string) models.Category {
	desc := strings.ToUpper(description)

	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(desc, strings.ToUpper(kw)) {
				return rule.Label
			}
		}
	}
	return classifyFallback(desc)
}

// classifyFallback applies generic-term heuristics, in fixed priority
// order, for descriptions no explicit rule claimed.
func classifyFallback(desc string) models.Category {
	switch {
	case containsAny(desc, "IMPUESTO", "RETENCION", "RETENCIÓN", "PERCEPCION", "PERCEPCIÓN"):
		return models.CategoryImpuestos
	case containsAny(desc, "COMISION", "COMISIÓN", "GASTO", "CARGO", "MANTENIMIENTO"):
		return models.CategoryComision
	case containsAny(desc, "TRANSFER", "TRF "):
		return models.CategoryTransferencia
	default:
		return models.CategoryOtros
	}
}

// Apply stamps every movement of the statement with its category, the IVA
// aliquot where the description names one, and the first CUIT found in the
// description. It mutates the statement in place and never fails.
func (c *Classifier) Apply(st *models.Statement) {
	for i := range st.Movements {
		mv := &st.Movements[i]
		mv.Category = c.Classify(mv.Description)
		if mv.Category == models.CategoryIVA {
			mv.IVAAliquot = detectAliquot(mv.Description)
		}
		mv.CUIT = parser.FindCUIT(mv.Description)
	}
}

// detectAliquot reads the IVA rate out of descriptions like "IVA 21" or
// "IVA TASA 10,5". The reduced rate is checked first so "10,5" is not
// shadowed by its trailing digits.
func detectAliquot(description string) float64 {
	if strings.Contains(description, "10,5") || strings.Contains(description, "10.5") {
		return 10.5
	}
	if strings.Contains(description, "21") {
		return 21.0
	}
	return 0
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
