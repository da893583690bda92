package classifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aiesanjusto/resumen-bancario/internal/models"
)

// DefaultRules is the built-in rule table, ordered most-specific first:
// PERCEPCION_IVA must come before IVA, the automatic-debit labels before
// the generic transfer ones. Descriptions on these statements are upper
// case; keywords are matched case-insensitively anyway. Short tokens like
// API and ARCA carry explicit spacing so they do not fire inside longer
// words (CAPITAL, BARCA).
func DefaultRules() []Rule {
	return []Rule{
		{Label: models.CategoryPercepcionIVA, Keywords: []string{"PERCEPCION IVA", "PERCEPCIÓN IVA", "PERCEP. IVA", "PERCEP IVA"}},
		{Label: models.CategoryIVA, Keywords: []string{"IVA"}},
		{Label: models.CategoryComision, Keywords: []string{"COMISION", "COMISIÓN", "GASTOS BANCARIOS", "GASTO BANCARIO"}},
		{Label: models.CategoryDebitoAutomatico, Keywords: []string{"SEGURO", "PRIMA", "DEBITO AUTOMATICO", "DÉBITO AUTOM", "DEBITO AUTOM"}},
		{Label: models.CategoryDyC, Keywords: []string{"DY C", "DY/C", "DYC", "DEUDA Y CREDITO", "DGC"}},
		{Label: models.CategorySircreb, Keywords: []string{"SIRCREB"}},
		{Label: models.CategoryDebitoARCA, Keywords: []string{" ARCA", "ARCA ", "DEBITO ARCA"}},
		{Label: models.CategoryDebitoAPI, Keywords: []string{" API", "API ", "DEBITO API"}},
		{Label: models.CategoryTrfPropias, Keywords: []string{"PROPIA", "MISMA TITULARIDAD", "ENTRE CUENTAS"}},
		{Label: models.CategoryTrfRealizadaTerceros, Keywords: []string{"TRANSFERENCIA REALIZADA", "TRANSFERENCIAS REALIZADAS", "TRANSF REALIZADA", "TRF REALIZADA"}},
		{Label: models.CategoryTrfRecibidaTerceros, Keywords: []string{"TRANSFERENCIA RECIBIDA", "TRANSFERENCIAS RECIBIDAS", "TRANSF RECIBIDA", "TRF RECIBIDA"}},
	}
}

// rulesFile is the YAML shape of an external rule table.
type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads an ordered rule table from a YAML file:
//
//	rules:
//	  - label: COMISION
//	    keywords: ["COMISION", "GASTOS BANCARIOS"]
//
// Order in the file is precedence. Empty or keyword-less entries are
// rejected so a typo does not silently swallow every description.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %q: %w", path, err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules file %q: %w", path, err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rules file %q contains no rules", path)
	}
	for i, r := range f.Rules {
		if r.Label == "" {
			return nil, fmt.Errorf("rules file %q: rule %d has no label", path, i)
		}
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("rules file %q: rule %q has no keywords", path, r.Label)
		}
	}
	return f.Rules, nil
}
