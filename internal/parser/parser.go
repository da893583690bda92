package parser

import (
	"errors"

	"github.com/aiesanjusto/resumen-bancario/internal/models"
)

// ErrNoMovements signals a structural failure: the movements block bounded
// by the column-header row and the closing-balance marker could not be
// located. This is distinct from a valid statement with zero transactions.
var ErrNoMovements = errors.New("no movements block found in statement text")

// Parse runs the full extraction pipeline over the raw statement text:
// anchor extraction, tokenizing, continuation merging, assembly and
// reconciliation. It is a pure function of its input — same text, same
// result — and safe for concurrent use across statements.
//
// Only the missing movements block is fatal. Malformed individual values
// degrade in place (zero amounts, sentinel dates, Degraded annotations)
// rather than aborting the parse.
func Parse(text string) (*models.Statement, error) {
	block, ok := findMovementsBlock(text)
	if !ok {
		return nil, ErrNoMovements
	}

	closing, closingDate := findClosingBalance(text)
	st := &models.Statement{
		OpeningBalance: findOpeningBalance(text),
		ClosingBalance: closing,
		ClosingDate:    closingDate,
	}
	st.AccountHolder, st.AccountCUIT = findAccountInfo(text)

	records := tokenizeBlock(block)
	st.Movements = assembleMovements(records, st.OpeningBalance)
	return st, nil
}
