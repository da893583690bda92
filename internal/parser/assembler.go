package parser

import (
	"strings"

	"github.com/aiesanjusto/resumen-bancario/internal/models"
)

// assembleMovements turns sealed raw records into typed movements: amounts
// normalized, running balance accumulated from the opening balance, and the
// reconciliation delta computed wherever the source printed a balance.
//
// Rows whose signed amount is exactly zero are annotation artifacts (pure
// description rows, carry-over noise) and are excluded from the result.
// Value failures never drop a row: a bad amount becomes zero and a bad date
// becomes the zero time, with the field name recorded on Degraded.
func assembleMovements(records []models.RawRecord, openingBalance float64) []models.Movement {
	movements := make([]models.Movement, 0, len(records))
	running := openingBalance

	for _, rec := range records {
		var degraded []string

		date := parseStatementDate(rec.Date)
		if date.IsZero() {
			degraded = append(degraded, "date")
		}

		debit, debitOK := normalizeAmount(rec.Debit)
		if !debitOK && strings.TrimSpace(rec.Debit) != "" {
			degraded = append(degraded, "debit")
		}
		credit, creditOK := normalizeAmount(rec.Credit)
		if !creditOK && strings.TrimSpace(rec.Credit) != "" {
			degraded = append(degraded, "credit")
		}

		amount := credit - debit
		running += amount
		if amount == 0 {
			continue
		}

		mv := models.Movement{
			Date:           date,
			Voucher:        strings.TrimSpace(rec.Voucher),
			Description:    strings.TrimSpace(rec.Description),
			Debit:          debit,
			Credit:         credit,
			Amount:         amount,
			RunningBalance: running,
			Degraded:       degraded,
		}

		reported, reportedOK := normalizeAmount(rec.Balance)
		if reportedOK {
			mv.ReportedBalance = reported
			mv.HasReportedBalance = true
			mv.ReconciliationDelta = reported - running
		} else if strings.TrimSpace(rec.Balance) != "" {
			mv.Degraded = append(mv.Degraded, "balance")
		}

		movements = append(movements, mv)
	}
	return movements
}
