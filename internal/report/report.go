// Package report computes the statement-level aggregates the presentation
// layer renders: per-category totals, debit/credit listings, third-party
// transfer totals grouped by CUIT, and the reconciliation discrepancies.
// It only computes; it never renders.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/aiesanjusto/resumen-bancario/internal/models"
)

// CategoryTotal aggregates the movements of one category.
type CategoryTotal struct {
	Count  int     `json:"count"`
	Debit  float64 `json:"debit"`
	Credit float64 `json:"credit"`
	Net    float64 `json:"net"`
}

// CUITTotal is the net amount moved with one third party.
type CUITTotal struct {
	Category models.Category `json:"category"`
	CUIT     string          `json:"cuit"`
	Net      float64         `json:"net"`
}

// Discrepancy is one row whose printed balance disagrees with the computed
// running balance beyond the reconciliation tolerance.
type Discrepancy struct {
	Index       int       `json:"index"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Reported    float64   `json:"reported"`
	Running     float64   `json:"running"`
	Delta       float64   `json:"delta"`
}

// Summary is the computed view of a parsed statement.
type Summary struct {
	OpeningBalance float64 `json:"openingBalance"`
	ClosingBalance float64 `json:"closingBalance"`

	Count       int     `json:"count"`
	TotalDebit  float64 `json:"totalDebit"`
	TotalCredit float64 `json:"totalCredit"`
	Net         float64 `json:"net"`

	ByCategory      map[models.Category]CategoryTotal `json:"byCategory"`
	Debits          []models.Movement                 `json:"debits"`
	Credits         []models.Movement                 `json:"credits"`
	TransfersByCUIT []CUITTotal                       `json:"transfersByCuit"`

	// Discrepancies covers only rows where the source printed a balance;
	// rows without one are exempt from per-row checks by design, so a
	// drifting error between printed balances surfaces only in
	// ClosingDelta.
	Discrepancies []Discrepancy `json:"discrepancies"`

	// ClosingDelta compares the final running balance against the printed
	// closing balance. Reconciled is true when it and every per-row delta
	// are within tolerance.
	ClosingDelta float64 `json:"closingDelta"`
	Reconciled   bool    `json:"reconciled"`
}

// Build computes the summary for a statement.
func Build(st *models.Statement) *Summary {
	s := &Summary{
		OpeningBalance: st.OpeningBalance,
		ClosingBalance: st.ClosingBalance,
		Count:          len(st.Movements),
		ByCategory:     make(map[models.Category]CategoryTotal),
	}

	cuitNet := make(map[CUITTotal]float64)
	running := st.OpeningBalance

	for i, mv := range st.Movements {
		s.TotalDebit += mv.Debit
		s.TotalCredit += mv.Credit
		running = mv.RunningBalance

		ct := s.ByCategory[mv.Category]
		ct.Count++
		ct.Debit += mv.Debit
		ct.Credit += mv.Credit
		ct.Net += mv.Amount
		s.ByCategory[mv.Category] = ct

		if mv.Amount < 0 {
			s.Debits = append(s.Debits, mv)
		} else {
			s.Credits = append(s.Credits, mv)
		}

		if isThirdPartyTransfer(mv.Category) {
			key := CUITTotal{Category: mv.Category, CUIT: mv.CUIT}
			cuitNet[key] += mv.Amount
		}

		if mv.HasReportedBalance && math.Abs(mv.ReconciliationDelta) > models.ReconciliationTolerance {
			s.Discrepancies = append(s.Discrepancies, Discrepancy{
				Index:       i,
				Date:        mv.Date,
				Description: mv.Description,
				Reported:    mv.ReportedBalance,
				Running:     mv.RunningBalance,
				Delta:       mv.ReconciliationDelta,
			})
		}
	}

	s.Net = s.TotalCredit - s.TotalDebit
	s.ClosingDelta = st.ClosingBalance - running
	s.Reconciled = len(s.Discrepancies) == 0 &&
		math.Abs(s.ClosingDelta) <= models.ReconciliationTolerance

	for key, net := range cuitNet {
		key.Net = net
		s.TransfersByCUIT = append(s.TransfersByCUIT, key)
	}
	// Largest absolute amounts first, ties broken by CUIT for determinism.
	sort.Slice(s.TransfersByCUIT, func(i, j int) bool {
		a, b := s.TransfersByCUIT[i], s.TransfersByCUIT[j]
		if math.Abs(a.Net) != math.Abs(b.Net) {
			return math.Abs(a.Net) > math.Abs(b.Net)
		}
		return a.CUIT < b.CUIT
	})

	return s
}

func isThirdPartyTransfer(c models.Category) bool {
	return c == models.CategoryTrfRecibidaTerceros || c == models.CategoryTrfRealizadaTerceros
}
