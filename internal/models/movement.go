package models

import "time"

// Category is the label assigned to a movement by the classifier.
type Category string

const (
	CategoryTrfRecibidaTerceros  Category = "TRF_RECIBIDA_TERCEROS"
	CategoryTrfRealizadaTerceros Category = "TRF_REALIZADA_TERCEROS"
	CategoryTrfPropias           Category = "TRF_PROPIAS"
	CategoryDebitoAPI            Category = "DEBITO_API"
	CategoryDebitoARCA           Category = "DEBITO_ARCA"
	CategorySircreb              Category = "SIRCREB"
	CategoryDyC                  Category = "DYC"
	CategoryDebitoAutomatico     Category = "DEBITO_AUTOMATICO"
	CategoryComision             Category = "COMISION"
	CategoryIVA                  Category = "IVA"
	CategoryPercepcionIVA        Category = "PERCEPCION_IVA"
	CategoryImpuestos            Category = "IMPUESTOS"
	CategoryTransferencia        Category = "TRANSFERENCIA"
	// CategoryOtros is the default bucket. Every movement resolves to a
	// category; this one means no rule and no heuristic matched.
	CategoryOtros Category = "OTROS"
)

// RawRecord holds the six raw string fields of one logical statement row,
// as assembled from its opening line plus any continuation lines. Values
// stay in source form (locale formatting, quoting already stripped) until
// the assembler normalizes them.
type RawRecord struct {
	Date        string
	Voucher     string
	Description string
	Debit       string
	Credit      string
	Balance     string
}

// Movement is one reconciled statement transaction.
type Movement struct {
	// Date is the zero time when the source date could not be parsed.
	// Such rows are kept, with "date" listed in Degraded.
	Date        time.Time `json:"date"`
	Voucher     string    `json:"voucher,omitempty"`
	Description string    `json:"description"`

	Debit  float64 `json:"debit"`
	Credit float64 `json:"credit"`
	// Amount is credit minus debit.
	Amount float64 `json:"amount"`

	// RunningBalance is derived from the statement opening balance plus
	// every amount up to and including this row. It is never copied from
	// the balance printed by the source.
	RunningBalance float64 `json:"runningBalance"`

	// ReportedBalance is the balance the source printed for this row.
	// Most rows print none; HasReportedBalance distinguishes a genuine
	// zero from absence.
	ReportedBalance    float64 `json:"reportedBalance,omitempty"`
	HasReportedBalance bool    `json:"hasReportedBalance"`

	// ReconciliationDelta is ReportedBalance - RunningBalance, only
	// meaningful when HasReportedBalance is true.
	ReconciliationDelta float64 `json:"reconciliationDelta,omitempty"`

	Category   Category `json:"category"`
	IVAAliquot float64  `json:"ivaAliquot,omitempty"`
	CUIT       string   `json:"cuit,omitempty"`

	// Degraded names the fields that failed to parse and were defaulted
	// (e.g. "date", "debit"). Callers needing strictness can inspect it;
	// the pipeline itself never aborts on these.
	Degraded []string `json:"degraded,omitempty"`
}

// Statement is the parsed result for one statement text.
type Statement struct {
	AccountHolder string `json:"accountHolder,omitempty"`
	AccountCUIT   string `json:"accountCuit,omitempty"`

	OpeningBalance float64   `json:"openingBalance"`
	ClosingBalance float64   `json:"closingBalance"`
	ClosingDate    time.Time `json:"closingDate,omitempty"`

	Movements []Movement `json:"movements"`
}

// ReconciliationTolerance is the absolute difference below which a printed
// balance and the computed running balance are considered reconciled.
const ReconciliationTolerance = 0.01
