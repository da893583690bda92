package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aiesanjusto/resumen-bancario/internal/models"
)

// CSVWriter writes a parsed statement as CSV for spreadsheet analysis.
type CSVWriter struct {
	// IncludeHeader emits statement-level metadata rows before the table.
	IncludeHeader bool
}

const dateLayout = "02/01/2006"

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, st *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, st)
}

// Write writes the statement in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, st *models.Statement) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if w.IncludeHeader {
		if st.AccountHolder != "" {
			cw.Write([]string{"# Titular", st.AccountHolder})
		}
		if st.AccountCUIT != "" {
			cw.Write([]string{"# CUIT", st.AccountCUIT})
		}
		cw.Write([]string{"# Saldo anterior", formatAmount(st.OpeningBalance)})
		closing := formatAmount(st.ClosingBalance)
		if !st.ClosingDate.IsZero() {
			cw.Write([]string{"# Saldo al " + st.ClosingDate.Format(dateLayout), closing})
		} else {
			cw.Write([]string{"# Saldo final", closing})
		}
	}

	header := []string{
		"Fecha", "Comprobante", "Descripcion", "Debito", "Credito",
		"Importe", "Saldo calculado", "Saldo informado", "Diferencia",
		"Categoria", "CUIT",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, mv := range st.Movements {
		date := ""
		if !mv.Date.IsZero() {
			date = mv.Date.Format(dateLayout)
		}
		reported, delta := "", ""
		if mv.HasReportedBalance {
			reported = formatAmount(mv.ReportedBalance)
			delta = formatAmount(mv.ReconciliationDelta)
		}
		row := []string{
			date,
			mv.Voucher,
			mv.Description,
			formatAmount(mv.Debit),
			formatAmount(mv.Credit),
			formatAmount(mv.Amount),
			formatAmount(mv.RunningBalance),
			reported,
			delta,
			string(mv.Category),
			mv.CUIT,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func formatAmount(amount float64) string {
	if amount == 0 {
		return ""
	}
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
