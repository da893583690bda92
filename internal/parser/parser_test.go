package parser

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func loadCanonicalStatement(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "resumen_canonico.txt"))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	return string(data)
}

func TestParseCanonicalStatement(t *testing.T) {
	st, err := Parse(loadCanonicalStatement(t))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if math.Abs(st.OpeningBalance-4216032.04) > 0.001 {
		t.Errorf("opening balance: got %f, want 4216032.04", st.OpeningBalance)
	}
	if math.Abs(st.ClosingBalance-284365.38) > 0.001 {
		t.Errorf("closing balance: got %f, want 284365.38", st.ClosingBalance)
	}

	// Six raw rows, one of them a zero-amount annotation.
	if len(st.Movements) != 5 {
		t.Fatalf("got %d movements, want 5", len(st.Movements))
	}

	// Running-balance law: B0 + cumulative signed amounts.
	running := st.OpeningBalance
	for i, mv := range st.Movements {
		running += mv.Amount
		if math.Abs(mv.RunningBalance-running) > 0.001 {
			t.Errorf("movement %d: running balance %f, want %f", i, mv.RunningBalance, running)
		}
		if mv.Amount == 0 {
			t.Errorf("movement %d has zero signed amount", i)
		}
	}

	// Final running balance reconciles with the printed closing balance.
	final := st.Movements[len(st.Movements)-1].RunningBalance
	if math.Abs(final-284365.38) > 0.01 {
		t.Errorf("final running balance %f does not reconcile with 284365.38", final)
	}

	// Every printed per-row balance reconciles.
	for i, mv := range st.Movements {
		if mv.HasReportedBalance && math.Abs(mv.ReconciliationDelta) > 0.01 {
			t.Errorf("movement %d: reconciliation delta %f exceeds tolerance", i, mv.ReconciliationDelta)
		}
	}
}

func TestParseCanonicalStatementDetails(t *testing.T) {
	st, err := Parse(loadCanonicalStatement(t))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	first := st.Movements[0]
	if first.Voucher != "00123" {
		t.Errorf("voucher: got %q, want 00123", first.Voucher)
	}
	if !strings.Contains(first.Description, "TRANSFERENCIA REALIZADA") ||
		!strings.Contains(first.Description, "CUIT 20-12345678-9") {
		t.Errorf("continuation description not merged: %q", first.Description)
	}
	if math.Abs(first.Amount+1000000) > 0.001 {
		t.Errorf("first amount: got %f, want -1000000", first.Amount)
	}

	// The API payment got its debit back-filled from a continuation line.
	api := st.Movements[2]
	if math.Abs(api.Debit-2931666.66) > 0.001 {
		t.Errorf("back-filled debit: got %f, want 2931666.66", api.Debit)
	}

	if st.AccountHolder != "AIE SAN JUSTO" {
		t.Errorf("account holder: got %q", st.AccountHolder)
	}
	if st.AccountCUIT != "30-70912345-6" {
		t.Errorf("account CUIT: got %q", st.AccountCUIT)
	}
	if st.ClosingDate.IsZero() {
		t.Error("closing date missing")
	}
}

func TestParseIsDeterministic(t *testing.T) {
	text := loadCanonicalStatement(t)
	first, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	second, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input must yield identical output")
	}
}

func TestParseStructuralFailure(t *testing.T) {
	// Same statement but without the column-header anchor: the pipeline
	// must fail with the distinct structural error, not return an empty
	// statement.
	text := strings.Replace(loadCanonicalStatement(t),
		`"FECHA","COMBTE","DESCRIPCION","DEBITO","CREDITO","SALDO"`, "", 1)

	st, err := Parse(text)
	if !errors.Is(err, ErrNoMovements) {
		t.Fatalf("got err=%v, want ErrNoMovements", err)
	}
	if st != nil {
		t.Error("no statement may be fabricated on structural failure")
	}
}

func TestParseEmptyMovementsBlockIsNotAnError(t *testing.T) {
	text := `"SALDO","ANTERIOR",,,  "100,00"
"FECHA","COMBTE","DESCRIPCION","DEBITO","CREDITO","SALDO"
"SALDO","AL 30/06/25",,,  "100,00"
`
	st, err := Parse(text)
	if err != nil {
		t.Fatalf("a structurally valid statement with zero transactions must parse: %v", err)
	}
	if len(st.Movements) != 0 {
		t.Errorf("got %d movements, want 0", len(st.Movements))
	}
}
