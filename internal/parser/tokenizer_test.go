package parser

import (
	"testing"
)

func TestTokenizeBlockSingleRecord(t *testing.T) {
	block := `
"02/06/25","00123","PAGO PROVEEDOR","1.000,00","","5.000,00"
`
	records := tokenizeBlock(block)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.Date != "02/06/25" || r.Voucher != "00123" || r.Description != "PAGO PROVEEDOR" {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.Debit != "1.000,00" || r.Credit != "" || r.Balance != "5.000,00" {
		t.Errorf("unexpected amounts: %+v", r)
	}
}

func TestTokenizeBlockContinuationAppendsDescription(t *testing.T) {
	block := `
"02/06/25","","TRANSFERENCIA RECIBIDA","","500,00",""
,"CUIT 20-12345678-9",,,
`
	records := tokenizeBlock(block)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	want := "TRANSFERENCIA RECIBIDA | CUIT 20-12345678-9"
	if records[0].Description != want {
		t.Errorf("description: got %q, want %q", records[0].Description, want)
	}
}

func TestTokenizeBlockFirstWriteWins(t *testing.T) {
	block := `
"02/06/25","","PAGO","","",""
,,"500,00","",""
,,"700,00","",""
`
	records := tokenizeBlock(block)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	// The first continuation supplies debit=500; the second must not
	// overwrite it.
	if records[0].Debit != "500,00" {
		t.Errorf("debit: got %q, want %q", records[0].Debit, "500,00")
	}
}

func TestTokenizeBlockIgnoresNegativeAndZeroBackfill(t *testing.T) {
	block := `
"02/06/25","","PAGO","","",""
,,"-300,00","",""
,,"0,00","",""
,,"250,00","",""
`
	records := tokenizeBlock(block)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Debit != "250,00" {
		t.Errorf("debit: got %q, want %q (negative/zero values must not be adopted)", records[0].Debit, "250,00")
	}
}

func TestTokenizeBlockDoesNotClobberPrimaryValue(t *testing.T) {
	block := `
"02/06/25","","PAGO","100,00","",""
,,"999,00","",""
`
	records := tokenizeBlock(block)
	if records[0].Debit != "100,00" {
		t.Errorf("debit: got %q, want %q", records[0].Debit, "100,00")
	}
}

func TestTokenizeBlockSealsOnNextRecord(t *testing.T) {
	block := `
"02/06/25","","PRIMERO","100,00","",""
,"FRAGMENTO",,,
"03/06/25","","SEGUNDO","","200,00",""
`
	records := tokenizeBlock(block)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Description != "PRIMERO | FRAGMENTO" {
		t.Errorf("first description: got %q", records[0].Description)
	}
	if records[1].Description != "SEGUNDO" {
		t.Errorf("second description: got %q", records[1].Description)
	}
}

func TestTokenizeBlockSkipsNoiseLines(t *testing.T) {
	block := `
AVISO IMPORTANTE PARA EL CLIENTE
"02/06/25","","PAGO","100,00","",""
EL BANCO INFORMA QUE SUS DATOS ESTAN PROTEGIDOS
`
	records := tokenizeBlock(block)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Description != "PAGO" {
		t.Errorf("noise leaked into the record: %+v", records[0])
	}
}

func TestTokenizeBlockContinuationBeforeAnyRecordIsIgnored(t *testing.T) {
	block := `
,"FRAGMENTO HUERFANO",,,
"02/06/25","","PAGO","100,00","",""
`
	records := tokenizeBlock(block)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Description != "PAGO" {
		t.Errorf("orphan continuation should be ignored, got %q", records[0].Description)
	}
}

func TestTokenizeBlockPartialRecordAtEndIsKept(t *testing.T) {
	block := `
"02/06/25","","PAGO INCOMPLETO","","",""
`
	records := tokenizeBlock(block)
	if len(records) != 1 {
		t.Fatalf("partial records must be preserved; got %d records", len(records))
	}
}

func TestTokenizeBlockEmpty(t *testing.T) {
	if records := tokenizeBlock("\n\n"); len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestOpensRecord(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   bool
	}{
		{"full row", []string{"02/06/25", "001", "DESC", "100,00", "", "200,00"}, true},
		{"date only", []string{"02/06/25"}, true},
		{"no date", []string{"", "001", "DESC"}, false},
		{"text in amount column", []string{"02/06/25", "001", "DESC", "not-a-number", "", ""}, false},
		{"too many fields", []string{"02/06/25", "a", "b", "1", "2", "3", "4"}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := opensRecord(tt.fields); got != tt.want {
				t.Errorf("opensRecord(%v) = %v, want %v", tt.fields, got, tt.want)
			}
		})
	}
}

func TestContinuesRecord(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   bool
	}{
		{"description fragment", []string{"", "FRAGMENTO", "", "", ""}, true},
		{"amount backfill", []string{"", "", "500,00", "", ""}, true},
		{"nonempty first field", []string{"x", "FRAGMENTO"}, false},
		{"text in amount column", []string{"", "DESC", "texto", "", ""}, false},
		{"single field", []string{""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := continuesRecord(tt.fields); got != tt.want {
				t.Errorf("continuesRecord(%v) = %v, want %v", tt.fields, got, tt.want)
			}
		})
	}
}

func TestSplitRowFields(t *testing.T) {
	fields := splitRowFields(`"02/06/25","00123","PAGO, CON COMA","1.000,00","",""`)
	if len(fields) != 6 {
		t.Fatalf("got %d fields, want 6: %v", len(fields), fields)
	}
	if fields[2] != "PAGO, CON COMA" {
		t.Errorf("quoted comma lost: %q", fields[2])
	}
}
