package parser

import (
	"encoding/csv"
	"io"
	"regexp"
	"strings"

	"github.com/aiesanjusto/resumen-bancario/internal/models"
)

// descriptionSeparator joins description fragments contributed by
// continuation lines, preserving source order.
const descriptionSeparator = " | "

var (
	rowDatePattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
	amountPattern  = regexp.MustCompile(`^-?[\d.,\s]+$`)
)

type tokenizerState int

const (
	awaitingRecord tokenizerState = iota
	inRecord
)

// tokenizer folds the physical lines of the movements block into logical
// records. A single transaction often spans several lines: the opening line
// carries the date and (usually) the amounts, while continuation lines carry
// description overflow and occasionally the amount that did not fit on the
// first line.
//
// Two states: awaitingRecord until the first opening line is seen, inRecord
// afterwards. Per line there are three possible outcomes — open a new record
// (sealing the current one), extend the current record, or skip the line as
// noise.
type tokenizer struct {
	state  tokenizerState
	open   *models.RawRecord
	sealed []models.RawRecord
}

// tokenizeBlock runs the state machine over the isolated movements block and
// returns the logical records in source order. Partial records (e.g. a
// record cut off by the end of the block) are sealed as-is, not dropped.
func tokenizeBlock(block string) []models.RawRecord {
	t := &tokenizer{}
	for _, line := range strings.Split(block, "\n") {
		t.feed(strings.TrimSpace(line))
	}
	return t.finish()
}

func (t *tokenizer) feed(line string) {
	if line == "" {
		return
	}
	fields := splitRowFields(line)

	if opensRecord(fields) {
		t.seal()
		t.open = &models.RawRecord{
			Date:        fields[0],
			Voucher:     fieldAt(fields, 1),
			Description: fieldAt(fields, 2),
			Debit:       fieldAt(fields, 3),
			Credit:      fieldAt(fields, 4),
			Balance:     fieldAt(fields, 5),
		}
		t.state = inRecord
		return
	}

	if t.state == inRecord && continuesRecord(fields) {
		t.merge(fields)
		return
	}
	// Neither shape: stray institutional text, page footers. Skip.
}

// merge folds a continuation line into the open record. Description
// fragments append; debit/credit/balance back-fill under first-write-wins:
// a field is adopted only while the record's current value is still zero,
// and only when the continuation supplies a strictly positive value.
func (t *tokenizer) merge(fields []string) {
	if frag := strings.TrimSpace(fieldAt(fields, 1)); frag != "" {
		if t.open.Description == "" {
			t.open.Description = frag
		} else {
			t.open.Description += descriptionSeparator + frag
		}
	}
	backfill(&t.open.Debit, fieldAt(fields, 2))
	backfill(&t.open.Credit, fieldAt(fields, 3))
	backfill(&t.open.Balance, fieldAt(fields, 4))
}

func backfill(current *string, candidate string) {
	if NormalizeAmount(*current) != 0 {
		return
	}
	if NormalizeAmount(candidate) > 0 {
		*current = candidate
	}
}

func (t *tokenizer) seal() {
	if t.open != nil {
		t.sealed = append(t.sealed, *t.open)
		t.open = nil
	}
}

func (t *tokenizer) finish() []models.RawRecord {
	t.seal()
	t.state = awaitingRecord
	return t.sealed
}

// opensRecord reports whether the fields form the six-field row shape: a
// DD/MM/YY date first, then up to five more fields of which the last three
// must be numeric or empty.
func opensRecord(fields []string) bool {
	if len(fields) == 0 || !rowDatePattern.MatchString(fields[0]) {
		return false
	}
	if len(fields) > 6 {
		return false
	}
	for i := 3; i < len(fields); i++ {
		if !numericOrEmpty(fields[i]) {
			return false
		}
	}
	return true
}

// continuesRecord reports whether the fields form the continuation shape:
// an empty first field followed by an optional description fragment and up
// to three optional numeric fields.
func continuesRecord(fields []string) bool {
	if len(fields) < 2 || strings.TrimSpace(fields[0]) != "" {
		return false
	}
	for i := 2; i < len(fields) && i < 5; i++ {
		if !numericOrEmpty(fields[i]) {
			return false
		}
	}
	return true
}

func numericOrEmpty(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || amountPattern.MatchString(s)
}

// splitRowFields splits one physical line into its comma-separated fields,
// honoring quoting. Statement dumps mix quoted and bare fields and the odd
// unbalanced quote, so the reader runs in lazy-quote mode with a plain
// comma split as last resort.
func splitRowFields(line string) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	fields, err := r.Read()
	if err != nil && err != io.EOF {
		fields = strings.Split(line, ",")
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(strings.Trim(strings.TrimSpace(fields[i]), `"`))
	}
	return fields
}

func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
