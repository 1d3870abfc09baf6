package dataset

import "time"

// Column names of the transaction schema, in canonical order.
const (
	ColTransactionID = "transaction_id"
	ColDate          = "date"
	ColUserID        = "user_id"
	ColBookTitle     = "book_title"
	ColGenre         = "genre"
	ColDuration      = "borrowing_duration_days"
)

// RequiredColumns is the fixed schema every input file must provide.
var RequiredColumns = []string{ColTransactionID, ColDate, ColUserID, ColBookTitle, ColGenre, ColDuration}

// Record is one borrowing transaction.
type Record struct {
	TransactionID string    `json:"transaction_id" yaml:"transaction_id"`
	Date          time.Time `json:"date" yaml:"date"`
	UserID        string    `json:"user_id" yaml:"user_id"`
	BookTitle     string    `json:"book_title" yaml:"book_title"`
	Genre         string    `json:"genre" yaml:"genre"`
	DurationDays  float64   `json:"borrowing_duration_days" yaml:"borrowing_duration_days"`
}

// Table is the validated, read-only set of transactions loaded from one file.
// Records keep source row order.
type Table struct {
	ID      string
	Name    string
	Path    string
	Dropped int

	records []Record
}

// NewTable builds a table from already validated records. The slice is copied.
func NewTable(name string, records []Record) *Table {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Table{Name: name, records: cp}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns the i-th record by value.
func (t *Table) At(i int) Record { return t.records[i] }

// Records returns a copy of all records in source order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}
