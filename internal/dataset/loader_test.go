package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const displayHeader = "Transaction ID,Date,User ID,Book Title,Genre,Borrowing Duration (Days)"

func writeCSV(t *testing.T, name string, lines ...string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func TestLoadWellFormed(t *testing.T) {
	p := writeCSV(t, "loans.csv",
		displayHeader,
		"T1,2024-03-04,U1,Dune,Sci-Fi,14",
		"T2,2024-03-05,U2,Emma,Classic,7.5",
		`T3,2024-04-01,U1,"Gödel, Escher, Bach",Non-Fiction,21`,
	)
	tbl, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("rows=%d want 3", tbl.Len())
	}
	if tbl.Dropped != 0 {
		t.Fatalf("dropped=%d want 0", tbl.Dropped)
	}
	if tbl.ID == "" {
		t.Fatalf("expected dataset id")
	}
	if tbl.Name != "loans.csv" {
		t.Fatalf("name=%q", tbl.Name)
	}
	want := []Record{
		{TransactionID: "T1", Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), UserID: "U1", BookTitle: "Dune", Genre: "Sci-Fi", DurationDays: 14},
		{TransactionID: "T2", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), UserID: "U2", BookTitle: "Emma", Genre: "Classic", DurationDays: 7.5},
		{TransactionID: "T3", Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), UserID: "U1", BookTitle: "Gödel, Escher, Bach", Genre: "Non-Fiction", DurationDays: 21},
	}
	for i, w := range want {
		got := tbl.At(i)
		if got != w {
			t.Fatalf("row %d = %+v want %+v", i, got, w)
		}
	}
}

func TestLoadSnakeCaseHeaderAndExtraColumns(t *testing.T) {
	p := writeCSV(t, "LOANS.CSV",
		"branch,transaction_id,date,user_id,book_title,genre,borrowing_duration_days",
		"north,T1,2024-01-02 10:30:00,U1,Dune,Sci-Fi,3",
	)
	tbl, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	r := tbl.At(0)
	if r.TransactionID != "T1" || r.BookTitle != "Dune" || r.DurationDays != 3 {
		t.Fatalf("unexpected record: %+v", r)
	}
	if !r.Date.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date not truncated to calendar day: %v", r.Date)
	}
}

func TestLoadYearFirstDateVariants(t *testing.T) {
	want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for _, d := range []string{"2024-3-4", "2024/3/4", "2024-03-04 10:30", "2024-3-4 10:30:00", "2024/03/04"} {
		p := writeCSV(t, "loans.csv",
			displayHeader,
			"T1,"+d+",U1,Dune,Sci-Fi,14",
		)
		tbl, err := Load(p, DefaultOptions())
		if err != nil {
			t.Fatalf("Load(%q): %v", d, err)
		}
		if got := tbl.At(0).Date; !got.Equal(want) {
			t.Fatalf("date %q parsed as %v", d, got)
		}
	}
	for _, d := range []string{"4/3/2024", "04-03-2024", "03/04/24"} {
		p := writeCSV(t, "loans.csv",
			displayHeader,
			"T1,"+d+",U1,Dune,Sci-Fi,14",
		)
		var de *DateFormatError
		if _, err := Load(p, DefaultOptions()); !errors.As(err, &de) {
			t.Fatalf("Load(%q): want DateFormatError, got %v", d, err)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "loans.txt")
	if err := os.WriteFile(txt, []byte(displayHeader+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("not found", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.csv"), DefaultOptions())
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("want NotFoundError, got %v", err)
		}
	})
	t.Run("not csv", func(t *testing.T) {
		_, err := Load(txt, DefaultOptions())
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("want FormatError, got %v", err)
		}
	})
	t.Run("missing column", func(t *testing.T) {
		p := writeCSV(t, "loans.csv",
			"Transaction ID,Date,User ID,Book Title,Borrowing Duration (Days)",
			"T1,2024-03-04,U1,Dune,14",
		)
		tbl, err := Load(p, DefaultOptions())
		var se *SchemaError
		if !errors.As(err, &se) {
			t.Fatalf("want SchemaError, got %v", err)
		}
		if tbl != nil {
			t.Fatalf("expected no table on schema failure")
		}
		if len(se.Missing) != 1 || se.Missing[0] != ColGenre {
			t.Fatalf("missing=%v want [genre]", se.Missing)
		}
	})
	t.Run("empty file", func(t *testing.T) {
		p := writeCSV(t, "empty.csv")
		_, err := Load(p, DefaultOptions())
		var se *SchemaError
		if !errors.As(err, &se) {
			t.Fatalf("want SchemaError, got %v", err)
		}
	})
	t.Run("bad date", func(t *testing.T) {
		p := writeCSV(t, "loans.csv",
			displayHeader,
			"T1,2024-03-04,U1,Dune,Sci-Fi,14",
			"T2,04/03/2024,U2,Emma,Classic,7",
		)
		tbl, err := Load(p, DefaultOptions())
		var de *DateFormatError
		if !errors.As(err, &de) {
			t.Fatalf("want DateFormatError, got %v", err)
		}
		if tbl != nil {
			t.Fatalf("expected no partial table")
		}
		if de.Line != 3 || de.Value != "04/03/2024" {
			t.Fatalf("unexpected error detail: %+v", de)
		}
	})
	t.Run("negative duration", func(t *testing.T) {
		p := writeCSV(t, "loans.csv",
			displayHeader,
			"T1,2024-03-04,U1,Dune,Sci-Fi,-2",
		)
		_, err := Load(p, DefaultOptions())
		var de *DurationError
		if !errors.As(err, &de) {
			t.Fatalf("want DurationError, got %v", err)
		}
	})
}

func TestLoadDropsIncompleteRows(t *testing.T) {
	var buf bytes.Buffer
	opt := DefaultOptions()
	opt.Logger = zerolog.New(&buf)
	p := writeCSV(t, "loans.csv",
		displayHeader,
		"T1,2024-03-04,U1,Dune,Sci-Fi,14",
		"T2,2024-03-05,U2,,Classic,7",
		"T3,2024-03-06,U3,Emma,NA,7",
		"T4,2024-03-07,U4,Emma,Classic",
		"T5,2024-03-08,U5,Emma,Classic,9",
	)
	tbl, err := Load(p, opt)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Len() != 2 || tbl.Dropped != 3 {
		t.Fatalf("rows=%d dropped=%d want 2/3", tbl.Len(), tbl.Dropped)
	}
	if tbl.At(0).TransactionID != "T1" || tbl.At(1).TransactionID != "T5" {
		t.Fatalf("unexpected survivors: %+v", tbl.Records())
	}
	if !strings.Contains(buf.String(), `"dropped":3`) {
		t.Fatalf("expected dropped count in log, got %s", buf.String())
	}
}

func TestLoadDropsBeforeParsingDates(t *testing.T) {
	// The bad date sits in a row that is dropped for a missing title.
	p := writeCSV(t, "loans.csv",
		displayHeader,
		"T1,2024-03-04,U1,Dune,Sci-Fi,14",
		"T2,not-a-date,U2,,Classic,7",
	)
	tbl, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Len() != 1 || tbl.Dropped != 1 {
		t.Fatalf("rows=%d dropped=%d", tbl.Len(), tbl.Dropped)
	}
}

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Transaction ID":            "transaction_id",
		"Borrowing Duration (Days)": "borrowing_duration_days",
		"  book_title ":             "book_title",
		"User-ID":                   "user_id",
		"Date":                      "date",
	}
	for in, want := range cases {
		if got := NormalizeHeader(in); got != want {
			t.Errorf("NormalizeHeader(%q)=%q want %q", in, got, want)
		}
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	tbl := NewTable("x", []Record{{BookTitle: "Dune"}})
	rs := tbl.Records()
	rs[0].BookTitle = "changed"
	if tbl.At(0).BookTitle != "Dune" {
		t.Fatalf("table mutated through Records()")
	}
}
