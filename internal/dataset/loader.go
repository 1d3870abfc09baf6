package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options controls how a transactions file is loaded.
type Options struct {
	// DateLayouts are tried in order for every date value. All must be unambiguous
	// (no day/month swaps), otherwise the same file could load two ways.
	DateLayouts []string
	// NAValues are cell contents treated as missing, compared after trimming.
	NAValues []string
	// Logger receives load events. The zero value from DefaultOptions discards them.
	Logger zerolog.Logger
}

// DefaultDateLayouts are the layouts accepted when none are configured.
// Month and day accept one or two digits; every layout is year-first.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-1-2 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2006/1/2",
}

// DefaultNAValues mirrors the tokens common dataframe readers treat as missing.
var DefaultNAValues = []string{
	"#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan", "1.#IND", "1.#QNAN",
	"<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null",
}

// DefaultOptions returns the loader defaults.
func DefaultOptions() Options {
	return Options{
		DateLayouts: DefaultDateLayouts,
		NAValues:    DefaultNAValues,
		Logger:      zerolog.Nop(),
	}
}

// Load reads, validates and cleans a transactions CSV.
//
// Checks run in order: the path must exist, it must carry a .csv extension,
// the header must contain every required column. Rows with any missing cell
// are dropped and counted in Table.Dropped. Dates and durations are parsed only
// for the remaining rows, and a single bad value fails the whole load.
func Load(path string, opt Options) (*Table, error) {
	log := opt.Logger
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, &NotFoundError{Path: path}
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, &FormatError{Path: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	raw, dropped, err := readRows(f, opt.NAValues)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		log.Debug().Str("path", path).Int("dropped", dropped).Msg("rows with missing values dropped")
	}

	layouts := opt.DateLayouts
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	records := make([]Record, 0, len(raw))
	for _, r := range raw {
		d, ok := parseDate(r.cells[ColDate], layouts)
		if !ok {
			return nil, &DateFormatError{Line: r.line, Value: r.cells[ColDate]}
		}
		dur, err := strconv.ParseFloat(r.cells[ColDuration], 64)
		if err != nil || dur < 0 || math.IsNaN(dur) || math.IsInf(dur, 0) {
			return nil, &DurationError{Line: r.line, Value: r.cells[ColDuration]}
		}
		records = append(records, Record{
			TransactionID: r.cells[ColTransactionID],
			Date:          d,
			UserID:        r.cells[ColUserID],
			BookTitle:     r.cells[ColBookTitle],
			Genre:         r.cells[ColGenre],
			DurationDays:  dur,
		})
	}

	t := NewTable(filepath.Base(path), records)
	t.ID = uuid.NewString()
	t.Path = path
	t.Dropped = dropped
	log.Debug().Str("path", path).Str("dataset_id", t.ID).Int("rows", t.Len()).Int("dropped", dropped).Msg("dataset loaded")
	return t, nil
}

type rawRow struct {
	line  int
	cells map[string]string
}

// readRows validates the header and returns complete rows keyed by schema column.
func readRows(r io.Reader, naValues []string) ([]rawRow, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
		}
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := NormalizeHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, 0, &SchemaError{Missing: missing}
	}

	na := make(map[string]struct{}, len(naValues))
	for _, v := range naValues {
		na[v] = struct{}{}
	}
	isMissing := func(v string) bool {
		if v == "" {
			return true
		}
		_, ok := na[v]
		return ok
	}

	var (
		rows    []rawRow
		dropped int
	)
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, 0, fmt.Errorf("read row %d: %w", len(rows)+dropped+1, err)
		}
		line, _ := cr.FieldPos(0)
		// A blank line never reaches here; encoding/csv skips it.
		complete := len(rec) >= len(header)
		for i := 0; complete && i < len(header); i++ {
			if isMissing(strings.TrimSpace(rec[i])) {
				complete = false
			}
		}
		if !complete {
			dropped++
			continue
		}
		cells := make(map[string]string, len(RequiredColumns))
		for _, c := range RequiredColumns {
			cells[c] = strings.TrimSpace(rec[index[c]])
		}
		rows = append(rows, rawRow{line: line, cells: cells})
	}
	return rows, dropped, nil
}

// NormalizeHeader maps a display header onto a schema column name:
// "Borrowing Duration (Days)" becomes "borrowing_duration_days".
func NormalizeHeader(h string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.TrimSpace(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pending = true
	}
	return b.String()
}

// parseDate tries each layout and truncates the result to its calendar date.
func parseDate(s string, layouts []string) (time.Time, bool) {
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
