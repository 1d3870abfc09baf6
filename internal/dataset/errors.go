package dataset

import (
	"fmt"
	"strings"
)

// NotFoundError indicates the input path does not exist or cannot be opened.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("the file '%s' was not found", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// FormatError indicates the input path is not a CSV file by extension.
type FormatError struct{ Path string }

func (e *FormatError) Error() string {
	return fmt.Sprintf("the provided file is not a CSV file: %s", e.Path)
}

// SchemaError lists the required columns absent from the header.
type SchemaError struct{ Missing []string }

func (e *SchemaError) Error() string {
	return fmt.Sprintf("CSV file is missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// DateFormatError reports the first date value that could not be parsed.
// Line is the 1-based line number in the source file.
type DateFormatError struct {
	Line  int
	Value string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("error parsing dates: %q on line %d; ensure 'date' is in YYYY-MM-DD format", e.Value, e.Line)
}

// DurationError reports a borrowing duration that is not a non-negative number.
type DurationError struct {
	Line  int
	Value string
}

func (e *DurationError) Error() string {
	return fmt.Sprintf("invalid borrowing duration %q on line %d: must be a non-negative number", e.Value, e.Line)
}
