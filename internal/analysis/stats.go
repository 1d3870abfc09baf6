package analysis

import (
	"errors"
	"math"
	"time"

	"github.com/KaramelBytes/libinsight-cli/internal/dataset"
)

// ErrEmptyTable is returned when statistics are requested over a table with no rows.
var ErrEmptyTable = errors.New("dataset has no transactions")

// Summary holds the aggregate metrics of a transactions table.
type Summary struct {
	TotalTransactions int `json:"total_transactions" yaml:"total_transactions"`
	UniqueBooks       int `json:"unique_books" yaml:"unique_books"`
	UniqueUsers       int `json:"unique_users" yaml:"unique_users"`

	MostBorrowedBook  string `json:"most_borrowed_book" yaml:"most_borrowed_book"`
	MostBorrowedCount int    `json:"most_borrowed_count" yaml:"most_borrowed_count"`

	AvgDuration    float64 `json:"avg_borrowing_duration" yaml:"avg_borrowing_duration"`
	StdDevDuration float64 `json:"std_dev_borrowing_duration" yaml:"std_dev_borrowing_duration"`

	BusiestDay      time.Weekday `json:"-" yaml:"-"`
	BusiestDayCount int          `json:"busiest_day_count" yaml:"busiest_day_count"`
}

// ComputeStatistics derives the summary metrics. Mode-like results break ties by
// first appearance in row order, so repeated calls on the same table agree.
func ComputeStatistics(t *dataset.Table) (Summary, error) {
	n := t.Len()
	if n == 0 {
		return Summary{}, ErrEmptyTable
	}
	var s Summary
	s.TotalTransactions = n

	books := countFirstSeen(t, func(r dataset.Record) string { return r.BookTitle })
	users := countFirstSeen(t, func(r dataset.Record) string { return r.UserID })
	days := countFirstSeen(t, func(r dataset.Record) string { return r.Date.Weekday().String() })
	s.UniqueBooks = len(books)
	s.UniqueUsers = len(users)

	top := firstMode(books)
	s.MostBorrowedBook, s.MostBorrowedCount = top.Key, top.Count
	busiest := firstMode(days)
	s.BusiestDay = weekdayByName[busiest.Key]
	s.BusiestDayCount = busiest.Count

	// Welford keeps the mean exact when every duration is equal.
	var mean, m2 float64
	for i := 0; i < n; i++ {
		x := t.At(i).DurationDays
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}
	s.AvgDuration = mean
	s.StdDevDuration = math.Sqrt(m2 / float64(n))
	return s, nil
}

// keyCount is a grouping key with its row count.
type keyCount struct {
	Key   string
	Count int
}

// countFirstSeen groups rows by key and returns the groups in order of first appearance.
func countFirstSeen(t *dataset.Table, key func(dataset.Record) string) []keyCount {
	idx := map[string]int{}
	var out []keyCount
	for i := 0; i < t.Len(); i++ {
		k := key(t.At(i))
		j, ok := idx[k]
		if !ok {
			j = len(out)
			idx[k] = j
			out = append(out, keyCount{Key: k})
		}
		out[j].Count++
	}
	return out
}

// firstMode returns the highest count; the earliest group wins a tie.
func firstMode(groups []keyCount) keyCount {
	var best keyCount
	for i, g := range groups {
		if i == 0 || g.Count > best.Count {
			best = g
		}
	}
	return best
}

var weekdayByName = func() map[string]time.Weekday {
	m := make(map[string]time.Weekday, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		m[d.String()] = d
	}
	return m
}()
