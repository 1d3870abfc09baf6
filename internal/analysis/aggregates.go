package analysis

import (
	"sort"
	"time"

	"github.com/KaramelBytes/libinsight-cli/internal/dataset"
)

// DefaultTopN is the number of titles in the top-books chart.
const DefaultTopN = 5

// TitleCount is a book title with its borrow count.
type TitleCount struct {
	Title string `json:"title" yaml:"title"`
	Count int    `json:"count" yaml:"count"`
}

// MonthCount is the number of transactions in one calendar month.
// Month is the first day of the month at midnight UTC.
type MonthCount struct {
	Month time.Time `json:"month" yaml:"month"`
	Count int       `json:"count" yaml:"count"`
}

// GenreCount is a genre label with its transaction count.
type GenreCount struct {
	Genre string `json:"genre" yaml:"genre"`
	Count int    `json:"count" yaml:"count"`
}

// TopBooks returns the n most borrowed titles, descending by count, ties in order
// of first appearance. n below 1 falls back to DefaultTopN.
func TopBooks(t *dataset.Table, n int) []TitleCount {
	if n < 1 {
		n = DefaultTopN
	}
	groups := countFirstSeen(t, func(r dataset.Record) string { return r.BookTitle })
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	if len(groups) > n {
		groups = groups[:n]
	}
	out := make([]TitleCount, len(groups))
	for i, g := range groups {
		out[i] = TitleCount{Title: g.Key, Count: g.Count}
	}
	return out
}

// MonthlyTrend counts transactions per calendar month in chronological order.
// Only months present in the data are returned unless fillGaps is set, in which
// case every month between the first and last observed month is included.
func MonthlyTrend(t *dataset.Table, fillGaps bool) []MonthCount {
	counts := map[time.Time]int{}
	for i := 0; i < t.Len(); i++ {
		counts[monthStart(t.At(i).Date)]++
	}
	months := make([]time.Time, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	if fillGaps && len(months) > 1 {
		first, last := months[0], months[len(months)-1]
		months = months[:0]
		for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
			months = append(months, m)
		}
	}
	out := make([]MonthCount, len(months))
	for i, m := range months {
		out[i] = MonthCount{Month: m, Count: counts[m]}
	}
	return out
}

// GenreDistribution counts transactions per genre.
func GenreDistribution(t *dataset.Table) map[string]int {
	out := map[string]int{}
	for i := 0; i < t.Len(); i++ {
		out[t.At(i).Genre]++
	}
	return out
}

// SortedGenres returns the genre distribution descending by count, ties in order
// of first appearance.
func SortedGenres(t *dataset.Table) []GenreCount {
	groups := countFirstSeen(t, func(r dataset.Record) string { return r.Genre })
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	out := make([]GenreCount, len(groups))
	for i, g := range groups {
		out[i] = GenreCount{Genre: g.Key, Count: g.Count}
	}
	return out
}

// WeekOrder is the canonical row order of the activity pivot.
var WeekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// ActivityPivot counts transactions by weekday (rows) and month name (columns).
// Months from different years share a column.
type ActivityPivot struct {
	Days   []time.Weekday `json:"-" yaml:"-"`
	Months []time.Month   `json:"-" yaml:"-"`
	// Counts[i][j] is the count for Days[i] within Months[j].
	Counts [][]int `json:"counts" yaml:"counts"`
}

// Cell returns the count for a weekday and month, zero when either is absent.
func (p ActivityPivot) Cell(d time.Weekday, m time.Month) int {
	row, col := -1, -1
	for i, x := range p.Days {
		if x == d {
			row = i
		}
	}
	for j, x := range p.Months {
		if x == m {
			col = j
		}
	}
	if row < 0 || col < 0 {
		return 0
	}
	return p.Counts[row][col]
}

// Total returns the sum of all cells.
func (p ActivityPivot) Total() int {
	var n int
	for _, row := range p.Counts {
		for _, c := range row {
			n += c
		}
	}
	return n
}

// Max returns the largest cell value.
func (p ActivityPivot) Max() int {
	var m int
	for _, row := range p.Counts {
		for _, c := range row {
			if c > m {
				m = c
			}
		}
	}
	return m
}

// WeekdayMonthActivity builds the day-of-week by month pivot. Rows run Monday
// through Sunday; columns are the months present, in calendar order. Every
// cell is populated.
func WeekdayMonthActivity(t *dataset.Table) ActivityPivot {
	var seen [13]bool
	for i := 0; i < t.Len(); i++ {
		seen[t.At(i).Date.Month()] = true
	}
	var months []time.Month
	col := map[time.Month]int{}
	for m := time.January; m <= time.December; m++ {
		if seen[m] {
			col[m] = len(months)
			months = append(months, m)
		}
	}
	row := map[time.Weekday]int{}
	for i, d := range WeekOrder {
		row[d] = i
	}
	counts := make([][]int, len(WeekOrder))
	for i := range counts {
		counts[i] = make([]int, len(months))
	}
	for i := 0; i < t.Len(); i++ {
		d := t.At(i).Date
		counts[row[d.Weekday()]][col[d.Month()]]++
	}
	days := make([]time.Weekday, len(WeekOrder))
	copy(days, WeekOrder)
	return ActivityPivot{Days: days, Months: months, Counts: counts}
}

func monthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
