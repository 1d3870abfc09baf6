package chart

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/libinsight-cli/internal/analysis"
)

// Options controls terminal chart rendering.
type Options struct {
	// Width is the length of the longest bar; values <= 0 use DefaultWidth.
	Width int
}

// DefaultWidth is the bar length used when Options.Width is unset.
const DefaultWidth = 40

const (
	barGlyph   = "█"
	maxLabel   = 40
	noDataLine = "(no data)\n"
)

// shades from empty to full, used by the heatmap.
var shades = []string{" ", "░", "▒", "▓", "█"}

// TopBooks renders a horizontal bar chart of the most borrowed titles.
func TopBooks(items []analysis.TitleCount, opt Options) string {
	var b strings.Builder
	writeTitle(&b, fmt.Sprintf("Top %d Most Borrowed Books", len(items)))
	if len(items) == 0 {
		b.WriteString(noDataLine)
		return b.String()
	}
	labels := make([]string, len(items))
	values := make([]int, len(items))
	for i, it := range items {
		labels[i] = it.Title
		values[i] = it.Count
	}
	writeBars(&b, labels, values, opt.width(), func(v int) string { return fmt.Sprintf("%d", v) })
	b.WriteString("x: Number of Borrows\n")
	return b.String()
}

// Trend renders the monthly transaction counts as one bar per month.
func Trend(items []analysis.MonthCount, opt Options) string {
	var b strings.Builder
	writeTitle(&b, "Borrowing Trends Over Months")
	if len(items) == 0 {
		b.WriteString(noDataLine)
		return b.String()
	}
	labels := make([]string, len(items))
	values := make([]int, len(items))
	for i, it := range items {
		labels[i] = it.Month.Format("Jan 2006")
		values[i] = it.Count
	}
	writeBars(&b, labels, values, opt.width(), func(v int) string { return fmt.Sprintf("%d", v) })
	b.WriteString("x: Number of Transactions\n")
	return b.String()
}

// Genres renders each genre's share of all transactions.
func Genres(items []analysis.GenreCount, opt Options) string {
	var b strings.Builder
	writeTitle(&b, "Distribution of Books Borrowed by Genre")
	total := 0
	for _, it := range items {
		total += it.Count
	}
	if total == 0 {
		b.WriteString(noDataLine)
		return b.String()
	}
	labels := make([]string, len(items))
	values := make([]int, len(items))
	for i, it := range items {
		labels[i] = it.Genre
		values[i] = it.Count
	}
	writeBars(&b, labels, values, opt.width(), func(v int) string {
		return fmt.Sprintf("%.1f%%", float64(v)*100/float64(total))
	})
	return b.String()
}

// Heatmap renders the weekday by month pivot as an annotated grid.
func Heatmap(p analysis.ActivityPivot, _ Options) string {
	var b strings.Builder
	writeTitle(&b, "Borrowing Activity: Day of Week vs. Month")
	if len(p.Months) == 0 {
		b.WriteString(noDataLine)
		return b.String()
	}
	const dayCol = 10
	b.WriteString(strings.Repeat(" ", dayCol))
	for _, m := range p.Months {
		b.WriteString(fmt.Sprintf(" %5s", m.String()[:3]))
	}
	b.WriteString("\n")
	peak := p.Max()
	for i, d := range p.Days {
		b.WriteString(padRight(d.String(), dayCol))
		for j := range p.Months {
			c := p.Counts[i][j]
			b.WriteString(fmt.Sprintf(" %s%4d", shade(c, peak), c))
		}
		b.WriteString("\n")
	}
	b.WriteString("rows: Day of Week, columns: Month\n")
	return b.String()
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}

func writeTitle(b *strings.Builder, title string) {
	b.WriteString("\n" + title + "\n")
	b.WriteString(strings.Repeat("-", utf8.RuneCountInString(title)) + "\n")
}

// writeBars writes one "label | bar annotation" line per value, scaled to the largest value.
func writeBars(b *strings.Builder, labels []string, values []int, width int, annotate func(int) string) {
	peak := 0
	labelW := 0
	for i, v := range values {
		if v > peak {
			peak = v
		}
		labels[i] = truncate(labels[i], maxLabel)
		if n := utf8.RuneCountInString(labels[i]); n > labelW {
			labelW = n
		}
	}
	for i, v := range values {
		n := 0
		if peak > 0 {
			n = int(math.Round(float64(v) / float64(peak) * float64(width)))
		}
		if n == 0 && v > 0 {
			n = 1
		}
		b.WriteString(padRight(labels[i], labelW))
		b.WriteString(" | ")
		b.WriteString(strings.Repeat(barGlyph, n))
		b.WriteString(" ")
		b.WriteString(annotate(v))
		b.WriteString("\n")
	}
}

func shade(v, peak int) string {
	if v <= 0 || peak <= 0 {
		return shades[0]
	}
	idx := int(math.Ceil(float64(v) / float64(peak) * float64(len(shades)-1)))
	if idx >= len(shades) {
		idx = len(shades) - 1
	}
	return shades[idx]
}

func padRight(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}
