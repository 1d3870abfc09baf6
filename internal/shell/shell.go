package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/libinsight-cli/internal/analysis"
	"github.com/KaramelBytes/libinsight-cli/internal/chart"
	"github.com/KaramelBytes/libinsight-cli/internal/dataset"
	"github.com/KaramelBytes/libinsight-cli/internal/report"
)

// Action identifies what a menu choice did.
type Action int

const (
	ActionInvalid Action = iota
	ActionReport
	ActionTopBooks
	ActionTrend
	ActionGenres
	ActionHeatmap
	ActionExit
)

// Menu choices as typed by the user.
const (
	ChoiceReport   = "1"
	ChoiceTopBooks = "2"
	ChoiceTrend    = "3"
	ChoiceGenres   = "4"
	ChoiceHeatmap  = "5"
	ChoiceExit     = "6"
)

const (
	Welcome    = "Welcome to the E-Library Data Insights Dashboard!"
	PathPrompt = "Please enter the path to the library transaction CSV file: "
	Goodbye    = "Thank you for using the E-Library Dashboard. Goodbye!"
	invalid    = "Invalid choice. Please enter a number between 1 and 6."
	noRows     = "No transactions to report."
)

// Options tunes the chart-producing actions.
type Options struct {
	TopN     int
	FillGaps bool
	Chart    chart.Options
}

// Result is the outcome of one dispatched choice.
type Result struct {
	Action Action
	Output string
	Exit   bool
	// Doc carries the chart data for chart actions, ready for export.
	Doc *chart.Document
}

// Dispatch runs a single menu choice against the table. It holds no state
// between calls.
func Dispatch(t *dataset.Table, choice string, opt Options) Result {
	switch strings.TrimSpace(choice) {
	case ChoiceReport:
		s, err := analysis.ComputeStatistics(t)
		if err != nil {
			return Result{Action: ActionReport, Output: noRows + "\n"}
		}
		doc := chart.SummaryDocument(t.ID, s)
		return Result{Action: ActionReport, Output: report.Render(t, s), Doc: &doc}
	case ChoiceTopBooks:
		items := analysis.TopBooks(t, opt.TopN)
		doc := chart.TopBooksDocument(t.ID, items)
		return Result{Action: ActionTopBooks, Output: chart.TopBooks(items, opt.Chart), Doc: &doc}
	case ChoiceTrend:
		items := analysis.MonthlyTrend(t, opt.FillGaps)
		doc := chart.TrendDocument(t.ID, items)
		return Result{Action: ActionTrend, Output: chart.Trend(items, opt.Chart), Doc: &doc}
	case ChoiceGenres:
		items := analysis.SortedGenres(t)
		doc := chart.GenresDocument(t.ID, items)
		return Result{Action: ActionGenres, Output: chart.Genres(items, opt.Chart), Doc: &doc}
	case ChoiceHeatmap:
		p := analysis.WeekdayMonthActivity(t)
		doc := chart.HeatmapDocument(t.ID, p)
		return Result{Action: ActionHeatmap, Output: chart.Heatmap(p, opt.Chart), Doc: &doc}
	case ChoiceExit:
		return Result{Action: ActionExit, Output: Goodbye + "\n", Exit: true}
	default:
		return Result{Action: ActionInvalid, Output: invalid + "\n"}
	}
}

// Menu is the numbered option list shown before each prompt.
func Menu(topN int) string {
	if topN < 1 {
		topN = analysis.DefaultTopN
	}
	var b strings.Builder
	b.WriteString("\nPlease choose an option:\n")
	b.WriteString("1. Display Summary Report\n")
	b.WriteString(fmt.Sprintf("2. Show Top %d Borrowed Books (Bar Chart)\n", topN))
	b.WriteString("3. Show Borrowing Trends by Month (Line Chart)\n")
	b.WriteString("4. Show Genre Distribution (Pie Chart)\n")
	b.WriteString("5. Show Borrowing Activity Heatmap\n")
	b.WriteString("6. Exit\n")
	return b.String()
}

// ReadLine reads one line without its terminator. A final line without a
// newline is returned with a nil error; io.EOF means no input was left.
func ReadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Run shows the menu until the user exits or input ends.
func Run(r *bufio.Reader, out io.Writer, t *dataset.Table, opt Options) error {
	for {
		fmt.Fprint(out, Menu(opt.TopN))
		fmt.Fprint(out, "Enter your choice (1-6): ")
		line, err := ReadLine(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				fmt.Fprintln(out, Goodbye)
				return nil
			}
			return fmt.Errorf("read choice: %w", err)
		}
		res := Dispatch(t, line, opt)
		fmt.Fprint(out, res.Output)
		if res.Exit {
			return nil
		}
	}
}
