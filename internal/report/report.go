package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/libinsight-cli/internal/analysis"
	"github.com/KaramelBytes/libinsight-cli/internal/dataset"
)

const ruleWidth = 40

// Render formats a computed summary as the fixed-layout analytics report.
// It only formats; every number comes from s.
func Render(t *dataset.Table, s analysis.Summary) string {
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	var b strings.Builder
	b.WriteString("\n" + heavy + "\n")
	b.WriteString("        E-Library Analytics Report\n")
	b.WriteString(heavy + "\n")
	if t != nil && t.Name != "" {
		b.WriteString(fmt.Sprintf("Dataset: %s\n", t.Name))
	}
	b.WriteString(fmt.Sprintf("Total Transactions: %d\n", s.TotalTransactions))
	b.WriteString(fmt.Sprintf("Unique Books Borrowed: %d\n", s.UniqueBooks))
	b.WriteString(fmt.Sprintf("Unique Users: %d\n", s.UniqueUsers))
	b.WriteString(light + "\n")
	b.WriteString("Key Insights:\n")
	b.WriteString(fmt.Sprintf("  - Most Popular Book: '%s'\n", s.MostBorrowedBook))
	b.WriteString(fmt.Sprintf("  - Busiest Borrowing Day: %s\n", s.BusiestDay))
	b.WriteString(fmt.Sprintf("  - Avg. Borrowing Duration: %.2f days\n", s.AvgDuration))
	b.WriteString(fmt.Sprintf("  - Std. Dev. of Duration: %.2f days\n", s.StdDevDuration))
	if t != nil && t.Dropped > 0 {
		b.WriteString(light + "\n")
		b.WriteString(fmt.Sprintf("Note: %d row(s) with missing values were dropped.\n", t.Dropped))
	}
	b.WriteString(heavy + "\n")
	return b.String()
}
