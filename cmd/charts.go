package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/libinsight-cli/internal/chart"
	"github.com/KaramelBytes/libinsight-cli/internal/logger"
	"github.com/KaramelBytes/libinsight-cli/internal/shell"
	"github.com/spf13/cobra"
)

var (
	oneExportPath string
	oneFormat     string
	oneTopN       int
	oneFillGaps   bool
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Print the summary report for a transactions CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(cmd, args[0], shell.ChoiceReport)
	},
}

var topBooksCmd = &cobra.Command{
	Use:   "top-books <file>",
	Short: "Chart the most borrowed books",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(cmd, args[0], shell.ChoiceTopBooks)
	},
}

var trendCmd = &cobra.Command{
	Use:   "trend <file>",
	Short: "Chart borrowing counts per month",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(cmd, args[0], shell.ChoiceTrend)
	},
}

var genresCmd = &cobra.Command{
	Use:   "genres <file>",
	Short: "Chart the share of transactions per genre",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(cmd, args[0], shell.ChoiceGenres)
	},
}

var heatmapCmd = &cobra.Command{
	Use:   "heatmap <file>",
	Short: "Chart activity by day of week and month",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(cmd, args[0], shell.ChoiceHeatmap)
	},
}

// runOneShot loads the file, runs one menu action and optionally exports its data.
// Unlike the dashboard, load errors are returned and fail the command.
func runOneShot(cmd *cobra.Command, path, choice string) error {
	t, err := loadTable(cmd, path)
	if err != nil {
		return err
	}
	res := shell.Dispatch(t, choice, shellOptions(oneTopN, oneFillGaps))
	fmt.Fprint(cmd.OutOrStdout(), res.Output)

	if oneExportPath == "" {
		return nil
	}
	if res.Doc == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: nothing to export; %s was not written.\n", oneExportPath)
		return nil
	}
	format := oneFormat
	if format == "" {
		switch strings.ToLower(filepath.Ext(oneExportPath)) {
		case ".json", ".yaml", ".yml":
		default:
			format = effectiveConfig().ExportFormat
		}
	}
	if err := chart.Export(oneExportPath, format, *res.Doc); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	log := logger.FromContext(cmd.Context())
	log.Debug().Str("dataset_id", t.ID).Str("chart", string(res.Doc.Chart)).Str("path", oneExportPath).Msg("chart data exported")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s data to %s\n", res.Doc.Chart, oneExportPath)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{reportCmd, topBooksCmd, trendCmd, genresCmd, heatmapCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVarP(&oneExportPath, "export", "o", "", "write the underlying data to this path (JSON or YAML)")
		c.Flags().StringVar(&oneFormat, "format", "", "export format: json|yaml (default from extension, then config)")
	}
	topBooksCmd.Flags().IntVarP(&oneTopN, "top", "n", 0, "number of titles to show (default from config, 5)")
	trendCmd.Flags().BoolVar(&oneFillGaps, "fill-gaps", false, "include months with no transactions between the first and last month")
}
