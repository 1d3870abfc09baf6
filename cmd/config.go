package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/libinsight-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set libinsight configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "top_n: %d\n", c.TopN)
		fmt.Fprintf(out, "chart_width: %d\n", c.ChartWidth)
		fmt.Fprintf(out, "fill_month_gaps: %t\n", c.FillMonthGaps)
		fmt.Fprintf(out, "export_format: %s\n", c.ExportFormat)
		fmt.Fprintf(out, "date_layouts: %s\n", strings.Join(c.DateLayouts, ", "))
		fmt.Fprintf(out, "na_values: %s\n", strings.Join(c.NAValues, ", "))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.LoadRaw(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "top_n":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for top_n: %v (must be >= 1)", val)
			}
			cfg.TopN = i
		case "chart_width":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for chart_width: %v", val)
			}
			cfg.ChartWidth = i
		case "fill_month_gaps":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for fill_month_gaps: %w", err)
			}
			cfg.FillMonthGaps = b
		case "export_format":
			switch strings.ToLower(val) {
			case "json":
				cfg.ExportFormat = "json"
			case "yaml", "yml":
				cfg.ExportFormat = "yaml"
			default:
				return fmt.Errorf("invalid export_format: %s (use json or yaml)", val)
			}
		case "date_layouts":
			layouts := splitList(val)
			if len(layouts) == 0 {
				return fmt.Errorf("date_layouts needs at least one layout")
			}
			cfg.DateLayouts = layouts
		case "na_values":
			cfg.NAValues = splitList(val)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// splitList parses a comma-separated value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
