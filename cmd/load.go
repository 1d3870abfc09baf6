package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/libinsight-cli/internal/chart"
	"github.com/KaramelBytes/libinsight-cli/internal/dataset"
	"github.com/KaramelBytes/libinsight-cli/internal/logger"
	"github.com/KaramelBytes/libinsight-cli/internal/shell"
	"github.com/KaramelBytes/libinsight-cli/internal/utils"
	"github.com/spf13/cobra"
)

// loadTable loads and validates the dataset at path using the effective config.
// A non-zero drop count is reported on stderr.
func loadTable(cmd *cobra.Command, path string) (*dataset.Table, error) {
	path = cleanPath(path)
	expanded, err := utils.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	opt := effectiveConfig().LoaderOptions()
	opt.Logger = logger.FromContext(cmd.Context())
	t, err := dataset.Load(expanded, opt)
	if err != nil {
		return nil, err
	}
	if t.Dropped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: dropped %d row(s) with missing values.\n", t.Dropped)
	}
	return t, nil
}

// cleanPath trims whitespace and one pair of surrounding quotes, as left by
// pasting or dragging a file into a terminal.
func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if len(p) >= 2 {
		if (p[0] == '"' && p[len(p)-1] == '"') || (p[0] == '\'' && p[len(p)-1] == '\'') {
			p = p[1 : len(p)-1]
		}
	}
	return p
}

// shellOptions builds dispatcher options from config, with an optional top-N override.
func shellOptions(topN int, fillGaps bool) shell.Options {
	c := effectiveConfig()
	opt := shell.Options{
		TopN:     c.TopN,
		FillGaps: c.FillMonthGaps || fillGaps,
		Chart:    chart.Options{Width: c.ChartWidth},
	}
	if topN > 0 {
		opt.TopN = topN
	}
	return opt
}
