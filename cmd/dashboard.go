package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/KaramelBytes/libinsight-cli/internal/shell"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [file]",
	Short: "Start the interactive dashboard menu",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDashboard,
}

// runDashboard prompts for a file when none is given, loads it and runs the menu.
// Load failures are printed and end the session without a failing exit status.
func runDashboard(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, shell.Welcome)

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		fmt.Fprint(out, shell.PathPrompt)
		line, err := shell.ReadLine(in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("read path: %w", err)
		}
		path = line
	}

	t, err := loadTable(cmd, path)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "✗ Error:", err)
		return nil
	}
	fmt.Fprintln(out, "✓ Dataset loaded and validated successfully.")
	return shell.Run(in, out, t, shellOptions(0, false))
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
