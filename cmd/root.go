package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/libinsight-cli/internal/config"
	"github.com/KaramelBytes/libinsight-cli/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration; nil when loading failed.
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "libinsight [file]",
	Short: "libinsight: analytics for library borrowing transactions",
	Long: `libinsight loads a CSV of library borrowing transactions, validates its schema,
and reports summary statistics and charts. Run without a subcommand to start the
interactive dashboard.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(logger.WithContext(cmd.Context(), logger.NewConsole(cmd.ErrOrStderr(), debug)))
		return nil
	},
	RunE: runDashboard,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.libinsight/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c
}

// effectiveConfig returns the loaded config or the defaults.
func effectiveConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return cfgpkg.Defaults()
}
