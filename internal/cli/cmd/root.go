package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clipstash/clipstash/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clipstash",
	Short: "A clipboard history manager with tagging and search",
	Long: `Clipstash keeps a plain-text log of everything you copy:
  • Clipboard history with tagging and hash addressing
  • Text extraction for PDF, Word, Excel and HTML payloads
  • Deduplicated, capacity-bounded flat-file storage
  • Search, export and copy-back from the command line`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		zapLogger, err = SetupLogger(cfg, verbose, quiet)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if zapLogger != nil {
			zapLogger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the platform config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "minimize output")
	rootCmd.PersistentFlags().BoolVar(&useJSON, "json", false, "output in JSON format")

	rootCmd.AddCommand(GetCommands()...)
}
