package commands

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"salesdash/internal/logger"
	"salesdash/internal/report"
)

const (
	defaultBackendURL = "http://localhost:5000"
	defaultTimeout    = 15 * time.Second
)

var (
	// Global flags
	backendURL string
	timeout    time.Duration
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "salesdash",
	Short: "Terminal reports over the sales backend",
	Long: `salesdash reads orders, users, products and order items from the sales
backend and prints the same aggregates the dashboard charts show.

Examples:
  salesdash report summary
  salesdash report daily --backend http://sales.internal:5000
  salesdash report categories --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.Init(os.Getenv("APP_ENV"))
			return
		}
		logger.Replace(zap.NewNop())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		report.Error(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()

	fallback := os.Getenv("BACKEND_URL")
	if fallback == "" {
		fallback = defaultBackendURL
	}

	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", fallback, "Sales backend base URL (defaults to $BACKEND_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Timeout for each backend request")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log backend calls to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}
