package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"salesdash/internal/backend"
	"salesdash/internal/metrics"
	"salesdash/internal/report"
)

var (
	// Report flags
	joined bool

	now = time.Now
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print dashboard aggregates",
	Long: `Load the sales data once and print one report section.

By default the four collection endpoints are fetched in parallel. With
--joined the single /api/data outer-join endpoint is read instead.`,
}

func sectionCmd(s report.Section, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(s),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, s)
		},
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.PersistentFlags().BoolVar(&joined, "joined", false, "Read the joined /api/data endpoint")

	reportCmd.AddCommand(
		sectionCmd(report.SectionSummary, "Total users, completed sales and today's sales"),
		sectionCmd(report.SectionDaily, "Sales and order count per day"),
		sectionCmd(report.SectionCategories, "Quantity sold per category per day"),
	)
}

func newLoader() *backend.Loader {
	client := backend.NewClient(backendURL, timeout, metrics.NewRegistry())
	if joined {
		return backend.NewLoader(backend.FetcherFunc(client.FetchJoined))
	}
	return backend.NewLoader(client)
}

func runReport(cmd *cobra.Command, s report.Section) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	snap, err := newLoader().Load(ctx)
	if err != nil {
		return fmt.Errorf("load sales data from %s: %w", backendURL, err)
	}

	r := report.Build(*snap, now())
	if jsonOutput {
		return r.WriteJSON(cmd.OutOrStdout(), s)
	}
	return r.Render(cmd.OutOrStdout(), s)
}
