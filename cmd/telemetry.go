package cmd

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var telemetryConcurrency int

// telemetryCmd represents the telemetry command
var telemetryCmd = &cobra.Command{
	Use:   "telemetry <match-id> [match-id...]",
	Short: "Fetch telemetry for one or more matches",
	Long: `Fetch the per-event telemetry log for the given matches and summarize
the event counts by type. Matches are fetched concurrently.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runTelemetry,
}

func init() {
	rootCmd.AddCommand(telemetryCmd)

	telemetryCmd.Flags().IntVar(&telemetryConcurrency, "concurrency", 4, "maximum concurrent telemetry fetches")
}

type telemetrySummary struct {
	matchID string
	events  int
	byType  map[string]int
}

func runTelemetry(cmd *cobra.Command, args []string) error {
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(telemetryConcurrency)

	var mu sync.Mutex
	summaries := make(map[string]telemetrySummary, len(args))

	for _, matchID := range args {
		matchID := matchID
		g.Go(func() error {
			match, err := client.MatchByID(ctx, region, matchID)
			if err != nil {
				return fmt.Errorf("match %s: %w", matchID, err)
			}

			telemetry, err := match.GetTelemetry(ctx)
			if err != nil {
				return fmt.Errorf("telemetry for match %s: %w", matchID, err)
			}

			summary := telemetrySummary{
				matchID: matchID,
				events:  len(telemetry.Events),
				byType:  make(map[string]int),
			}
			for _, event := range telemetry.Events {
				summary.byType[event.Type]++
			}

			mu.Lock()
			summaries[matchID] = summary
			mu.Unlock()

			logger.Debug().Str("match", matchID).Int("events", summary.events).Msg("Fetched telemetry")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Print in the order the ids were given
	for _, matchID := range args {
		summary := summaries[matchID]
		fmt.Printf("\nMatch %s: %d events\n", summary.matchID, summary.events)

		types := make([]string, 0, len(summary.byType))
		for eventType := range summary.byType {
			types = append(types, eventType)
		}
		sort.Strings(types)
		for _, eventType := range types {
			fmt.Printf("  • %s: %d\n", eventType, summary.byType[eventType])
		}
	}

	return nil
}
