package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vgstats/vgstats/filter"
	"github.com/vgstats/vgstats/gamelocker"
)

var (
	matchLimit  int
	matchAfter  string
	matchBefore string
	playerNames []string
	gameModes   []string
	maxPages    int
	filterExpr  string
)

// matchesCmd represents the matches command
var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List matches for a region",
	Long: `List matches from the gamelocker API, optionally bounded by time window,
player names and game modes, and narrowed client-side with a filter
expression such as 'Duration > 300 and GameMode == "ranked"'.`,
	PreRunE: initializeApp,
	RunE:    runMatches,
}

func init() {
	rootCmd.AddCommand(matchesCmd)

	matchesCmd.Flags().IntVarP(&matchLimit, "limit", "l", 10, "matches per page (max 50)")
	matchesCmd.Flags().StringVar(&matchAfter, "after", "", "only matches created after this iso8601 time")
	matchesCmd.Flags().StringVar(&matchBefore, "before", "", "only matches created before this iso8601 time")
	matchesCmd.Flags().StringSliceVarP(&playerNames, "player", "p", nil, "only matches containing these player names")
	matchesCmd.Flags().StringSliceVarP(&gameModes, "gamemode", "g", nil, "only matches of these game modes")
	matchesCmd.Flags().IntVar(&maxPages, "pages", 1, "number of result pages to walk")
	matchesCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to fetched matches")
}

func runMatches(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	query := gamelocker.MatchQuery{
		Region:      region,
		Limit:       matchLimit,
		PlayerNames: playerNames,
		GameModes:   gameModes,
	}
	if matchAfter != "" {
		query.After = gamelocker.ISO(matchAfter)
	}
	if matchBefore != "" {
		query.Before = gamelocker.ISO(matchBefore)
	}

	var matchFilter *filter.Filter
	if filterExpr != "" {
		var err error
		matchFilter, err = filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	logger.Info().Str("region", region).Int("limit", matchLimit).Msg("Fetching matches")

	page, err := client.GetMatches(ctx, query)
	if err != nil {
		return err
	}

	// Walk pages up front; Next replaces the page contents in place.
	matches := append([]*gamelocker.Match(nil), page.Matches...)
	for fetched := 1; fetched < maxPages; fetched++ {
		ok, err := page.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		matches = append(matches, page.Matches...)
	}

	if matchFilter != nil {
		matches, err = matchFilter.Apply(matches)
		if err != nil {
			return err
		}
	}

	if len(matches) == 0 {
		fmt.Println("No matches found.")
		return nil
	}

	fmt.Printf("\nFound %d matches:\n", len(matches))
	fmt.Println(strings.Repeat("-", 80))

	game := gamelocker.Game(cfg.API.Game)
	for _, match := range matches {
		duration := time.Duration(match.Duration) * time.Second
		fmt.Printf("• %s  %s  %s  %s\n",
			match.CreatedAt.Format("2006-01-02 15:04"),
			gamelocker.GameModeName(match.GameMode),
			duration,
			match.ID)
		if cfg.Output.ShowDetails {
			fmt.Printf("  Region: %s  Patch: %s  Ended by: %s\n",
				game.RegionName(match.Region), match.Patch, match.EndGameReason)
			if players := match.PlayerNames(); len(players) > 0 {
				fmt.Printf("  Players: %s\n", strings.Join(players, ", "))
			}
		}
	}

	return nil
}
