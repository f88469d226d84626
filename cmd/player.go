package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vgstats/vgstats/gamelocker"
)

// playerCmd represents the player command
var playerCmd = &cobra.Command{
	Use:     "player <name>",
	Short:   "Look up a player by name",
	Long:    `Look up a single player by their in-game name and display their stats.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runPlayer,
}

func init() {
	rootCmd.AddCommand(playerCmd)
}

func runPlayer(cmd *cobra.Command, args []string) error {
	name := args[0]

	player, err := client.PlayerByName(cmd.Context(), name, region)
	if err != nil {
		var apiErr *gamelocker.APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return fmt.Errorf("no player named %q in region %q", name, region)
		}
		return err
	}

	game := gamelocker.Game(cfg.API.Game)
	fmt.Printf("%s (%s)\n", player.Name, game.RegionName(player.Region))
	fmt.Printf("- ID: %s\n", player.ID)
	fmt.Printf("- Level: %d (XP %d)\n", player.Level, player.XP)
	fmt.Printf("- Skill tier: %d\n", player.SkillTier)
	fmt.Printf("- Wins: %d (streak %d)\n", player.Wins, player.WinStreak)
	if player.GuildTag != "" {
		fmt.Printf("- Guild: %s\n", player.GuildTag)
	}

	if cfg.Output.ShowDetails && len(player.GamesPlayed) > 0 {
		fmt.Println("\nGames played:")
		modes := make([]string, 0, len(player.GamesPlayed))
		for mode := range player.GamesPlayed {
			modes = append(modes, mode)
		}
		sort.Strings(modes)
		for _, mode := range modes {
			fmt.Printf("  • %s: %d\n", gamelocker.GameModeName(mode), player.GamesPlayed[mode])
		}
	}

	return nil
}
