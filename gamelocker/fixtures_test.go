package gamelocker

import (
	"fmt"
	"strings"
)

// matchResources builds the data element and included side-payload for one
// match with a roster pair, one participant per roster and a telemetry
// asset. telemetryURL overrides the default CDN location when non-empty.
func matchResources(id string, seq int, telemetryURL string) (string, []string) {
	var included []string

	data := fmt.Sprintf(`{
		"type": "match",
		"id": %q,
		"attributes": {
			"createdAt": "2017-11-22T20:%02d:58Z",
			"duration": %d,
			"gameMode": "ranked",
			"patchVersion": "2.10",
			"shardId": "na",
			"stats": {"endGameReason": "victory"}
		},
		"relationships": {
			"rosters": {"data": [{"type": "roster", "id": "%s-r1"}, {"type": "roster", "id": "%s-r2"}]},
			"spectators": {"data": []},
			"assets": {"data": [{"type": "asset", "id": "%s-a1"}]}
		}
	}`, id, 34+seq, 800+seq, id, id, id)

	for _, side := range []string{"r1", "r2"} {
		won := "false"
		if side == "r1" {
			won = "true"
		}
		included = append(included, fmt.Sprintf(`{
			"type": "roster",
			"id": "%s-%s",
			"attributes": {
				"shardId": "na",
				"won": %q,
				"stats": {"acesEarned": 1, "gold": 27000, "heroKills": 25, "krakenCaptures": 1, "side": "left/blue", "turretKills": 5, "turretsRemaining": 2}
			},
			"relationships": {
				"participants": {"data": [{"type": "participant", "id": "%s-%s-p"}]}
			}
		}`, id, side, won, id, side))

		included = append(included, fmt.Sprintf(`{
			"type": "participant",
			"id": "%s-%s-p",
			"attributes": {
				"actor": "*Adagio*",
				"shardId": "na",
				"stats": {"kills": 12, "deaths": 3, "assists": 9, "farm": 120.5, "gold": 13000, "skinKey": "Adagio_DefaultSkin", "winner": true}
			},
			"relationships": {
				"player": {"data": {"type": "player", "id": "%s-%s-pl"}}
			}
		}`, id, side, id, side))

		included = append(included, fmt.Sprintf(`{
			"type": "player",
			"id": "%s-%s-pl",
			"attributes": {
				"name": "Player-%s-%s",
				"shardId": "na",
				"stats": {"level": 30, "xp": 109000, "wins": 900, "winStreak": 3, "lossStreak": 0, "lifetimeGold": 52000, "skillTier": 25, "karmaLevel": 2, "gamesPlayed": {"ranked": 1200, "casual": 800, "blitz": 150}}
			}
		}`, id, side, id, side))
	}

	if telemetryURL == "" {
		telemetryURL = fmt.Sprintf("https://cdn.gamelockerapp.com/telemetry/%s.json", id)
	}
	included = append(included, fmt.Sprintf(`{
		"type": "asset",
		"id": "%s-a1",
		"attributes": {"URL": %q}
	}`, id, telemetryURL))

	return data, included
}

// matchListFixture builds a JSON:API match listing response. An empty next
// link marks the terminal page.
func matchListFixture(next string, matchIDs ...string) string {
	var data, included []string
	for i, id := range matchIDs {
		matchData, matchIncluded := matchResources(id, i, "")
		data = append(data, matchData)
		included = append(included, matchIncluded...)
	}

	links := `{"self": "https://api.example.com/shards/na/matches?page[offset]=0"`
	if next != "" {
		links += fmt.Sprintf(`, "next": %q`, next)
	}
	links += `}`

	return fmt.Sprintf(`{"data": [%s], "included": [%s], "links": %s}`,
		strings.Join(data, ","), strings.Join(included, ","), links)
}

// matchFixture builds a JSON:API single-match response.
func matchFixture(id, telemetryURL string) string {
	data, included := matchResources(id, 0, telemetryURL)
	return fmt.Sprintf(`{"data": %s, "included": [%s]}`, data, strings.Join(included, ","))
}

// playerListFixture builds a JSON:API players listing response.
func playerListFixture(names ...string) string {
	var data []string
	for i, name := range names {
		data = append(data, fmt.Sprintf(`{
			"type": "player",
			"id": "player-id-%d",
			"attributes": {
				"name": %q,
				"shardId": "sg",
				"stats": {"level": 28, "xp": 92000, "wins": 410, "winStreak": 1, "lossStreak": 0, "lifetimeGold": 31000, "skillTier": 22, "karmaLevel": 1, "guildTag": "VGS", "gamesPlayed": {"ranked": 600, "blitz": 90}}
			}
		}`, i+1, name))
	}
	return fmt.Sprintf(`{"data": [%s]}`, strings.Join(data, ","))
}

const statusFixture = `{
	"data": {
		"type": "status",
		"id": "gamelocker-status",
		"attributes": {"releasedAt": "2017-11-01T00:00:00Z", "version": "v7.10"}
	}
}`

const telemetryFixture = `[
	{"time": "2017-11-22T20:34:58+0000", "type": "HeroBan", "payload": {"Hero": "*Adagio*", "Team": "1"}},
	{"time": "2017-11-22T20:35:10Z", "type": "HeroSelect", "payload": {"Hero": "*Ringo*", "Team": "2"}},
	{"time": "2017-11-22T20:36:02Z", "type": "HeroSelect", "payload": {"Hero": "*Catherine*", "Team": "1"}}
]`
