package gamelocker

// Game identifies which title's API the client talks to. The gamelocker
// platform hosts two titles behind the same wire format.
type Game string

const (
	GameVainglory  Game = "vainglory"
	GameBattlerite Game = "battlerite"
)

// Per-title API endpoints. Telemetry files live on a separate CDN and their
// URLs are handed out per-match by the API, never constructed here.
const (
	vaingloryBaseURL   = "https://api.dc01.gamelockerapp.com/shards"
	vaingloryStatusURL = "https://api.dc01.gamelockerapp.com/status"

	battleriteBaseURL   = "https://api.developer.battlerite.com/shards"
	battleriteStatusURL = "https://api.developer.battlerite.com/status"
)

// vaingloryRegions maps region shard codes to friendly names.
var vaingloryRegions = map[string]string{
	"na": "North America",
	"eu": "Europe",
	"sa": "South America",
	"ea": "East Asia",
	"sg": "Southeast Asia",
}

// Battlerite runs a single global shard.
var battleriteRegions = map[string]string{
	"global": "Global",
}

// vaingloryGameModes maps internal game-mode keys to display names.
var vaingloryGameModes = map[string]string{
	"blitz_pvp_ranked":          "Blitz",
	"blitz_rounds_pvp_casual":   "Onslaught",
	"ranked":                    "Ranked",
	"casual":                    "Casual",
	"private_party_blitz_match": "Private Blitz",
	"casual_aral":               "Battle Royale",
	"private":                   "Private",
	"private_party_draft_match": "Private Draft",
	"private_party_aral_match":  "Private Battle Royale",
}

func (g Game) valid() bool {
	return g == GameVainglory || g == GameBattlerite
}

func (g Game) baseURL() string {
	if g == GameBattlerite {
		return battleriteBaseURL
	}
	return vaingloryBaseURL
}

func (g Game) statusURL() string {
	if g == GameBattlerite {
		return battleriteStatusURL
	}
	return vaingloryStatusURL
}

func (g Game) regions() map[string]string {
	if g == GameBattlerite {
		return battleriteRegions
	}
	return vaingloryRegions
}

// RegionName returns the friendly name for a region shard code, or the code
// itself when unknown.
func (g Game) RegionName(code string) string {
	if name, ok := g.regions()[code]; ok {
		return name
	}
	return code
}

// GameModeName returns the display name for a game-mode key, or the key
// itself when unknown.
func GameModeName(mode string) string {
	if name, ok := vaingloryGameModes[mode]; ok {
		return name
	}
	return mode
}
