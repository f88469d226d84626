package gamelocker

import (
	"context"
	"encoding/json"
	"time"
)

// Status describes the provider's release information.
type Status struct {
	ReleasedAt string
	Version    string
}

// Player holds general account data. Players referenced from inside a match
// that the API did not expand carry only an ID.
type Player struct {
	ID     string
	Name   string
	Region string

	// GamesPlayed is the games-played breakdown keyed by game mode, e.g.
	// "ranked" or "blitz".
	GamesPlayed map[string]int

	Level        int
	XP           int
	Wins         int
	WinStreak    int
	LossStreak   int
	LifetimeGold float64
	SkillTier    int
	KarmaLevel   int
	GuildTag     string
}

// ParticipantStats is the per-player scoreboard for one match.
type ParticipantStats struct {
	Assists        int     `json:"assists"`
	Deaths         int     `json:"deaths"`
	Kills          int     `json:"kills"`
	Farm           float64 `json:"farm"`
	Gold           float64 `json:"gold"`
	JungleKills    int     `json:"jungleKills"`
	MinionKills    int     `json:"minionKills"`
	KrakenCaptures int     `json:"krakenCaptures"`
	TurretCaptures int     `json:"turretCaptures"`
	CrystalMines   int     `json:"crystalMineCaptures"`
	GoldMines      int     `json:"goldMineCaptures"`
	SkinKey        string  `json:"skinKey"`
	Winner         bool    `json:"winner"`
	WentAFK        bool    `json:"wentAfk"`
	Items          []string `json:"items"`
}

// Participant is one player's presence in a match.
type Participant struct {
	ID     string
	Actor  string
	Region string
	Stats  ParticipantStats
	Player *Player
}

// RosterStats is the team-level scoreboard for one side of a match.
type RosterStats struct {
	AcesEarned       int     `json:"acesEarned"`
	Gold             float64 `json:"gold"`
	HeroKills        int     `json:"heroKills"`
	KrakenCaptures   int     `json:"krakenCaptures"`
	Side             string  `json:"side"`
	TurretKills      int     `json:"turretKills"`
	TurretsRemaining int     `json:"turretsRemaining"`
}

// Roster is one of the two teams in a match.
type Roster struct {
	ID           string
	Region       string
	Won          bool
	Stats        RosterStats
	Participants []*Participant
}

// Match is a single played game. The telemetry file is referenced by URL at
// construction and fetched only on demand.
type Match struct {
	ID            string
	CreatedAt     time.Time
	Duration      int // seconds
	GameMode      string
	Patch         string
	Region        string
	EndGameReason string
	Rosters       []*Roster
	Spectators    []*Participant

	telemetryURL string
	core         *core
	telemetry    *Telemetry
}

// TelemetryURL returns the provider-supplied location of the match's
// telemetry file.
func (m *Match) TelemetryURL() string {
	return m.telemetryURL
}

// PlayerNames returns the names of every known participant, team by team.
func (m *Match) PlayerNames() []string {
	var names []string
	for _, roster := range m.Rosters {
		for _, p := range roster.Participants {
			if p.Player != nil && p.Player.Name != "" {
				names = append(names, p.Player.Name)
			}
		}
	}
	return names
}

// GetTelemetry fetches the match's telemetry events. The first successful
// fetch is retained on the Match and returned by later calls without
// another request. Not safe for concurrent use on the same Match.
func (m *Match) GetTelemetry(ctx context.Context) (*Telemetry, error) {
	if m.telemetry != nil {
		return m.telemetry, nil
	}
	if m.telemetryURL == "" {
		return nil, &APIError{Kind: KindNotFound, Message: "match has no telemetry asset"}
	}
	tel, err := m.core.fetchTelemetry(ctx, m.telemetryURL)
	if err != nil {
		return nil, err
	}
	m.telemetry = tel
	return tel, nil
}

// Telemetry is the ordered per-event log of one match.
type Telemetry struct {
	Events []TelemetryEvent
}

// TelemetryEvent is a single timestamped game event. Payload is kept raw;
// the event vocabulary is owned by the provider.
type TelemetryEvent struct {
	Time    eventTime       `json:"time"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// eventTime parses the timestamp layouts seen in telemetry files, which use
// either a Z suffix or a numeric zone offset.
type eventTime struct {
	time.Time
}

var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	iso8601,
}

func (t *eventTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	var lastErr error
	for _, layout := range eventTimeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}
