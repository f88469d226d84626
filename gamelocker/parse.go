package gamelocker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// The wire format is JSON:API: a "data" payload, an "included" side-payload
// of referenced resources, and pagination "links". Parsing resolves the
// included graph up front so returned objects need no further lookups
// except the explicit telemetry fetch.

type apiDocument struct {
	Data     json.RawMessage `json:"data"`
	Included []apiResource   `json:"included"`
	Links    pageLinks       `json:"links"`
}

type apiResource struct {
	Type          string                     `json:"type"`
	ID            string                     `json:"id"`
	Attributes    json.RawMessage            `json:"attributes"`
	Relationships map[string]apiRelationship `json:"relationships"`
}

type apiRelationship struct {
	Data json.RawMessage `json:"data"`
}

type apiRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// one decodes a to-one relationship. Absent or null relationships report
// ok=false rather than an error.
func (r apiRelationship) one() (apiRef, bool) {
	if len(r.Data) == 0 || bytes.Equal(r.Data, []byte("null")) {
		return apiRef{}, false
	}
	var ref apiRef
	if err := json.Unmarshal(r.Data, &ref); err != nil || ref.ID == "" {
		return apiRef{}, false
	}
	return ref, true
}

// many decodes a to-many relationship, treating absence as empty.
func (r apiRelationship) many() []apiRef {
	if len(r.Data) == 0 {
		return nil
	}
	var refs []apiRef
	if err := json.Unmarshal(r.Data, &refs); err != nil {
		return nil
	}
	return refs
}

// pageLinks carries the provider's opaque pagination URLs. An empty Next
// means the page is terminal.
type pageLinks struct {
	Self  string `json:"self"`
	Next  string `json:"next"`
	Prev  string `json:"prev"`
	First string `json:"first"`
}

// resourceIndex looks up included resources by id.
type resourceIndex map[string]apiResource

func indexIncluded(included []apiResource) resourceIndex {
	idx := make(resourceIndex, len(included))
	for _, res := range included {
		idx[res.ID] = res
	}
	return idx
}

// boolString tolerates the API's habit of encoding booleans as the strings
// "true"/"false" in some payloads.
type boolString bool

func (b *boolString) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", `"true"`:
		*b = true
	case "false", `"false"`, "null":
		*b = false
	default:
		return fmt.Errorf("unexpected boolean value %s", data)
	}
	return nil
}

func decodeDocument(body []byte) (*apiDocument, *APIError) {
	var doc apiDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, decodeError(err)
	}
	if len(doc.Data) == 0 {
		return nil, decodeError(fmt.Errorf("response has no data field"))
	}
	return &doc, nil
}

// parseMatchList decodes a match listing response into ordered Match
// objects plus the page links.
func parseMatchList(c *core, body []byte) ([]*Match, pageLinks, *APIError) {
	doc, apiErr := decodeDocument(body)
	if apiErr != nil {
		return nil, pageLinks{}, apiErr
	}

	var resources []apiResource
	if err := json.Unmarshal(doc.Data, &resources); err != nil {
		return nil, pageLinks{}, decodeError(err)
	}

	idx := indexIncluded(doc.Included)
	matches := make([]*Match, 0, len(resources))
	for _, res := range resources {
		match, apiErr := buildMatch(c, res, idx)
		if apiErr != nil {
			return nil, pageLinks{}, apiErr
		}
		matches = append(matches, match)
	}
	return matches, doc.Links, nil
}

// parseMatch decodes a single-match response.
func parseMatch(c *core, body []byte) (*Match, *APIError) {
	doc, apiErr := decodeDocument(body)
	if apiErr != nil {
		return nil, apiErr
	}
	var res apiResource
	if err := json.Unmarshal(doc.Data, &res); err != nil {
		return nil, decodeError(err)
	}
	return buildMatch(c, res, indexIncluded(doc.Included))
}

func buildMatch(c *core, res apiResource, idx resourceIndex) (*Match, *APIError) {
	if res.ID == "" {
		return nil, decodeError(fmt.Errorf("match resource has no id"))
	}

	var attrs struct {
		CreatedAt    string `json:"createdAt"`
		Duration     int    `json:"duration"`
		GameMode     string `json:"gameMode"`
		PatchVersion string `json:"patchVersion"`
		ShardID      string `json:"shardId"`
		Stats        struct {
			EndGameReason string `json:"endGameReason"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return nil, decodeError(fmt.Errorf("match %s: %w", res.ID, err))
	}
	createdAt, err := time.Parse(iso8601, attrs.CreatedAt)
	if err != nil {
		return nil, decodeError(fmt.Errorf("match %s has invalid createdAt %q", res.ID, attrs.CreatedAt))
	}

	match := &Match{
		ID:            res.ID,
		CreatedAt:     createdAt,
		Duration:      attrs.Duration,
		GameMode:      attrs.GameMode,
		Patch:         attrs.PatchVersion,
		Region:        attrs.ShardID,
		EndGameReason: attrs.Stats.EndGameReason,
		core:          c,
	}

	for _, ref := range res.Relationships["rosters"].many() {
		roster, apiErr := buildRoster(ref, idx)
		if apiErr != nil {
			return nil, apiErr
		}
		match.Rosters = append(match.Rosters, roster)
	}
	for _, ref := range res.Relationships["spectators"].many() {
		spectator, apiErr := buildParticipant(ref, idx)
		if apiErr != nil {
			return nil, apiErr
		}
		match.Spectators = append(match.Spectators, spectator)
	}

	// The first asset is the telemetry file reference.
	if assets := res.Relationships["assets"].many(); len(assets) > 0 {
		if asset, ok := idx[assets[0].ID]; ok {
			var assetAttrs struct {
				URL string `json:"URL"`
			}
			if err := json.Unmarshal(asset.Attributes, &assetAttrs); err != nil {
				return nil, decodeError(fmt.Errorf("match %s asset: %w", res.ID, err))
			}
			match.telemetryURL = assetAttrs.URL
		}
	}

	return match, nil
}

func buildRoster(ref apiRef, idx resourceIndex) (*Roster, *APIError) {
	res, ok := idx[ref.ID]
	if !ok {
		return nil, decodeError(fmt.Errorf("roster %s missing from included payload", ref.ID))
	}

	var attrs struct {
		ShardID string          `json:"shardId"`
		Won     boolString      `json:"won"`
		Stats   json.RawMessage `json:"stats"`
	}
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return nil, decodeError(fmt.Errorf("roster %s: %w", ref.ID, err))
	}

	roster := &Roster{
		ID:     res.ID,
		Region: attrs.ShardID,
		Won:    bool(attrs.Won),
	}
	if len(attrs.Stats) > 0 {
		if err := json.Unmarshal(attrs.Stats, &roster.Stats); err != nil {
			return nil, decodeError(fmt.Errorf("roster %s stats: %w", ref.ID, err))
		}
	}

	for _, pref := range res.Relationships["participants"].many() {
		participant, apiErr := buildParticipant(pref, idx)
		if apiErr != nil {
			return nil, apiErr
		}
		roster.Participants = append(roster.Participants, participant)
	}
	return roster, nil
}

func buildParticipant(ref apiRef, idx resourceIndex) (*Participant, *APIError) {
	res, ok := idx[ref.ID]
	if !ok {
		return nil, decodeError(fmt.Errorf("participant %s missing from included payload", ref.ID))
	}

	var attrs struct {
		Actor   string           `json:"actor"`
		ShardID string           `json:"shardId"`
		Stats   ParticipantStats `json:"stats"`
	}
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return nil, decodeError(fmt.Errorf("participant %s: %w", ref.ID, err))
	}

	participant := &Participant{
		ID:     res.ID,
		Actor:  attrs.Actor,
		Region: attrs.ShardID,
		Stats:  attrs.Stats,
	}

	// Resolve the player through the included payload when the API expanded
	// it; otherwise keep the bare reference.
	if pref, ok := res.Relationships["player"].one(); ok {
		if pres, found := idx[pref.ID]; found {
			player, apiErr := buildPlayer(pres)
			if apiErr != nil {
				return nil, apiErr
			}
			participant.Player = player
		} else {
			participant.Player = &Player{ID: pref.ID}
		}
	}
	return participant, nil
}

func buildPlayer(res apiResource) (*Player, *APIError) {
	if res.ID == "" {
		return nil, decodeError(fmt.Errorf("player resource has no id"))
	}
	player := &Player{ID: res.ID}
	if len(res.Attributes) == 0 {
		return player, nil
	}

	var attrs struct {
		Name    string `json:"name"`
		ShardID string `json:"shardId"`
		Stats   struct {
			Level        int            `json:"level"`
			XP           int            `json:"xp"`
			Wins         int            `json:"wins"`
			WinStreak    int            `json:"winStreak"`
			LossStreak   int            `json:"lossStreak"`
			LifetimeGold float64        `json:"lifetimeGold"`
			SkillTier    int            `json:"skillTier"`
			KarmaLevel   int            `json:"karmaLevel"`
			GuildTag     string         `json:"guildTag"`
			GamesPlayed  map[string]int `json:"gamesPlayed"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return nil, decodeError(fmt.Errorf("player %s: %w", res.ID, err))
	}

	player.Name = attrs.Name
	player.Region = attrs.ShardID
	player.Level = attrs.Stats.Level
	player.XP = attrs.Stats.XP
	player.Wins = attrs.Stats.Wins
	player.WinStreak = attrs.Stats.WinStreak
	player.LossStreak = attrs.Stats.LossStreak
	player.LifetimeGold = attrs.Stats.LifetimeGold
	player.SkillTier = attrs.Stats.SkillTier
	player.KarmaLevel = attrs.Stats.KarmaLevel
	player.GuildTag = attrs.Stats.GuildTag
	player.GamesPlayed = attrs.Stats.GamesPlayed
	return player, nil
}

// parsePlayerList decodes a players listing response, preserving order.
func parsePlayerList(body []byte) ([]*Player, *APIError) {
	doc, apiErr := decodeDocument(body)
	if apiErr != nil {
		return nil, apiErr
	}
	var resources []apiResource
	if err := json.Unmarshal(doc.Data, &resources); err != nil {
		return nil, decodeError(err)
	}
	players := make([]*Player, 0, len(resources))
	for _, res := range resources {
		player, apiErr := buildPlayer(res)
		if apiErr != nil {
			return nil, apiErr
		}
		players = append(players, player)
	}
	return players, nil
}

// parsePlayer decodes a single-player response.
func parsePlayer(body []byte) (*Player, *APIError) {
	doc, apiErr := decodeDocument(body)
	if apiErr != nil {
		return nil, apiErr
	}
	var res apiResource
	if err := json.Unmarshal(doc.Data, &res); err != nil {
		return nil, decodeError(err)
	}
	return buildPlayer(res)
}

// parseStatus decodes the status probe response.
func parseStatus(body []byte) (*Status, *APIError) {
	doc, apiErr := decodeDocument(body)
	if apiErr != nil {
		return nil, apiErr
	}
	var res struct {
		Attributes struct {
			ReleasedAt string `json:"releasedAt"`
			Version    string `json:"version"`
		} `json:"attributes"`
	}
	if err := json.Unmarshal(doc.Data, &res); err != nil {
		return nil, decodeError(err)
	}
	return &Status{ReleasedAt: res.Attributes.ReleasedAt, Version: res.Attributes.Version}, nil
}

// parseTelemetry decodes a telemetry file, which is a bare JSON array of
// events rather than a JSON:API document.
func parseTelemetry(body []byte) (*Telemetry, *APIError) {
	var events []TelemetryEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, decodeError(err)
	}
	return &Telemetry{Events: events}, nil
}
