package gamelocker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// core is the transport-agnostic request/response pipeline shared by the
// blocking and non-blocking clients. Every operation is a stateless
// request -> classify -> parse cycle; no session state is kept across calls.
type core struct {
	game          Game
	baseURL       string
	statusURL     string
	apiKey        string
	httpClient    *http.Client
	ownsTransport bool
	userAgent     string
	logger        zerolog.Logger
}

func newCore(apiKey string, opts ...Option) (*core, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gamelocker: API key is required")
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if !options.game.valid() {
		return nil, fmt.Errorf("gamelocker: unknown game %q", options.game)
	}

	c := &core{
		game:      options.game,
		baseURL:   options.baseURL,
		statusURL: options.statusURL,
		apiKey:    apiKey,
		userAgent: options.userAgent,
		logger:    options.logger,
	}
	if c.baseURL == "" {
		c.baseURL = options.game.baseURL()
	}
	if c.statusURL == "" {
		c.statusURL = options.game.statusURL()
	}

	if options.httpClient != nil {
		// An externally supplied transport may be shared with other
		// clients; its lifecycle belongs to the caller.
		c.httpClient = options.httpClient
	} else {
		c.httpClient = &http.Client{Timeout: options.timeout}
		c.ownsTransport = true
	}
	return c, nil
}

func (c *core) close() {
	if c.ownsTransport {
		c.httpClient.CloseIdleConnections()
		c.ownsTransport = false
	}
}

func (c *core) shardURL(region, endpoint string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, region, endpoint)
}

// do executes one authenticated GET against the given URL and returns the
// body of a successful response. Failures come back classified; the body of
// a non-2xx response is never parsed beyond its error detail.
func (c *core) do(ctx context.Context, rawURL string, params url.Values) ([]byte, *APIError) {
	return c.get(ctx, rawURL, params, true)
}

func (c *core) get(ctx context.Context, rawURL string, params url.Values, authed bool) ([]byte, *APIError) {
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, invalidArgument("failed to create request: %v", err)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/vnd.api+json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().Str("url", rawURL).Msg("gamelocker API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}

	if apiErr := classify(resp, body); apiErr != nil {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("kind", apiErr.Kind.String()).
			Msg("gamelocker API error")
		return nil, apiErr
	}
	return body, nil
}

func (c *core) status(ctx context.Context) (*Status, error) {
	body, apiErr := c.do(ctx, c.statusURL, nil)
	if apiErr != nil {
		return nil, apiErr
	}
	status, apiErr := parseStatus(body)
	if apiErr != nil {
		return nil, apiErr
	}
	return status, nil
}

func (c *core) getMatches(ctx context.Context, q MatchQuery) (*MatchPage, error) {
	params, err := q.params(c.game)
	if err != nil {
		return nil, err
	}
	body, apiErr := c.do(ctx, c.shardURL(q.Region, "matches"), params)
	if apiErr != nil {
		return nil, apiErr
	}
	matches, links, apiErr := parseMatchList(c, body)
	if apiErr != nil {
		return nil, apiErr
	}
	return &MatchPage{Matches: matches, links: links, core: c}, nil
}

func (c *core) matchByID(ctx context.Context, region, id string) (*Match, error) {
	if err := checkRegion(c.game, region); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, invalidArgument("match id is required")
	}
	body, apiErr := c.do(ctx, c.shardURL(region, "matches/"+id), nil)
	if apiErr != nil {
		return nil, apiErr
	}
	match, apiErr := parseMatch(c, body)
	if apiErr != nil {
		return nil, apiErr
	}
	return match, nil
}

func (c *core) getPlayers(ctx context.Context, region string, filter PlayerFilter) ([]*Player, error) {
	if err := checkRegion(c.game, region); err != nil {
		return nil, err
	}
	params, err := filter.params()
	if err != nil {
		return nil, err
	}
	body, apiErr := c.do(ctx, c.shardURL(region, "players"), params)
	if apiErr != nil {
		return nil, apiErr
	}
	players, apiErr := parsePlayerList(body)
	if apiErr != nil {
		return nil, apiErr
	}
	if len(players) == 0 {
		return nil, &APIError{Kind: KindNotFound, Message: "no players matched the given criteria"}
	}
	return players, nil
}

func (c *core) playerByName(ctx context.Context, name, region string) (*Player, error) {
	if name == "" {
		return nil, invalidArgument("player name is required")
	}
	players, err := c.getPlayers(ctx, region, PlayerFilter{Names: []string{name}})
	if err != nil {
		return nil, err
	}
	return players[0], nil
}

func (c *core) playerByID(ctx context.Context, region, id string) (*Player, error) {
	if err := checkRegion(c.game, region); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, invalidArgument("player id is required")
	}
	body, apiErr := c.do(ctx, c.shardURL(region, "players/"+id), nil)
	if apiErr != nil {
		return nil, apiErr
	}
	player, apiErr := parsePlayer(body)
	if apiErr != nil {
		return nil, apiErr
	}
	return player, nil
}

// fetchTelemetry downloads a telemetry file. Telemetry lives on a CDN that
// wants no API key, only a JSON accept header.
func (c *core) fetchTelemetry(ctx context.Context, rawURL string) (*Telemetry, error) {
	body, apiErr := c.get(ctx, rawURL, nil, false)
	if apiErr != nil {
		return nil, apiErr
	}
	tel, apiErr := parseTelemetry(body)
	if apiErr != nil {
		return nil, apiErr
	}
	return tel, nil
}

// Client is the blocking API client. Each operation runs the full pipeline
// on the calling goroutine.
type Client struct {
	core *core
}

// NewClient creates a blocking client for the given API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	c, err := newCore(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{core: c}, nil
}

// Close releases the client's transport. Transports supplied through
// WithHTTPClient are left alone; a self-created transport is closed exactly
// once.
func (c *Client) Close() {
	c.core.close()
}

// Status checks that the API is up and returns its release information.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	return c.core.status(ctx)
}

// GetMatches lists matches satisfying the query and returns the first page.
func (c *Client) GetMatches(ctx context.Context, q MatchQuery) (*MatchPage, error) {
	return c.core.getMatches(ctx, q)
}

// MatchByID fetches a single match from the given region shard.
func (c *Client) MatchByID(ctx context.Context, region, id string) (*Match, error) {
	return c.core.matchByID(ctx, region, id)
}

// GetPlayers looks up players by name or id, at most six of each per call.
func (c *Client) GetPlayers(ctx context.Context, region string, filter PlayerFilter) ([]*Player, error) {
	return c.core.getPlayers(ctx, region, filter)
}

// PlayerByName looks up a single player by their in-game name. A player
// that does not exist is a not-found error, never an empty Player.
func (c *Client) PlayerByName(ctx context.Context, name, region string) (*Player, error) {
	return c.core.playerByName(ctx, name, region)
}

// PlayerByID looks up a single player by id.
func (c *Client) PlayerByID(ctx context.Context, region, id string) (*Player, error) {
	return c.core.playerByID(ctx, region, id)
}
