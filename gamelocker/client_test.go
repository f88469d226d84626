package gamelocker

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key",
		WithBaseURL(server.URL+"/shards"),
		WithStatusURL(server.URL+"/status"),
	)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client, server
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		opts    []Option
		wantErr string
	}{
		{name: "valid", apiKey: "test-key"},
		{name: "missing API key", apiKey: "", wantErr: "API key is required"},
		{name: "unknown game", apiKey: "test-key", opts: []Option{WithGame("chess")}, wantErr: "unknown game"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiKey, tt.opts...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestClientOptions(t *testing.T) {
	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("test-key", WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.core.httpClient.Timeout)
		assert.True(t, client.core.ownsTransport)
	})

	t.Run("with external transport", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("test-key", WithHTTPClient(custom))
		require.NoError(t, err)
		assert.Equal(t, custom, client.core.httpClient)
		assert.False(t, client.core.ownsTransport, "shared transports are not owned")
	})

	t.Run("game selects base URLs", func(t *testing.T) {
		client, err := NewClient("test-key", WithGame(GameBattlerite))
		require.NoError(t, err)
		assert.Equal(t, battleriteBaseURL, client.core.baseURL)
		assert.Equal(t, battleriteStatusURL, client.core.statusURL)
	})
}

func TestGetMatches(t *testing.T) {
	var gotRequest *http.Request
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r
		w.Write([]byte(matchListFixture("", "m1", "m2", "m3")))
	}))

	page, err := client.GetMatches(context.Background(), MatchQuery{
		Region: "na",
		Limit:  3,
		After:  ISO("2017-11-22T20:34:58Z"),
	})
	require.NoError(t, err)

	require.NotNil(t, gotRequest)
	assert.Equal(t, "/shards/na/matches", gotRequest.URL.Path)
	assert.Equal(t, "Bearer test-key", gotRequest.Header.Get("Authorization"))
	assert.Equal(t, "application/vnd.api+json", gotRequest.Header.Get("Accept"))
	assert.Equal(t, "3", gotRequest.URL.Query().Get("page[limit]"))
	assert.Equal(t, "2017-11-22T20:34:58Z", gotRequest.URL.Query().Get("filter[createdAt-start]"))

	require.Len(t, page.Matches, 3)
	assert.False(t, page.HasNext())
}

func TestGetMatchesInvalidQuerySendsNothing(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := client.GetMatches(context.Background(), MatchQuery{
		Region: "na",
		After:  ISO("2017-12-01T00:00:00Z"),
		Before: ISO("2017-11-01T00:00:00Z"),
	})
	requireInvalidArgument(t, err)
	assert.Zero(t, requests, "no request may be issued for an invalid query")
}

func TestGetMatchesErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		header   http.Header
		wantKind ErrorKind
	}{
		{name: "unauthorized", status: 401, wantKind: KindUnauthorized},
		{name: "not found", status: 404, wantKind: KindNotFound},
		{name: "rate limited", status: 429, header: http.Header{"Retry-After": []string{"30"}}, wantKind: KindRateLimited},
		{name: "server error", status: 503, wantKind: KindServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for key, values := range tt.header {
					w.Header()[key] = values
				}
				w.WriteHeader(tt.status)
			}))

			_, err := client.GetMatches(context.Background(), MatchQuery{Region: "na"})
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			if tt.wantKind == KindRateLimited {
				assert.Equal(t, 30*time.Second, apiErr.RetryAfter)
			}
		})
	}
}

func TestNetworkErrorClassification(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	serverURL := server.URL
	server.Close() // connection refused from here on

	client, err := NewClient("test-key", WithBaseURL(serverURL+"/shards"))
	require.NoError(t, err)

	_, err = client.GetMatches(context.Background(), MatchQuery{Region: "na"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindNetworkError, apiErr.Kind)
	assert.Zero(t, apiErr.StatusCode)
	assert.Error(t, apiErr.Unwrap())
}

func TestPlayerByName(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shards/sg/players", r.URL.Path)
		assert.Equal(t, "Demolasher36", r.URL.Query().Get("filter[playerNames]"))
		w.Write([]byte(playerListFixture("Demolasher36")))
	}))

	player, err := client.PlayerByName(context.Background(), "Demolasher36", "sg")
	require.NoError(t, err)
	assert.Equal(t, "Demolasher36", player.Name)
	assert.Equal(t, "sg", player.Region)
}

func TestPlayerByNameNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))

	player, err := client.PlayerByName(context.Background(), "Demolasher36", "sg")
	assert.Nil(t, player, "an absent player is an error, not an empty Player")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
}

func TestGetPlayersCap(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(playerListFixture("a")))
	}))

	_, err := client.GetPlayers(context.Background(), "na", PlayerFilter{
		Names: []string{"a", "b", "c", "d", "e", "f", "g"},
	})
	requireInvalidArgument(t, err)
}

func TestMatchByID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shards/na/matches/m1", r.URL.Path)
		w.Write([]byte(matchFixture("m1", "")))
	}))

	match, err := client.MatchByID(context.Background(), "na", "m1")
	require.NoError(t, err)
	assert.Equal(t, "m1", match.ID)
	require.Len(t, match.Rosters, 2)
	assert.Equal(t, "https://cdn.gamelockerapp.com/telemetry/m1.json", match.TelemetryURL())
}

func TestStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		w.Write([]byte(statusFixture))
	}))

	status, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v7.10", status.Version)
}

func TestTelemetryFetchedOnce(t *testing.T) {
	telemetryHits := 0
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/telemetry/m1.json" {
			telemetryHits++
			assert.Empty(t, r.Header.Get("Authorization"), "telemetry CDN requests carry no API key")
			w.Write([]byte(telemetryFixture))
			return
		}
		// Point the match's telemetry asset back at this server
		data, included := matchResources("m1", 0, server.URL+"/telemetry/m1.json")
		fmt.Fprintf(w, `{"data": [%s], "included": [%s], "links": {}}`, data, strings.Join(included, ","))
	}))
	defer server.Close()

	client, err := NewClient("test-key", WithBaseURL(server.URL+"/shards"))
	require.NoError(t, err)
	defer client.Close()

	page, err := client.GetMatches(context.Background(), MatchQuery{Region: "na"})
	require.NoError(t, err)
	require.Len(t, page.Matches, 1)

	match := page.Matches[0]
	first, err := match.GetTelemetry(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Events, 3)

	second, err := match.GetTelemetry(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, telemetryHits, "telemetry is fetched at most once per match")
}
