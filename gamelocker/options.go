package gamelocker

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client or AsyncClient.
type Option func(*clientOptions)

// clientOptions holds configuration options applied at construction.
type clientOptions struct {
	game       Game
	baseURL    string
	statusURL  string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     zerolog.Logger
}

func defaultOptions() clientOptions {
	return clientOptions{
		game:    GameVainglory,
		timeout: 30 * time.Second,
		logger:  zerolog.Nop(),
	}
}

// WithGame selects which title the client talks to. The default is
// Vainglory.
func WithGame(game Game) Option {
	return func(o *clientOptions) {
		o.game = game
	}
}

// WithHTTPClient supplies an external transport. It may be shared with
// other clients or concurrent operations and is never closed by this
// library.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithTimeout sets the timeout of the self-created transport. Ignored when
// WithHTTPClient is used; configure timeouts on that transport instead.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithBaseURL overrides the shard base URL, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithStatusURL overrides the status endpoint URL, mainly for tests.
func WithStatusURL(statusURL string) Option {
	return func(o *clientOptions) {
		o.statusURL = statusURL
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}
