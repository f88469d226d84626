package gamelocker

import "context"

// Future is a pending result produced by the non-blocking client. It is
// completed exactly once; cancelling the context passed to the originating
// call aborts the in-flight request and completes the future with the
// cancellation error.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func promise[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		f.val, f.err = fn()
		close(f.done)
	}()
	return f
}

// Done is closed when the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Get blocks until the result is available and returns it. It may be called
// any number of times.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.val, f.err
}

// AsyncClient is the non-blocking API client. It exposes the same
// operations as Client over the same pipeline; each call returns
// immediately with a Future that completes when the round trip does. No
// operation spawns parallel work beyond its own round trip.
type AsyncClient struct {
	core *core
}

// NewAsyncClient creates a non-blocking client for the given API key.
func NewAsyncClient(apiKey string, opts ...Option) (*AsyncClient, error) {
	c, err := newCore(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &AsyncClient{core: c}, nil
}

// Close releases the client's transport, as for Client.Close.
func (c *AsyncClient) Close() {
	c.core.close()
}

// Status checks that the API is up and returns its release information.
func (c *AsyncClient) Status(ctx context.Context) *Future[*Status] {
	return promise(func() (*Status, error) {
		return c.core.status(ctx)
	})
}

// GetMatches lists matches satisfying the query.
func (c *AsyncClient) GetMatches(ctx context.Context, q MatchQuery) *Future[*MatchPage] {
	return promise(func() (*MatchPage, error) {
		return c.core.getMatches(ctx, q)
	})
}

// MatchByID fetches a single match from the given region shard.
func (c *AsyncClient) MatchByID(ctx context.Context, region, id string) *Future[*Match] {
	return promise(func() (*Match, error) {
		return c.core.matchByID(ctx, region, id)
	})
}

// GetPlayers looks up players by name or id, at most six of each per call.
func (c *AsyncClient) GetPlayers(ctx context.Context, region string, filter PlayerFilter) *Future[[]*Player] {
	return promise(func() ([]*Player, error) {
		return c.core.getPlayers(ctx, region, filter)
	})
}

// PlayerByName looks up a single player by their in-game name.
func (c *AsyncClient) PlayerByName(ctx context.Context, name, region string) *Future[*Player] {
	return promise(func() (*Player, error) {
		return c.core.playerByName(ctx, name, region)
	})
}

// PlayerByID looks up a single player by id.
func (c *AsyncClient) PlayerByID(ctx context.Context, region, id string) *Future[*Player] {
	return promise(func() (*Player, error) {
		return c.core.playerByID(ctx, region, id)
	})
}

// NextAsync is the non-blocking variant of MatchPage.Next.
func (p *MatchPage) NextAsync(ctx context.Context) *Future[bool] {
	return promise(func() (bool, error) {
		return p.Next(ctx)
	})
}

// TelemetryAsync is the non-blocking variant of Match.GetTelemetry.
func (m *Match) TelemetryAsync(ctx context.Context) *Future[*Telemetry] {
	return promise(func() (*Telemetry, error) {
		return m.GetTelemetry(ctx)
	})
}
