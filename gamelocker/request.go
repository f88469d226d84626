package gamelocker

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// iso8601 is the timestamp layout the API accepts and emits.
	iso8601 = "2006-01-02T15:04:05Z"

	// maxPageLimit is the largest page[limit] the provider accepts.
	maxPageLimit = 50

	// maxPlayerFilters is the cap on ids/names in one players request.
	maxPlayerFilters = 6
)

// TimeArg is a time filter value that accepts either a structured time.Time
// or a pre-formatted ISO-8601 string. The zero value means unset.
type TimeArg struct {
	t   time.Time
	s   string
	set bool
}

// At builds a TimeArg from a structured time. It is normalized to UTC
// before transmission.
func At(t time.Time) TimeArg {
	return TimeArg{t: t, set: true}
}

// ISO builds a TimeArg from an ISO-8601 string such as
// "2017-11-22T20:34:58Z". The string is validated, not reformatted.
func ISO(s string) TimeArg {
	return TimeArg{s: s, set: true}
}

// IsZero reports whether the filter is unset.
func (a TimeArg) IsZero() bool {
	return !a.set
}

// normalize returns the wire representation and the parsed instant, used
// for window-order validation.
func (a TimeArg) normalize(field string) (string, time.Time, error) {
	if a.s != "" {
		t, err := time.Parse(iso8601, a.s)
		if err != nil {
			return "", time.Time{}, invalidArgument("%q is not a valid iso8601 timestamp for %q", a.s, field)
		}
		return a.s, t, nil
	}
	t := a.t.UTC()
	return t.Format(iso8601), t, nil
}

// MatchQuery holds the filters for a match listing request. The zero value
// of every field means the filter is omitted.
type MatchQuery struct {
	// Region is the shard to query. Required.
	Region string

	// Offset is the match number to start the page from.
	Offset int

	// Limit is the page size, at most 50. Zero leaves the provider default.
	Limit int

	// After and Before bound the match creation time. When both are set,
	// After must not be later than Before.
	After  TimeArg
	Before TimeArg

	// PlayerIDs and PlayerNames restrict results to matches containing the
	// given players.
	PlayerIDs   []string
	PlayerNames []string

	// GameModes restricts results to the given game-mode keys.
	GameModes []string
}

// params validates the query and produces the provider's query parameters.
// Validation failures are InvalidArgument errors and nothing is sent.
func (q MatchQuery) params(game Game) (url.Values, error) {
	if err := checkRegion(game, q.Region); err != nil {
		return nil, err
	}
	if q.Limit < 0 || q.Limit > maxPageLimit {
		return nil, invalidArgument("limit must be between 1 and %d, got %d", maxPageLimit, q.Limit)
	}
	if q.Offset < 0 {
		return nil, invalidArgument("offset must not be negative, got %d", q.Offset)
	}
	for _, mode := range q.GameModes {
		if _, ok := vaingloryGameModes[mode]; !ok && game == GameVainglory {
			return nil, invalidArgument("%q is not an accepted game mode", mode)
		}
	}

	params := url.Values{}
	if q.Offset > 0 {
		params.Set("page[offset]", strconv.Itoa(q.Offset))
	}
	if q.Limit > 0 {
		params.Set("page[limit]", strconv.Itoa(q.Limit))
	}

	var afterT, beforeT time.Time
	if !q.After.IsZero() {
		s, t, err := q.After.normalize("after")
		if err != nil {
			return nil, err
		}
		afterT = t
		params.Set("filter[createdAt-start]", s)
	}
	if !q.Before.IsZero() {
		s, t, err := q.Before.normalize("before")
		if err != nil {
			return nil, err
		}
		beforeT = t
		params.Set("filter[createdAt-end]", s)
	}
	if !q.After.IsZero() && !q.Before.IsZero() && afterT.After(beforeT) {
		return nil, invalidArgument("'after' must not be later than 'before'")
	}

	if len(q.PlayerNames) > 0 {
		params.Set("filter[playerNames]", strings.Join(q.PlayerNames, ","))
	}
	if len(q.PlayerIDs) > 0 {
		params.Set("filter[playerIds]", strings.Join(q.PlayerIDs, ","))
	}
	if len(q.GameModes) > 0 {
		params.Set("filter[gameModes]", strings.Join(q.GameModes, ","))
	}

	return params, nil
}

// PlayerFilter selects players for a batch lookup. At least one of Names or
// IDs is required; each is capped at six entries per request.
type PlayerFilter struct {
	Names []string
	IDs   []string
}

func (f PlayerFilter) params() (url.Values, error) {
	if len(f.Names) == 0 && len(f.IDs) == 0 {
		return nil, invalidArgument("one of the filters 'Names' or 'IDs' is required")
	}
	if len(f.Names) > maxPlayerFilters {
		return nil, invalidArgument("at most %d player names are allowed per request, got %d", maxPlayerFilters, len(f.Names))
	}
	if len(f.IDs) > maxPlayerFilters {
		return nil, invalidArgument("at most %d player ids are allowed per request, got %d", maxPlayerFilters, len(f.IDs))
	}

	params := url.Values{}
	if len(f.Names) > 0 {
		params.Set("filter[playerNames]", strings.Join(f.Names, ","))
	}
	if len(f.IDs) > 0 {
		params.Set("filter[playerIds]", strings.Join(f.IDs, ","))
	}
	return params, nil
}

func checkRegion(game Game, region string) error {
	if region == "" {
		return invalidArgument("region is required")
	}
	if _, ok := game.regions()[region]; !ok {
		return invalidArgument("%q is not an accepted region code for %s", region, game)
	}
	return nil
}
