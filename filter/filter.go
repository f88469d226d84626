// Package filter compiles expression-language filters evaluated against
// fetched matches, for client-side narrowing of listing results.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/vgstats/vgstats/gamelocker"
)

// Filter is a compiled match filter.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression such as
//
//	Duration > 300 and GameMode == "ranked"
//	"Demolasher36" in Players
//	CreatedAt > DaysAgo(7)
//
// into an executable filter.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(environment(nil)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expression, err)
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one match.
func (f *Filter) Match(m *gamelocker.Match) (bool, error) {
	result, err := expr.Run(f.program, environment(m))
	if err != nil {
		return false, fmt.Errorf("filter evaluation failed: %w", err)
	}
	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter did not evaluate to a boolean")
	}
	return matched, nil
}

// Apply returns the matches satisfying the filter, preserving order.
func (f *Filter) Apply(matches []*gamelocker.Match) ([]*gamelocker.Match, error) {
	var kept []*gamelocker.Match
	for _, m := range matches {
		matched, err := f.Match(m)
		if err != nil {
			return nil, err
		}
		if matched {
			kept = append(kept, m)
		}
	}
	return kept, nil
}

// environment builds the evaluation environment for one match. A nil match
// produces the typed environment used at compile time.
func environment(m *gamelocker.Match) map[string]any {
	env := map[string]any{
		"ID":            "",
		"Duration":      0,
		"GameMode":      "",
		"Region":        "",
		"Patch":         "",
		"EndGameReason": "",
		"CreatedAt":     time.Time{},
		"Players":       []string{},
		"DaysAgo": func(days int) time.Time {
			return time.Now().UTC().AddDate(0, 0, -days)
		},
		"HoursAgo": func(hours int) time.Time {
			return time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
		},
	}
	if m != nil {
		env["ID"] = m.ID
		env["Duration"] = m.Duration
		env["GameMode"] = m.GameMode
		env["Region"] = m.Region
		env["Patch"] = m.Patch
		env["EndGameReason"] = m.EndGameReason
		env["CreatedAt"] = m.CreatedAt
		env["Players"] = m.PlayerNames()
	}
	return env
}
