package gamelocker

import "context"

// MatchPage is one fetched page of a match listing. Advancing replaces the
// page's contents in place; callers needing history must retain the Matches
// slice before advancing. A page is not safe for concurrent advancement.
type MatchPage struct {
	Matches []*Match

	links pageLinks
	core  *core
}

// HasNext reports whether the provider announced a further page.
func (p *MatchPage) HasNext() bool {
	return p.links.Next != ""
}

// Next advances to the next page, re-running the full request pipeline
// against the provider's opaque next link. It returns false with a nil
// error when the current page is the last one, leaving the page untouched.
func (p *MatchPage) Next(ctx context.Context) (bool, error) {
	return p.advance(ctx, p.links.Next)
}

// Prev moves to the previous page, returning false when the current page is
// the first one.
func (p *MatchPage) Prev(ctx context.Context) (bool, error) {
	return p.advance(ctx, p.links.Prev)
}

// First moves back to the first page of the result set.
func (p *MatchPage) First(ctx context.Context) (bool, error) {
	return p.advance(ctx, p.links.First)
}

// advance fetches the given pagination link verbatim. The link already
// encodes the original query; nothing is reconstructed locally.
func (p *MatchPage) advance(ctx context.Context, link string) (bool, error) {
	if link == "" {
		return false, nil
	}
	body, apiErr := p.core.do(ctx, link, nil)
	if apiErr != nil {
		return false, apiErr
	}
	matches, links, apiErr := parseMatchList(p.core, body)
	if apiErr != nil {
		return false, apiErr
	}
	p.Matches = matches
	p.links = links
	return true, nil
}
