package client

import "context"

// Search runs a query against the search endpoint. The query is
// validated before anything reaches the wire; validation failures are
// returned directly and are never suppressed by the error mode.
func (c *Client) Search(ctx context.Context, q SearchQuery) (*Result, error) {
	params, err := q.Values()
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "search", params)
}

// SearchSimple searches with just a query string and paging values,
// leaving every other search option unset.
func (c *Client) SearchSimple(ctx context.Context, text string, start, perPage int) (*Result, error) {
	return c.Search(ctx, SearchQuery{
		Query:   text,
		Start:   start,
		PerPage: perPage,
	})
}
