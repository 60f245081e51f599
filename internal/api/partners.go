package api

import "context"

// --- Partner Methods ---

// PartnersPath is the page-based partner search endpoint.
const PartnersPath = "/v1/partners"

func (c *Client) SearchPartners(ctx context.Context, params ListParams) (*Page[Partner], error) {
	return ListPage[Partner](ctx, c, PartnersPath, params.QueryParams("name"))
}
