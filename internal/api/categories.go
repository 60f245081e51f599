package api

import "context"

// --- Category Methods ---

// CategoriesPath is the cursor-based category search endpoint.
const CategoriesPath = "/v1/categories"

func (c *Client) SearchCategories(ctx context.Context, params ListParams) (*Page[Category], error) {
	params.Page = 0
	return ListPage[Category](ctx, c, CategoriesPath, params.QueryParams("name"))
}
