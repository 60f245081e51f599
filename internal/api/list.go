package api

import (
	"context"
	"strconv"
)

// ListParams are the paging and filter knobs shared by list endpoints.
// Page-based endpoints read Page; cursor-based ones read Last.
type ListParams struct {
	Query string
	Page  int
	Last  Cursor
	Limit int
	Extra QueryParams
}

// QueryParams renders p using queryKey as the name of the text filter.
func (p ListParams) QueryParams(queryKey string) QueryParams {
	params := QueryParams{}
	for k, v := range p.Extra {
		params[k] = v
	}
	if queryKey != "" && p.Query != "" {
		params[queryKey] = p.Query
	}
	if p.Page > 0 {
		params["page"] = strconv.Itoa(p.Page)
	}
	if p.Last != "" {
		params["last"] = p.Last.String()
	}
	if p.Limit > 0 {
		params["limit"] = strconv.Itoa(p.Limit)
	}
	return params
}

// ListPage fetches one page of T from path.
func ListPage[T any](ctx context.Context, c *Client, path string, params QueryParams) (*Page[T], error) {
	data, err := c.get(ctx, buildQuery(path, params))
	if err != nil {
		return nil, err
	}
	return decodePage[T](data)
}

// GetOne fetches a single T from path.
func GetOne[T any](ctx context.Context, c *Client, path string) (*T, error) {
	data, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeOne[T](data)
}
