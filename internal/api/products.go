package api

import (
	"context"
	"fmt"
)

// --- Product Methods ---

// ProductsPath is the page-based product search endpoint.
const ProductsPath = "/v1/products"

func (c *Client) SearchProducts(ctx context.Context, params ListParams) (*Page[Product], error) {
	return ListPage[Product](ctx, c, ProductsPath, params.QueryParams("name"))
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	return GetOne[Product](ctx, c, fmt.Sprintf("%s/%d", ProductsPath, id))
}
