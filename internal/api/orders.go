package api

import (
	"context"
	"fmt"
)

// --- Order Methods ---

// OrdersPath is the page-based order search endpoint. Its text filter
// matches invoice numbers and customer names.
const OrdersPath = "/v1/orders"

func (c *Client) SearchOrders(ctx context.Context, params ListParams) (*Page[Order], error) {
	return ListPage[Order](ctx, c, OrdersPath, params.QueryParams("search"))
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*Order, error) {
	return GetOne[Order](ctx, c, fmt.Sprintf("%s/%d", OrdersPath, id))
}
