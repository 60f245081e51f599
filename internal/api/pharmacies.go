package api

import (
	"context"
	"fmt"
)

// --- Pharmacy Methods ---

// PharmaciesPath is the cursor-based pharmacy search endpoint.
const PharmaciesPath = "/v1/pharmacies"

func (c *Client) SearchPharmacies(ctx context.Context, params ListParams) (*Page[Pharmacy], error) {
	params.Page = 0
	return ListPage[Pharmacy](ctx, c, PharmaciesPath, params.QueryParams("name"))
}

func (c *Client) GetPharmacy(ctx context.Context, id int64) (*Pharmacy, error) {
	return GetOne[Pharmacy](ctx, c, fmt.Sprintf("%s/%d", PharmaciesPath, id))
}
