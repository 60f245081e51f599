package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// Health calls /v1/health and returns its status string.
func (c *Client) Health(ctx context.Context) (string, error) {
	data, err := c.get(ctx, "/v1/health")
	if err != nil {
		return "", err
	}

	var payload struct {
		Status string `json:"status"`
		Data   struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if payload.Status != "" {
		return payload.Status, nil
	}
	return payload.Data.Status, nil
}
