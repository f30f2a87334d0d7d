package client

import (
	"context"
	"strings"

	"github.com/turtacn/LexConnect/pkg/errors"
)

// CasesClient classifies problem descriptions.
type CasesClient struct {
	client *Client
}

type caseRequest struct {
	Description string `json:"description"`
	City        string `json:"city,omitempty"`
}

// Classify assigns description to a category and sub-specialty.
func (c *CasesClient) Classify(ctx context.Context, description, city string) (*Classification, error) {
	if strings.TrimSpace(description) == "" {
		return nil, errors.InvalidParam("description is required")
	}
	var out Classification
	if err := c.client.post(ctx, "/cases/classify", caseRequest{description, c.client.city(city)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analyze classifies description and ranks lawyers in city against it.  A
// blank city falls back to WithDefaultCity.
func (c *CasesClient) Analyze(ctx context.Context, description, city string) (*Analysis, error) {
	if strings.TrimSpace(description) == "" {
		return nil, errors.InvalidParam("description is required")
	}
	var out Analysis
	if err := c.client.post(ctx, "/cases/analyze", caseRequest{description, c.client.city(city)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
