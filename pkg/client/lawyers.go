package client

import (
	"context"
	"net/url"

	"github.com/turtacn/LexConnect/pkg/errors"
)

// LawyersClient reads and extends the lawyer roster.
type LawyersClient struct {
	client *Client
}

// ListOptions filters a roster listing.  Empty fields match everything.
type ListOptions struct {
	City           string
	Specialization string
}

// List returns roster entries matching opts.
func (c *LawyersClient) List(ctx context.Context, opts ListOptions) ([]Lawyer, error) {
	q := url.Values{}
	if city := c.client.city(opts.City); city != "" {
		q.Set("city", city)
	}
	if opts.Specialization != "" {
		q.Set("specialization", opts.Specialization)
	}
	path := "/lawyers"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out listResponse[Lawyer]
	if err := c.client.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Get returns one lawyer.
func (c *LawyersClient) Get(ctx context.Context, id string) (*Lawyer, error) {
	if id == "" {
		return nil, errors.InvalidParam("lawyer id is required")
	}
	var out Lawyer
	if err := c.client.get(ctx, "/lawyers/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a lawyer to the roster.
func (c *LawyersClient) Create(ctx context.Context, in NewLawyer) (*Lawyer, error) {
	var out Lawyer
	if err := c.client.post(ctx, "/lawyers", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Specializations lists the knowledge base categories.
func (c *LawyersClient) Specializations(ctx context.Context) ([]Specialization, error) {
	var out listResponse[Specialization]
	if err := c.client.get(ctx, "/specializations", &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

//Personal.AI order the ending
