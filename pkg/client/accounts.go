package client

import "context"

// AccountsClient registers and authenticates users.
type AccountsClient struct {
	client *Client
}

// Register creates an account.
func (c *AccountsClient) Register(ctx context.Context, in Registration) (*User, error) {
	var out User
	if err := c.client.post(ctx, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login checks credentials and returns the account.
func (c *AccountsClient) Login(ctx context.Context, email, password string) (*User, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var out User
	if err := c.client.post(ctx, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
