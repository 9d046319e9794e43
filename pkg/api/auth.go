package api

import (
	"context"
	"net/http"

	"github.com/smashmate/smashmate/pkg/model"
)

// Me verifies the installed bearer token and returns the current user.
// A definitive 401 surfaces as ErrUnauthorized.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil, true)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// Login exchanges credentials for a token and user record.
func (c *Client) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/auth/login", body, false)
	if err != nil {
		return "", nil, err
	}
	return env.Token, env.User, nil
}

// Register creates an account and returns a token and user record.
// Validation failures carry the server's first field-level message.
func (c *Client) Register(ctx context.Context, username, email, password string) (string, *model.User, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/auth/register", body, false)
	if err != nil {
		return "", nil, err
	}
	return env.Token, env.User, nil
}

// UpdateProfile applies a partial profile update and returns the full
// updated user record from the server.
func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.User, error) {
	env, err := c.do(ctx, http.MethodPut, "/user/profile", update, true)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// DeleteAccount permanently deletes the authenticated account.
func (c *Client) DeleteAccount(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/user/profile", nil, true)
	return err
}
