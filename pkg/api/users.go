package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/smashmate/smashmate/pkg/model"
)

// SearchUsers searches the user directory by (partial) username.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]model.UserRef, error) {
	path := "/user/search?query=" + url.QueryEscape(query)
	env, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}
	return env.Users, nil
}

// PublicProfile fetches another user's public profile.
func (c *Client) PublicProfile(ctx context.Context, userID string) (*model.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/profile/"+url.PathEscape(userID), nil, true)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}
