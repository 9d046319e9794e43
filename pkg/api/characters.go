package api

import (
	"context"
	"net/http"
	"net/url"
)

// LikedCharacters returns the names of the characters the current user
// has liked.
func (c *Client) LikedCharacters(ctx context.Context) ([]string, error) {
	env, err := c.do(ctx, http.MethodGet, "/characters/likes/my", nil, true)
	if err != nil {
		return nil, err
	}
	return env.LikedCharacters, nil
}

// LikeCount returns the total like count for one character.
func (c *Client) LikeCount(ctx context.Context, name string) (int, error) {
	env, err := c.do(ctx, http.MethodGet, "/characters/"+url.PathEscape(name)+"/like", nil, true)
	if err != nil {
		return 0, err
	}
	return env.Count, nil
}

// ToggleLike toggles the current user's like on a character and reports
// the resulting state.
func (c *Client) ToggleLike(ctx context.Context, name string) (bool, error) {
	env, err := c.do(ctx, http.MethodPost, "/characters/"+url.PathEscape(name)+"/like", nil, true)
	if err != nil {
		return false, err
	}
	return env.Liked, nil
}
