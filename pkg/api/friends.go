package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/smashmate/smashmate/pkg/model"
)

// Friends lists the current user's friends.
func (c *Client) Friends(ctx context.Context) ([]model.UserRef, error) {
	env, err := c.do(ctx, http.MethodGet, "/friends/list", nil, true)
	if err != nil {
		return nil, err
	}
	return env.Friends, nil
}

// FriendRequests lists pending incoming friend requests.
func (c *Client) FriendRequests(ctx context.Context) ([]model.FriendRequest, error) {
	env, err := c.do(ctx, http.MethodGet, "/friends/requests/received", nil, true)
	if err != nil {
		return nil, err
	}
	return env.Requests, nil
}

// SendFriendRequest sends a friend request to another user.
func (c *Client) SendFriendRequest(ctx context.Context, toUserID string) error {
	body := map[string]string{"toUserId": toUserID}
	_, err := c.do(ctx, http.MethodPost, "/friends/request", body, true)
	return err
}

// AcceptFriendRequest accepts a pending request.
func (c *Client) AcceptFriendRequest(ctx context.Context, requestID string) error {
	_, err := c.do(ctx, http.MethodPost, "/friends/accept/"+url.PathEscape(requestID), nil, true)
	return err
}

// RejectFriendRequest rejects a pending request.
func (c *Client) RejectFriendRequest(ctx context.Context, requestID string) error {
	_, err := c.do(ctx, http.MethodPost, "/friends/reject/"+url.PathEscape(requestID), nil, true)
	return err
}

// FriendStatus reports the relationship with another user in one call.
func (c *Client) FriendStatus(ctx context.Context, userID string) (model.FriendStatus, error) {
	env, err := c.do(ctx, http.MethodGet, "/friends/check/"+url.PathEscape(userID), nil, true)
	if err != nil {
		return model.FriendStatus{}, err
	}
	return model.FriendStatus{
		IsFriend:          env.IsFriend,
		HasPendingRequest: env.HasPendingRequest,
	}, nil
}
