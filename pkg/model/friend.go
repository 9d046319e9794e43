package model

import "time"

// FriendRequest is a pending incoming friendship request.
type FriendRequest struct {
	ID        string    `json:"id"`
	From      UserRef   `json:"from"`
	CreatedAt time.Time `json:"createdAt"`
}

// FriendStatus is the relationship between the current user and another
// user, as reported by the friendship-check endpoint.
type FriendStatus struct {
	IsFriend          bool `json:"isFriend"`
	HasPendingRequest bool `json:"hasPendingRequest"`
}
