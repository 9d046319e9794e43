package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/smashmate/smashmate/pkg/model"
)

// Lobby fetches one lobby's metadata.
func (c *Client) Lobby(ctx context.Context, lobbyID string) (*model.Lobby, error) {
	env, err := c.do(ctx, http.MethodGet, "/lobbies/"+url.PathEscape(lobbyID), nil, true)
	if err != nil {
		return nil, err
	}
	return env.Lobby, nil
}

// Messages fetches the full, server-ordered message list for a lobby.
func (c *Client) Messages(ctx context.Context, lobbyID string) ([]model.Message, error) {
	env, err := c.do(ctx, http.MethodGet, "/lobbies/"+url.PathEscape(lobbyID)+"/messages", nil, true)
	if err != nil {
		return nil, err
	}
	return env.Messages, nil
}

// SendMessage posts one chat message to a lobby.
func (c *Client) SendMessage(ctx context.Context, lobbyID, text string) error {
	body := map[string]string{"message": text}
	_, err := c.do(ctx, http.MethodPost, "/lobbies/"+url.PathEscape(lobbyID)+"/messages", body, true)
	return err
}

// MyLobbies lists the lobbies the current user belongs to.
func (c *Client) MyLobbies(ctx context.Context) ([]model.Lobby, error) {
	env, err := c.do(ctx, http.MethodGet, "/lobbies/my", nil, true)
	if err != nil {
		return nil, err
	}
	return env.Lobbies, nil
}

// OpenLobbies lists joinable lobbies.
func (c *Client) OpenLobbies(ctx context.Context) ([]model.Lobby, error) {
	env, err := c.do(ctx, http.MethodGet, "/lobbies/open", nil, true)
	if err != nil {
		return nil, err
	}
	return env.Lobbies, nil
}

// CreateLobby creates a lobby from the given form.
func (c *Client) CreateLobby(ctx context.Context, form model.LobbyForm) (*model.Lobby, error) {
	env, err := c.do(ctx, http.MethodPost, "/lobbies/create", form, true)
	if err != nil {
		return nil, err
	}
	return env.Lobby, nil
}

// JoinLobby joins an open lobby.
func (c *Client) JoinLobby(ctx context.Context, lobbyID string) error {
	_, err := c.do(ctx, http.MethodPost, "/lobbies/"+url.PathEscape(lobbyID)+"/join", nil, true)
	return err
}

// LeaveLobby leaves a lobby the current user is a member of.
func (c *Client) LeaveLobby(ctx context.Context, lobbyID string) error {
	_, err := c.do(ctx, http.MethodPost, "/lobbies/"+url.PathEscape(lobbyID)+"/leave", nil, true)
	return err
}

// DeleteLobby deletes a lobby; only its owner may do this.
func (c *Client) DeleteLobby(ctx context.Context, lobbyID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/lobbies/"+url.PathEscape(lobbyID), nil, true)
	return err
}

// InviteToLobby invites another user into a lobby.
func (c *Client) InviteToLobby(ctx context.Context, lobbyID, userID string) error {
	body := map[string]string{"userId": userID}
	_, err := c.do(ctx, http.MethodPost, "/lobbies/"+url.PathEscape(lobbyID)+"/invite", body, true)
	return err
}
