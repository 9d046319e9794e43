// Package api implements the REST client for the smashmate backend.
//
// Every response uses a uniform JSON envelope {success, ...payload|error};
// failures surface either as success:false with a message or as an HTTP
// status, with 401 being the one status the session layer treats as
// authoritative credential rejection.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smashmate/smashmate/pkg/model"
)

// DefaultTimeout bounds every request; the underlying transport default
// (no timeout at all) is never inherited silently.
const DefaultTimeout = 10 * time.Second

// Client is a thread-safe client for the smashmate REST API. The bearer
// token is owned by the session manager; everything else only reads it.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the given base URL (e.g. "https://host/api").
// A non-positive timeout falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs (or clears) the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the currently installed bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// validationIssue is one entry of a field-level validation failure list.
type validationIssue struct {
	Msg string `json:"msg"`
}

// envelope is the uniform response shape. Exactly one payload group is set
// per endpoint; the rest stay at their zero values.
type envelope struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Errors  []validationIssue `json:"errors"`

	Token    string          `json:"token"`
	User     *model.User     `json:"user"`
	Lobby    *model.Lobby    `json:"lobby"`
	Lobbies  []model.Lobby   `json:"lobbies"`
	Messages []model.Message `json:"messages"`

	Friends  []model.UserRef       `json:"friends"`
	Requests []model.FriendRequest `json:"requests"`
	Users    []model.UserRef       `json:"users"`

	IsFriend          bool `json:"isFriend"`
	HasPendingRequest bool `json:"hasPendingRequest"`

	LikedCharacters []string `json:"likedCharacters"`
	Count           int      `json:"count"`
	Liked           bool     `json:"liked"`
}

// message returns the server-supplied failure message, preferring the
// top-level error and falling back to the first field-level validation
// message (the register endpoint reports those).
func (e *envelope) message() string {
	if e.Error != "" {
		return e.Error
	}
	if len(e.Errors) > 0 {
		return e.Errors[0].Msg
	}
	return ""
}

// do performs one API exchange. body (if non-nil) is sent as JSON; auth
// adds the bearer header. The returned envelope always has Success true;
// every failure mode is mapped onto the error taxonomy in errors.go.
func (c *Client) do(ctx context.Context, method, path string, body any, auth bool) (*envelope, error) {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: %s %s: encode body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if auth {
		if token := c.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if decErr := json.NewDecoder(resp.Body).Decode(&env); decErr != nil {
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("api: %s %s: %w", method, path, ErrUnauthorized)
		}
		return nil, fmt.Errorf("api: %s %s: decode response: %w", method, path, decErr)
	}

	if !env.Success {
		return nil, &Error{Status: resp.StatusCode, Message: env.message()}
	}
	return &env, nil
}
