// Package lobby keeps one lobby's chat in sync with the server. The
// engine polls for messages on a fixed interval, replaces its snapshot
// wholesale on every refresh, and refreshes immediately after a send
// so the sender sees their own message without waiting a full tick.
package lobby

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/smashmate/smashmate/pkg/api"
	"github.com/smashmate/smashmate/pkg/model"
)

// DefaultPollInterval is how often an open engine fetches messages.
const DefaultPollInterval = 2 * time.Second

// Engine drives a single lobby view. Create one per entered lobby and
// Close it when the user leaves the screen; an engine is not reusable.
//
// Callback fields must be set before Open and not changed after. They
// are invoked from the engine's goroutines without any lock held.
type Engine struct {
	api      *api.Client
	interval time.Duration

	mu       sync.RWMutex
	lobbyID  string
	lobby    *model.Lobby
	messages []model.Message
	input    string
	sending  bool
	opened   bool
	closed   bool

	cancel context.CancelFunc
	done   chan struct{}

	// OnLobby fires once when the lobby metadata has loaded.
	OnLobby func(*model.Lobby)
	// OnMessages fires after every successful refresh with the full
	// replacement snapshot.
	OnMessages func([]model.Message)
	// OnClosed fires when the lobby cannot be shown (metadata fetch
	// failed); the UI should navigate back.
	OnClosed func(error)
}

// NewEngine creates an engine for one lobby. interval <= 0 selects
// DefaultPollInterval.
func NewEngine(client *api.Client, lobbyID string, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Engine{
		api:      client,
		interval: interval,
		lobbyID:  lobbyID,
		done:     make(chan struct{}),
	}
}

// Open fetches the lobby metadata and the initial messages, then
// starts the poll loop. If the metadata fetch fails the engine closes
// itself and reports through OnClosed; the poll loop never starts.
func (e *Engine) Open(ctx context.Context) error {
	e.mu.Lock()
	if e.opened || e.closed {
		e.mu.Unlock()
		return nil
	}
	e.opened = true
	e.mu.Unlock()

	lobby, err := e.api.Lobby(ctx, e.lobbyID)
	if err != nil {
		slog.Error("lobby unavailable", "lobby", e.lobbyID, "error", err)
		e.mu.Lock()
		alreadyClosed := e.closed
		e.closed = true
		e.mu.Unlock()
		close(e.done)
		// Close may have run while the fetch was in flight; after it
		// returns, no callback may fire.
		if !alreadyClosed && e.OnClosed != nil {
			e.OnClosed(err)
		}
		return err
	}

	e.mu.Lock()
	if e.closed {
		// Closed while the metadata fetch was in flight.
		e.mu.Unlock()
		close(e.done)
		return nil
	}
	e.lobby = lobby
	e.mu.Unlock()
	if e.OnLobby != nil {
		e.OnLobby(lobby.Clone())
	}

	if err := e.RefreshMessages(ctx); err != nil {
		// Initial fetch failing is not fatal; the poll loop retries.
		slog.Warn("initial message fetch failed", "lobby", e.lobbyID, "error", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		cancel()
		close(e.done)
		return nil
	}
	e.cancel = cancel
	e.mu.Unlock()
	go e.pollLoop(ctx)
	return nil
}

func (e *Engine) pollLoop(ctx context.Context) {
	defer close(e.done)
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.RefreshMessages(ctx); err != nil && ctx.Err() == nil {
				slog.Warn("message poll failed", "lobby", e.lobbyID, "error", err)
			}
		}
	}
}

// RefreshMessages fetches the full message list and replaces the
// snapshot. The previous snapshot is kept on failure, so a flaky poll
// never blanks the chat.
func (e *Engine) RefreshMessages(ctx context.Context) error {
	msgs, err := e.api.Messages(ctx, e.lobbyID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.messages = msgs
	e.mu.Unlock()
	if e.OnMessages != nil {
		e.OnMessages(msgs)
	}
	return nil
}

// Lobby returns the loaded lobby metadata, or nil before Open finishes.
func (e *Engine) Lobby() *model.Lobby {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lobby.Clone()
}

// Messages returns the current snapshot.
func (e *Engine) Messages() []model.Message {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]model.Message, len(e.messages))
	copy(out, e.messages)
	return out
}

// SetInput stores the chat input draft.
func (e *Engine) SetInput(text string) {
	e.mu.Lock()
	e.input = text
	e.mu.Unlock()
}

// Input returns the current draft.
func (e *Engine) Input() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.input
}

// Sending reports whether a send is in flight. The UI disables the
// send control while this is true.
func (e *Engine) Sending() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sending
}

// SendMessage posts the current draft. A blank draft or an in-flight
// send is a silent no-op. On success the draft is cleared and the
// messages are refreshed immediately, outside the poll cadence. On
// failure the draft is kept so the user can retry.
func (e *Engine) SendMessage(ctx context.Context) error {
	e.mu.Lock()
	text := strings.TrimSpace(e.input)
	if text == "" || e.sending || e.closed {
		e.mu.Unlock()
		return nil
	}
	if err := model.ValidateMessage(text); err != nil {
		e.mu.Unlock()
		return err
	}
	e.sending = true
	e.mu.Unlock()

	err := e.api.SendMessage(ctx, e.lobbyID, text)

	e.mu.Lock()
	e.sending = false
	if err == nil {
		e.input = ""
	}
	e.mu.Unlock()

	if err != nil {
		slog.Warn("send failed", "lobby", e.lobbyID, "error", err)
		return err
	}
	return e.RefreshMessages(ctx)
}

// Close stops the poll loop and waits for it to exit. Safe to call
// more than once and safe to call on an engine that never opened.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	started := e.cancel != nil
	opened := e.opened
	e.mu.Unlock()

	if started {
		e.cancel()
		<-e.done
	} else if !opened {
		close(e.done)
	}
}

// Closed reports whether the engine has shut down.
func (e *Engine) Closed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.closed
}
