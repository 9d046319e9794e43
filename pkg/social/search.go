// Package social covers the friend graph and user discovery.
package social

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/smashmate/smashmate/pkg/api"
	"github.com/smashmate/smashmate/pkg/model"
)

const (
	// DefaultDebounce is how long the searcher waits after the last
	// keystroke before querying the server.
	DefaultDebounce = 500 * time.Millisecond
	// MinQueryLength is the shortest query worth sending; anything
	// shorter clears the results instead.
	MinQueryLength = 2
)

// Searcher turns a stream of keystrokes into debounced user searches.
// Results from superseded queries are discarded, so the UI only ever
// sees results matching the latest input.
//
// OnResults must be set before the first SetQuery call. It fires with
// the query the results belong to and may be called from a background
// goroutine.
type Searcher struct {
	api      *api.Client
	debounce time.Duration

	mu     sync.Mutex
	seq    uint64
	timer  *time.Timer
	closed bool

	OnResults func(query string, users []model.UserRef)
}

// NewSearcher wires a searcher to the API client. debounce <= 0
// selects DefaultDebounce.
func NewSearcher(client *api.Client, debounce time.Duration) *Searcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Searcher{api: client, debounce: debounce}
}

// SetQuery records the latest input. A query shorter than
// MinQueryLength cancels any pending search and publishes empty
// results immediately; otherwise the search fires after the debounce
// window, restarted on every call.
func (s *Searcher) SetQuery(ctx context.Context, query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if len([]rune(query)) < MinQueryLength {
		s.mu.Unlock()
		if s.OnResults != nil {
			s.OnResults(query, nil)
		}
		return
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.run(ctx, seq, query)
	})
	s.mu.Unlock()
}

func (s *Searcher) run(ctx context.Context, seq uint64, query string) {
	users, err := s.api.SearchUsers(ctx, query)
	if err != nil {
		slog.Warn("user search failed", "query", query, "error", err)
		return
	}

	s.mu.Lock()
	stale := s.closed || seq != s.seq
	s.mu.Unlock()
	if stale {
		return
	}
	if s.OnResults != nil {
		s.OnResults(query, users)
	}
}

// Close cancels any pending search and silences future callbacks.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
