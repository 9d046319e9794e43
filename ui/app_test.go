package ui_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/smashmate/smashmate/pkg/api"
	"github.com/smashmate/smashmate/pkg/session"
	"github.com/smashmate/smashmate/pkg/store"
	"github.com/smashmate/smashmate/ui"
)

// chatServer implements just enough of the lobby endpoints to drive the
// shell's chat mode.
type chatServer struct {
	mu       sync.Mutex
	messages []map[string]any
}

func (s *chatServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		enc := json.NewEncoder(w)
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/lobbies/L1":
			_ = enc.Encode(map[string]any{
				"success": true,
				"lobby": map[string]any{
					"id": "L1", "name": "Friday brackets", "maxMembers": 8, "status": "open",
					"owner":   map[string]string{"id": "u1", "username": "alice"},
					"members": []map[string]string{{"id": "u1", "username": "alice"}},
				},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/lobbies/L1/messages":
			_ = enc.Encode(map[string]any{"success": true, "messages": s.messages})
		case r.Method == http.MethodPost && r.URL.Path == "/lobbies/L1/messages":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			s.messages = append(s.messages, map[string]any{
				"id":      fmt.Sprintf("m%d", len(s.messages)),
				"userId":  "u1", "username": "alice",
				"message": body["message"], "createdAt": "2026-03-14T12:00:00Z",
			})
			_ = enc.Encode(map[string]any{"success": true})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

// A chat session where the poll goroutine delivers snapshots while the
// main goroutine sends messages (each send triggers its own refresh).
// The two paths hit the shell's output and shown-message bookkeeping
// concurrently, so this doubles as a race detector workout.
func TestChatModeConcurrentSendsAndPolls(t *testing.T) {
	fake := &chatServer{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	var script strings.Builder
	script.WriteString("enter L1\n")
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&script, "message %d\n", i)
	}
	script.WriteString("/back\nquit\n")

	var out bytes.Buffer
	sess := session.NewManager(api.New(srv.URL, time.Second), store.NewMemory())
	app := ui.New(sess, api.New(srv.URL, time.Second),
		strings.NewReader(script.String()), &out,
		time.Millisecond, 10*time.Millisecond)

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "-- Friday brackets (1/8) --") {
		t.Errorf("output missing lobby banner:\n%s", got)
	}
	if !strings.Contains(got, "alice: message 49") {
		t.Errorf("output missing last sent message:\n%s", got)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.messages) != 50 {
		t.Errorf("server received %d messages, want 50", len(fake.messages))
	}
}
