package social_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/smashmate/smashmate/pkg/api"
	"github.com/smashmate/smashmate/pkg/model"
	"github.com/smashmate/smashmate/pkg/social"
)

type result struct {
	query string
	users []model.UserRef
}

func newSearcher(t *testing.T, debounce time.Duration, handler http.HandlerFunc) (*social.Searcher, chan result) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := api.New(srv.URL, time.Second)
	c.SetToken("tok123")
	s := social.NewSearcher(c, debounce)
	t.Cleanup(s.Close)
	results := make(chan result, 16)
	s.OnResults = func(query string, users []model.UserRef) {
		results <- result{query, users}
	}
	return s, results
}

func echoHandler(t *testing.T, queries *[]string, mu *sync.Mutex) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		mu.Lock()
		*queries = append(*queries, q)
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"users":   []map[string]string{{"id": "u-" + q, "username": q}},
		})
	}
}

func TestSearchDebouncesRapidTyping(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	s, results := newSearcher(t, 40*time.Millisecond, echoHandler(t, &queries, &mu))

	ctx := context.Background()
	// Simulate typing "falco" one keystroke at a time, faster than the
	// debounce window.
	for _, q := range []string{"fa", "fal", "falc", "falco"} {
		s.SetQuery(ctx, q)
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case got := <-results:
		if got.query != "falco" {
			t.Errorf("results for %q, want only the final query", got.query)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no results delivered")
	}

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(queries) != 1 || queries[0] != "falco" {
		t.Errorf("server saw queries %v, want just the last one", queries)
	}
}

func TestShortQueryClearsResultsWithoutRequest(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	s, results := newSearcher(t, 10*time.Millisecond, echoHandler(t, &queries, &mu))

	s.SetQuery(context.Background(), "f")
	select {
	case got := <-results:
		if got.users != nil {
			t.Errorf("users = %+v, want nil for a short query", got.users)
		}
	case <-time.After(time.Second):
		t.Fatal("short query must publish empty results immediately")
	}

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(queries) != 0 {
		t.Errorf("server saw %v, want no requests", queries)
	}
}

func TestShortQueryCancelsPendingSearch(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	s, results := newSearcher(t, 30*time.Millisecond, echoHandler(t, &queries, &mu))

	ctx := context.Background()
	s.SetQuery(ctx, "falco")
	s.SetQuery(ctx, "") // cleared the field before the debounce fired

	got := <-results
	if got.query != "" || got.users != nil {
		t.Errorf("result = %+v, want the cleared state", got)
	}

	time.Sleep(80 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(queries) != 0 {
		t.Errorf("server saw %v, want the pending search cancelled", queries)
	}
}

func TestStaleResultsDiscarded(t *testing.T) {
	// The first query's response is held until the second query's
	// response has been delivered, so it arrives stale.
	release := make(chan struct{})
	handler := func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		if q == "slow" {
			<-release
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"users":   []map[string]string{{"id": "u-" + q, "username": q}},
		})
	}

	s, results := newSearcher(t, 5*time.Millisecond, handler)

	ctx := context.Background()
	s.SetQuery(ctx, "slow")
	time.Sleep(20 * time.Millisecond) // let the slow search start
	s.SetQuery(ctx, "fast")

	got := <-results
	if got.query != "fast" {
		t.Fatalf("first delivery = %q, want fast", got.query)
	}
	close(release)

	select {
	case got := <-results:
		t.Errorf("stale results delivered: %+v", got)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestCloseSilencesSearcher(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	s, results := newSearcher(t, 20*time.Millisecond, echoHandler(t, &queries, &mu))

	s.SetQuery(context.Background(), "falco")
	s.Close()

	select {
	case got := <-results:
		t.Errorf("results after Close: %+v", got)
	case <-time.After(100 * time.Millisecond):
	}
	s.SetQuery(context.Background(), "fox") // no-op on a closed searcher
}
