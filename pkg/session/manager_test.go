package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/smashmate/smashmate/pkg/api"
	"github.com/smashmate/smashmate/pkg/model"
	"github.com/smashmate/smashmate/pkg/session"
	"github.com/smashmate/smashmate/pkg/store"
)

func testUser(id, name string) *model.User {
	return &model.User{ID: id, Username: name, Email: name + "@example.com"}
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

func newManager(t *testing.T, handler http.Handler) (*session.Manager, *store.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	creds := store.NewMemory()
	return session.NewManager(api.New(srv.URL, time.Second), creds), creds
}

func TestInitializeEmptyStore(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected with an empty store")
	}))

	if !m.Loading() {
		t.Error("manager should start loading")
	}
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if m.Loading() {
		t.Error("loading should be cleared after Initialize")
	}
	if m.Authenticated() {
		t.Error("empty store must leave the manager signed out")
	}
}

func TestInitializeRestoresAndRefreshesUser(t *testing.T) {
	m, creds := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok123" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		writeJSON(w, map[string]any{
			"success": true,
			"user":    map[string]string{"id": "u1", "username": "renamed", "email": "a@example.com"},
		})
	}))
	if err := creds.Save("tok123", testUser("u1", "a")); err != nil {
		t.Fatal(err)
	}

	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if got := m.User(); got == nil || got.Username != "renamed" {
		t.Errorf("user = %+v, want server copy adopted", got)
	}
	// The refreshed user is written back to the store.
	_, stored, err := creds.Load()
	if err != nil {
		t.Fatal(err)
	}
	if stored.Username != "renamed" {
		t.Errorf("stored username = %q, want renamed", stored.Username)
	}
}

func TestInitializeRejectedTokenSignsOut(t *testing.T) {
	m, creds := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	if err := creds.Save("stale", testUser("u1", "a")); err != nil {
		t.Fatal(err)
	}

	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if m.Authenticated() {
		t.Error("a 401 during verification must sign the user out")
	}
	if token, _, _ := creds.Load(); token != "" {
		t.Error("stored credentials must be cleared after a 401")
	}
}

func TestInitializeNetworkFailureKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	creds := store.NewMemory()
	if err := creds.Save("tok123", testUser("u1", "a")); err != nil {
		t.Fatal(err)
	}
	m := session.NewManager(api.New(srv.URL, time.Second), creds)

	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !m.Authenticated() {
		t.Error("an unreachable server must not log the user out")
	}
	if token, _, _ := creds.Load(); token != "tok123" {
		t.Error("stored credentials must survive a network failure")
	}
}

func TestLoginPersistsBeforeNotify(t *testing.T) {
	m, creds := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"success": true,
			"token":   "tok123",
			"user":    map[string]string{"id": "u1", "username": "a", "email": "a@example.com"},
		})
	}))

	var notified *model.User
	m.OnChange = func(u *model.User) {
		notified = u
		// By the time the UI hears about the session it is on disk.
		if token, _, _ := creds.Load(); token != "tok123" {
			t.Error("session not persisted before OnChange")
		}
	}

	if err := m.Login(context.Background(), "a@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if notified == nil || notified.ID != "u1" {
		t.Errorf("OnChange user = %+v", notified)
	}
	if m.Token() != "tok123" {
		t.Errorf("token = %q", m.Token())
	}
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	m, creds := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, map[string]any{"success": false, "error": "wrong password"})
	}))

	err := m.Login(context.Background(), "a@example.com", "nope")
	if err == nil || err.Error() != "wrong password" {
		t.Fatalf("Login error = %v, want server message", err)
	}
	if m.Authenticated() {
		t.Error("failed login must not create a session")
	}
	if creds.Saves() != 0 {
		t.Error("failed login must not touch the store")
	}
}

func TestRegisterValidatesUsernameLocally(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid username must be rejected before any request")
	}))

	err := m.Register(context.Background(), "no spaces", "a@example.com", "pw")
	if err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestUpdateProfile(t *testing.T) {
	desc := "Falco main since Melee"
	m, creds := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
			writeJSON(w, map[string]any{
				"success": true, "token": "tok123",
				"user": map[string]string{"id": "u1", "username": "a", "email": "a@example.com"},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/user/profile":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if diff := cmp.Diff(map[string]string{"description": desc}, body); diff != "" {
				t.Errorf("update body mismatch (-want +got):\n%s", diff)
			}
			writeJSON(w, map[string]any{
				"success": true,
				"user": map[string]any{
					"id": "u1", "username": "a", "email": "a@example.com",
					"description": desc,
				},
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))

	if err := m.Login(context.Background(), "a@example.com", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := m.UpdateProfile(context.Background(), model.ProfileUpdate{Description: &desc}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got := m.User(); got.Description == nil || *got.Description != desc {
		t.Errorf("user = %+v, want updated description", got)
	}
	if _, stored, _ := creds.Load(); stored.Description == nil {
		t.Error("updated user must be persisted")
	}
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a session")
	}))
	desc := "x"
	if err := m.UpdateProfile(context.Background(), model.ProfileUpdate{Description: &desc}); err != session.ErrNotAuthenticated {
		t.Errorf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	deleted := false
	m, creds := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
			writeJSON(w, map[string]any{
				"success": true, "token": "tok123",
				"user": map[string]string{"id": "u1", "username": "a", "email": "a@example.com"},
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/user/profile":
			deleted = true
			writeJSON(w, map[string]any{"success": true})
		}
	}))

	if err := m.Login(context.Background(), "a@example.com", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := m.DeleteAccount(context.Background()); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if !deleted {
		t.Error("server never saw the delete")
	}
	if m.Authenticated() {
		t.Error("deleting the account must sign the user out")
	}
	if token, _, _ := creds.Load(); token != "" {
		t.Error("stored credentials must be cleared")
	}
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	m, creds := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"success": true, "token": "tok123",
			"user": map[string]string{"id": "u1", "username": "a", "email": "a@example.com"},
		})
	}))
	if err := m.Login(context.Background(), "a@example.com", "pw"); err != nil {
		t.Fatal(err)
	}

	var got *model.User = testUser("sentinel", "sentinel")
	m.OnChange = func(u *model.User) { got = u }
	m.Logout()

	if m.Authenticated() {
		t.Error("Logout must clear the session")
	}
	if got != nil {
		t.Errorf("OnChange user = %+v, want nil", got)
	}
	if token, _, _ := creds.Load(); token != "" {
		t.Error("Logout must clear the store")
	}
	// Idempotent.
	m.Logout()
}
