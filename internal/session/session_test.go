// ABOUTME: Tests for the session manager lifecycle
// ABOUTME: Covers restore, login, logout, and credential rejection

package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/enochcodes/orchestra/cli/internal/client"
)

func TestRestoreWithoutTokenCompletesImmediately(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued without a stored token")
	}))
	defer server.Close()

	m := New(NewStore(t.TempDir()), server.URL)
	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", m.State())
	}
}

func TestRestoreWithoutTokenKeepsCachedPrincipal(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save("", &client.User{ID: 1, Email: "cached@example.com"}); err != nil {
		t.Fatal(err)
	}

	m := New(store, "http://unused.invalid")
	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Authenticated() {
		t.Error("cached principal must not count as authenticated")
	}
	if p := m.Principal(); p == nil || p.Email != "cached@example.com" {
		t.Errorf("expected cached principal for display, got %v", p)
	}
}

func TestRestoreVerifiesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			t.Errorf("expected /auth/me, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected stored bearer, got %q", got)
		}
		w.Write([]byte(`{"id": 2, "email": "op@example.com"}`))
	}))
	defer server.Close()

	store := NewStore(t.TempDir())
	if err := store.Save("tok-1", nil); err != nil {
		t.Fatal(err)
	}

	m := New(store, server.URL)
	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Authenticated() {
		t.Fatalf("expected authenticated, got %s", m.State())
	}
	if p := m.Principal(); p == nil || p.Email != "op@example.com" {
		t.Errorf("expected verified principal, got %v", p)
	}
}

func TestRestoreRejectedTokenClearsStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := NewStore(t.TempDir())
	if err := store.Save("stale-tok", &client.User{ID: 9}); err != nil {
		t.Fatal(err)
	}

	m := New(store, server.URL)
	err := m.Restore(context.Background())
	if !errors.Is(err, client.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if m.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", m.State())
	}
	if m.Token() != "" {
		t.Error("token must be cleared after rejection")
	}
	if token, _, _ := store.Load(); token != "" {
		t.Errorf("store must be cleared after rejection, got %q", token)
	}
}

func TestLoginPersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"token": "tok-new", "user": {"id": 4, "email": "op@example.com"}}`))
		case "/auth/me":
			w.Write([]byte(`{"id": 4, "email": "op@example.com"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	m := New(NewStore(dir), server.URL)
	if err := m.Login(context.Background(), "op@example.com", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !m.Authenticated() {
		t.Fatal("expected authenticated after login")
	}

	// A fresh manager over the same store restores the session.
	m2 := New(NewStore(dir), server.URL)
	if err := m2.Restore(context.Background()); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !m2.Authenticated() {
		t.Error("expected restored session to be authenticated")
	}
}

func TestLoginFailureLeavesStoreUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "invalid credentials"}`))
	}))
	defer server.Close()

	store := NewStore(t.TempDir())
	if err := store.Save("existing-tok", nil); err != nil {
		t.Fatal(err)
	}

	m := New(store, server.URL)
	err := m.Login(context.Background(), "op@example.com", "wrong")
	if err == nil || err.Error() != "invalid credentials" {
		t.Fatalf("expected backend message, got %v", err)
	}
	if m.Authenticated() {
		t.Error("failed login must not authenticate")
	}
	if token, _, _ := store.Load(); token != "existing-tok" {
		t.Errorf("store must be untouched on failed login, got %q", token)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save("tok", &client.User{ID: 1}); err != nil {
		t.Fatal(err)
	}

	m := New(store, "http://unused.invalid")
	m.Logout()

	if m.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", m.State())
	}
	if m.Principal() != nil {
		t.Error("principal must be cleared on logout")
	}
	if token, _, _ := store.Load(); token != "" {
		t.Error("store must be cleared on logout")
	}
}

func TestRejectedRequestInvalidatesSession(t *testing.T) {
	authorized := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			w.Write([]byte(`{"id": 5, "email": "op@example.com"}`))
		default:
			if !authorized {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"clusters": [], "count": 0}`))
		}
	}))
	defer server.Close()

	store := NewStore(t.TempDir())
	if err := store.Save("tok", nil); err != nil {
		t.Fatal(err)
	}

	m := New(store, server.URL)
	if err := m.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Token expires server-side; the next request invalidates the session.
	authorized = false
	_, err := m.Client().Clusters(context.Background())
	if !errors.Is(err, client.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if m.Authenticated() {
		t.Error("session must be invalidated after a rejected request")
	}
	if token, _, _ := store.Load(); token != "" {
		t.Error("store must be cleared after a rejected request")
	}
}

func TestConcurrentRejectionsInvalidateOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/me" {
			w.Write([]byte(`{"id": 5, "email": "op@example.com"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := NewStore(t.TempDir())
	if err := store.Save("tok", nil); err != nil {
		t.Fatal(err)
	}

	m := New(store, server.URL)
	if err := m.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}

	// A burst of in-flight requests all come back 401 at once.
	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Client().Clusters(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if !errors.Is(err, client.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	}
	if m.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", m.State())
	}
	if m.Principal() != nil {
		t.Error("principal must be cleared after rejection")
	}
	if token, _, _ := store.Load(); token != "" {
		t.Errorf("store must be cleared after rejection, got %q", token)
	}

	// An already-invalidated session must not clear the store again:
	// a credential written afterwards survives further rejections.
	if err := store.Save("next-login", nil); err != nil {
		t.Fatal(err)
	}
	_, _ = m.Client().Clusters(context.Background())
	if token, _, _ := store.Load(); token != "next-login" {
		t.Errorf("late rejection must not clear a newer credential, got %q", token)
	}
}
