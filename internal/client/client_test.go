// ABOUTME: Tests for the API client
// ABOUTME: Covers auth header handling, 401 semantics, and error messages

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLoginParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("expected /auth/login, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"token": "tok-123",
			"expires_at": "2026-09-01T00:00:00Z",
			"user": {"id": 7, "email": "op@example.com", "display_name": "Op", "system_role": "admin"}
		}`))
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Login(context.Background(), "op@example.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token != "tok-123" {
		t.Errorf("expected token tok-123, got %s", resp.Token)
	}
	if resp.User.Email != "op@example.com" {
		t.Errorf("expected principal email, got %s", resp.User.Email)
	}
	if resp.User.SystemRole != "admin" {
		t.Errorf("expected system role admin, got %s", resp.User.SystemRole)
	}
}

func TestBearerHeaderAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"clusters": [], "count": 0}`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetCredentialSource(StaticToken("tok-abc"))

	if _, err := c.Clusters(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("expected Bearer tok-abc, got %q", gotAuth)
	}
}

func TestNoBearerHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"clusters": [], "count": 0}`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetCredentialSource(StaticToken(""))

	if _, err := c.Clusters(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestUnauthorizedInvokesHandlerOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		// A misleading body that must never be decoded into app state.
		w.Write([]byte(`{"clusters": [{"id": 99, "name": "ghost"}], "count": 1}`))
	}))
	defer server.Close()

	calls := 0
	c := New(server.URL)
	c.SetUnauthorizedHandler(func() { calls++ })

	clusters, err := c.Clusters(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if clusters != nil {
		t.Errorf("expected no data from a rejected response, got %v", clusters)
	}
	if calls != 1 {
		t.Errorf("expected handler called once, got %d", calls)
	}
}

func TestErrorMessageField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "cluster name taken", "error": "conflict"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Clusters(context.Background())
	if err == nil || err.Error() != "cluster name taken" {
		t.Errorf("expected message field, got %v", err)
	}
}

func TestErrorFieldFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "conflict"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Clusters(context.Background())
	if err == nil || err.Error() != "conflict" {
		t.Errorf("expected error field, got %v", err)
	}
}

func TestErrorBodyTextFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded\n"))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Clusters(context.Background())
	if err == nil || err.Error() != "upstream exploded" {
		t.Errorf("expected raw body text, got %v", err)
	}
}

func TestErrorStatusFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Clusters(context.Background())
	if err == nil || err.Error() != "Request failed: 418" {
		t.Errorf("expected generic status line, got %v", err)
	}
}

func TestCannotConnect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := New(server.URL)
	_, err := c.Clusters(context.Background())
	if err == nil {
		t.Fatal("expected connection error")
	}
	if !strings.HasPrefix(err.Error(), "cannot connect to backend") {
		t.Errorf("expected cannot connect error, got %v", err)
	}
}

func TestContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(server.URL)
	_, err := c.Clusters(ctx)
	if err == nil || err.Error() != "request canceled" {
		t.Errorf("expected request canceled, got %v", err)
	}
}

func TestApplicationsClusterFilter(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"applications": [], "count": 0}`))
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Applications(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "cluster_id=42" {
		t.Errorf("expected cluster_id=42, got %q", gotQuery)
	}

	if _, err := c.Applications(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("expected no query without a cluster filter, got %q", gotQuery)
	}
}

func TestRedeployPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	c := New(server.URL)
	if err := c.RedeployApplication(context.Background(), 12); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/applications/12/redeploy" {
		t.Errorf("unexpected path %q", gotPath)
	}
}
