// ABOUTME: Tests for the status command
// ABOUTME: Covers exit codes for healthy, degraded, and unauthenticated runs

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/enochcodes/orchestra/cli/internal/client"
	"github.com/enochcodes/orchestra/cli/internal/session"
)

var testUser = client.User{
	ID:          1,
	Email:       "ops@example.com",
	DisplayName: "Ops",
	SystemRole:  "admin",
}

// seedSession points the CLI at a temp config dir holding a saved session
// and at the given backend URL.
func seedSession(t *testing.T, backendURL string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	store := session.NewStore(filepath.Join(dir, "orchestra"))
	if err := store.Save("test-token", &testUser); err != nil {
		t.Fatal(err)
	}

	oldURL := apiURL
	apiURL = backendURL
	t.Cleanup(func() { apiURL = oldURL })
}

// emptyConfig points the CLI at a temp config dir with no saved session.
func emptyConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func withJSONOutput(t *testing.T) {
	t.Helper()
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })
}

// monitoringServer serves session restore plus a monitoring snapshot.
func monitoringServer(t *testing.T, healthy bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(testUser)
	})
	mux.HandleFunc("/monitoring/overview", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"metrics": []client.Metric{
				{Name: "CPU Usage", Value: 41.5, Unit: "%"},
				{Name: "Applications", Value: 12},
			},
		})
	})
	mux.HandleFunc("/monitoring/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"components": []client.Component{
				{Name: "api", Status: "running", Healthy: true},
				{Name: "ingress", Status: "crashloop", Healthy: healthy},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRunStatusNotLoggedIn(t *testing.T) {
	emptyConfig(t)

	var buf bytes.Buffer
	if code := runStatus(context.Background(), &buf); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "not logged in") {
		t.Errorf("expected login hint, got %q", buf.String())
	}
}

func TestRunStatusHealthy(t *testing.T) {
	srv := monitoringServer(t, true)
	seedSession(t, srv.URL)

	var buf bytes.Buffer
	if code := runStatus(context.Background(), &buf); code != 0 {
		t.Errorf("expected exit code 0, got %d: %s", code, buf.String())
	}

	out := buf.String()
	for _, want := range []string{"CPU Usage", "41.5 %", "api", "[ok]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "DEGRADED") {
		t.Error("healthy run should not report degradation")
	}
}

func TestRunStatusDegraded(t *testing.T) {
	srv := monitoringServer(t, false)
	seedSession(t, srv.URL)

	var buf bytes.Buffer
	if code := runStatus(context.Background(), &buf); code != 1 {
		t.Errorf("expected exit code 1, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "[DEGRADED]") {
		t.Errorf("expected degraded marker:\n%s", buf.String())
	}
}

func TestRunStatusJSON(t *testing.T) {
	srv := monitoringServer(t, false)
	seedSession(t, srv.URL)
	withJSONOutput(t)

	var buf bytes.Buffer
	if code := runStatus(context.Background(), &buf); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}

	var report struct {
		Metrics    []client.Metric    `json:"metrics"`
		Components []client.Component `json:"components"`
		Degraded   bool               `json:"degraded"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if !report.Degraded {
		t.Error("expected degraded flag set")
	}
	if len(report.Metrics) != 2 || len(report.Components) != 2 {
		t.Errorf("unexpected report sizes: %d metrics, %d components",
			len(report.Metrics), len(report.Components))
	}
}

func TestRunStatusBackendError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(testUser)
	})
	mux.HandleFunc("/monitoring/overview", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	seedSession(t, srv.URL)

	var buf bytes.Buffer
	if code := runStatus(context.Background(), &buf); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}
