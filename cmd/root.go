// ABOUTME: Root command for the orchestra CLI
// ABOUTME: Handles global flags, configuration, and session setup

package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/enochcodes/orchestra/cli/internal/client"
	"github.com/enochcodes/orchestra/cli/internal/session"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8080/api/v1"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "orchestra",
	Short: "CLI for the Orchestra platform",
	Long: `orchestra is a command-line interface for the Orchestra infrastructure platform.

It manages clusters, servers, and application deployments against the Orchestra
backend, and ships an interactive terminal UI (orchestra ui).

Environment Variables:
  ORCHESTRA_API_URL  Backend API URL (default: http://localhost:8080/api/v1)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides ORCHESTRA_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("ORCHESTRA_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// errNotLoggedIn is reported by commands that need a valid session.
var errNotLoggedIn = errors.New("not logged in; run 'orchestra login' first")

// newSessionManager builds a session manager over the default config dir.
func newSessionManager() *session.Manager {
	return session.New(session.NewStore(session.DefaultConfigDir()), GetAPIURL())
}

// restoreSession validates the persisted credential and fails when the
// command has no authenticated session to work with.
func restoreSession(ctx context.Context) (*session.Manager, error) {
	mgr := newSessionManager()
	if err := mgr.Restore(ctx); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return nil, errNotLoggedIn
		}
		return nil, err
	}
	if !mgr.Authenticated() {
		return nil, errNotLoggedIn
	}
	return mgr, nil
}
