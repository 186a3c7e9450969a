// ABOUTME: Credential store for the orchestra CLI
// ABOUTME: Persists the bearer token and cached principal in the XDG config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/enochcodes/orchestra/cli/internal/client"
)

// Store persists the session credential and cached principal on disk.
// It is the only piece of state shared across CLI invocations.
type Store struct {
	configDir string
}

type sessionData struct {
	Token string       `json:"token"`
	User  *client.User `json:"user,omitempty"`
}

// NewStore creates a store rooted at the given config directory.
func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "orchestra")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "orchestra")
}

// sessionFile returns the path to the session JSON.
func (s *Store) sessionFile() string {
	return filepath.Join(s.configDir, "session.json")
}

// Load reads the stored credential and principal from disk.
// A missing or corrupt file yields an empty session, not an error.
func (s *Store) Load() (token string, user *client.User, err error) {
	data, err := os.ReadFile(s.sessionFile())
	if os.IsNotExist(err) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}

	var sess sessionData
	if err := json.Unmarshal(data, &sess); err != nil {
		// Invalid JSON, start fresh
		return "", nil, nil
	}
	return sess.Token, sess.User, nil
}

// Save writes the credential and principal to disk. The file is owner
// readable only since it carries the bearer token.
func (s *Store) Save(token string, user *client.User) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sessionData{Token: token, User: user}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.sessionFile(), data, 0600)
}

// Clear removes the stored session entirely.
func (s *Store) Clear() error {
	err := os.Remove(s.sessionFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
