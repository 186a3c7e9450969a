// ABOUTME: Tests for the on-disk credential store
// ABOUTME: Covers missing files, corrupt files, and roundtrips

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/enochcodes/orchestra/cli/internal/client"
)

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())

	token, user, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "" || user != nil {
		t.Errorf("expected empty session, got token=%q user=%v", token, user)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir)
	token, user, err := store.Load()
	if err != nil {
		t.Fatalf("corrupt file should not error: %v", err)
	}
	if token != "" || user != nil {
		t.Errorf("expected empty session from corrupt file, got token=%q", token)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "orchestra"))

	saved := &client.User{ID: 3, Email: "op@example.com", DisplayName: "Op"}
	if err := store.Save("tok-xyz", saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	token, user, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if token != "tok-xyz" {
		t.Errorf("expected token tok-xyz, got %q", token)
	}
	if user == nil || user.Email != "op@example.com" {
		t.Errorf("expected cached principal, got %v", user)
	}
}

func TestSavePermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := store.Save("tok", nil); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := store.Save("tok", nil); err != nil {
		t.Fatal(err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	token, _, _ := store.Load()
	if token != "" {
		t.Errorf("expected empty session after clear, got %q", token)
	}

	// Clearing an already-empty store is not an error.
	if err := store.Clear(); err != nil {
		t.Errorf("second clear failed: %v", err)
	}
}
