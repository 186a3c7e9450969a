// ABOUTME: Tests for the navigation menu
// ABOUTME: Covers cursor movement and destination selection

package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNavigationBounds(t *testing.T) {
	m := New()

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor must not move above the first item, got %d", m.cursor)
	}

	for i := 0; i < 20; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor must stop at the last item, got %d", m.cursor)
	}
}

func TestEnterSelectsDestination(t *testing.T) {
	m := New()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected selection command")
	}
	msg, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", cmd())
	}
	if msg.Dest != DestApplications {
		t.Errorf("expected applications destination, got %s", msg.Dest)
	}
}

func TestViewListsAllDestinations(t *testing.T) {
	view := New().View()
	for _, want := range []string{"Dashboard", "Applications", "Clusters", "Servers", "New Deployment", "Log out"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDestinationString(t *testing.T) {
	if DestDeploy.String() != "New Deployment" {
		t.Errorf("unexpected name %q", DestDeploy.String())
	}
	if Destination(99).String() != "unknown" {
		t.Errorf("unexpected name for invalid destination")
	}
}
