// ABOUTME: Tests for the root model's screen routing
// ABOUTME: Drives Update with typed messages and asserts the resulting screen

package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/enochcodes/orchestra/cli/internal/client"
	"github.com/enochcodes/orchestra/cli/internal/session"
	"github.com/enochcodes/orchestra/cli/internal/tui/menu"
	"github.com/enochcodes/orchestra/cli/internal/tui/wizard"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	mgr := session.New(session.NewStore(t.TempDir()), "http://localhost:1")
	return New(mgr)
}

// step feeds one message through Update and keeps the concrete type.
func step(t *testing.T, a *App, msg tea.Msg) (*App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(msg)
	app, ok := model.(*App)
	if !ok {
		t.Fatalf("expected *App, got %T", model)
	}
	return app, cmd
}

func TestRestoreWithoutSessionStaysOnLogin(t *testing.T) {
	a := newTestApp(t)
	a, _ = step(t, a, restoredMsg{})

	if a.restoring {
		t.Error("restore should be finished")
	}
	if a.screen != ScreenLogin {
		t.Errorf("expected login screen, got %d", a.screen)
	}
}

func TestRestoreExpiredSessionShowsHint(t *testing.T) {
	a := newTestApp(t)
	a, cmd := step(t, a, restoredMsg{err: client.ErrUnauthorized})

	if a.screen != ScreenLogin {
		t.Errorf("expected login screen, got %d", a.screen)
	}
	if cmd == nil {
		t.Error("expected a command arming the login error")
	}
}

func TestLoginSuccessOpensMenu(t *testing.T) {
	a := newTestApp(t)
	a, _ = step(t, a, restoredMsg{})
	a, _ = step(t, a, loginResultMsg{})

	if a.screen != ScreenMenu {
		t.Errorf("expected menu screen, got %d", a.screen)
	}
}

func TestLoginFailureStaysOnLogin(t *testing.T) {
	a := newTestApp(t)
	a, _ = step(t, a, restoredMsg{})
	a, cmd := step(t, a, loginResultMsg{err: errors.New("invalid credentials")})

	if a.screen != ScreenLogin {
		t.Errorf("expected login screen, got %d", a.screen)
	}
	if cmd == nil {
		t.Error("expected a command rearming the login form")
	}
}

func TestMenuSelectionOpensClusters(t *testing.T) {
	a := newTestApp(t)
	a, _ = step(t, a, restoredMsg{})
	a, _ = step(t, a, loginResultMsg{})

	a, cmd := step(t, a, menu.SelectedMsg{Dest: menu.DestClusters})
	if a.screen != ScreenClusters {
		t.Errorf("expected clusters screen, got %d", a.screen)
	}
	if cmd == nil {
		t.Error("expected a load command")
	}

	a, _ = step(t, a, clustersLoadedMsg{clusters: []client.Cluster{
		{ID: 1, Name: "prod", Status: "active", CNIPlugin: "cilium"},
	}})
	if !strings.Contains(a.View(), "prod") {
		t.Error("expected loaded cluster in view")
	}
}

func TestUnauthorizedLoadForcesLogin(t *testing.T) {
	a := newTestApp(t)
	a, _ = step(t, a, restoredMsg{})
	a, _ = step(t, a, loginResultMsg{})
	a, _ = step(t, a, menu.SelectedMsg{Dest: menu.DestClusters})

	a, _ = step(t, a, clustersLoadedMsg{err: client.ErrUnauthorized})
	if a.screen != ScreenLogin {
		t.Errorf("expected forced login, got %d", a.screen)
	}
}

func TestLoadErrorShownInPanel(t *testing.T) {
	a := newTestApp(t)
	a, _ = step(t, a, restoredMsg{})
	a, _ = step(t, a, loginResultMsg{})
	a, _ = step(t, a, menu.SelectedMsg{Dest: menu.DestServers})

	a, _ = step(t, a, serversLoadedMsg{err: errors.New("cannot connect to backend")})
	if !strings.Contains(a.View(), "cannot connect to backend") {
		t.Error("expected the load error in the view")
	}

	a, _ = step(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if a.screen != ScreenMenu {
		t.Errorf("expected back to menu, got %d", a.screen)
	}
	if a.err != nil {
		t.Error("expected error cleared when leaving screen")
	}
}

func TestWizardOpensWithLoadedData(t *testing.T) {
	a := newTestApp(t)
	a, _ = step(t, a, restoredMsg{})
	a, _ = step(t, a, loginResultMsg{})

	a, _ = step(t, a, wizardDataMsg{
		appTypes: []client.AppType{{ID: "nodejs", Name: "Node.js"}},
		clusters: []client.Cluster{{ID: 1, Name: "prod"}},
	})
	if a.screen != ScreenWizard {
		t.Errorf("expected wizard screen, got %d", a.screen)
	}
	if a.wizardScreen == nil {
		t.Fatal("expected wizard model")
	}
}

func TestWizardDataErrorReturnsToMenu(t *testing.T) {
	a := newTestApp(t)
	a, _ = step(t, a, restoredMsg{})
	a, _ = step(t, a, loginResultMsg{})

	a, _ = step(t, a, wizardDataMsg{err: errors.New("boom")})
	if a.screen != ScreenMenu {
		t.Errorf("expected menu screen, got %d", a.screen)
	}
}

func TestWizardCancelReturnsToMenu(t *testing.T) {
	a := newTestApp(t)
	a, _ = step(t, a, restoredMsg{})
	a, _ = step(t, a, loginResultMsg{})
	a, _ = step(t, a, wizardDataMsg{clusters: []client.Cluster{{ID: 1, Name: "prod"}}})

	a, _ = step(t, a, wizard.CancelledMsg{})
	if a.screen != ScreenMenu {
		t.Errorf("expected menu screen, got %d", a.screen)
	}
	if a.wizardScreen != nil {
		t.Error("expected wizard discarded")
	}
}

func TestDeployResultAfterCancelIsDropped(t *testing.T) {
	a := newTestApp(t)
	a, _ = step(t, a, restoredMsg{})
	a, _ = step(t, a, loginResultMsg{})
	a, _ = step(t, a, wizardDataMsg{clusters: []client.Cluster{{ID: 1, Name: "prod"}}})
	a, _ = step(t, a, wizard.CancelledMsg{})

	a, cmd := step(t, a, deployResultMsg{app: &client.Application{Name: "web"}})
	if a.screen != ScreenMenu {
		t.Errorf("expected menu screen, got %d", a.screen)
	}
	if cmd != nil {
		t.Error("expected stale deploy result to be dropped")
	}
}

func TestDeploySuccessShowsApplications(t *testing.T) {
	a := newTestApp(t)
	a, _ = step(t, a, restoredMsg{})
	a, _ = step(t, a, loginResultMsg{})
	a, _ = step(t, a, wizardDataMsg{clusters: []client.Cluster{{ID: 1, Name: "prod"}}})

	a, cmd := step(t, a, deployResultMsg{app: &client.Application{ID: 7, Name: "web"}})
	if a.screen != ScreenApplications {
		t.Errorf("expected applications screen, got %d", a.screen)
	}
	if cmd == nil {
		t.Error("expected a reload command")
	}
	if !strings.Contains(a.View(), "web deployed") {
		t.Error("expected deploy notice in view")
	}
}

func TestStaleDashboardTickIgnored(t *testing.T) {
	a := newTestApp(t)
	a, _ = step(t, a, restoredMsg{})
	a, _ = step(t, a, loginResultMsg{})
	a, _ = step(t, a, menu.SelectedMsg{Dest: menu.DestDashboard})

	// Leaving the dashboard invalidates pending ticks.
	oldSeq := a.tickSeq
	a, _ = step(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})

	a, cmd := step(t, a, dashTickMsg{seq: oldSeq})
	if cmd != nil {
		t.Error("expected tick off the dashboard to be dropped")
	}

	a, _ = step(t, a, menu.SelectedMsg{Dest: menu.DestDashboard})
	a, cmd = step(t, a, dashTickMsg{seq: oldSeq})
	if cmd != nil {
		t.Error("expected tick with stale sequence to be dropped")
	}

	_, cmd = step(t, a, dashTickMsg{seq: a.tickSeq})
	if cmd == nil {
		t.Error("expected current tick to refresh")
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	a := newTestApp(t)
	a, _ = step(t, a, restoredMsg{})
	a, _ = step(t, a, loginResultMsg{})

	a, _ = step(t, a, menu.SelectedMsg{Dest: menu.DestLogout})
	if a.screen != ScreenLogin {
		t.Errorf("expected login screen, got %d", a.screen)
	}
	if a.session.Authenticated() {
		t.Error("expected session cleared")
	}
}
