// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/enochcodes/orchestra/cli/internal/client"
	"github.com/enochcodes/orchestra/cli/internal/session"
	"github.com/enochcodes/orchestra/cli/internal/tui/applications"
	"github.com/enochcodes/orchestra/cli/internal/tui/clusters"
	"github.com/enochcodes/orchestra/cli/internal/tui/dashboard"
	"github.com/enochcodes/orchestra/cli/internal/tui/debuglog"
	"github.com/enochcodes/orchestra/cli/internal/tui/icons"
	"github.com/enochcodes/orchestra/cli/internal/tui/login"
	"github.com/enochcodes/orchestra/cli/internal/tui/menu"
	"github.com/enochcodes/orchestra/cli/internal/tui/servers"
	"github.com/enochcodes/orchestra/cli/internal/tui/styles"
	"github.com/enochcodes/orchestra/cli/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenMenu
	ScreenDashboard
	ScreenApplications
	ScreenClusters
	ScreenServers
	ScreenWizard
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// dashboardPollInterval matches the web console's monitoring refresh.
const dashboardPollInterval = 30 * time.Second

// restoredMsg is sent when the startup session restore finishes
type restoredMsg struct {
	err error
}

// loginResultMsg is sent when a login attempt completes
type loginResultMsg struct {
	err error
}

// dashboardLoadedMsg carries one monitoring snapshot
type dashboardLoadedMsg struct {
	metrics    []client.Metric
	components []client.Component
	activities []client.Activity
	err        error
}

// dashTickMsg drives the periodic dashboard refresh
type dashTickMsg struct {
	seq int
}

// appsLoadedMsg is sent when the application list is loaded
type appsLoadedMsg struct {
	apps []client.Application
	err  error
}

// clustersLoadedMsg is sent when the cluster list is loaded
type clustersLoadedMsg struct {
	clusters []client.Cluster
	err      error
}

// serversLoadedMsg is sent when the server list is loaded
type serversLoadedMsg struct {
	servers []client.Server
	err     error
}

// wizardDataMsg carries the frameworks and clusters the wizard needs
type wizardDataMsg struct {
	appTypes []client.AppType
	clusters []client.Cluster
	err      error
}

// deployResultMsg is sent when the wizard's create request completes
type deployResultMsg struct {
	app *client.Application
	err error
}

// redeployResultMsg is sent when a redeploy request completes
type redeployResultMsg struct {
	name string
	err  error
}

// App is the root model for the TUI
type App struct {
	session    *session.Manager
	client     *client.Client
	screen     Screen
	width      int
	height     int
	err        error
	restoring  bool
	lastUpdate time.Time
	tickSeq    int

	// Child models
	loginScreen  *login.Login
	menu         *menu.Menu
	dashboard    *dashboard.Dashboard
	appsScreen   *applications.Model
	clustersView *clusters.Model
	serversView  *servers.Model
	wizardScreen *wizard.Wizard
}

// New creates a new TUI application
func New(mgr *session.Manager) *App {
	return &App{
		session:     mgr,
		client:      mgr.Client(),
		screen:      ScreenLogin,
		restoring:   true,
		loginScreen: login.New(),
		menu:        menu.New(),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loginScreen.Init(), a.restoreSession())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dashboard != nil {
			a.dashboard.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.wizardScreen != nil {
			a.wizardScreen.SetWidth(msg.Width - 1)
		}
		a.forwardSize(msg)
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.restoring {
			return a, nil
		}
		return a.routeKey(msg)

	case restoredMsg:
		return a.handleRestored(msg)

	case login.SubmitMsg:
		return a, a.performLogin(msg.Email, msg.Password)

	case loginResultMsg:
		if msg.err != nil {
			return a, a.loginScreen.SetError(msg.err.Error())
		}
		a.err = nil
		a.screen = ScreenMenu
		a.menu = menu.New()
		return a, nil

	case menu.SelectedMsg:
		return a.handleMenuSelection(msg.Dest)

	case dashboardLoadedMsg:
		if a.unauthorized(msg.err) {
			return a.forceLogin()
		}
		if msg.err != nil {
			debuglog.Error("load dashboard", msg.err)
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.lastUpdate = time.Now()
		if a.dashboard != nil {
			a.dashboard.SetData(msg.metrics, msg.components, msg.activities)
		}
		return a, nil

	case dashTickMsg:
		// Stale ticks from a previous dashboard visit are dropped.
		if a.screen != ScreenDashboard || msg.seq != a.tickSeq {
			return a, nil
		}
		return a, tea.Batch(a.loadDashboard(), a.scheduleTick())

	case appsLoadedMsg:
		if a.unauthorized(msg.err) {
			return a.forceLogin()
		}
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.lastUpdate = time.Now()
		if a.appsScreen != nil {
			a.appsScreen.SetData(msg.apps)
		}
		return a, nil

	case clustersLoadedMsg:
		if a.unauthorized(msg.err) {
			return a.forceLogin()
		}
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.lastUpdate = time.Now()
		if a.clustersView != nil {
			a.clustersView.SetData(msg.clusters)
		}
		return a, nil

	case serversLoadedMsg:
		if a.unauthorized(msg.err) {
			return a.forceLogin()
		}
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.lastUpdate = time.Now()
		if a.serversView != nil {
			a.serversView.SetData(msg.servers)
		}
		return a, nil

	case wizardDataMsg:
		if a.unauthorized(msg.err) {
			return a.forceLogin()
		}
		if msg.err != nil {
			debuglog.Error("load wizard data", msg.err)
			a.err = msg.err
			a.screen = ScreenMenu
			return a, nil
		}
		a.err = nil
		a.wizardScreen = wizard.New(msg.appTypes, msg.clusters)
		a.wizardScreen.SetWidth(a.width - 1)
		a.screen = ScreenWizard
		return a, a.wizardScreen.Init()

	case wizard.CompleteMsg:
		if a.wizardScreen == nil {
			return a, nil
		}
		return a, tea.Batch(a.wizardScreen.SetSubmitting(true), a.deploy(msg.Request))

	case wizard.CancelledMsg:
		a.wizardScreen = nil
		a.screen = ScreenMenu
		return a, nil

	case deployResultMsg:
		// A result landing after the wizard was dismissed is dropped.
		if a.screen != ScreenWizard || a.wizardScreen == nil {
			return a, nil
		}
		if a.unauthorized(msg.err) {
			return a.forceLogin()
		}
		if msg.err != nil {
			debuglog.Error("deploy", msg.err)
			return a, a.wizardScreen.SetError(msg.err.Error())
		}
		a.wizardScreen = nil
		a.appsScreen = applications.New()
		a.appsScreen.SetNotice(fmt.Sprintf("%s deployed", msg.app.Name))
		a.screen = ScreenApplications
		return a, a.loadApplications()

	case applications.RedeployMsg:
		return a, a.redeploy(msg.ID, msg.Name)

	case redeployResultMsg:
		if a.unauthorized(msg.err) {
			return a.forceLogin()
		}
		if a.appsScreen == nil {
			return a, nil
		}
		if msg.err != nil {
			a.appsScreen.SetNotice("Redeploy failed: " + msg.err.Error())
			return a, nil
		}
		a.appsScreen.SetNotice(fmt.Sprintf("Redeploy of %s started", msg.name))
		return a, a.loadApplications()

	default:
		// Forward unknown messages to active form screens (needed for
		// huh and textinput internals).
		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenWizard:
			return a.updateWizard(msg)
		}
	}

	return a, nil
}

func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenLogin:
		return a.updateLogin(msg)
	case ScreenMenu:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		model, cmd := a.menu.Update(msg)
		a.menu = model.(*menu.Menu)
		return a, cmd
	case ScreenDashboard:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "r":
			return a, a.loadDashboard()
		case "b", "esc":
			return a.backToMenu()
		}
		return a, nil
	case ScreenApplications:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "r":
			return a, a.loadApplications()
		case "n":
			return a, a.loadWizardData()
		case "b", "esc":
			return a.backToMenu()
		}
		model, cmd := a.appsScreen.Update(msg)
		a.appsScreen = model.(*applications.Model)
		return a, cmd
	case ScreenClusters:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "r":
			return a, a.loadClusters()
		case "b", "esc":
			return a.backToMenu()
		}
		model, cmd := a.clustersView.Update(msg)
		a.clustersView = model.(*clusters.Model)
		return a, cmd
	case ScreenServers:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "r":
			return a, a.loadServers()
		case "b", "esc":
			return a.backToMenu()
		}
		model, cmd := a.serversView.Update(msg)
		a.serversView = model.(*servers.Model)
		return a, cmd
	case ScreenWizard:
		return a.updateWizard(msg)
	}
	return a, nil
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.loginScreen == nil {
		return a, nil
	}
	model, cmd := a.loginScreen.Update(msg)
	a.loginScreen = model.(*login.Login)
	return a, cmd
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wizardScreen == nil {
		return a, nil
	}
	model, cmd := a.wizardScreen.Update(msg)
	a.wizardScreen = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) forwardSize(msg tea.WindowSizeMsg) {
	if a.loginScreen != nil {
		a.loginScreen.Update(msg)
	}
	if a.menu != nil {
		a.menu.Update(msg)
	}
	if a.appsScreen != nil {
		a.appsScreen.Update(msg)
	}
	if a.clustersView != nil {
		a.clustersView.Update(msg)
	}
	if a.serversView != nil {
		a.serversView.Update(msg)
	}
}

func (a *App) handleRestored(msg restoredMsg) (tea.Model, tea.Cmd) {
	a.restoring = false
	if a.session.Authenticated() {
		a.screen = ScreenMenu
		return a, nil
	}
	a.screen = ScreenLogin
	if msg.err != nil && !errors.Is(msg.err, client.ErrUnauthorized) {
		return a, a.loginScreen.SetError(msg.err.Error())
	}
	if msg.err != nil {
		return a, a.loginScreen.SetError("Session expired. Sign in again.")
	}
	return a, nil
}

func (a *App) handleMenuSelection(dest menu.Destination) (tea.Model, tea.Cmd) {
	a.err = nil
	switch dest {
	case menu.DestDashboard:
		a.dashboard = dashboard.New(a.contentWidth(), a.contentHeight())
		a.screen = ScreenDashboard
		a.tickSeq++
		return a, tea.Batch(a.loadDashboard(), a.scheduleTick())

	case menu.DestApplications:
		a.appsScreen = applications.New()
		a.screen = ScreenApplications
		return a, a.loadApplications()

	case menu.DestClusters:
		a.clustersView = clusters.New()
		a.screen = ScreenClusters
		return a, a.loadClusters()

	case menu.DestServers:
		a.serversView = servers.New()
		a.screen = ScreenServers
		return a, a.loadServers()

	case menu.DestDeploy:
		return a, a.loadWizardData()

	case menu.DestLogout:
		a.session.Logout()
		a.loginScreen = login.New()
		a.screen = ScreenLogin
		return a, a.loginScreen.Init()
	}
	return a, nil
}

func (a *App) backToMenu() (tea.Model, tea.Cmd) {
	a.screen = ScreenMenu
	a.err = nil
	return a, nil
}

// forceLogin routes to the login screen after the session was rejected.
func (a *App) forceLogin() (tea.Model, tea.Cmd) {
	a.wizardScreen = nil
	a.loginScreen = login.New()
	a.screen = ScreenLogin
	return a, tea.Batch(
		a.loginScreen.Init(),
		a.loginScreen.SetError("Session expired. Sign in again."),
	)
}

func (a *App) unauthorized(err error) bool {
	return err != nil && errors.Is(err, client.ErrUnauthorized)
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	if a.restoring {
		content = styles.Subtitle.Render("Restoring session...")
		return a.wrapWithFrame(content)
	}

	switch a.screen {
	case ScreenLogin:
		content = a.loginScreen.View()
	case ScreenMenu:
		content = a.menu.View()
	case ScreenDashboard:
		content = a.viewDashboard()
	case ScreenApplications:
		content = a.viewPanel(a.appsScreen.View())
	case ScreenClusters:
		content = a.viewPanel(a.clustersView.View())
	case ScreenServers:
		content = a.viewPanel(a.serversView.View())
	case ScreenWizard:
		content = a.wizardScreen.View()
	default:
		content = a.menu.View()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewDashboard() string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: " + a.err.Error())
	}
	if a.dashboard == nil {
		return styles.Panel.Width(a.contentWidth()).Render("Loading...")
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.dashboard.View())
}

func (a *App) viewPanel(inner string) string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: " + a.err.Error())
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(inner)
}

// contentWidth calculates the width for the main content pane
func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - panelPadding
	}
	return a.width - panelPadding
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	// Header, newline, panel border+padding, newline, footer.
	return a.height - 8
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App, titleStyle.Render("Orchestra"))

	rightText := ""
	if user := a.session.Principal(); user != nil && a.session.Authenticated() {
		rightText = contextStyle.Render(fmt.Sprintf("%s %s", icons.User, user.Email)) + " "
	}

	leftRendered := lipgloss.NewStyle().Render(leftText)
	rightRendered := lipgloss.NewStyle().Align(lipgloss.Right).Render(rightText)

	leftWidth := lipgloss.Width(leftRendered)
	rightWidth := lipgloss.Width(rightRendered)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)

	header := "╭─" + leftRendered + fill + rightRendered + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"Enter Submit", "Ctrl+c Quit"}
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenDashboard:
		shortcuts = []string{"r Refresh", "b Back", "q Quit"}
	case ScreenApplications:
		shortcuts = []string{"n New", "d Redeploy", "r Refresh", "b Back", "q Quit"}
	case ScreenClusters, ScreenServers:
		shortcuts = []string{"r Refresh", "b Back", "q Quit"}
	case ScreenWizard:
		shortcuts = []string{"↑↓ Select", "Enter Confirm", "Esc Back"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.screen != ScreenLogin && a.screen != ScreenMenu && a.screen != ScreenWizard {
		elapsed := a.formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)

	footer := "╰─" + leftText + fill + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// restoreSession validates the persisted credential on startup
func (a *App) restoreSession() tea.Cmd {
	return func() tea.Msg {
		err := a.session.Restore(context.Background())
		return restoredMsg{err: err}
	}
}

func (a *App) performLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		err := a.session.Login(context.Background(), email, password)
		return loginResultMsg{err: err}
	}
}

// loadDashboard fetches one monitoring snapshot
func (a *App) loadDashboard() tea.Cmd {
	return func() tea.Msg {
		metrics, err := a.client.MonitoringOverview(context.Background())
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		components, err := a.client.MonitoringStatus(context.Background())
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		activities, err := a.client.Activities(context.Background())
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{metrics: metrics, components: components, activities: activities}
	}
}

func (a *App) scheduleTick() tea.Cmd {
	seq := a.tickSeq
	return tea.Tick(dashboardPollInterval, func(time.Time) tea.Msg {
		return dashTickMsg{seq: seq}
	})
}

func (a *App) loadApplications() tea.Cmd {
	return func() tea.Msg {
		apps, err := a.client.Applications(context.Background(), 0)
		return appsLoadedMsg{apps: apps, err: err}
	}
}

func (a *App) loadClusters() tea.Cmd {
	return func() tea.Msg {
		list, err := a.client.Clusters(context.Background())
		return clustersLoadedMsg{clusters: list, err: err}
	}
}

func (a *App) loadServers() tea.Cmd {
	return func() tea.Msg {
		list, err := a.client.Servers(context.Background())
		return serversLoadedMsg{servers: list, err: err}
	}
}

// loadWizardData fetches what the wizard needs before it opens
func (a *App) loadWizardData() tea.Cmd {
	return func() tea.Msg {
		appTypes, err := a.client.Frameworks(context.Background())
		if err != nil {
			return wizardDataMsg{err: err}
		}
		clusterList, err := a.client.Clusters(context.Background())
		if err != nil {
			return wizardDataMsg{err: err}
		}
		return wizardDataMsg{appTypes: appTypes, clusters: clusterList}
	}
}

func (a *App) deploy(req *client.CreateApplicationRequest) tea.Cmd {
	return func() tea.Msg {
		app, err := a.client.CreateApplication(context.Background(), req)
		return deployResultMsg{app: app, err: err}
	}
}

func (a *App) redeploy(id uint, name string) tea.Cmd {
	return func() tea.Msg {
		err := a.client.RedeployApplication(context.Background(), id)
		return redeployResultMsg{name: name, err: err}
	}
}

// Run starts the TUI
func Run(mgr *session.Manager) error {
	app := New(mgr)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
