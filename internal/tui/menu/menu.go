// ABOUTME: Main navigation menu shown after login
// ABOUTME: Cursor list over the console's screens plus logout

package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/enochcodes/orchestra/cli/internal/tui/icons"
	"github.com/enochcodes/orchestra/cli/internal/tui/styles"
)

// Destination identifies a navigable screen.
type Destination int

const (
	DestDashboard Destination = iota
	DestApplications
	DestClusters
	DestServers
	DestDeploy
	DestLogout
)

// String returns the display name of a Destination.
func (d Destination) String() string {
	switch d {
	case DestDashboard:
		return "Dashboard"
	case DestApplications:
		return "Applications"
	case DestClusters:
		return "Clusters"
	case DestServers:
		return "Servers"
	case DestDeploy:
		return "New Deployment"
	case DestLogout:
		return "Log out"
	default:
		return "unknown"
	}
}

// SelectedMsg is sent when a destination is chosen.
type SelectedMsg struct {
	Dest Destination
}

type item struct {
	dest Destination
	icon icons.Icon
}

// Menu is the navigation menu model.
type Menu struct {
	items  []item
	cursor int
	width  int
}

var (
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E4E4E7"))
)

// New creates the menu with all destinations.
func New() *Menu {
	return &Menu{
		items: []item{
			{DestDashboard, icons.Gauge},
			{DestApplications, icons.App},
			{DestClusters, icons.Cluster},
			{DestServers, icons.Server},
			{DestDeploy, icons.Deploy},
			{DestLogout, icons.Quit},
		},
	}
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			dest := m.items[m.cursor].dest
			return m, func() tea.Msg { return SelectedMsg{Dest: dest} }
		}
	}

	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Orchestra"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Infrastructure control"))
	b.WriteString("\n\n")

	for i, it := range m.items {
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}
		b.WriteString(cursor + style.Render(fmt.Sprintf("%s %s", it.icon, it.dest)) + "\n")
	}

	return b.String()
}
