// ABOUTME: Servers screen listing registered machines in a table
// ABOUTME: Shows hardware facts and connection status for the selection

package servers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/enochcodes/orchestra/cli/internal/client"
	"github.com/enochcodes/orchestra/cli/internal/tui/icons"
	"github.com/enochcodes/orchestra/cli/internal/tui/styles"
	"github.com/enochcodes/orchestra/cli/internal/tui/widgets"
)

// Model is the servers list screen.
type Model struct {
	servers []client.Server
	table   table.Model
	loaded  bool
	width   int
}

// New creates an empty servers screen.
func New() *Model {
	columns := []table.Column{
		{Title: "Hostname", Width: 22},
		{Title: "IP", Width: 16},
		{Title: "Role", Width: 10},
		{Title: "Status", Width: 14},
		{Title: "Specs", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.Text).
		Background(styles.Surface).
		Bold(false)
	t.SetStyles(s)

	return &Model{table: t}
}

// SetData replaces the listed servers.
func (m *Model) SetData(servers []client.Server) {
	m.servers = servers
	m.loaded = true

	rows := make([]table.Row, 0, len(servers))
	for _, s := range servers {
		rows = append(rows, table.Row{s.Hostname, s.IP, s.Role, s.Status, specs(s)})
	}
	m.table.SetRows(rows)
}

func specs(s client.Server) string {
	if s.CPUCores == 0 && s.RAMBytes == 0 {
		return "-"
	}
	ramGB := float64(s.RAMBytes) / (1 << 30)
	return fmt.Sprintf("%d cores / %.0f GB", s.CPUCores, ramGB)
}

// Selected returns the server under the cursor.
func (m *Model) Selected() (client.Server, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.servers) {
		return client.Server{}, false
	}
	return m.servers[i], true
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(fmt.Sprintf("%s Servers", icons.Server)))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(styles.Subtitle.Render("Loading servers..."))
	case len(m.servers) == 0:
		b.WriteString(styles.Subtitle.Render("No servers registered yet."))
	default:
		b.WriteString(m.table.View())
		if s, ok := m.Selected(); ok {
			detail := fmt.Sprintf("%s %s@%s:%d", widgets.StatusBadge(s.Status), s.SSHUser, s.IP, s.SSHPort)
			if s.OS != "" {
				detail += fmt.Sprintf("  %s/%s", s.OS, s.Arch)
			}
			b.WriteString("\n\n  " + detail)
		}
	}

	b.WriteString("\n\n")
	b.WriteString(styles.Help.Render("r refresh"))

	return b.String()
}
