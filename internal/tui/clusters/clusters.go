// ABOUTME: Clusters screen listing provisioned clusters in a table
// ABOUTME: Shows status badges and provisioning errors for the selection

package clusters

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

// Model is the clusters list screen.
type Model struct {
	clusters []client.Cluster
	table    table.Model
	loaded   bool
	width    int
}

// New creates an empty clusters screen.
func New() *Model {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Status", Width: 14},
		{Title: "CNI", Width: 12},
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

// SetData replaces the listed clusters.
func (m *Model) SetData(clusters []client.Cluster) {
	m.clusters = clusters
	m.loaded = true

	rows := make([]table.Row, 0, len(clusters))
	for _, c := range clusters {
		rows = append(rows, table.Row{c.Name, c.Status, c.CNIPlugin})
	}
	m.table.SetRows(rows)
}

// Selected returns the cluster under the cursor.
func (m *Model) Selected() (client.Cluster, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.clusters) {
		return client.Cluster{}, false
	}
	return m.clusters[i], true
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

	b.WriteString(styles.Title.Render(fmt.Sprintf("%s Clusters", icons.Cluster)))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(styles.Subtitle.Render("Loading clusters..."))
	case len(m.clusters) == 0:
		b.WriteString(styles.Subtitle.Render("No clusters provisioned yet."))
	default:
		b.WriteString(m.table.View())
		if c, ok := m.Selected(); ok {
			b.WriteString(fmt.Sprintf("\n\n  %s", widgets.StatusBadge(c.Status)))
			if c.ErrorMessage != "" {
				b.WriteString("\n  " + styles.ErrorText.Render(c.ErrorMessage))
			}
		}
	}

	b.WriteString("\n\n")
	b.WriteString(styles.Help.Render("r refresh"))

	return b.String()
}
