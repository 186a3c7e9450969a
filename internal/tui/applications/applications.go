// ABOUTME: Applications screen listing deployed applications in a table
// ABOUTME: Supports triggering a redeploy of the selected application

package applications

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/enochcodes/orchestra/cli/internal/client"
	"github.com/enochcodes/orchestra/cli/internal/tui/icons"
	"github.com/enochcodes/orchestra/cli/internal/tui/styles"
	"github.com/enochcodes/orchestra/cli/internal/tui/widgets"
)

// RedeployMsg asks the app to redeploy the selected application.
type RedeployMsg struct {
	ID   uint
	Name string
}

// Model is the applications list screen.
type Model struct {
	apps   []client.Application
	table  table.Model
	loaded bool
	notice string
	width  int
}

// New creates an empty applications screen.
func New() *Model {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Cluster", Width: 16},
		{Title: "Source", Width: 12},
		{Title: "Status", Width: 12},
		{Title: "Created", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	return &Model{table: t}
}

func tableStyles() table.Styles {
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
	return s
}

// SetData replaces the listed applications.
func (m *Model) SetData(apps []client.Application) {
	m.apps = apps
	m.loaded = true
	m.notice = ""

	rows := make([]table.Row, 0, len(apps))
	for _, app := range apps {
		cluster := strconv.FormatUint(uint64(app.ClusterID), 10)
		if app.Cluster != nil {
			cluster = app.Cluster.Name
		}
		rows = append(rows, table.Row{
			app.Name,
			cluster,
			app.SourceType,
			app.Status,
			app.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	m.table.SetRows(rows)
}

// SetNotice shows a transient message under the table.
func (m *Model) SetNotice(msg string) {
	m.notice = msg
}

// Selected returns the application under the cursor.
func (m *Model) Selected() (client.Application, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.apps) {
		return client.Application{}, false
	}
	return m.apps[i], true
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "d" {
			if app, ok := m.Selected(); ok {
				return m, func() tea.Msg {
					return RedeployMsg{ID: app.ID, Name: app.Name}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(fmt.Sprintf("%s Applications", icons.App)))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(styles.Subtitle.Render("Loading applications..."))
	case len(m.apps) == 0:
		b.WriteString(styles.Subtitle.Render("No applications deployed yet."))
	default:
		b.WriteString(m.table.View())
		b.WriteString("\n")
		if app, ok := m.Selected(); ok {
			b.WriteString(fmt.Sprintf("\n  %s %s\n", widgets.StatusBadge(app.Status), sourceDetail(app)))
		}
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(styles.Subtitle.Render(m.notice))
	}

	b.WriteString("\n")
	b.WriteString(styles.Help.Render("n new • d redeploy • r refresh"))

	return b.String()
}

func sourceDetail(app client.Application) string {
	switch app.SourceType {
	case "git":
		return fmt.Sprintf("%s %s @ %s", icons.Git, app.RepoURL, app.Branch)
	case "docker_image":
		return fmt.Sprintf("%s %s", icons.Docker, app.DockerImage)
	case "manual":
		return fmt.Sprintf("%s %s", icons.Folder, app.ManualPath)
	default:
		return app.SourceType
	}
}
