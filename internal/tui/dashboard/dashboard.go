// ABOUTME: Dashboard component displaying live platform metrics
// ABOUTME: Shows monitoring overview, component health, and recent activity

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/enochcodes/orchestra/cli/internal/client"
	"github.com/enochcodes/orchestra/cli/internal/tui/icons"
	"github.com/enochcodes/orchestra/cli/internal/tui/styles"
	"github.com/enochcodes/orchestra/cli/internal/tui/widgets"
)

// Dashboard displays the monitoring overview.
type Dashboard struct {
	metrics    []client.Metric
	components []client.Component
	activities []client.Activity
	loaded     bool
	width      int
	height     int
}

// New creates an empty dashboard awaiting data.
func New(width, height int) *Dashboard {
	return &Dashboard{
		width:  width,
		height: height,
	}
}

// SetData refreshes the dashboard with a new monitoring snapshot.
func (d *Dashboard) SetData(metrics []client.Metric, components []client.Component, activities []client.Activity) {
	d.metrics = metrics
	d.components = components
	d.activities = activities
	d.loaded = true
}

// SetSize updates the dashboard dimensions.
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if !d.loaded {
		return styles.Panel.Width(d.width).Render("Loading monitoring data...")
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Dashboard"))
	sb.WriteString("\n\n")

	if blocks := d.renderMetrics(); blocks != "" {
		sb.WriteString(blocks)
		sb.WriteString("\n\n")
	}

	if len(d.components) > 0 {
		sb.WriteString(styles.Subtitle.Render("Components"))
		sb.WriteString("\n")
		for _, c := range d.components {
			sb.WriteString(fmt.Sprintf("  %s %s\n", widgets.HealthBadge(c.Status, c.Healthy), c.Name))
		}
		sb.WriteString("\n")
	}

	if len(d.activities) > 0 {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s Recent activity", icons.Activity)))
		sb.WriteString("\n")
		for i, a := range d.activities {
			if i >= 8 {
				break
			}
			ts := styles.Help.Render(a.CreatedAt.Format("15:04"))
			sb.WriteString(fmt.Sprintf("  %s %s\n", ts, a.Message))
		}
	}

	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Render(sb.String())
}

// renderMetrics lays the overview metrics out as blocks, wrapping to a
// new row when the terminal is narrow.
func (d *Dashboard) renderMetrics() string {
	if len(d.metrics) == 0 {
		return ""
	}

	config := widgets.DefaultMetricBlockConfig()
	perRow := 1
	if config.Width > 0 && d.width > config.Width {
		perRow = d.width / (config.Width + 1)
	}
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	var row []string
	for _, m := range d.metrics {
		row = append(row, renderMetric(m, config))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return strings.Join(rows, "\n")
}

func renderMetric(m client.Metric, config widgets.MetricBlockConfig) string {
	icon := iconFor(m.Icon, m.Name)

	switch {
	case m.Unit == "%":
		return widgets.MetricBlockWithBar(icon, m.Name, m.Value, "", config)
	case len(m.History) > 0:
		return widgets.MetricBlockWithSparkline(icon, m.Name, formatValue(m), m.History, "", config)
	default:
		return widgets.MetricBlock(icon, m.Name, formatValue(m), "", config)
	}
}

func formatValue(m client.Metric) string {
	if m.Value == float64(int64(m.Value)) {
		if m.Unit != "" {
			return fmt.Sprintf("%d %s", int64(m.Value), m.Unit)
		}
		return fmt.Sprintf("%d", int64(m.Value))
	}
	if m.Unit != "" {
		return fmt.Sprintf("%.1f %s", m.Value, m.Unit)
	}
	return fmt.Sprintf("%.1f", m.Value)
}

// iconFor maps the backend's metric icon hints onto terminal icons.
func iconFor(hint, name string) icons.Icon {
	key := strings.ToLower(hint)
	if key == "" {
		key = strings.ToLower(name)
	}
	switch {
	case strings.Contains(key, "cpu"):
		return icons.Gauge
	case strings.Contains(key, "mem"):
		return icons.Chart
	case strings.Contains(key, "app"):
		return icons.App
	case strings.Contains(key, "cluster"):
		return icons.Cluster
	case strings.Contains(key, "server") || strings.Contains(key, "node"):
		return icons.Server
	case strings.Contains(key, "deploy"):
		return icons.Deploy
	case strings.Contains(key, "domain") || strings.Contains(key, "web"):
		return icons.Globe
	default:
		return icons.Info
	}
}
