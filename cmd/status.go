// ABOUTME: Status command for the orchestra CLI
// ABOUTME: Shows platform component health and monitoring metrics

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/enochcodes/orchestra/cli/internal/client"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show platform health",
	Long: `Display the monitoring overview and per-component health of the platform.

Exit code is 0 when all components are healthy, 1 when any component is
degraded, and 2 on errors. This makes the command usable as a CI gate.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runStatus(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// runStatus executes the health check and returns exit code
func runStatus(ctx context.Context, w io.Writer) int {
	mgr, err := restoreSession(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := mgr.Client()
	metrics, err := c.MonitoringOverview(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	components, err := c.MonitoringStatus(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	degraded := false
	for _, comp := range components {
		if !comp.Healthy {
			degraded = true
		}
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatStatusJSON(metrics, components, degraded))
	} else {
		fmt.Fprintln(w, formatStatusHuman(metrics, components))
	}

	if degraded {
		return 1
	}
	return 0
}

// formatStatusHuman formats the status report for human readability
func formatStatusHuman(metrics []client.Metric, components []client.Component) string {
	var sb strings.Builder

	if len(metrics) > 0 {
		sb.WriteString("Metrics:\n")
		for _, m := range metrics {
			if m.Unit != "" {
				sb.WriteString(fmt.Sprintf("  %-24s %.1f %s\n", m.Name, m.Value, m.Unit))
			} else {
				sb.WriteString(fmt.Sprintf("  %-24s %.1f\n", m.Name, m.Value))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Components:\n")
	for _, c := range components {
		mark := "ok"
		if !c.Healthy {
			mark = "DEGRADED"
		}
		sb.WriteString(fmt.Sprintf("  %-24s %-12s [%s]\n", c.Name, c.Status, mark))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatStatusJSON formats the status report as JSON
func formatStatusJSON(metrics []client.Metric, components []client.Component, degraded bool) string {
	output := map[string]interface{}{
		"metrics":    metrics,
		"components": components,
		"degraded":   degraded,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
