// ABOUTME: Deployments command for the orchestra CLI
// ABOUTME: Lists rollout records across all applications

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var deploymentsCmd = &cobra.Command{
	Use:   "deployments",
	Short: "List deployments",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runDeployments(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(deploymentsCmd)
}

// runDeployments lists deployments and returns exit code
func runDeployments(ctx context.Context, w io.Writer) int {
	mgr, err := restoreSession(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	deployments, err := mgr.Client().Deployments(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(deployments, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(deployments) == 0 {
		fmt.Fprintln(w, "No deployments recorded.")
		return 0
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAPPLICATION\tVERSION\tSTATUS\tCREATED")
	for _, d := range deployments {
		app := strconv.FormatUint(uint64(d.ApplicationID), 10)
		if d.Application != nil {
			app = d.Application.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", d.ID, app, d.Version, d.Status, d.CreatedAt.Format("2006-01-02 15:04"))
	}
	tw.Flush()
	return 0
}
