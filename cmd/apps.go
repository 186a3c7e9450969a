// ABOUTME: Apps commands for the orchestra CLI
// ABOUTME: Lists applications and triggers redeploys from the command line

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

var appsClusterID uint

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List deployed applications",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runApps(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var appsRedeployCmd = &cobra.Command{
	Use:   "redeploy <app-id>",
	Short: "Trigger a redeploy of an application",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAppsRedeploy(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	appsCmd.Flags().UintVar(&appsClusterID, "cluster-id", 0, "Only list applications in this cluster")
	appsCmd.AddCommand(appsRedeployCmd)
	rootCmd.AddCommand(appsCmd)
}

// runApps lists applications and returns exit code
func runApps(ctx context.Context, w io.Writer) int {
	mgr, err := restoreSession(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	apps, err := mgr.Client().Applications(ctx, appsClusterID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(apps, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(apps) == 0 {
		fmt.Fprintln(w, "No applications deployed.")
		return 0
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCLUSTER\tSOURCE\tSTATUS")
	for _, app := range apps {
		cluster := strconv.FormatUint(uint64(app.ClusterID), 10)
		if app.Cluster != nil {
			cluster = app.Cluster.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", app.ID, app.Name, cluster, app.SourceType, app.Status)
	}
	tw.Flush()
	return 0
}

// runAppsRedeploy triggers a redeploy and returns exit code
func runAppsRedeploy(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.ParseUint(idArg, 10, 32)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid application id %q\n", idArg)
		return 2
	}

	mgr, err := restoreSession(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := mgr.Client().RedeployApplication(ctx, uint(id)); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Redeploy of application %d started.\n", id)
	return 0
}
