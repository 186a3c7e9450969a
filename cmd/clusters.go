// ABOUTME: Clusters command for the orchestra CLI
// ABOUTME: Lists provisioned clusters with their statuses

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "List clusters",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runClusters(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(clustersCmd)
}

// runClusters lists clusters and returns exit code
func runClusters(ctx context.Context, w io.Writer) int {
	mgr, err := restoreSession(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	clusters, err := mgr.Client().Clusters(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(clusters, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(clusters) == 0 {
		fmt.Fprintln(w, "No clusters provisioned.")
		return 0
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tCNI")
	for _, c := range clusters {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Status, c.CNIPlugin)
	}
	tw.Flush()
	return 0
}
