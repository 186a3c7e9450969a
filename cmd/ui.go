// ABOUTME: UI command for the orchestra CLI
// ABOUTME: Launches the interactive terminal interface

package cmd

import (
	"fmt"
	"os"

	"github.com/enochcodes/orchestra/cli/internal/session"
	"github.com/enochcodes/orchestra/cli/internal/tui"
	"github.com/enochcodes/orchestra/cli/internal/tui/debuglog"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive terminal UI",
	Long:  `Start the full-screen terminal UI: dashboard, applications, clusters, servers, and the deployment wizard.`,
	Run: func(cmd *cobra.Command, args []string) {
		debuglog.Init(session.DefaultConfigDir())
		defer debuglog.Close()

		mgr := newSessionManager()
		if err := tui.Run(mgr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
