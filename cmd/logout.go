// ABOUTME: Logout command for the orchestra CLI
// ABOUTME: Discards the persisted session token

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the saved session",
	Run: func(cmd *cobra.Command, args []string) {
		mgr := newSessionManager()
		mgr.Logout()
		fmt.Fprintln(os.Stdout, "Logged out.")
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
