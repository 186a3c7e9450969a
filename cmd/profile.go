// ABOUTME: Profile command for the orchestra CLI
// ABOUTME: Updates the display name or avatar of the current account

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/enochcodes/orchestra/cli/internal/client"
	"github.com/spf13/cobra"
)

var (
	profileName   string
	profileAvatar string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update the current account profile",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfile(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileName, "name", "", "New display name")
	profileCmd.Flags().StringVar(&profileAvatar, "avatar", "", "New avatar URL")
	rootCmd.AddCommand(profileCmd)
}

// runProfile patches the profile and returns exit code
func runProfile(ctx context.Context, w io.Writer) int {
	if profileName == "" && profileAvatar == "" {
		fmt.Fprintln(w, "Error: nothing to update; pass --name or --avatar")
		return 2
	}

	mgr, err := restoreSession(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user, err := mgr.Client().UpdateProfile(ctx, &client.UpdateProfileRequest{
		DisplayName: profileName,
		Avatar:      profileAvatar,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// Refresh the cached principal so whoami and the TUI header agree.
	if err := mgr.RefreshPrincipal(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Profile updated: %s\n", user.DisplayName)
	return 0
}
