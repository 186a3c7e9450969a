// ABOUTME: Servers commands for the orchestra CLI
// ABOUTME: Lists registered machines and registers new ones over SSH facts

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

	"github.com/enochcodes/orchestra/cli/internal/client"
	"github.com/spf13/cobra"
)

var (
	registerHostname string
	registerIP       string
	registerSSHUser  string
	registerSSHPort  int
	registerSSHKey   string
)

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "List registered servers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runServers(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var serversRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a server for provisioning",
	Long:  `Register a machine with the backend. The backend connects over SSH, gathers hardware facts, and makes the server available for cluster provisioning.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runServersRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	serversRegisterCmd.Flags().StringVar(&registerHostname, "hostname", "", "Server hostname")
	serversRegisterCmd.Flags().StringVar(&registerIP, "ip", "", "Server IP address (required)")
	serversRegisterCmd.Flags().StringVar(&registerSSHUser, "ssh-user", "root", "SSH user")
	serversRegisterCmd.Flags().IntVar(&registerSSHPort, "ssh-port", 22, "SSH port")
	serversRegisterCmd.Flags().StringVar(&registerSSHKey, "ssh-key", "", "Path to the SSH private key file (required)")

	serversCmd.AddCommand(serversRegisterCmd)
	rootCmd.AddCommand(serversCmd)
}

// runServers lists servers and returns exit code
func runServers(ctx context.Context, w io.Writer) int {
	mgr, err := restoreSession(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	servers, err := mgr.Client().Servers(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(servers, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(servers) == 0 {
		fmt.Fprintln(w, "No servers registered.")
		return 0
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tHOSTNAME\tIP\tROLE\tSTATUS")
	for _, s := range servers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Hostname, s.IP, s.Role, s.Status)
	}
	tw.Flush()
	return 0
}

// runServersRegister registers a server and returns exit code
func runServersRegister(ctx context.Context, w io.Writer) int {
	if registerIP == "" {
		fmt.Fprintln(w, "Error: --ip is required")
		return 2
	}
	if registerSSHKey == "" {
		fmt.Fprintln(w, "Error: --ssh-key is required")
		return 2
	}

	key, err := os.ReadFile(registerSSHKey)
	if err != nil {
		fmt.Fprintf(w, "Error: cannot read SSH key: %v\n", err)
		return 2
	}

	mgr, err := restoreSession(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	resp, err := mgr.Client().RegisterServer(ctx, &client.RegisterServerRequest{
		Hostname: registerHostname,
		IP:       registerIP,
		SSHUser:  registerSSHUser,
		SSHPort:  registerSSHPort,
		SSHKey:   string(key),
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Server %d registered: %s\n", resp.ServerID, resp.Message)
	return 0
}
