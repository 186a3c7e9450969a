// ABOUTME: Entry point for the orchestra CLI
// ABOUTME: Terminal control surface for the Orchestra platform

package main

import (
	"fmt"
	"os"

	"github.com/enochcodes/orchestra/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
