package cmd

import (
	"fmt"

	"tunnel-keeper/cmd/root"
	"tunnel-keeper/internal/env"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tunnel-keeper %s\n", env.Version)
	},
}

func init() {
	root.RootCmd.AddCommand(versionCmd)
}
