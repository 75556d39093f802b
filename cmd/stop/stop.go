package stop

import (
	"fmt"

	"tunnel-keeper/cmd/root"
	"tunnel-keeper/internal/config"
	"tunnel-keeper/internal/inspect"
	"tunnel-keeper/internal/logger"
	"tunnel-keeper/services"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the managed tunnel process",
	Long:  "Locate the managed tunnel process by its launch signature and terminate it. No matching process is a no-op, not an error.",
	Run: func(cmd *cobra.Command, args []string) {
		stopTunnel()
	},
}

func stopTunnel() {
	cfg := &config.Config
	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	tm := services.NewTunnelManager(cfg, inspect.NewSystemProcesses(), services.NewDialHealthChecker(cfg))
	if proc := tm.FindManagedProcess(); proc == nil {
		fmt.Println("No tunnel process found")
		return
	}
	if err := tm.Stop(); err != nil {
		logger.Fatalf("Failed to stop tunnel: %v", err)
	}
	fmt.Println("Tunnel stopped")
}

func init() {
	root.RootCmd.AddCommand(stopCmd)
}
