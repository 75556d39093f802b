package install

import (
	"fmt"

	"tunnel-keeper/cmd/root"
	"tunnel-keeper/internal/config"
	"tunnel-keeper/internal/inspect"
	"tunnel-keeper/internal/logger"
	"tunnel-keeper/internal/utils"
	"tunnel-keeper/services"

	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Stop tunnel and deregister background execution",
	Long:  "Stop any running managed tunnel, then remove the keeper from the OS task scheduler.",
	Run: func(cmd *cobra.Command, args []string) {
		uninstallStartup()
	},
}

func uninstallStartup() {
	cfg := &config.Config
	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	// 先停隧道，再摘除开机注册
	tm := services.NewTunnelManager(cfg, inspect.NewSystemProcesses(), services.NewDialHealthChecker(cfg))
	if err := tm.Stop(); err != nil {
		logger.Warnf("Failed to stop tunnel during uninstall: %v", err)
	}

	if err := utils.UninstallStartup(); err != nil {
		logger.Fatalf("Failed to remove startup entry: %v", err)
	}
	fmt.Println("Startup entry removed")
}

func init() {
	root.RootCmd.AddCommand(uninstallCmd)
}
