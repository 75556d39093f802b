package install

import (
	"fmt"
	"os"

	"tunnel-keeper/cmd/root"
	"tunnel-keeper/internal/config"
	"tunnel-keeper/internal/logger"
	"tunnel-keeper/internal/utils"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register background execution at login",
	Long:  "Register the keeper with the OS task scheduler so it runs in server mode at every login.",
	Run: func(cmd *cobra.Command, args []string) {
		installStartup()
	},
}

func installStartup() {
	cfg := &config.Config
	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	exePath, err := os.Executable()
	if err != nil {
		logger.Fatalf("Failed to determine executable path: %v", err)
	}

	if err := utils.InstallStartup(exePath); err != nil {
		logger.Fatalf("Failed to install startup entry: %v", err)
	}
	fmt.Println("Startup entry installed")
}

func init() {
	root.RootCmd.AddCommand(installCmd)
}
