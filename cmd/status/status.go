package status

import (
	"encoding/json"
	"fmt"
	"os"

	"tunnel-keeper/cmd/root"
	"tunnel-keeper/internal/config"
	"tunnel-keeper/internal/logger"
	"tunnel-keeper/services"

	"github.com/spf13/cobra"
)

var asJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tunnel status",
	Long:  "Re-run all checks once and print the snapshot. Always exits 0: a stopped tunnel or unreachable network is a status, not a failure.",
	Run: func(cmd *cobra.Command, args []string) {
		showStatus()
	},
}

func showStatus() {
	cfg := &config.Config
	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	report := services.NewDefaultStatusReporter(cfg).Report()

	if asJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			logger.Fatalf("Failed to marshal status: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	services.RenderStatus(os.Stdout, report)
}

func init() {
	statusCmd.Flags().SortFlags = false
	statusCmd.Flags().BoolVar(&asJSON, "json", false, "Print status as JSON")

	root.RootCmd.AddCommand(statusCmd)
}
