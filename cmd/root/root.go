package root

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tunnel-keeper/internal/config"
	"tunnel-keeper/internal/logger"
	"tunnel-keeper/services"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "tunnel-keeper",
	Short: "Persistent SSH tunnel supervisor",
	Long: `tunnel-keeper keeps a local port-forwarding SSH tunnel alive: it polls
network connectivity, the local forwarding port and real tunnel health on a
fixed interval, and restarts the tunnel process when it is gone or wedged.

Run without arguments to supervise in the foreground until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		runForeground()
	},
}

// runForeground 前台运行监控循环，收到中断信号后退出
func runForeground() {
	cfg := &config.Config
	if err := config.Validate(cfg); err != nil {
		// 配置错误重试也无法恢复，进循环前直接退出
		logger.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 中断只结束循环本身，分离的隧道子进程按设计继续存活
	services.NewDefaultSupervisor(cfg).Run(ctx)
}
