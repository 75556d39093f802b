package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tunnel-keeper/cmd/root"
	"tunnel-keeper/controllers"
	"tunnel-keeper/internal/config"
	"tunnel-keeper/internal/env"
	"tunnel-keeper/internal/logger"
	"tunnel-keeper/internal/middleware"
	"tunnel-keeper/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run supervisor with local REST API",
	Long:  "Run the supervision loop together with a local HTTP API for status inspection, tunnel control and prometheus metrics.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := startServer(); err != nil {
			logger.Fatal(err)
		}
	},
}

func startServer() error {
	cfg := &config.Config
	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	env.Daemon = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	router.Use(middleware.MetricsMiddleware())

	supervisor := services.NewDefaultSupervisor(cfg)
	reporter := services.NewDefaultStatusReporter(cfg)

	// 注册API路由
	statusController := controllers.NewStatusController(reporter, supervisor.Tunnels())
	statusController.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	go supervisor.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Infof("API server listening on %s", cfg.Server.Address)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func init() {
	root.RootCmd.AddCommand(serverCmd)
}
