package controllers

import (
	"fmt"
	"net/http"
	"time"

	"tunnel-keeper/internal/env"
	"tunnel-keeper/internal/models"
	"tunnel-keeper/services"

	"github.com/gin-gonic/gin"
)

// StatusController handles tunnel status and control HTTP requests
type StatusController struct {
	reporter  *services.StatusReporter
	tunnels   *services.TunnelManager
	startTime time.Time
}

// NewStatusController creates a new StatusController bound to the running
// supervisor's tunnel manager and a fresh status reporter.
func NewStatusController(reporter *services.StatusReporter, tunnels *services.TunnelManager) *StatusController {
	return &StatusController{
		reporter:  reporter,
		tunnels:   tunnels,
		startTime: time.Now(),
	}
}

// GetStatus returns the current tunnel status snapshot
//
//	@Summary		Get tunnel status
//	@Description	Re-run all checks once and return the snapshot
//	@Tags			Status
//	@Produce		json
//	@Success		200	{object}	models.StatusReport	"Status snapshot"
//	@Router			/tunnel-keeper/api/v1/status [get]
func (sc *StatusController) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, sc.reporter.Report())
}

// RestartTunnel forces a full stop-then-start of the managed tunnel
//
//	@Summary		Restart tunnel
//	@Description	Stop the managed tunnel process and start a new one
//	@Tags			Tunnel
//	@Produce		json
//	@Success		200	{object}	models.TunnelResponse	"Restart success response"
//	@Failure		500	{object}	models.ErrorResponse	"Restart failure error response"
//	@Router			/tunnel-keeper/api/v1/tunnel/restart [post]
func (sc *StatusController) RestartTunnel(c *gin.Context) {
	proc, err := sc.tunnels.Restart()
	if err != nil {
		c.JSON(http.StatusInternalServerError, &models.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, &models.TunnelResponse{
		Status:  "success",
		Message: fmt.Sprintf("Tunnel restarted successfully (PID: %d)", proc.Pid),
	})
}

// StopTunnel stops the managed tunnel process
//
//	@Summary		Stop tunnel
//	@Description	Stop the managed tunnel process; no process is a no-op
//	@Tags			Tunnel
//	@Produce		json
//	@Success		200	{object}	models.TunnelResponse	"Stop success response"
//	@Failure		500	{object}	models.ErrorResponse	"Stop failure error response"
//	@Router			/tunnel-keeper/api/v1/tunnel [delete]
func (sc *StatusController) StopTunnel(c *gin.Context) {
	if err := sc.tunnels.Stop(); err != nil {
		c.JSON(http.StatusInternalServerError, &models.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, &models.TunnelResponse{
		Status:  "success",
		Message: "Tunnel stopped",
	})
}

// GetHealthz returns keeper liveness and key counters
//
//	@Summary		Health check
//	@Description	Keeper process health and key metrics
//	@Tags			Status
//	@Produce		json
//	@Success		200	{object}	models.HealthResponse	"Health response"
//	@Router			/healthz [get]
func (sc *StatusController) GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Version:   env.Version,
		StartTime: sc.startTime.Format(time.RFC3339),
		Status:    "UP",
		Uptime:    time.Since(sc.startTime).String(),
		Metrics: models.Metrics{
			TotalRequests:  services.GetTotalRequestCount(),
			ErrorRequests:  services.GetTotalErrorCount(),
			TotalCycles:    services.GetTotalCycleCount(),
			TunnelRestarts: services.GetTunnelRestartCount(),
		},
	})
}

/**
* Register all status-related routes to Gin engine
* @param {*gin.Engine} r - Gin router instance
* @description
* - Registers routes for:
*   - Status snapshot (GET /tunnel-keeper/api/v1/status)
*   - Restart tunnel (POST /tunnel-keeper/api/v1/tunnel/restart)
*   - Stop tunnel (DELETE /tunnel-keeper/api/v1/tunnel)
*   - Health check (GET /healthz)
 */
func (sc *StatusController) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/tunnel-keeper/api/v1")
	{
		api.GET("/status", sc.GetStatus)
		api.POST("/tunnel/restart", sc.RestartTunnel)
		api.DELETE("/tunnel", sc.StopTunnel)
	}
	r.GET("/healthz", sc.GetHealthz)
}
