package services

import (
	"time"

	"tunnel-keeper/internal/config"
	"tunnel-keeper/internal/utils"
)

// HealthChecker verifies the tunnel is actually passing traffic, not merely
// present in the kernel listening table.
type HealthChecker interface {
	// IsHealthy attempts a real connect-and-close against 127.0.0.1:port.
	IsHealthy(port int) bool
}

// DialHealthChecker implements HealthChecker with a bounded TCP dial.
type DialHealthChecker struct {
	timeout time.Duration
}

func NewDialHealthChecker(cfg *config.AppConfig) *DialHealthChecker {
	return &DialHealthChecker{
		timeout: time.Duration(cfg.Probe.Timeout) * time.Second,
	}
}

func (hc *DialHealthChecker) IsHealthy(port int) bool {
	return utils.CheckPortConnectable(port, hc.timeout)
}
