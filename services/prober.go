package services

import (
	"time"

	"tunnel-keeper/internal/config"
	"tunnel-keeper/internal/utils"
)

// Prober answers the coarse question "is the network there at all".
type Prober interface {
	// Probe reports whether the configured probe target is reachable.
	// Unreachable is an expected outcome, never an error.
	Probe() bool
}

// TCPProber probes reachability with a single bounded TCP connect to a
// well-known target (default 1.1.1.1:443).
type TCPProber struct {
	target  string
	timeout time.Duration
}

func NewTCPProber(cfg *config.AppConfig) *TCPProber {
	return &TCPProber{
		target:  cfg.Probe.Target,
		timeout: time.Duration(cfg.Probe.Timeout) * time.Second,
	}
}

func (p *TCPProber) Probe() bool {
	return utils.CheckHostReachable(p.target, p.timeout)
}
