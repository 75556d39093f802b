package services

import (
	"context"
	"time"

	"tunnel-keeper/internal/config"
	"tunnel-keeper/internal/inspect"
	"tunnel-keeper/internal/logger"
	"tunnel-keeper/internal/models"
)

// Supervisor drives the polling loop: one cycle evaluates connectivity, then
// the port, then real health, strictly in that order, and instructs the
// tunnel manager accordingly.
type Supervisor struct {
	cfg     *config.AppConfig
	prober  Prober
	sockets inspect.SocketInspector
	checker HealthChecker
	tunnels *TunnelManager
}

func NewSupervisor(cfg *config.AppConfig, prober Prober, sockets inspect.SocketInspector,
	checker HealthChecker, tunnels *TunnelManager) *Supervisor {
	return &Supervisor{
		cfg:     cfg,
		prober:  prober,
		sockets: sockets,
		checker: checker,
		tunnels: tunnels,
	}
}

// NewDefaultSupervisor wires the supervisor against the real OS inspectors.
func NewDefaultSupervisor(cfg *config.AppConfig) *Supervisor {
	procs := inspect.NewSystemProcesses()
	checker := NewDialHealthChecker(cfg)
	return NewSupervisor(cfg,
		NewTCPProber(cfg),
		inspect.NewSystemSockets(),
		checker,
		NewTunnelManager(cfg, procs, checker))
}

func (s *Supervisor) Tunnels() *TunnelManager {
	return s.tunnels
}

/**
 * Run one supervision cycle
 * @returns {models.CycleState} Returns the state observed this cycle
 * @description
 * - Checks gate each other: no port check without connectivity, no health
 *   check without a listening port
 * - Disconnected skips the cycle entirely: starting a tunnel against an
 *   unreachable host would only fail noisily, and off-network periods are
 *   normal (VPN down, laptop roaming)
 * - Unhealthy triggers exactly one stop and one start before the next poll
 * - Every decision is logged before the action runs so the log remains a
 *   reliable timeline even if the keeper is killed mid-action
 */
func (s *Supervisor) RunCycle() models.CycleState {
	snap := s.observe()

	switch {
	case !snap.NetworkReachable:
		logger.Infof("Network unreachable (probe target %s), skipping cycle", s.cfg.Probe.Target)
		IncrementCycle(models.StateDisconnected)
		return models.StateDisconnected

	case !snap.PortListening:
		logger.Warnf("Tunnel port %d is not listening, starting tunnel", s.cfg.Tunnel.LocalPort)
		if proc, err := s.tunnels.Start(); err != nil {
			logger.Warnf("Failed to start tunnel: %v", err)
		} else {
			logger.Infof("Tunnel started successfully (PID: %d)", proc.Pid)
		}
		IncrementCycle(models.StateNotRunning)
		return models.StateNotRunning

	case !snap.TunnelHealthy:
		logger.Warnf("Tunnel port %d is listening but unhealthy, restarting", s.cfg.Tunnel.LocalPort)
		if proc, err := s.tunnels.Restart(); err != nil {
			logger.Warnf("Failed to restart tunnel: %v", err)
		} else {
			logger.Infof("Tunnel restarted successfully (PID: %d)", proc.Pid)
		}
		IncrementRestart()
		IncrementCycle(models.StateUnhealthy)
		return models.StateUnhealthy
	}

	logger.Debugf("Tunnel on port %d is healthy (PID: %d)", s.cfg.Tunnel.LocalPort, snap.Pid)
	IncrementCycle(models.StateHealthy)
	return models.StateHealthy
}

// observe 采集本轮快照，检查严格按连通性、端口、健康的顺序互相门控，
// 每轮从系统真实状态重新采集，绝不跨轮缓存
func (s *Supervisor) observe() models.HealthSnapshot {
	var snap models.HealthSnapshot

	snap.NetworkReachable = s.prober.Probe()
	if !snap.NetworkReachable {
		return snap
	}

	snap.PortListening = s.sockets.IsListening(s.cfg.Tunnel.LocalPort)
	if !snap.PortListening {
		return snap
	}

	snap.TunnelHealthy = s.checker.IsHealthy(s.cfg.Tunnel.LocalPort)
	if snap.TunnelHealthy {
		if proc := s.tunnels.FindManagedProcess(); proc != nil {
			snap.Pid = proc.Pid
		}
	}
	return snap
}

/**
 * Run the supervision loop until the context is cancelled
 * @param {context.Context} ctx - Cancelled on SIGINT/SIGTERM
 * @description
 * - Runs the first cycle immediately, then one cycle per configured
 *   interval; cycles are strictly sequential, a cycle fully completes
 *   before the next begins
 * - There is deliberately no backoff and no give-up ceiling: connectivity
 *   loss recovers on its own schedule, so the loop retries forever and a
 *   permanently broken configuration must be diagnosed via the log
 * - Cancellation ends the loop only; a detached tunnel child is left
 *   running by design and is terminated solely by an explicit stop
 */
func (s *Supervisor) Run(ctx context.Context) {
	interval := time.Duration(s.cfg.Interval.Monitoring) * time.Second
	logger.Infof("Supervisor started: port %d -> %s:%d, interval %s",
		s.cfg.Tunnel.LocalPort, s.cfg.Tunnel.RemoteHost, s.cfg.Tunnel.RemotePort, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.RunCycle()
		select {
		case <-ctx.Done():
			logger.Info("Supervisor stopped")
			return
		case <-ticker.C:
		}
	}
}
