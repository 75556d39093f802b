package services

import (
	"fmt"
	"io"
	"time"

	"tunnel-keeper/internal/config"
	"tunnel-keeper/internal/inspect"
	"tunnel-keeper/internal/models"
	"tunnel-keeper/internal/utils"
)

// StatusReporter produces an on-demand snapshot by re-running the same checks
// the supervisor uses. Read-only: it never starts or stops anything, and it
// never fails - a missing tunnel or dead network is a status, not an error.
type StatusReporter struct {
	cfg     *config.AppConfig
	prober  Prober
	sockets inspect.SocketInspector
	checker HealthChecker
	procs   inspect.ProcessInspector
	tunnels *TunnelManager
}

func NewStatusReporter(cfg *config.AppConfig, prober Prober, sockets inspect.SocketInspector,
	checker HealthChecker, procs inspect.ProcessInspector, tunnels *TunnelManager) *StatusReporter {
	return &StatusReporter{
		cfg:     cfg,
		prober:  prober,
		sockets: sockets,
		checker: checker,
		procs:   procs,
		tunnels: tunnels,
	}
}

// NewDefaultStatusReporter wires the reporter against the real OS inspectors.
func NewDefaultStatusReporter(cfg *config.AppConfig) *StatusReporter {
	procs := inspect.NewSystemProcesses()
	checker := NewDialHealthChecker(cfg)
	return NewStatusReporter(cfg,
		NewTCPProber(cfg),
		inspect.NewSystemSockets(),
		checker,
		procs,
		NewTunnelManager(cfg, procs, checker))
}

/**
 * Build a status snapshot from current OS state
 * @returns {models.StatusReport} Returns the snapshot
 * @description
 * - Re-runs prober, socket inspector, health checker and process lookup
 *   once, synchronously; nothing is cached from the supervisor loop, the
 *   reporter may even run as a separate process against the same OS state
 * - Memory usage of the managed process is read via the process inspector
 *   when the process exists; failures there degrade to zero, not errors
 */
func (sr *StatusReporter) Report() models.StatusReport {
	report := models.StatusReport{
		Timestamp:  time.Now(),
		LocalPort:  sr.cfg.Tunnel.LocalPort,
		RemoteHost: sr.cfg.Tunnel.RemoteHost,
		Autostart:  utils.StartupInstalled(),
	}

	report.NetworkReachable = sr.prober.Probe()
	report.PortListening = sr.sockets.IsListening(sr.cfg.Tunnel.LocalPort)
	if report.PortListening {
		report.TunnelHealthy = sr.checker.IsHealthy(sr.cfg.Tunnel.LocalPort)
	}

	if proc := sr.tunnels.FindManagedProcess(); proc != nil {
		report.Running = true
		report.Pid = proc.Pid
		report.Cmdline = proc.Cmdline
		if rss, err := sr.procs.MemoryRSS(proc.Pid); err == nil {
			report.MemoryKB = rss / 1024
		}
	}

	return report
}

/**
 * Render a status report in human-readable form
 * @param {io.Writer} w - Destination writer (stdout for the status command)
 * @param {models.StatusReport} report - Snapshot to render
 */
func RenderStatus(w io.Writer, report models.StatusReport) {
	fmt.Fprintln(w, "=== Tunnel Status ===")
	fmt.Fprintf(w, "Tunnel:      127.0.0.1:%d -> %s\n", report.LocalPort, report.RemoteHost)

	network := "DISCONNECTED"
	if report.NetworkReachable {
		network = "CONNECTED"
	}
	fmt.Fprintf(w, "Network:     %s\n", network)

	listening := "NO"
	if report.PortListening {
		listening = "YES"
	}
	fmt.Fprintf(w, "Listening:   %s\n", listening)

	health := "UNHEALTHY"
	if report.TunnelHealthy {
		health = "HEALTHY"
	}
	fmt.Fprintf(w, "Health:      %s\n", health)

	if report.Running {
		fmt.Fprintf(w, "Process:     PID %d (memory: %d KB)\n", report.Pid, report.MemoryKB)
	} else {
		fmt.Fprintln(w, "Process:     NOT RUNNING")
	}

	autostart := "not installed"
	if report.Autostart {
		autostart = "installed"
	}
	fmt.Fprintf(w, "Autostart:   %s\n", autostart)
}
