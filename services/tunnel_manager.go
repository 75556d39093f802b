package services

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"tunnel-keeper/internal/config"
	"tunnel-keeper/internal/inspect"
	"tunnel-keeper/internal/logger"
	"tunnel-keeper/internal/models"
	"tunnel-keeper/internal/utils"
)

// TunnelManager owns the lifecycle of the tunnel child process. All start,
// stop and restart decisions flow through it; nothing else touches the child.
type TunnelManager struct {
	cfg     *config.AppConfig
	procs   inspect.ProcessInspector
	checker HealthChecker

	// spawn launches the detached ssh child and returns its PID. Replaced
	// by tests, which must never touch a real process table.
	spawn func() (int, error)
}

/**
 * Create new tunnel manager
 * @param {*config.AppConfig} cfg - Validated application configuration
 * @param {inspect.ProcessInspector} procs - Process table inspector
 * @param {HealthChecker} checker - Health checker used for launch verification
 * @returns {*TunnelManager} Returns initialized tunnel manager
 */
func NewTunnelManager(cfg *config.AppConfig, procs inspect.ProcessInspector, checker HealthChecker) *TunnelManager {
	tm := &TunnelManager{
		cfg:     cfg,
		procs:   procs,
		checker: checker,
	}
	tm.spawn = tm.spawnTunnel
	return tm
}

// processName 进程表中ssh客户端的进程名
func (tm *TunnelManager) processName() string {
	name := filepath.Base(tm.cfg.Tunnel.SshPath)
	if runtime.GOOS == "windows" {
		name = strings.TrimSuffix(name, ".exe")
	}
	return name
}

// forwardSpec is the -L argument; together with the remote host it forms the
// ownership signature of the managed process.
func (tm *TunnelManager) forwardSpec() string {
	return fmt.Sprintf("%d:127.0.0.1:%d", tm.cfg.Tunnel.LocalPort, tm.cfg.Tunnel.RemotePort)
}

func (tm *TunnelManager) sshArgs() []string {
	return []string{
		"-N",
		"-L", tm.forwardSpec(),
		"-o", "ServerAliveInterval=30",
		"-o", "ServerAliveCountMax=3",
		"-o", "ExitOnForwardFailure=yes",
		// 无人值守运行，接受跳过主机密钥校验的风险
		"-o", "StrictHostKeyChecking=no",
		"-o", "BatchMode=yes",
		tm.cfg.Tunnel.RemoteHost,
	}
}

/**
 * Find the managed tunnel process in the OS process table
 * @returns {*models.TunnelProcess} Returns the managed process, nil if none
 * @description
 * - Enumerates processes matching the ssh binary name
 * - A candidate is ours only if its launch arguments reference both the
 *   configured forward spec and the remote host, so unrelated ssh sessions
 *   on the same port are never matched
 * - Identity is re-derived from the process table on every call, never
 *   cached: the child is detached and may die or be replaced at any time
 */
func (tm *TunnelManager) FindManagedProcess() *models.TunnelProcess {
	procs, err := tm.procs.ListProcesses()
	if err != nil {
		logger.Warnf("Failed to list processes: %v", err)
		return nil
	}

	name := tm.processName()
	for _, p := range procs {
		if !strings.EqualFold(strings.TrimSuffix(p.Name, ".exe"), name) {
			continue
		}
		if !strings.Contains(p.Cmdline, tm.forwardSpec()) {
			continue
		}
		if !strings.Contains(p.Cmdline, tm.cfg.Tunnel.RemoteHost) {
			continue
		}
		return &models.TunnelProcess{Pid: p.Pid, Cmdline: p.Cmdline}
	}
	return nil
}

/**
 * Start the tunnel process and verify the launch
 * @returns {(*models.TunnelProcess, error)} Returns started process and error if any
 * @description
 * - Spawns the ssh client detached (own process group, released handle) so
 *   the tunnel survives keeper restarts
 * - Waits the configured grace period for the handshake, then re-runs the
 *   health checker; an unhealthy child is killed and the launch reported
 *   as failed, preventing false success for a process that started but
 *   could not bind or authenticate
 * - Launch failures are per-cycle: the caller logs and retries next cycle
 */
func (tm *TunnelManager) Start() (*models.TunnelProcess, error) {
	pid, err := tm.spawn()
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", tm.cfg.Tunnel.SshPath, err)
	}

	logger.Infof("Tunnel process launched (PID: %d), waiting %ds grace period",
		pid, tm.cfg.Interval.GracePeriod)
	time.Sleep(time.Duration(tm.cfg.Interval.GracePeriod) * time.Second)

	if !tm.checker.IsHealthy(tm.cfg.Tunnel.LocalPort) {
		// 启动后验证失败，立即回收刚拉起的进程
		if err := tm.procs.Kill(pid); err != nil {
			logger.Warnf("Failed to kill unhealthy tunnel process (PID: %d): %v", pid, err)
		}
		return nil, fmt.Errorf("tunnel process (PID: %d) failed health verification after launch", pid)
	}

	return &models.TunnelProcess{
		Pid:     pid,
		Cmdline: tm.cfg.Tunnel.SshPath + " " + strings.Join(tm.sshArgs(), " "),
	}, nil
}

// spawnTunnel 以后台分离方式拉起ssh客户端
func (tm *TunnelManager) spawnTunnel() (int, error) {
	cmd := exec.Command(tm.cfg.Tunnel.SshPath, tm.sshArgs()...)
	utils.SetNewPG(cmd)
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	// 释放句柄，子进程与keeper生命周期彻底解耦
	cmd.Process.Release()
	return pid, nil
}

/**
 * Stop the managed tunnel process
 * @returns {error} Returns error if termination fails, nil otherwise
 * @description
 * - Locates the managed process by signature; none found is a successful
 *   no-op so repeated stops stay idempotent
 * - Termination failure (e.g. insufficient privilege) is reported up and
 *   logged by the caller at warning level
 */
func (tm *TunnelManager) Stop() error {
	proc := tm.FindManagedProcess()
	if proc == nil {
		logger.Info("No tunnel process found, nothing to stop")
		return nil
	}
	if err := tm.procs.Terminate(proc.Pid); err != nil {
		return fmt.Errorf("failed to stop tunnel process (PID: %d): %w", proc.Pid, err)
	}
	logger.Infof("Tunnel process stopped (PID: %d)", proc.Pid)
	return nil
}

/**
 * Restart the tunnel with a full stop-then-start
 * @returns {(*models.TunnelProcess, error)} Returns new process and error if any
 * @description
 * - A wedged tunnel cannot be repaired in place, so restart always goes
 *   through a complete stop before the new launch
 */
func (tm *TunnelManager) Restart() (*models.TunnelProcess, error) {
	if err := tm.Stop(); err != nil {
		logger.Warnf("Stop before restart failed: %v", err)
	}
	return tm.Start()
}
