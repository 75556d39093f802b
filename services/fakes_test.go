package services

import (
	"tunnel-keeper/internal/config"
	"tunnel-keeper/internal/inspect"
	"tunnel-keeper/internal/logger"
)

func init() {
	logger.InitLogger("console", "error", false)
}

// testConfig 测试用配置，宽限期为0避免测试休眠
func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Tunnel: config.TunnelConfig{
			LocalPort:  2222,
			RemoteHost: "backup@example.com",
			RemotePort: 22,
			SshPath:    "ssh",
		},
		Probe: config.ProbeConfig{
			Target:  "192.0.2.1:443",
			Timeout: 1,
		},
		Interval: config.IntervalConfig{
			Monitoring:  1,
			GracePeriod: 0,
		},
	}
}

// fakeProber returns a scripted reachability answer.
type fakeProber struct {
	reachable bool
	calls     int
}

func (f *fakeProber) Probe() bool {
	f.calls++
	return f.reachable
}

// fakeSockets returns a scripted listening-table answer.
type fakeSockets struct {
	listening bool
	calls     int
}

func (f *fakeSockets) IsListening(port int) bool {
	f.calls++
	return f.listening
}

// fakeChecker pops one scripted result per call; the last result repeats.
type fakeChecker struct {
	results []bool
	calls   int
}

func (f *fakeChecker) IsHealthy(port int) bool {
	f.calls++
	if len(f.results) == 0 {
		return false
	}
	result := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return result
}

// fakeProcessInspector serves a scripted process table and records every
// terminate/kill so tests can assert the controller's exact actions.
type fakeProcessInspector struct {
	procs      []inspect.ProcessInfo
	terminated []int
	killed     []int
}

func (f *fakeProcessInspector) ListProcesses() ([]inspect.ProcessInfo, error) {
	return f.procs, nil
}

func (f *fakeProcessInspector) Terminate(pid int) error {
	f.terminated = append(f.terminated, pid)
	f.removeProcess(pid)
	return nil
}

func (f *fakeProcessInspector) Kill(pid int) error {
	f.killed = append(f.killed, pid)
	f.removeProcess(pid)
	return nil
}

func (f *fakeProcessInspector) MemoryRSS(pid int) (uint64, error) {
	return 5451776, nil
}

func (f *fakeProcessInspector) removeProcess(pid int) {
	var kept []inspect.ProcessInfo
	for _, p := range f.procs {
		if p.Pid != pid {
			kept = append(kept, p)
		}
	}
	f.procs = kept
}

// managedSSHProcess 与testConfig签名匹配的隧道进程表项
func managedSSHProcess(pid int) inspect.ProcessInfo {
	return inspect.ProcessInfo{
		Pid:     pid,
		Name:    "ssh",
		Cmdline: "ssh -N -L 2222:127.0.0.1:22 -o ServerAliveInterval=30 -o ExitOnForwardFailure=yes backup@example.com",
	}
}

// newFakeTunnelManager wires a tunnel manager against fakes; spawn pretends
// the launch succeeded and adds a matching entry to the process table.
func newFakeTunnelManager(cfg *config.AppConfig, procs *fakeProcessInspector, checker *fakeChecker) (*TunnelManager, *int) {
	tm := NewTunnelManager(cfg, procs, checker)
	spawnCount := 0
	nextPid := 43000
	tm.spawn = func() (int, error) {
		spawnCount++
		nextPid++
		procs.procs = append(procs.procs, managedSSHProcess(nextPid))
		return nextPid, nil
	}
	return tm, &spawnCount
}
