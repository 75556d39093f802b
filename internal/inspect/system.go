package inspect

import (
	"fmt"
	"time"

	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// SystemProcesses implements ProcessInspector on top of the real OS process
// table via gopsutil.
type SystemProcesses struct{}

func NewSystemProcesses() *SystemProcesses {
	return &SystemProcesses{}
}

/**
 * List all processes visible in the OS process table
 * @returns {([]ProcessInfo, error)} Returns process snapshot and error if any
 * @description
 * - Entries whose name or command line cannot be read (already exited,
 *   permission denied) are skipped, not treated as errors
 */
func (sp *SystemProcesses) ListProcesses() ([]ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate processes: %w", err)
	}

	infos := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		cmdline, err := p.Cmdline()
		if err != nil {
			continue
		}
		infos = append(infos, ProcessInfo{
			Pid:     int(p.Pid),
			Name:    name,
			Cmdline: cmdline,
		})
	}
	return infos, nil
}

/**
 * Terminate process gracefully, escalating to kill if needed
 * @param {int} pid - Process ID to terminate
 * @returns {error} Returns error if the process survives both signals
 * @description
 * - First sends SIGTERM and polls up to one second for exit
 * - Falls back to SIGKILL when the process lingers
 * - A pid that is already gone is a no-op, not an error
 */
func (sp *SystemProcesses) Terminate(pid int) error {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		// 进程已经不存在
		return nil
	}

	if err := p.Terminate(); err == nil {
		for i := 0; i < 10; i++ {
			running, err := p.IsRunning()
			if err != nil || !running {
				return nil
			}
			time.Sleep(100 * time.Millisecond)
		}
	}

	if err := p.Kill(); err != nil {
		return fmt.Errorf("failed to kill process (PID: %d): %w", pid, err)
	}
	return nil
}

func (sp *SystemProcesses) Kill(pid int) error {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return nil
	}
	if err := p.Kill(); err != nil {
		return fmt.Errorf("failed to kill process (PID: %d): %w", pid, err)
	}
	return nil
}

func (sp *SystemProcesses) MemoryRSS(pid int) (uint64, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return 0, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}

// SystemSockets implements SocketInspector on top of the kernel TCP
// connection table via gopsutil.
type SystemSockets struct{}

func NewSystemSockets() *SystemSockets {
	return &SystemSockets{}
}

func (ss *SystemSockets) IsListening(port int) bool {
	conns, err := gnet.Connections("tcp")
	if err != nil {
		return false
	}
	for _, c := range conns {
		if c.Status == "LISTEN" && c.Laddr.Port == uint32(port) {
			return true
		}
	}
	return false
}
