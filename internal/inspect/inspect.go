// Package inspect abstracts the OS process table and TCP socket table behind
// small interfaces so the supervisor core can be exercised against scripted
// tables instead of a live system.
package inspect

// ProcessInfo 进程表中的一条记录
type ProcessInfo struct {
	Pid     int    // process id
	Name    string // executable name as shown in the process list
	Cmdline string // full launch command line
}

// ProcessInspector queries and controls entries of the OS process table.
type ProcessInspector interface {
	// ListProcesses returns a snapshot of the process table.
	ListProcesses() ([]ProcessInfo, error)
	// Terminate stops a process, graceful first, forceful if it lingers.
	Terminate(pid int) error
	// Kill stops a process immediately without the graceful attempt.
	Kill(pid int) error
	// MemoryRSS returns the resident set size of a process in bytes.
	MemoryRSS(pid int) (uint64, error)
}

// SocketInspector queries the OS TCP listening-socket table.
type SocketInspector interface {
	// IsListening reports whether some process has the local TCP port in
	// LISTEN state. Errors reading the table count as not listening.
	IsListening(port int) bool
}
