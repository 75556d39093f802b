package models

import "time"

// StatusReport 状态报告，status子命令和API共用
// @Description 隧道状态快照数据结构
type StatusReport struct {
	Timestamp        time.Time `json:"timestamp"`
	LocalPort        int       `json:"localPort"`
	RemoteHost       string    `json:"remoteHost"`
	NetworkReachable bool      `json:"networkReachable"`
	PortListening    bool      `json:"portListening"`
	TunnelHealthy    bool      `json:"tunnelHealthy"`
	Running          bool      `json:"running"`
	Pid              int       `json:"pid,omitempty"`
	MemoryKB         uint64    `json:"memoryKb,omitempty"`
	Cmdline          string    `json:"cmdline,omitempty"`
	Autostart        bool      `json:"autostart"`
}
