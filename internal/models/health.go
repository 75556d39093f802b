package models

// CycleState 监控循环单轮检查的结论
type CycleState string

const (
	// StateDisconnected 探测主机不可达，本轮什么都不做
	StateDisconnected CycleState = "disconnected"
	// StateNotRunning 网络可达但本地端口没有监听
	StateNotRunning CycleState = "not_running"
	// StateUnhealthy 端口在监听但真实连接失败
	StateUnhealthy CycleState = "unhealthy"
	// StateHealthy 三项检查全部通过
	StateHealthy CycleState = "healthy"
)

// HealthSnapshot 单轮检查采集到的状态，每轮重新采集，不跨轮缓存
type HealthSnapshot struct {
	NetworkReachable bool `json:"networkReachable"`
	PortListening    bool `json:"portListening"`
	TunnelHealthy    bool `json:"tunnelHealthy"`
	Pid              int  `json:"pid,omitempty"`
}

// HealthResponse 健康检查响应结构
// @Description 健康检查API响应数据结构
type HealthResponse struct {
	Version   string  `json:"version" example:"1.2.0" description:"服务版本"`
	StartTime string  `json:"startTime" example:"2024-01-01T10:00:00Z" description:"启动时间"`
	Status    string  `json:"status" example:"UP" description:"健康状态"`
	Uptime    string  `json:"uptime" example:"1h30m45s" description:"运行时长"`
	Metrics   Metrics `json:"metrics" description:"关键指标"`
}

// Metrics 关键指标结构
// @Description 系统关键指标数据结构
type Metrics struct {
	TotalRequests  int64 `json:"totalRequests" example:"1000" description:"总请求数"`
	ErrorRequests  int64 `json:"errorRequests" example:"5" description:"出错请求数"`
	TotalCycles    int64 `json:"totalCycles" example:"120" description:"监控循环总轮数"`
	TunnelRestarts int64 `json:"tunnelRestarts" example:"2" description:"隧道重启次数"`
}
