package services

import (
	"sync/atomic"

	"tunnel-keeper/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	cycleCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunnel_keeper_cycles_total",
			Help: "Supervision cycles by observed state",
		},
		[]string{"state"},
	)

	restartCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tunnel_keeper_restarts_total",
			Help: "Tunnel restarts triggered by failed health checks",
		},
	)

	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunnel_keeper_request_total",
			Help: "Total API requests",
		},
		[]string{"path"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tunnel_keeper_request_duration_seconds",
			Help:    "Duration of API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
)

// /healthz用的简单计数，与prometheus指标并行维护
var (
	totalRequests  int64
	errorRequests  int64
	totalCycles    int64
	tunnelRestarts int64
)

func init() {
	prometheus.MustRegister(cycleCount)
	prometheus.MustRegister(restartCount)
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestDuration)
}

// IncrementCycle 记录一轮监控循环及其结论
func IncrementCycle(state models.CycleState) {
	cycleCount.WithLabelValues(string(state)).Inc()
	atomic.AddInt64(&totalCycles, 1)
}

// IncrementRestart 记录一次因不健康触发的重启
func IncrementRestart() {
	restartCount.Inc()
	atomic.AddInt64(&tunnelRestarts, 1)
}

// IncrementRequestCount 增加请求计数
func IncrementRequestCount(path string) {
	requestCount.WithLabelValues(path).Inc()
	atomic.AddInt64(&totalRequests, 1)
}

// RecordRequestDuration 记录请求处理时间
func RecordRequestDuration(path string, seconds float64) {
	requestDuration.WithLabelValues(path).Observe(seconds)
}

// IncrementErrorCount 增加出错请求计数
func IncrementErrorCount(path string) {
	atomic.AddInt64(&errorRequests, 1)
}

func GetTotalRequestCount() int64 {
	return atomic.LoadInt64(&totalRequests)
}

func GetTotalErrorCount() int64 {
	return atomic.LoadInt64(&errorRequests)
}

func GetTotalCycleCount() int64 {
	return atomic.LoadInt64(&totalCycles)
}

func GetTunnelRestartCount() int64 {
	return atomic.LoadInt64(&tunnelRestarts)
}
