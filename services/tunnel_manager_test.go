package services

import (
	"fmt"
	"testing"

	"tunnel-keeper/internal/inspect"
)

/**
 * TestFindManagedProcessMatchesSignature 按启动参数签名识别受管进程
 * @description
 * - 进程表里混有无关进程、同端口不同远端的ssh会话和受管隧道
 * - 验证只有转发参数和远端主机都匹配的进程被认领
 */
func TestFindManagedProcessMatchesSignature(t *testing.T) {
	cfg := testConfig()
	procs := &fakeProcessInspector{
		procs: []inspect.ProcessInfo{
			{Pid: 100, Name: "sshd", Cmdline: "/usr/sbin/sshd -D"},
			// 同一本地端口，但指向另一台远端，不是我们的
			{Pid: 200, Name: "ssh", Cmdline: "ssh -N -L 2222:127.0.0.1:22 other@elsewhere.net"},
			{Pid: 300, Name: "ssh", Cmdline: "ssh backup@example.com"},
			managedSSHProcess(400),
		},
	}
	tm := NewTunnelManager(cfg, procs, &fakeChecker{results: []bool{true}})

	proc := tm.FindManagedProcess()
	if proc == nil {
		t.Fatal("Managed process should be found")
	}
	if proc.Pid != 400 {
		t.Errorf("Expected PID 400, got %d", proc.Pid)
	}
}

/**
 * TestFindManagedProcessIgnoresUnrelated 无匹配签名时返回nil
 */
func TestFindManagedProcessIgnoresUnrelated(t *testing.T) {
	cfg := testConfig()
	procs := &fakeProcessInspector{
		procs: []inspect.ProcessInfo{
			{Pid: 200, Name: "ssh", Cmdline: "ssh -N -L 2222:127.0.0.1:22 other@elsewhere.net"},
			{Pid: 500, Name: "nginx", Cmdline: "nginx -g daemon off;"},
		},
	}
	tm := NewTunnelManager(cfg, procs, &fakeChecker{results: []bool{true}})

	if proc := tm.FindManagedProcess(); proc != nil {
		t.Errorf("No process should match, got PID %d", proc.Pid)
	}
}

/**
 * TestStopWithoutProcessIsNoop 没有受管进程时停止是幂等的空操作
 * @description
 * - 进程表为空，连续两次停止
 * - 验证两次都返回成功且没有任何终止动作
 */
func TestStopWithoutProcessIsNoop(t *testing.T) {
	cfg := testConfig()
	procs := &fakeProcessInspector{}
	tm := NewTunnelManager(cfg, procs, &fakeChecker{results: []bool{true}})

	for i := 0; i < 2; i++ {
		if err := tm.Stop(); err != nil {
			t.Fatalf("Stop %d must be a no-op, got error: %v", i, err)
		}
	}
	if len(procs.terminated) != 0 || len(procs.killed) != 0 {
		t.Error("Stop without a managed process must not terminate anything")
	}
}

/**
 * TestStopTerminatesManagedProcess 停止只终止签名匹配的进程
 */
func TestStopTerminatesManagedProcess(t *testing.T) {
	cfg := testConfig()
	procs := &fakeProcessInspector{
		procs: []inspect.ProcessInfo{
			{Pid: 200, Name: "ssh", Cmdline: "ssh -N -L 2222:127.0.0.1:22 other@elsewhere.net"},
			managedSSHProcess(400),
		},
	}
	tm := NewTunnelManager(cfg, procs, &fakeChecker{results: []bool{true}})

	if err := tm.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if len(procs.terminated) != 1 || procs.terminated[0] != 400 {
		t.Errorf("Expected exactly PID 400 terminated, got %v", procs.terminated)
	}
}

/**
 * TestStartVerifiesHealthBeforeSuccess 启动必须先通过健康验证才算成功
 * @description
 * - 健康检查在spawn之后、Start返回之前执行（launch-then-verify不变式）
 */
func TestStartVerifiesHealthBeforeSuccess(t *testing.T) {
	cfg := testConfig()
	procs := &fakeProcessInspector{}
	spawned := false
	checkedAfterSpawn := false

	checker := &fakeChecker{results: []bool{true}}
	tm := NewTunnelManager(cfg, procs, healthCheckFunc(func(port int) bool {
		checkedAfterSpawn = spawned
		return checker.IsHealthy(port)
	}))
	tm.spawn = func() (int, error) {
		spawned = true
		return 43001, nil
	}

	proc, err := tm.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if proc.Pid != 43001 {
		t.Errorf("Expected PID 43001, got %d", proc.Pid)
	}
	if !checkedAfterSpawn {
		t.Error("Health verification must run after the launch")
	}
}

/**
 * TestStartKillsUnhealthyLaunch 启动后验证失败时回收刚拉起的进程
 * @description
 * - spawn成功但健康检查失败
 * - 验证Start报错，且刚启动的PID被立即杀掉，避免假成功
 */
func TestStartKillsUnhealthyLaunch(t *testing.T) {
	cfg := testConfig()
	procs := &fakeProcessInspector{}
	tm := NewTunnelManager(cfg, procs, &fakeChecker{results: []bool{false}})
	tm.spawn = func() (int, error) {
		return 43002, nil
	}

	if _, err := tm.Start(); err == nil {
		t.Fatal("Start must fail when the launched process is unhealthy")
	}
	if len(procs.killed) != 1 || procs.killed[0] != 43002 {
		t.Errorf("Unhealthy launch must be killed, got kills: %v", procs.killed)
	}
}

/**
 * TestStartReportsLaunchFailure 无法拉起隧道二进制时报错
 */
func TestStartReportsLaunchFailure(t *testing.T) {
	cfg := testConfig()
	procs := &fakeProcessInspector{}
	checker := &fakeChecker{results: []bool{true}}
	tm := NewTunnelManager(cfg, procs, checker)
	tm.spawn = func() (int, error) {
		return 0, fmt.Errorf("executable file not found in $PATH")
	}

	if _, err := tm.Start(); err == nil {
		t.Fatal("Start must report a launch failure")
	}
	if checker.calls != 0 {
		t.Error("Health check must not run when the launch itself failed")
	}
}

// healthCheckFunc adapts a plain function to the HealthChecker interface.
type healthCheckFunc func(port int) bool

func (f healthCheckFunc) IsHealthy(port int) bool {
	return f(port)
}
