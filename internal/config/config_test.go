package config

import (
	"strings"
	"testing"
)

func validConfig() AppConfig {
	cfg := AppConfig{}
	cfg.Tunnel.LocalPort = 2222
	cfg.Tunnel.RemoteHost = "backup@example.com"
	cfg.Tunnel.RemotePort = 22
	cfg.Tunnel.SshPath = "ssh"
	return cfg
}

/**
 * TestValidateAcceptsGoodConfig 合法配置通过校验
 */
func TestValidateAcceptsGoodConfig(t *testing.T) {
	cfg := validConfig()
	if err := Validate(&cfg); err != nil {
		t.Errorf("Valid config rejected: %v", err)
	}
}

/**
 * TestValidateRejectsBadPorts 非法端口在进循环前被拒绝
 */
func TestValidateRejectsBadPorts(t *testing.T) {
	cases := []struct {
		name  string
		local int
		remot int
	}{
		{"zero local port", 0, 22},
		{"negative local port", -1, 22},
		{"local port too large", 65536, 22},
		{"zero remote port", 2222, 0},
		{"remote port too large", 2222, 70000},
	}

	for _, tc := range cases {
		cfg := validConfig()
		cfg.Tunnel.LocalPort = tc.local
		cfg.Tunnel.RemotePort = tc.remot
		if err := Validate(&cfg); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

/**
 * TestValidateRejectsEmptyRemoteHost 远端主机为空直接失败
 */
func TestValidateRejectsEmptyRemoteHost(t *testing.T) {
	cfg := validConfig()
	cfg.Tunnel.RemoteHost = ""
	err := Validate(&cfg)
	if err == nil {
		t.Fatal("Expected validation error for empty remote host")
	}
	if !strings.Contains(err.Error(), "remote_host") {
		t.Errorf("Error should name the offending field, got: %v", err)
	}
}

/**
 * TestCollectConfigDefaults 缺省值在加载后补齐
 */
func TestCollectConfigDefaults(t *testing.T) {
	cfg := AppConfig{}
	collectConfig(&cfg)

	if cfg.Tunnel.SshPath != "ssh" {
		t.Errorf("Expected default ssh path, got %q", cfg.Tunnel.SshPath)
	}
	if cfg.Interval.Monitoring != 60 {
		t.Errorf("Expected default monitoring interval 60, got %d", cfg.Interval.Monitoring)
	}
	if cfg.Interval.GracePeriod != 5 {
		t.Errorf("Expected default grace period 5, got %d", cfg.Interval.GracePeriod)
	}
	if cfg.Probe.Target == "" || cfg.Probe.Timeout <= 0 {
		t.Errorf("Expected probe defaults, got %+v", cfg.Probe)
	}
	if cfg.Log.Path == "" {
		t.Error("Expected default log path")
	}
}
