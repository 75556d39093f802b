package config

import (
	"fmt"
	"path/filepath"

	"tunnel-keeper/internal/env"

	"github.com/spf13/viper"
)

/**
 * Server configuration parameters
 * @property {string} address - Server listening address (e.g. "127.0.0.1:8340")
 * @property {string} mode - Application mode (debug/release/test)
 */
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"`
}

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path
 */
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

/**
 * Metrics configuration
 * @property {string} pushgateway - Pushgateway address for metrics
 */
type MetricsConfig struct {
	Pushgateway string `mapstructure:"pushgateway"`
}

/**
 * Tunnel configuration, fixed at startup (no runtime reload)
 * @property {int} local_port - Local forwarding port
 * @property {string} remote_host - Remote host spec: user@host or user@host:port
 * @property {int} remote_port - Port forwarded on the remote side
 * @property {string} ssh_path - Path of the ssh client binary
 */
type TunnelConfig struct {
	LocalPort  int    `mapstructure:"local_port"`
	RemoteHost string `mapstructure:"remote_host"`
	RemotePort int    `mapstructure:"remote_port"`
	SshPath    string `mapstructure:"ssh_path"`
}

/**
 * Connectivity probe configuration
 * @property {string} target - host:port used for the coarse reachability probe
 * @property {int} timeout - Probe timeout in seconds
 */
type ProbeConfig struct {
	Target  string `mapstructure:"target"`
	Timeout int    `mapstructure:"timeout"`
}

/**
 * Interval configuration, all values in seconds
 * @property {int} monitoring - Sleep between supervisor cycles
 * @property {int} grace_period - Wait after launch before the first health check
 */
type IntervalConfig struct {
	Monitoring  int `mapstructure:"monitoring"`
	GracePeriod int `mapstructure:"grace_period"`
}

type AppConfig struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Tunnel   TunnelConfig   `mapstructure:"tunnel"`
	Probe    ProbeConfig    `mapstructure:"probe"`
	Interval IntervalConfig `mapstructure:"interval"`
}

/**
 * Load application configuration from YAML file
 * @returns {(*AppConfig, error)} Returns loaded configuration and error if any
 * @description
 * - Searches config.yaml in ~/.tunnel-keeper and the working directory
 * - Unmarshals into AppConfig via mapstructure tags
 * - Missing file is not an error: defaults are collected afterwards
 */
func LoadConfig() (*AppConfig, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(env.KeeperDir)
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var Config AppConfig

func collectConfig(cfg *AppConfig) *AppConfig {
	if cfg.Server.Address == "" {
		cfg.Server.Address = "127.0.0.1:8340"
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = filepath.Join(env.KeeperDir, "logs", "tunnel-keeper.log")
	}
	if cfg.Tunnel.SshPath == "" {
		cfg.Tunnel.SshPath = "ssh"
	}
	if cfg.Tunnel.RemotePort == 0 {
		cfg.Tunnel.RemotePort = 22
	}
	if cfg.Probe.Target == "" {
		cfg.Probe.Target = "1.1.1.1:443"
	}
	if cfg.Probe.Timeout <= 0 {
		cfg.Probe.Timeout = 3
	}
	if cfg.Interval.Monitoring <= 0 {
		cfg.Interval.Monitoring = 60
	}
	if cfg.Interval.GracePeriod <= 0 {
		cfg.Interval.GracePeriod = 5
	}
	return cfg
}

/**
 * Validate configuration before entering the supervisor loop
 * @param {*AppConfig} cfg - Configuration to validate
 * @returns {error} Returns error describing the first invalid field, nil if valid
 * @description
 * - A malformed port number or empty remote host can never self-heal by
 *   retrying, so the caller is expected to exit on a non-nil result
 */
func Validate(cfg *AppConfig) error {
	if cfg.Tunnel.LocalPort < 1 || cfg.Tunnel.LocalPort > 65535 {
		return fmt.Errorf("invalid tunnel.local_port %d: must be 1-65535", cfg.Tunnel.LocalPort)
	}
	if cfg.Tunnel.RemotePort < 1 || cfg.Tunnel.RemotePort > 65535 {
		return fmt.Errorf("invalid tunnel.remote_port %d: must be 1-65535", cfg.Tunnel.RemotePort)
	}
	if cfg.Tunnel.RemoteHost == "" {
		return fmt.Errorf("tunnel.remote_host must not be empty")
	}
	return nil
}

func init() {
	cfg, err := LoadConfig()
	if err == nil {
		Config = *cfg
	}
	collectConfig(&Config)
}
