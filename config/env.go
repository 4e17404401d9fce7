package config

import (
	"strconv"
	"strings"
	"time"
)

// 环境变量名（均使用 EnvPrefix 前缀）
const (
	// EnvPrefix 环境变量前缀
	EnvPrefix = "BUNKER_"

	EnvRegistryBackend = "REGISTRY_BACKEND"
	EnvRegistryPath    = "REGISTRY_PATH"
	EnvDataDir         = "DATA_DIR"
	EnvDialTimeout     = "DIAL_TIMEOUT"
	EnvDialRate        = "DIAL_RATE"
	EnvLogLevel        = "LOG_LEVEL"
	EnvLogFormat       = "LOG_FORMAT"
	EnvLogFile         = "LOG_FILE"
	EnvMetrics         = "METRICS"
)

// ApplyEnv 应用环境变量覆盖配置
//
// getenv 通常传入 os.Getenv，测试时可传入桩函数。
// 无法解析的值被忽略，保留原配置。
func ApplyEnv(cfg *Config, getenv func(string) string) {
	get := func(name string) string {
		return strings.TrimSpace(getenv(EnvPrefix + name))
	}

	if v := get(EnvRegistryBackend); v != "" {
		cfg.Registry.Backend = strings.ToLower(v)
	}
	if v := get(EnvRegistryPath); v != "" {
		cfg.Registry.Path = v
	}
	if v := get(EnvDataDir); v != "" {
		cfg.Registry.DataDir = v
	}
	if v := get(EnvDialTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Connection.DialTimeout = Duration(d)
		}
	}
	if v := get(EnvDialRate); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Connection.DialRate = r
		}
	}
	if v := get(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := get(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := get(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	if v := get(EnvMetrics); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
}

// parseBool 解析布尔值字符串
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
