package config

import (
	"fmt"

	"github.com/dep2p/go-bunker/pkg/lib/log"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别: debug/info/warn/error
	Level string `json:"level"`

	// Format 输出格式: text 或 json
	Format string `json:"format"`

	// File 日志文件路径，为空时输出到 stderr
	File string `json:"file,omitempty"`

	// AddSource 是否添加源码位置
	AddSource bool `json:"add_source"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "warn",
		Format: string(log.FormatText),
	}
}

// Validate 验证日志配置
func (c *LogConfig) Validate() error {
	if _, ok := log.ParseLevel(c.Level); !ok {
		return fmt.Errorf("log: unknown level %q", c.Level)
	}
	return nil
}

// Options 转换为 log.Setup 选项（不含输出目标）
func (c *LogConfig) Options() log.Options {
	level, _ := log.ParseLevel(c.Level)
	return log.Options{
		Level:     level,
		Format:    log.ParseFormat(c.Format),
		AddSource: c.AddSource,
	}
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否启用指标收集
	Enabled bool `json:"enabled"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{Enabled: true}
}
