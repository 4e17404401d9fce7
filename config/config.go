// Package config 提供统一的配置管理
//
// 主 Config 结构体嵌入所有子配置，每个子配置在独立文件中定义。
// 配置值在进程启动时构造一次，并显式传入各组件，不使用全局可变状态。
//
// 配置优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（BUNKER_ 前缀，见 ApplyEnv）
//  3. JSON 配置文件（见 LoadFile）
//  4. 默认值（见 NewConfig）
//
// 使用示例：
//
//	cfg, err := config.LoadFile("bunker.json")
//	if err != nil {
//	    return err
//	}
//	config.ApplyEnv(cfg, os.Getenv)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config 是 bunker 的完整配置结构
type Config struct {
	// Registry 房间注册表配置
	Registry RegistryConfig `json:"registry"`

	// Connection 连接管理配置
	Connection ConnectionConfig `json:"connection"`

	// Log 日志配置
	Log LogConfig `json:"log"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Registry:   DefaultRegistryConfig(),
		Connection: DefaultConnectionConfig(),
		Log:        DefaultLogConfig(),
		Metrics:    DefaultMetricsConfig(),
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if err := c.Registry.Validate(); err != nil {
		return err
	}
	if err := c.Connection.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}

// Clone 返回配置的深拷贝
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。
//
// 示例 JSON:
//
//	{
//	  "registry": {"backend": "file", "path": "./assets/rooms.csv"},
//	  "connection": {"dial_timeout": "10s", "dial_rate": 2},
//	  "log": {"level": "debug"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadFile 从 JSON 文件加载配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: 用户指定的配置文件路径是预期行为
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return FromJSON(data)
}

// ToJSON 序列化为带缩进的 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
