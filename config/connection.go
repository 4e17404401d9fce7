package config

import (
	"errors"
	"time"
)

// ConnectionConfig 连接管理配置
//
// 默认不设置任何超时：连接调用会一直阻塞到操作系统完成或报告失败。
// 需要超时的调用方可以设置 DialTimeout，或通过 context 控制。
type ConnectionConfig struct {
	// DialTimeout 拨号超时，0 表示不设超时
	DialTimeout Duration `json:"dial_timeout"`

	// KeepAlive TCP KeepAlive 周期，0 使用系统默认，负数禁用
	KeepAlive Duration `json:"keep_alive"`

	// NoDelay 是否禁用 Nagle 算法
	NoDelay bool `json:"no_delay"`

	// DialRate 每秒允许的拨号次数，0 表示不限制
	DialRate float64 `json:"dial_rate"`

	// DialBurst 拨号突发上限
	DialBurst int `json:"dial_burst"`
}

// DefaultConnectionConfig 返回默认连接配置
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		DialTimeout: 0,
		KeepAlive:   Duration(15 * time.Second),
		NoDelay:     true,
		DialRate:    0,
		DialBurst:   1,
	}
}

// Validate 验证连接配置
func (c *ConnectionConfig) Validate() error {
	if c.DialTimeout < 0 {
		return errors.New("connection: dial_timeout cannot be negative")
	}
	if c.DialRate < 0 {
		return errors.New("connection: dial_rate cannot be negative")
	}
	if c.DialRate > 0 && c.DialBurst < 1 {
		return errors.New("connection: dial_burst must be at least 1 when dial_rate is set")
	}
	return nil
}
