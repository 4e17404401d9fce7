package connmgr

import (
	"time"

	"github.com/dep2p/go-bunker/config"
)

// Config 连接管理器配置
type Config struct {
	// DialTimeout 拨号超时，0 表示不设超时
	DialTimeout time.Duration

	// KeepAlive TCP KeepAlive 周期
	//
	// 0 使用系统默认值，负数禁用。
	KeepAlive time.Duration

	// NoDelay 是否禁用 Nagle 算法
	NoDelay bool

	// DialRate 每秒允许的拨号次数，0 表示不限制
	DialRate float64

	// DialBurst 拨号突发上限
	DialBurst int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建连接管理配置
func ConfigFromUnified(cfg *config.Config) Config {
	cc := config.DefaultConnectionConfig()
	if cfg != nil {
		cc = cfg.Connection
	}
	return Config{
		DialTimeout: cc.DialTimeout.Duration(),
		KeepAlive:   cc.KeepAlive.Duration(),
		NoDelay:     cc.NoDelay,
		DialRate:    cc.DialRate,
		DialBurst:   cc.DialBurst,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.DialTimeout < 0 {
		return ErrInvalidConfig
	}
	if c.DialRate < 0 {
		return ErrInvalidConfig
	}
	if c.DialRate > 0 && c.DialBurst < 1 {
		return ErrInvalidConfig
	}
	return nil
}

// WithDialTimeout 设置拨号超时
func (c Config) WithDialTimeout(d time.Duration) Config {
	c.DialTimeout = d
	return c
}

// WithDialRate 设置拨号限速
func (c Config) WithDialRate(perSecond float64, burst int) Config {
	c.DialRate = perSecond
	c.DialBurst = burst
	return c
}
