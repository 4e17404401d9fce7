package bunker

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-bunker/config"
)

// Option 用户配置选项函数
type Option func(*clientConfig) error

// clientConfig 客户端内部配置
type clientConfig struct {
	// config 统一配置
	config *config.Config

	// metricsRegistry 指标注册表，nil 时使用私有注册表
	metricsRegistry *prometheus.Registry

	// userFxOptions 用户自定义 Fx 选项
	userFxOptions []fx.Option
}

// newClientConfig 创建默认配置
func newClientConfig() *clientConfig {
	return &clientConfig{
		config: config.NewConfig(),
	}
}

// WithConfig 使用完整配置替换默认配置
//
// 会覆盖此前所有选项的效果，通常作为第一个选项。
func WithConfig(cfg *config.Config) Option {
	return func(c *clientConfig) error {
		if cfg == nil {
			return errors.New("config cannot be nil")
		}
		c.config = cfg.Clone()
		return nil
	}
}

// WithRegistryPath 使用文本文件注册表
func WithRegistryPath(path string) Option {
	return func(c *clientConfig) error {
		if path == "" {
			return errors.New("registry path cannot be empty")
		}
		c.config.Registry.Backend = config.BackendFile
		c.config.Registry.Path = path
		return nil
	}
}

// WithBackend 选择注册表存储后端: "file" 或 "badger"
func WithBackend(backend string) Option {
	return func(c *clientConfig) error {
		switch backend {
		case config.BackendFile, config.BackendBadger:
			c.config.Registry.Backend = backend
			return nil
		default:
			return fmt.Errorf("unknown registry backend %q", backend)
		}
	}
}

// WithDataDir 设置 badger 后端的数据目录
func WithDataDir(dir string) Option {
	return func(c *clientConfig) error {
		if dir == "" {
			return errors.New("data dir cannot be empty")
		}
		c.config.Registry.DataDir = dir
		return nil
	}
}

// WithDialTimeout 设置拨号超时，0 表示不设超时
func WithDialTimeout(d time.Duration) Option {
	return func(c *clientConfig) error {
		if d < 0 {
			return errors.New("dial timeout cannot be negative")
		}
		c.config.Connection.DialTimeout = config.Duration(d)
		return nil
	}
}

// WithDialRate 限制每秒拨号次数
func WithDialRate(perSecond float64, burst int) Option {
	return func(c *clientConfig) error {
		c.config.Connection.DialRate = perSecond
		c.config.Connection.DialBurst = burst
		return nil
	}
}

// WithMetrics 启用或关闭指标收集
func WithMetrics(enabled bool) Option {
	return func(c *clientConfig) error {
		c.config.Metrics.Enabled = enabled
		return nil
	}
}

// WithMetricsRegistry 把指标注册到给定的 prometheus 注册表
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(c *clientConfig) error {
		c.metricsRegistry = reg
		return nil
	}
}

// WithFxOptions 追加自定义 Fx 选项
//
// 用于替换或装饰内部组件，例如在测试中注入 fx.Decorate。
func WithFxOptions(opts ...fx.Option) Option {
	return func(c *clientConfig) error {
		c.userFxOptions = append(c.userFxOptions, opts...)
		return nil
	}
}
