package bunker

import (
	"fmt"
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-bunker/internal/core/connmgr"
	"github.com/dep2p/go-bunker/internal/core/metrics"
	"github.com/dep2p/go-bunker/internal/core/registry"
	"github.com/dep2p/go-bunker/internal/core/resolver"
	"github.com/dep2p/go-bunker/internal/core/storage"
	"github.com/dep2p/go-bunker/pkg/lib/log"
)

var fxLogger = log.Logger("bunker/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. metrics
//  2. storage → registry → resolver
//  3. connmgr
//  4. 用户扩展
func buildFxApp(cfg *clientConfig, client *Client) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置验证（前置）
	// ════════════════════════════════════════════════════════════════════════
	if err := cfg.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 配置注入与核心模块
	// ════════════════════════════════════════════════════════════════════════
	modules := []fx.Option{
		fx.Supply(cfg.config),

		metrics.Module,
		storage.Module(),
		registry.Module(),
		resolver.Module(),
		connmgr.Module(),
	}

	if cfg.metricsRegistry != nil {
		modules = append(modules, fx.Supply(cfg.metricsRegistry))
	}

	// ════════════════════════════════════════════════════════════════════════
	// 3. 用户扩展（Fx Options）
	// ════════════════════════════════════════════════════════════════════════
	if len(cfg.userFxOptions) > 0 {
		modules = append(modules, cfg.userFxOptions...)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 4. Client 组件注入
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, fx.Invoke(injectClientComponents(client)))

	// ════════════════════════════════════════════════════════════════════════
	// 5. Fx 配置
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: fxZapLogger()}
		}),
	)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, err
	}
	return app, nil
}

// fxZapLogger Debug 级别时输出 Fx 事件，否则静默（避免干扰用户日志）
func fxZapLogger() *zap.Logger {
	if !fxLogger.Enabled(slog.LevelDebug) {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l.Named("fx")
}

// clientInjectParams Client 组件注入参数
type clientInjectParams struct {
	fx.In

	Backend  *storage.Backend
	Store    *registry.Store
	Resolver *resolver.Resolver
	ConnMgr  *connmgr.Manager
	Metrics  *metrics.Collector `optional:"true"`
}

// injectClientComponents 创建 Client 组件注入函数
func injectClientComponents(client *Client) interface{} {
	return func(params clientInjectParams) {
		client.backend = params.Backend
		client.store = params.Store
		client.resolver = params.Resolver
		client.connMgr = params.ConnMgr
		client.metrics = params.Metrics
	}
}
