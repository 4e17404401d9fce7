package connmgr

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-bunker/config"
	"github.com/dep2p/go-bunker/internal/core/metrics"
)

// Params ConnMgr 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config     `optional:"true"`
	Metrics    *metrics.Collector `optional:"true"`
}

// Module 返回 Fx 模块
//
// 生命周期:
//   - OnStop: 关闭管理器和遗留句柄
func Module() fx.Option {
	return fx.Module("connmgr",
		fx.Provide(ProvideManager),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideManager 提供连接管理器
func ProvideManager(p Params) (*Manager, error) {
	return New(ConfigFromUnified(p.UnifiedCfg), p.Metrics)
}

// registerLifecycle 注册生命周期
func registerLifecycle(lc fx.Lifecycle, mgr *Manager) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return mgr.Close()
		},
	})
}
