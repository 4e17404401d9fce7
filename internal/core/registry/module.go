package registry

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-bunker/internal/core/metrics"
	"github.com/dep2p/go-bunker/internal/core/storage"
)

// Params Registry 模块依赖参数
type Params struct {
	fx.In

	Backend *storage.Backend
	Metrics *metrics.Collector `optional:"true"`
}

// Module 返回 Registry Fx 模块
//
// 提供:
//   - *Store: 绑定到存储后端的注册表
//
// 生命周期:
//   - OnStart: 加载注册表
func Module() fx.Option {
	return fx.Module("registry",
		fx.Provide(ProvideStore),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideStore 提供注册表存储
func ProvideStore(p Params) *Store {
	return NewStore(p.Backend.IO, p.Backend.Location, p.Metrics)
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(lc fx.Lifecycle, s *Store) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			_, err := s.Load()
			return err
		},
	})
}
