package resolver

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-bunker/internal/core/metrics"
	"github.com/dep2p/go-bunker/internal/core/registry"
)

// Params Resolver 依赖参数
type Params struct {
	fx.In

	Store   *registry.Store
	Metrics *metrics.Collector `optional:"true"`
}

// Module 返回 Resolver Fx 模块
func Module() fx.Option {
	return fx.Module("resolver",
		fx.Provide(ProvideResolver),
	)
}

// ProvideResolver 提供绑定到注册表存储的解析器
func ProvideResolver(p Params) *Resolver {
	return New(p.Store, p.Metrics)
}
