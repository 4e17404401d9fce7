package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-bunker/config"
)

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config       `optional:"true"`
	Registry   *prometheus.Registry `optional:"true"`
}

// Module 是 metrics 的 Fx 模块
//
// 指标关闭时提供 nil *Collector，下游组件的所有记录调用都是空操作。
var Module = fx.Module("metrics",
	fx.Provide(ProvideCollector),
)

// ProvideCollector 从参数创建 Collector
func ProvideCollector(p Params) *Collector {
	if p.UnifiedCfg != nil && !p.UnifiedCfg.Metrics.Enabled {
		return nil
	}
	return NewCollector(p.Registry)
}
