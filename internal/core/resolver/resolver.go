// Package resolver 把用户输入的令牌解析为网络端点
//
// 解析顺序固定：先按房间名查注册表，未命中再把令牌当作 host:port 字面量解析。
// 看起来像 host:port 的房间名因此永远不会被误解析；
// 既无冒号又未登记的令牌直接失败，不会落到任何默认值。
package resolver

import (
	"fmt"

	"github.com/dep2p/go-bunker/internal/core/metrics"
	"github.com/dep2p/go-bunker/internal/core/registry"
	"github.com/dep2p/go-bunker/internal/util/addrutil"
	"github.com/dep2p/go-bunker/pkg/lib/log"
	"github.com/dep2p/go-bunker/pkg/types"
)

var logger = log.Logger("core/resolver")

// Resolve 在给定注册表上解析令牌
func Resolve(token string, reg registry.Registry) (types.Endpoint, error) {
	if room, err := reg.Find(token); err == nil {
		ep := room.Endpoint()
		ep.Kind = types.ResolutionLookedUp
		return ep, nil
	}

	address, port, err := addrutil.SplitEndpoint(token)
	if err != nil {
		return types.Endpoint{}, fmt.Errorf("%w: %q (%v)", ErrUnresolvable, token, err)
	}
	return types.Endpoint{
		Address: address,
		Port:    port,
		Kind:    types.ResolutionParsed,
	}, nil
}

// Source 提供注册表快照
//
// *registry.Store 满足此接口。
type Source interface {
	Snapshot() registry.Registry
}

// Resolver 绑定注册表来源的解析器
type Resolver struct {
	source  Source
	metrics *metrics.Collector
}

// New 创建解析器
//
// source 为 nil 时按空注册表解析；m 可以为 nil。
func New(source Source, m *metrics.Collector) *Resolver {
	return &Resolver{source: source, metrics: m}
}

// Resolve 在当前注册表快照上解析令牌
func (r *Resolver) Resolve(token string) (types.Endpoint, error) {
	var reg registry.Registry
	if r.source != nil {
		reg = r.source.Snapshot()
	}

	ep, err := Resolve(token, reg)
	if err != nil {
		r.metrics.ObserveUnresolvable()
		logger.Debug("令牌无法解析", "token", token)
		return ep, err
	}

	r.metrics.ObserveResolution(ep.Kind)
	logger.Debug("令牌已解析", "token", token, "endpoint", ep.String(), "kind", ep.Kind.String())
	return ep, nil
}
