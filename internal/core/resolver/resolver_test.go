package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-bunker/internal/core/metrics"
	"github.com/dep2p/go-bunker/internal/core/registry"
	"github.com/dep2p/go-bunker/pkg/types"
)

type staticSource registry.Registry

func (s staticSource) Snapshot() registry.Registry { return registry.Registry(s) }

func sample() registry.Registry {
	reg, _ := registry.Load([]byte("lobby,10.0.0.5:9001\ngames,10.0.0.6:9002"))
	return reg
}

// TestResolve_LookedUp 测试每个已登记房间都按名字解析
func TestResolve_LookedUp(t *testing.T) {
	reg := sample()
	for _, room := range reg.Rooms() {
		ep, err := Resolve(room.Name, reg)
		require.NoError(t, err)
		assert.Equal(t, types.Endpoint{Address: room.Address, Port: room.Port, Kind: types.ResolutionLookedUp}, ep)
	}
}

// TestResolve_Parsed 测试字面量 host:port
func TestResolve_Parsed(t *testing.T) {
	ep, err := Resolve("10.0.0.9:7000", registry.Registry{})
	require.NoError(t, err)
	assert.Equal(t, types.Endpoint{Address: "10.0.0.9", Port: 7000, Kind: types.ResolutionParsed}, ep)
}

// TestResolve_Unresolvable 测试无法解析的令牌
func TestResolve_Unresolvable(t *testing.T) {
	for _, token := range []string{"nope", "", "host:", ":80", "host:99999", "host:abc"} {
		_, err := Resolve(token, registry.Registry{})
		assert.ErrorIs(t, err, ErrUnresolvable, token)
	}
}

// TestResolve_LookupWins 测试形如 host:port 的房间名优先按注册表解析
func TestResolve_LookupWins(t *testing.T) {
	// 含冒号的名字无法编码，但内存中的注册表仍可能持有这样的记录
	reg := registry.New(types.Room{Name: "10.0.0.9:7000", Address: "10.0.0.2", Port: 2})

	ep, err := Resolve("10.0.0.9:7000", reg)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.2", ep.Address)
	assert.Equal(t, 2, ep.Port)
	assert.Equal(t, types.ResolutionLookedUp, ep.Kind)
}

// TestResolver_Metrics 测试解析器记录指标
func TestResolver_Metrics(t *testing.T) {
	m := metrics.NewCollector(nil)
	r := New(staticSource(sample()), m)

	_, err := r.Resolve("lobby")
	require.NoError(t, err)
	_, err = r.Resolve("127.0.0.1:80")
	require.NoError(t, err)
	_, err = r.Resolve("nope")
	require.ErrorIs(t, err, ErrUnresolvable)

	snap := m.Snapshot()
	assert.Equal(t, float64(1), snap["bunker_resolver_resolutions_total{result=looked_up}"])
	assert.Equal(t, float64(1), snap["bunker_resolver_resolutions_total{result=parsed}"])
	assert.Equal(t, float64(1), snap["bunker_resolver_resolutions_total{result=unresolvable}"])
}

// TestResolver_NilSource 测试无来源时按空注册表解析
func TestResolver_NilSource(t *testing.T) {
	r := New(nil, nil)

	ep, err := r.Resolve("localhost:9")
	require.NoError(t, err)
	assert.Equal(t, types.ResolutionParsed, ep.Kind)

	_, err = r.Resolve("lobby")
	assert.ErrorIs(t, err, ErrUnresolvable)
}
