package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/dep2p/go-bunker/config"
	"github.com/dep2p/go-bunker/pkg/types"
)

func TestCollector_Resolutions(t *testing.T) {
	c := NewCollector(nil)

	c.ObserveResolution(types.ResolutionLookedUp)
	c.ObserveResolution(types.ResolutionParsed)
	c.ObserveResolution(types.ResolutionParsed)
	c.ObserveUnresolvable()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutions.WithLabelValues(ResultLookedUp)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.resolutions.WithLabelValues(ResultParsed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutions.WithLabelValues(ResultUnresolvable)))
}

func TestCollector_Dials(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.ObserveDial(nil)
	c.ObserveDial(nil)
	c.ObserveDial(errors.New("refused"))
	c.HandleClosed()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.dials.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dials.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.openHandles))
}

func TestCollector_Bytes(t *testing.T) {
	c := NewCollector(nil)

	c.AddBytesRead(10)
	c.AddBytesRead(0)
	c.AddBytesWritten(7)
	c.AddBytesWritten(-1)

	assert.Equal(t, 10.0, testutil.ToFloat64(c.bytesRead))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.bytesWritten))
}

func TestCollector_Registry(t *testing.T) {
	c := NewCollector(nil)

	c.ObserveLoad(2, 1)
	c.ObserveSave(3, nil)
	c.ObserveSave(3, errors.New("disk full"))

	snap := c.Snapshot()
	assert.Equal(t, 3.0, snap["bunker_registry_rooms"])
	assert.Equal(t, 1.0, snap["bunker_registry_load_warnings_total"])
	assert.Equal(t, 1.0, snap["bunker_registry_saves_total{result=ok}"])
	assert.Equal(t, 1.0, snap["bunker_registry_saves_total{result=error}"])
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.ObserveResolution(types.ResolutionParsed)
		c.ObserveUnresolvable()
		c.ObserveDial(nil)
		c.HandleClosed()
		c.AddBytesRead(1)
		c.AddBytesWritten(1)
		c.ObserveLoad(1, 1)
		c.ObserveSave(1, nil)
	})
	assert.Empty(t, c.Snapshot())
}

func TestProvideCollector_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = false

	assert.Nil(t, ProvideCollector(Params{UnifiedCfg: cfg}))
	assert.NotNil(t, ProvideCollector(Params{}))
}
