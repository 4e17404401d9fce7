package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-bunker/pkg/types"
)

const namespace = "bunker"

// 解析结果标签
const (
	ResultLookedUp     = "looked_up"
	ResultParsed       = "parsed"
	ResultUnresolvable = "unresolvable"
)

// Collector 指标收集器
type Collector struct {
	resolutions  *prometheus.CounterVec
	dials        *prometheus.CounterVec
	bytesRead    prometheus.Counter
	bytesWritten prometheus.Counter
	openHandles  prometheus.Gauge
	loadWarnings prometheus.Counter
	saves        *prometheus.CounterVec
	rooms        prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewCollector 创建收集器并注册到 reg
//
// reg 为 nil 时使用新建的私有 Registry，避免污染全局默认注册表。
func NewCollector(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	c := &Collector{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Token resolutions by outcome.",
		}, []string{"result"}),
		dials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "connmgr",
			Name:      "dials_total",
			Help:      "TCP dial attempts by outcome.",
		}, []string{"result"}),
		bytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "connmgr",
			Name:      "read_bytes_total",
			Help:      "Bytes read from connection handles.",
		}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "connmgr",
			Name:      "written_bytes_total",
			Help:      "Bytes written to connection handles.",
		}),
		openHandles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "connmgr",
			Name:      "open_handles",
			Help:      "Connection handles currently in the Connected state.",
		}),
		loadWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "load_warnings_total",
			Help:      "Registry lines skipped while loading.",
		}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "saves_total",
			Help:      "Registry saves by outcome.",
		}, []string{"result"}),
		rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "rooms",
			Help:      "Rooms in the in-memory registry.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		c.resolutions,
		c.dials,
		c.bytesRead,
		c.bytesWritten,
		c.openHandles,
		c.loadWarnings,
		c.saves,
		c.rooms,
	)

	return c
}

// ObserveResolution 记录一次成功解析
func (c *Collector) ObserveResolution(kind types.ResolutionKind) {
	if c == nil {
		return
	}
	switch kind {
	case types.ResolutionLookedUp:
		c.resolutions.WithLabelValues(ResultLookedUp).Inc()
	case types.ResolutionParsed:
		c.resolutions.WithLabelValues(ResultParsed).Inc()
	}
}

// ObserveUnresolvable 记录一次解析失败
func (c *Collector) ObserveUnresolvable() {
	if c == nil {
		return
	}
	c.resolutions.WithLabelValues(ResultUnresolvable).Inc()
}

// ObserveDial 记录一次拨号结果
func (c *Collector) ObserveDial(err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.dials.WithLabelValues("error").Inc()
		return
	}
	c.dials.WithLabelValues("ok").Inc()
	c.openHandles.Inc()
}

// HandleClosed 记录一个连接句柄进入 Closed 状态
func (c *Collector) HandleClosed() {
	if c == nil {
		return
	}
	c.openHandles.Dec()
}

// AddBytesRead 累加读取字节数
func (c *Collector) AddBytesRead(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.bytesRead.Add(float64(n))
}

// AddBytesWritten 累加写入字节数
func (c *Collector) AddBytesWritten(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.bytesWritten.Add(float64(n))
}

// ObserveLoad 记录一次注册表加载
func (c *Collector) ObserveLoad(rooms, warnings int) {
	if c == nil {
		return
	}
	c.rooms.Set(float64(rooms))
	if warnings > 0 {
		c.loadWarnings.Add(float64(warnings))
	}
}

// ObserveSave 记录一次注册表保存
func (c *Collector) ObserveSave(rooms int, err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.saves.WithLabelValues("error").Inc()
		return
	}
	c.saves.WithLabelValues("ok").Inc()
	c.rooms.Set(float64(rooms))
}

// Snapshot 返回所有指标的当前值，键为指标全名（带标签时附加 {label=value}）
func (c *Collector) Snapshot() map[string]float64 {
	out := make(map[string]float64)
	if c == nil {
		return out
	}

	families, err := c.gatherer.Gather()
	if err != nil {
		return out
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, lp := range m.GetLabel() {
				name += "{" + lp.GetName() + "=" + lp.GetValue() + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[name] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[name] = m.GetGauge().GetValue()
			}
		}
	}
	return out
}
