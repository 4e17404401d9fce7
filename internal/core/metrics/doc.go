// Package metrics 提供监控指标收集
//
// 基于 prometheus client_golang 实现，记录：
//   - 令牌解析次数（按解析方式：looked-up / parsed / unresolvable）
//   - 拨号结果（成功 / 失败）
//   - 连接读写字节数
//   - 注册表加载告警数、保存结果、当前房间数
//
// 所有方法都允许在 nil *Collector 上调用，此时不做任何事，
// 便于在关闭指标时直接传 nil。
//
// # 快速开始
//
//	reg := prometheus.NewRegistry()
//	c := metrics.NewCollector(reg)
//	c.ObserveResolution(types.ResolutionParsed)
//	c.AddBytesWritten(128)
package metrics
