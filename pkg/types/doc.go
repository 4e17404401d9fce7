// Package types 定义 bunker 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他 bunker 内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - room.go     - Room 房间记录、Endpoint 端点、ResolutionKind 解析方式
package types
