// Package registry 实现房间注册表
//
// 注册表是有序的房间记录序列，持久化为一段 UTF-8 文本，每行一条记录：
//
//	name,address:port
//
// 名字和地址中不允许出现 ',' 或 ':'，这类记录在编码时被拒绝而不是转义。
//
// # 组成
//
//   - codec.go     - 单行文本与 Room 之间的编解码
//   - registry.go  - Registry 值类型：Load / Save / Find / Upsert
//   - store.go     - Store：持有内存注册表并通过 storage.BlobIO 读写
//
// # 并发
//
// Registry 是值语义：Upsert 返回新的 Registry，从不修改调用方持有的副本。
// Store 用互斥锁实现单写者约束，upsert + save 在同一把锁内完成；
// 读者通过 Snapshot 获得一致的拷贝。
package registry
