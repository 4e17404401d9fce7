// Package storage 提供注册表使用的字节块 I/O 协作者
//
// 注册表存储只依赖 BlobIO 的三个原语（Size / ReadAll / WriteAll），
// 不关心具体的存储介质。本包提供两种实现：
//
//   - FileIO: 普通文本文件，WriteAll 采用"写临时文件 + rename"保证原子替换
//   - KVIO: 基于 BadgerDB 的 KV 存储，整份注册表作为一个值在单个事务中写入
//
// # 文件组织
//
//   - blob.go    - BlobIO 接口与错误
//   - file.go    - FileIO 文件实现
//   - kvblob.go  - KVIO 实现
//   - module.go  - Fx 模块，按配置选择后端
package storage
