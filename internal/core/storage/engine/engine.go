// Package engine 定义存储引擎接口
//
// 引擎只承载注册表所需的最小能力：单键读写、读写事务、同步与关闭。
//
// # 线程安全
//
// 所有接口实现必须保证线程安全。事务在提交前与其他并发操作相互独立。
package engine

// Engine 存储引擎接口
type Engine interface {
	// Get 获取指定键的值，键不存在时返回 ErrNotFound
	Get(key []byte) ([]byte, error)

	// Put 设置键值对
	Put(key, value []byte) error

	// Delete 删除指定键
	Delete(key []byte) error

	// Has 检查键是否存在
	Has(key []byte) (bool, error)

	// NewTransaction 创建新的事务
	//
	// 调用者负责在使用后调用 Commit() 或 Discard()。
	NewTransaction(writable bool) Transaction

	// Start 启动后台任务（如值日志 GC）
	Start() error

	// Sync 同步数据到磁盘
	Sync() error

	// Close 关闭存储引擎，多次调用是安全的
	Close() error
}

// Transaction 事务接口
//
// 使用模式:
//
//	txn := eng.NewTransaction(true)
//	defer txn.Discard()
//
//	if err := txn.Set(key, value); err != nil {
//	    return err
//	}
//	return txn.Commit()
type Transaction interface {
	// Get 在事务中读取值
	Get(key []byte) ([]byte, error)

	// Set 在事务中设置值，仅对读写事务有效
	Set(key, value []byte) error

	// Delete 在事务中删除键，仅对读写事务有效
	Delete(key []byte) error

	// Commit 提交事务
	Commit() error

	// Discard 丢弃事务，多次调用是安全的
	Discard()
}
