// Package kv 提供带前缀隔离的 KV 存储抽象层
//
// Store 在底层存储引擎之上提供命名空间隔离。bunker 使用以下前缀约定：
//   - r/ - 房间注册表（整份注册表文本及其元数据）
//
// # 使用示例
//
//	eng, _ := badger.New(cfg)
//	rooms := kv.New(eng, []byte("r/"))
//	rooms.Put([]byte("rooms"), blob) // 实际键: r/rooms
package kv

import (
	"github.com/dep2p/go-bunker/internal/core/storage/engine"
)

// Store 带前缀隔离的 KV 存储
type Store struct {
	engine engine.Engine
	prefix []byte
}

// New 创建新的 KVStore
//
// 参数:
//   - eng: 底层存储引擎
//   - prefix: 键前缀（所有操作会自动添加此前缀）
func New(eng engine.Engine, prefix []byte) *Store {
	p := make([]byte, len(prefix))
	copy(p, prefix)
	return &Store{engine: eng, prefix: p}
}

// prefixKey 为键添加前缀
func (s *Store) prefixKey(key []byte) []byte {
	if len(s.prefix) == 0 {
		return key
	}
	prefixed := make([]byte, len(s.prefix)+len(key))
	copy(prefixed, s.prefix)
	copy(prefixed[len(s.prefix):], key)
	return prefixed
}

// Get 获取指定键的值
func (s *Store) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, engine.ErrEmptyKey
	}
	return s.engine.Get(s.prefixKey(key))
}

// Put 设置键值对
func (s *Store) Put(key, value []byte) error {
	if len(key) == 0 {
		return engine.ErrEmptyKey
	}
	return s.engine.Put(s.prefixKey(key), value)
}

// Delete 删除指定键
func (s *Store) Delete(key []byte) error {
	if len(key) == 0 {
		return engine.ErrEmptyKey
	}
	return s.engine.Delete(s.prefixKey(key))
}

// Has 检查键是否存在
func (s *Store) Has(key []byte) (bool, error) {
	if len(key) == 0 {
		return false, engine.ErrEmptyKey
	}
	return s.engine.Has(s.prefixKey(key))
}

// Update 在一个读写事务中执行 fn，fn 返回 nil 时提交
func (s *Store) Update(fn func(txn *Transaction) error) error {
	txn := &Transaction{store: s, txn: s.engine.NewTransaction(true)}
	defer txn.txn.Discard()

	if err := fn(txn); err != nil {
		return err
	}
	return txn.txn.Commit()
}

// Transaction 带前缀的事务
type Transaction struct {
	store *Store
	txn   engine.Transaction
}

// Set 在事务中设置值
func (t *Transaction) Set(key, value []byte) error {
	return t.txn.Set(t.store.prefixKey(key), value)
}
