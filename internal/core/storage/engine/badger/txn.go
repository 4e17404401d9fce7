package badger

import (
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"

	"github.com/dep2p/go-bunker/internal/core/storage/engine"
)

// Transaction BadgerDB 事务实现
//
// err 非空时事务在创建时即不可用（引擎已关闭或只读），所有操作返回该错误。
type Transaction struct {
	txn      *badger.Txn
	writable bool
	err      error
	done     atomic.Bool
}

var _ engine.Transaction = (*Transaction)(nil)

// Get 在事务中读取值
func (t *Transaction) Get(key []byte) ([]byte, error) {
	if err := t.usable(); err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, engine.ErrEmptyKey
	}

	item, err := t.txn.Get(key)
	if err != nil {
		return nil, convertError(err)
	}
	return item.ValueCopy(nil)
}

// Set 在事务中设置值
func (t *Transaction) Set(key, value []byte) error {
	if err := t.usable(); err != nil {
		return err
	}
	if !t.writable {
		return engine.ErrReadOnly
	}
	if len(key) == 0 {
		return engine.ErrEmptyKey
	}
	return convertError(t.txn.Set(key, value))
}

// Delete 在事务中删除键
func (t *Transaction) Delete(key []byte) error {
	if err := t.usable(); err != nil {
		return err
	}
	if !t.writable {
		return engine.ErrReadOnly
	}
	if len(key) == 0 {
		return engine.ErrEmptyKey
	}
	return convertError(t.txn.Delete(key))
}

// Commit 提交事务
func (t *Transaction) Commit() error {
	if err := t.usable(); err != nil {
		return err
	}
	t.done.Store(true)
	return convertError(t.txn.Commit())
}

// Discard 丢弃事务
func (t *Transaction) Discard() {
	if t.txn == nil || t.done.Swap(true) {
		return
	}
	t.txn.Discard()
}

func (t *Transaction) usable() error {
	if t.err != nil {
		return t.err
	}
	if t.done.Load() {
		return engine.ErrTransactionDiscarded
	}
	return nil
}
