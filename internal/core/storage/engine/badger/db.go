// Package badger 提供基于 BadgerDB 的存储引擎实现
//
// # 使用示例
//
//	cfg := engine.DefaultConfig("/data/bunker.db")
//	db, err := badger.New(cfg)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Put([]byte("rooms"), blob); err != nil {
//	    return err
//	}
package badger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/dep2p/go-bunker/internal/core/storage/engine"
	"github.com/dep2p/go-bunker/pkg/lib/log"
)

var logger = log.Logger("storage/badger")

// Engine BadgerDB 存储引擎
type Engine struct {
	db     *badger.DB
	config *engine.Config
	closed atomic.Bool

	gcCtx    context.Context
	gcCancel context.CancelFunc
	gcWg     sync.WaitGroup
	gcOnce   sync.Once
}

// 编译时检查接口实现
var _ engine.Engine = (*Engine)(nil)

// New 创建新的 BadgerDB 存储引擎
func New(cfg *engine.Config) (*Engine, error) {
	if cfg == nil {
		return nil, engine.ErrInvalidConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := badger.Open(buildOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		db:       db,
		config:   cfg,
		gcCtx:    ctx,
		gcCancel: cancel,
	}, nil
}

// buildOptions 根据配置构建 BadgerDB 选项
func buildOptions(cfg *engine.Config) badger.Options {
	opts := badger.DefaultOptions(cfg.Path).
		WithSyncWrites(cfg.SyncWrites).
		WithReadOnly(cfg.ReadOnly).
		WithNumVersionsToKeep(1).
		WithMemTableSize(cfg.MemTableSize).
		WithValueLogFileSize(cfg.ValueLogFileSize).
		WithBlockCacheSize(cfg.BlockCacheSize)

	if cfg.Logger != nil {
		opts = opts.WithLogger(cfg.Logger)
	} else {
		opts = opts.WithLogger(nil)
	}
	return opts
}

// Start 启动值日志垃圾回收
func (e *Engine) Start() error {
	if e.closed.Load() {
		return engine.ErrClosed
	}
	if e.config.GCInterval <= 0 || e.config.ReadOnly {
		return nil
	}

	e.gcOnce.Do(func() {
		e.gcWg.Add(1)
		go e.gcLoop()
	})
	return nil
}

func (e *Engine) gcLoop() {
	defer e.gcWg.Done()

	ticker := time.NewTicker(e.config.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.gcCtx.Done():
			return
		case <-ticker.C:
			// 直到没有可回收空间为止
			for e.db.RunValueLogGC(e.config.GCDiscardRatio) == nil {
			}
		}
	}
}

// Get 获取指定键的值
func (e *Engine) Get(key []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, engine.ErrClosed
	}
	if len(key) == 0 {
		return nil, engine.ErrEmptyKey
	}

	var value []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, convertError(err)
	}
	return value, nil
}

// Put 设置键值对
func (e *Engine) Put(key, value []byte) error {
	if err := e.checkWritable(key); err != nil {
		return err
	}
	return convertError(e.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	}))
}

// Delete 删除指定键
func (e *Engine) Delete(key []byte) error {
	if err := e.checkWritable(key); err != nil {
		return err
	}
	return convertError(e.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	}))
}

// Has 检查键是否存在
func (e *Engine) Has(key []byte) (bool, error) {
	_, err := e.Get(key)
	if err == nil {
		return true, nil
	}
	if engine.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// NewTransaction 创建新的事务
func (e *Engine) NewTransaction(writable bool) engine.Transaction {
	if e.closed.Load() {
		return &Transaction{err: engine.ErrClosed}
	}
	if writable && e.config.ReadOnly {
		return &Transaction{err: engine.ErrReadOnly}
	}
	return &Transaction{
		txn:      e.db.NewTransaction(writable),
		writable: writable,
	}
}

// Sync 同步数据到磁盘
func (e *Engine) Sync() error {
	if e.closed.Load() {
		return engine.ErrClosed
	}
	return e.db.Sync()
}

// Close 关闭存储引擎
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return nil
	}

	e.gcCancel()
	e.gcWg.Wait()

	logger.Debug("关闭 BadgerDB", "path", e.config.Path)
	return e.db.Close()
}

func (e *Engine) checkWritable(key []byte) error {
	if e.closed.Load() {
		return engine.ErrClosed
	}
	if e.config.ReadOnly {
		return engine.ErrReadOnly
	}
	if len(key) == 0 {
		return engine.ErrEmptyKey
	}
	return nil
}

// convertError 转换 BadgerDB 错误到引擎错误
func convertError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return engine.ErrNotFound
	case errors.Is(err, badger.ErrEmptyKey):
		return engine.ErrEmptyKey
	case errors.Is(err, badger.ErrConflict):
		return engine.ErrTransactionConflict
	case errors.Is(err, badger.ErrDiscardedTxn):
		return engine.ErrTransactionDiscarded
	case errors.Is(err, badger.ErrReadOnlyTxn):
		return engine.ErrReadOnly
	default:
		return err
	}
}
