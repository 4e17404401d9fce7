package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dep2p/go-bunker/internal/core/metrics"
	"github.com/dep2p/go-bunker/internal/core/storage"
	"github.com/dep2p/go-bunker/pkg/types"
)

// Store 注册表的长期持有者
//
// Store 把内存中的 Registry 与一个 storage.BlobIO 位置绑定。
// 写操作（Register / Save）串行执行，整个 upsert + save + 写入在同一把锁内完成；
// 只有写入成功后内存状态才会更新。
type Store struct {
	mu sync.RWMutex

	blobs   storage.BlobIO
	path    string
	metrics *metrics.Collector

	reg      Registry
	warnings int
}

// NewStore 创建注册表存储
//
// m 可以为 nil。
func NewStore(blobs storage.BlobIO, path string, m *metrics.Collector) *Store {
	return &Store{
		blobs:   blobs,
		path:    path,
		metrics: m,
	}
}

// Path 返回注册表在 BlobIO 中的位置
func (s *Store) Path() string {
	return s.path
}

// Load 从 BlobIO 读取并替换内存注册表
//
// 字节块不存在时得到空注册表。返回本次加载的告警数。
func (s *Store) Load() (int, error) {
	blob, err := s.read()
	if err != nil {
		return 0, err
	}

	reg, warnings := Load(blob)

	s.mu.Lock()
	s.reg = reg
	s.warnings = warnings
	s.mu.Unlock()

	s.metrics.ObserveLoad(reg.Len(), warnings)
	if warnings > 0 {
		logger.Warn("注册表中存在无法使用的记录", "path", s.path, "warnings", warnings)
	}
	logger.Debug("注册表已加载", "path", s.path, "rooms", reg.Len())
	return warnings, nil
}

func (s *Store) read() ([]byte, error) {
	size, err := s.blobs.Size(s.path)
	if errors.Is(err, storage.ErrNotExist) {
		logger.Debug("注册表不存在，使用空注册表", "path", s.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: size %s: %w", ErrStorage, s.path, err)
	}
	if size == 0 {
		return nil, nil
	}

	blob, err := s.blobs.ReadAll(s.path)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorage, s.path, err)
	}
	return blob, nil
}

// Snapshot 返回当前注册表的一致拷贝
func (s *Store) Snapshot() Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg
}

// Find 在当前注册表中按名字查找
func (s *Store) Find(name string) (types.Room, error) {
	return s.Snapshot().Find(name)
}

// Warnings 返回最近一次加载的告警数
func (s *Store) Warnings() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warnings
}

// Register 插入或更新一条记录并立即持久化
func (s *Store) Register(name, address string, port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reg.Upsert(name, address, port)
	if err != nil {
		return err
	}
	if err := s.persist(next); err != nil {
		return err
	}

	s.reg = next
	logger.Info("房间已登记", "name", name, "address", address, "port", port)
	return nil
}

// Save 用当前注册表重写整个字节块
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(s.reg)
}

// persist 编码并写入，调用方持有写锁
func (s *Store) persist(reg Registry) error {
	blob, err := Save(reg)
	if err != nil {
		s.metrics.ObserveSave(reg.Len(), err)
		logger.Warn("注册表编码失败", "error", err)
		return err
	}

	if err := s.blobs.WriteAll(s.path, blob); err != nil {
		s.metrics.ObserveSave(reg.Len(), err)
		logger.Error("注册表写入失败", "path", s.path, "error", err)
		return fmt.Errorf("%w: write %s: %w", ErrStorage, s.path, err)
	}

	s.metrics.ObserveSave(reg.Len(), nil)
	logger.Debug("注册表已保存", "path", s.path, "rooms", reg.Len(), "bytes", len(blob))
	return nil
}
