package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/dep2p/go-bunker/internal/core/storage/engine"
	"github.com/dep2p/go-bunker/internal/core/storage/kv"
)

// RegistryPrefix 注册表在 KV 存储中的前缀
const RegistryPrefix = "r/"

// sizeSuffix 长度元数据键后缀
const sizeSuffix = "#size"

// KVIO 基于 KV 存储的 BlobIO
//
// 每个字节块保存为两个键：path 保存内容，path#size 保存长度（大端 uint64），
// 两者在同一事务中写入。
type KVIO struct {
	store *kv.Store
}

var _ BlobIO = (*KVIO)(nil)

// NewKVIO 在引擎上创建 KV 后端，键统一加 RegistryPrefix 前缀
func NewKVIO(eng engine.Engine) *KVIO {
	return &KVIO{store: kv.New(eng, []byte(RegistryPrefix))}
}

// Size 返回字节块长度
func (k *KVIO) Size(path string) (int64, error) {
	if path == "" {
		return 0, ErrEmptyPath
	}
	data, err := k.store.Get([]byte(path + sizeSuffix))
	if err != nil {
		return 0, k.mapErr(path, err)
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("storage: corrupted size record for %s", path)
	}
	return int64(binary.BigEndian.Uint64(data)), nil
}

// ReadAll 读取完整字节块
func (k *KVIO) ReadAll(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	data, err := k.store.Get([]byte(path))
	if err != nil {
		return nil, k.mapErr(path, err)
	}
	return data, nil
}

// WriteAll 在单个事务中写入内容与长度
func (k *KVIO) WriteAll(path string, blob []byte) error {
	if path == "" {
		return ErrEmptyPath
	}

	size := make([]byte, 8)
	binary.BigEndian.PutUint64(size, uint64(len(blob)))

	return k.store.Update(func(txn *kv.Transaction) error {
		if err := txn.Set([]byte(path), blob); err != nil {
			return err
		}
		return txn.Set([]byte(path+sizeSuffix), size)
	})
}

func (k *KVIO) mapErr(path string, err error) error {
	if engine.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrNotExist, path)
	}
	return err
}
