package storage

import "errors"

// BlobIO 字节块 I/O 协作者
//
// path 在文件后端是文件路径，在 KV 后端是键名。
type BlobIO interface {
	// Size 返回字节块长度，不存在时返回 ErrNotExist
	Size(path string) (int64, error)

	// ReadAll 读取完整字节块，不存在时返回 ErrNotExist
	ReadAll(path string) ([]byte, error)

	// WriteAll 用 blob 原子替换整个字节块
	//
	// 写入过程中崩溃不会留下截断的内容：要么是旧内容，要么是新内容。
	WriteAll(path string, blob []byte) error
}

var (
	// ErrNotExist 字节块不存在
	ErrNotExist = errors.New("storage: blob does not exist")

	// ErrEmptyPath 路径为空
	ErrEmptyPath = errors.New("storage: empty path")
)
