package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileIO 基于文件系统的 BlobIO
type FileIO struct {
	// Perm 新建文件的权限
	Perm os.FileMode
}

var _ BlobIO = (*FileIO)(nil)

// NewFileIO 创建文件后端
func NewFileIO() *FileIO {
	return &FileIO{Perm: 0o644}
}

// Size 返回文件大小
func (f *FileIO) Size(path string) (int64, error) {
	if path == "" {
		return 0, ErrEmptyPath
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, mapNotExist(path, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("storage: %s is a directory", path)
	}
	return info.Size(), nil
}

// ReadAll 读取完整文件
func (f *FileIO) ReadAll(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: 注册表路径来自配置
	if err != nil {
		return nil, mapNotExist(path, err)
	}
	return data, nil
}

// WriteAll 原子写文件
//
// 流程：
//  1. 在同目录创建临时文件（前缀 .<name>.tmp-）
//  2. 写入并同步到磁盘
//  3. rename 到目标路径
//
// 任何步骤失败时目标文件保持不变，临时文件被清理。
func (f *FileIO) WriteAll(path string, blob []byte) error {
	if path == "" {
		return ErrEmptyPath
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(blob); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("同步临时文件失败: %w", err)
	}
	if err := tmpFile.Chmod(f.perm()); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("设置文件权限失败: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("原子 rename 失败: %w", err)
	}

	success = true
	return nil
}

func (f *FileIO) perm() os.FileMode {
	if f.Perm == 0 {
		return 0o644
	}
	return f.Perm
}

func mapNotExist(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotExist, path)
	}
	return err
}
