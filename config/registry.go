package config

import (
	"fmt"
	"path/filepath"
)

// 注册表存储后端
const (
	// BackendFile 文本文件后端（每行一条 name,address:port）
	BackendFile = "file"

	// BackendBadger BadgerDB 后端（整份注册表作为一个值保存）
	BackendBadger = "badger"
)

// RegistryConfig 房间注册表配置
type RegistryConfig struct {
	// Backend 存储后端: "file" 或 "badger"
	Backend string `json:"backend"`

	// Path 文件后端的注册表路径
	// 默认值: "./assets/rooms.csv"
	Path string `json:"path"`

	// DataDir badger 后端的数据目录
	// 默认值: "./data"
	DataDir string `json:"data_dir"`

	// Key badger 后端保存注册表使用的键
	Key string `json:"key"`

	// SyncWrites badger 后端是否同步写入
	SyncWrites bool `json:"sync_writes"`
}

// DefaultRegistryConfig 返回默认的注册表配置
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		Backend:    BackendFile,
		Path:       filepath.Join("assets", "rooms.csv"),
		DataDir:    "./data",
		Key:        "rooms",
		SyncWrites: true,
	}
}

// Validate 验证注册表配置
func (c *RegistryConfig) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.Path == "" {
			return fmt.Errorf("registry: path cannot be empty")
		}
	case BackendBadger:
		if c.DataDir == "" {
			return fmt.Errorf("registry: data_dir cannot be empty")
		}
		if c.Key == "" {
			return fmt.Errorf("registry: key cannot be empty")
		}
	default:
		return fmt.Errorf("registry: unknown backend %q", c.Backend)
	}
	return nil
}

// DBPath 返回 BadgerDB 数据库路径
func (c *RegistryConfig) DBPath() string {
	return filepath.Join(c.DataDir, "bunker.db")
}

// Location 返回注册表在所选后端中的位置（文件路径或键）
func (c *RegistryConfig) Location() string {
	if c.Backend == BackendBadger {
		return c.Key
	}
	return c.Path
}
