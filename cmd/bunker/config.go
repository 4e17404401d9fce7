package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dep2p/go-bunker/config"
	"github.com/dep2p/go-bunker/pkg/lib/log"
)

// ============================================================================
//                              配置加载（CLI 专用）
// ============================================================================

// buildConfig 构建配置
//
// 配置优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（BUNKER_* 前缀）
//  3. 配置文件
//  4. 默认值
func buildConfig(f *cliFlags, set map[string]bool, getenv func(string) string) (*config.Config, error) {
	cfg := config.NewConfig()

	if f.configFile != "" {
		loaded, err := config.LoadFile(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
		cfg = loaded
	}

	config.ApplyEnv(cfg, getenv)

	if set["registry"] {
		cfg.Registry.Backend = config.BackendFile
		cfg.Registry.Path = f.registry
	}
	if set["backend"] {
		cfg.Registry.Backend = f.backend
	}
	if set["data-dir"] {
		cfg.Registry.DataDir = f.dataDir
	}
	if set["dial-timeout"] {
		d, err := time.ParseDuration(f.dialTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid -dial-timeout %q: %w", f.dialTimeout, err)
		}
		cfg.Connection.DialTimeout = config.Duration(d)
	}
	if set["log-level"] {
		cfg.Log.Level = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	return cfg, nil
}

// setupLogging 设置日志输出
//
// 配置了日志文件时写入文件，否则写入 stderr。返回的函数关闭日志文件。
func setupLogging(cfg config.LogConfig, stderr io.Writer) (func(), error) {
	opts := cfg.Options()
	opts.Output = stderr

	if cfg.File == "" {
		log.Setup(opts)
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
		return nil, fmt.Errorf("创建日志目录失败: %w", err)
	}
	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("打开日志文件失败: %w", err)
	}

	opts.Output = file
	log.Setup(opts)
	return func() { _ = file.Close() }, nil
}
