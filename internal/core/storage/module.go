package storage

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-bunker/config"
	"github.com/dep2p/go-bunker/internal/core/storage/engine"
	"github.com/dep2p/go-bunker/internal/core/storage/engine/badger"
	"github.com/dep2p/go-bunker/pkg/lib/log"
)

var logger = log.Logger("core/storage")

// Backend 选定的注册表存储后端
type Backend struct {
	// IO 字节块 I/O 协作者
	IO BlobIO

	// Location 注册表在 IO 中的位置（文件路径或键）
	Location string

	// Engine 底层 KV 引擎，文件后端为 nil
	Engine engine.Engine

	// syncOnClose 引擎未开启同步写入时，关闭前先刷盘
	syncOnClose bool
}

// Params Storage 模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Module 返回 Storage Fx 模块
//
// 提供:
//   - *Backend: 按 registry.backend 选择的存储后端
//
// 生命周期:
//   - OnStart: 启动引擎后台任务（仅 badger）
//   - OnStop: 关闭引擎（仅 badger）
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideBackend),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideBackend 根据配置创建存储后端
func ProvideBackend(p Params) (*Backend, error) {
	cfg := config.DefaultRegistryConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Registry
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewBackend(cfg)
}

// NewBackend 根据注册表配置创建存储后端
func NewBackend(cfg config.RegistryConfig) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendFile:
		logger.Debug("使用文件存储后端", "path", cfg.Path)
		return &Backend{IO: NewFileIO(), Location: cfg.Location()}, nil

	case config.BackendBadger:
		engCfg := engine.DefaultConfig(cfg.DBPath())
		engCfg.SyncWrites = cfg.SyncWrites
		engCfg.Logger = badger.Logger{}

		eng, err := badger.New(engCfg)
		if err != nil {
			logger.Error("创建存储引擎失败", "error", err)
			return nil, fmt.Errorf("open registry engine: %w", err)
		}
		logger.Debug("使用 BadgerDB 存储后端", "path", engCfg.Path, "key", cfg.Key)
		return &Backend{
			IO:          NewKVIO(eng),
			Location:    cfg.Location(),
			Engine:      eng,
			syncOnClose: !cfg.SyncWrites,
		}, nil

	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}

// Close 关闭后端持有的引擎
//
// 未开启同步写入时先调用 Sync，刷盘失败不影响关闭。
func (b *Backend) Close() error {
	if b.Engine == nil {
		return nil
	}
	var errs error
	if b.syncOnClose {
		if err := b.Engine.Sync(); err != nil && !engine.IsClosed(err) {
			logger.Warn("存储引擎刷盘失败", "error", err)
			errs = multierr.Append(errs, err)
		}
	}
	return multierr.Append(errs, b.Engine.Close())
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(lc fx.Lifecycle, b *Backend) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if b.Engine == nil {
				return nil
			}
			if err := b.Engine.Start(); err != nil {
				logger.Error("存储引擎启动失败", "error", err)
				return err
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			if err := b.Close(); err != nil {
				logger.Warn("存储引擎关闭失败", "error", err)
				return err
			}
			return nil
		},
	})
}
