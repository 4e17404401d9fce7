package bunker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-bunker/config"
	"github.com/dep2p/go-bunker/internal/core/connmgr"
	"github.com/dep2p/go-bunker/internal/core/metrics"
	"github.com/dep2p/go-bunker/internal/core/registry"
	"github.com/dep2p/go-bunker/internal/core/resolver"
	"github.com/dep2p/go-bunker/internal/core/storage"
	"github.com/dep2p/go-bunker/pkg/lib/log"
	"github.com/dep2p/go-bunker/pkg/types"
)

var logger = log.Logger("bunker")

// stopTimeout 关闭 Fx 应用的超时
const stopTimeout = 10 * time.Second

// Handle 连接句柄
type Handle = connmgr.Handle

// Client bunker 客户端
//
// Client 持有注册表、解析器和连接管理器。必须先 Start 再使用，
// 使用完毕后 Close。
type Client struct {
	// config 客户端配置
	config *clientConfig

	// app Fx 应用
	app *fx.App

	// ────────────────────────────────────────────────────────────────────────
	// 核心组件（由 Fx 注入）
	// ────────────────────────────────────────────────────────────────────────

	backend  *storage.Backend
	store    *registry.Store
	resolver *resolver.Resolver
	connMgr  *connmgr.Manager
	metrics  *metrics.Collector

	// ────────────────────────────────────────────────────────────────────────
	// 生命周期状态
	// ────────────────────────────────────────────────────────────────────────

	mu      sync.RWMutex
	started bool
	closed  bool
}

// New 创建客户端
//
// 创建客户端但不启动，需要调用 Start() 加载注册表。
//
// 示例：
//
//	client, err := bunker.New(ctx,
//	    bunker.WithBackend("badger"),
//	    bunker.WithDataDir("./data"),
//	    bunker.WithDialTimeout(10*time.Second),
//	)
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := newClientConfig()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	client := &Client{config: cfg}

	app, err := buildFxApp(cfg, client)
	if err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	client.app = app

	return client, nil
}

// Start 启动客户端
//
// 运行所有模块的 OnStart：打开存储引擎、加载注册表。
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}
	if c.started {
		return ErrAlreadyStarted
	}

	if err := c.app.Start(ctx); err != nil {
		logger.Error("客户端启动失败", "error", err)
		return fmt.Errorf("start failed: %w", err)
	}
	c.started = true

	logger.Debug("客户端已启动",
		"backend", c.config.config.Registry.Backend,
		"registry", c.store.Path(),
		"rooms", c.store.Snapshot().Len(),
		"warnings", c.store.Warnings())
	return nil
}

// Close 关闭客户端
//
// 关闭所有遗留连接和存储引擎。重复调用返回 nil。
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if !c.started {
		// 未启动时 OnStop 不会执行，直接释放构造阶段打开的资源
		return c.backend.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := c.app.Stop(ctx); err != nil {
		logger.Warn("客户端关闭失败", "error", err)
		return fmt.Errorf("stop failed: %w", err)
	}
	logger.Debug("客户端已关闭")
	return nil
}

// checkRunning 检查客户端处于运行状态，调用方持有读锁
func (c *Client) checkRunning() error {
	if c.closed {
		return ErrClientClosed
	}
	if !c.started {
		return ErrNotStarted
	}
	return nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              解析与连接
// ════════════════════════════════════════════════════════════════════════════

// Resolve 把令牌解析为端点
//
// 先按房间名查注册表，未命中再解析 host:port 字面量。
// 都失败时返回匹配 ErrUnresolvable 的错误。
func (c *Client) Resolve(token string) (types.Endpoint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.checkRunning(); err != nil {
		return types.Endpoint{}, err
	}
	return c.resolver.Resolve(token)
}

// Connect 打开到端点的 TCP 连接
//
// 失败时返回 *ConnectError（匹配 ErrConnect）。
// 调用方拥有返回的句柄，必须调用 Close。
func (c *Client) Connect(ctx context.Context, ep types.Endpoint) (*Handle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.checkRunning(); err != nil {
		return nil, err
	}
	return c.connMgr.Dial(ctx, ep)
}

// ════════════════════════════════════════════════════════════════════════════
//                              注册表
// ════════════════════════════════════════════════════════════════════════════

// Register 把端点登记为房间并立即持久化
//
// 名字已存在时原位更新地址和端口。
func (c *Client) Register(name string, ep types.Endpoint) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.checkRunning(); err != nil {
		return err
	}
	return c.store.Register(name, ep.Address, ep.Port)
}

// Rooms 返回当前注册表中的全部房间，按登记顺序排列
func (c *Client) Rooms() []types.Room {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.store == nil {
		return nil
	}
	return c.store.Snapshot().Rooms()
}

// Warnings 返回加载注册表时跳过的行数
func (c *Client) Warnings() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.store == nil {
		return 0
	}
	return c.store.Warnings()
}

// ════════════════════════════════════════════════════════════════════════════
//                              诊断
// ════════════════════════════════════════════════════════════════════════════

// Config 返回客户端使用的配置副本
func (c *Client) Config() *config.Config {
	return c.config.config.Clone()
}

// Metrics 返回所有指标的当前值，指标关闭时返回空表
func (c *Client) Metrics() map[string]float64 {
	return c.metrics.Snapshot()
}
