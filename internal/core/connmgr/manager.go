package connmgr

import (
	"context"
	"net"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"github.com/dep2p/go-bunker/internal/core/metrics"
	"github.com/dep2p/go-bunker/internal/util/addrutil"
	"github.com/dep2p/go-bunker/pkg/lib/log"
	"github.com/dep2p/go-bunker/pkg/types"
)

var logger = log.Logger("core/connmgr")

// Manager 连接管理器
//
// Manager 建立 TCP 连接并跟踪所有处于 Connected 状态的句柄，
// Close 时关闭遗留的句柄。
type Manager struct {
	cfg     Config
	dialer  net.Dialer
	limiter *rate.Limiter
	metrics *metrics.Collector

	mu      sync.Mutex
	closed  bool
	handles map[uuid.UUID]*Handle
}

// New 创建连接管理器
//
// m 可以为 nil。
func New(cfg Config, m *metrics.Collector) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mgr := &Manager{
		cfg:     cfg,
		dialer:  net.Dialer{KeepAlive: cfg.KeepAlive},
		metrics: m,
		handles: make(map[uuid.UUID]*Handle),
	}

	// 配置了拨号限速时创建限速器
	if cfg.DialRate > 0 {
		mgr.limiter = rate.NewLimiter(rate.Limit(cfg.DialRate), cfg.DialBurst)
	}

	return mgr, nil
}

// Dial 连接到已解析的端点
func (m *Manager) Dial(ctx context.Context, ep types.Endpoint) (*Handle, error) {
	return m.Create(ctx, ep.Address, ep.Port)
}

// Create 建立到 address:port 的 TCP 连接
//
// address 由操作系统解析（主机名或 IP 字面量）。任何失败都返回 *ConnectError，
// 且不产生句柄。
func (m *Manager) Create(ctx context.Context, address string, port int) (*Handle, error) {
	h, err := m.create(ctx, address, port)
	m.metrics.ObserveDial(err)
	if err != nil {
		logger.Debug("连接失败", "address", address, "port", port, "error", err)
		return nil, err
	}
	logger.Debug("连接已建立", "handle", h.ID(), "remote", h.RemoteAddr())
	return h, nil
}

func (m *Manager) create(ctx context.Context, address string, port int) (*Handle, error) {
	fail := func(reason error) (*Handle, error) {
		return nil, &ConnectError{Address: address, Port: port, Reason: reason}
	}

	if address == "" {
		return fail(addrutil.ErrEmptyAddress)
	}
	if !types.ValidPort(port) {
		return fail(addrutil.ErrInvalidPort)
	}

	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return fail(ErrManagerClosed)
	}

	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return fail(err)
		}
	}

	if m.cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.DialTimeout)
		defer cancel()
	}

	conn, err := m.dialer.DialContext(ctx, "tcp", net.JoinHostPort(address, strconv.Itoa(port)))
	if err != nil {
		return fail(err)
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		if err := tcp.SetNoDelay(m.cfg.NoDelay); err != nil {
			logger.Debug("设置 TCP_NODELAY 失败", "error", err)
		}
	}

	h := newHandle(conn, m)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = conn.Close()
		return fail(ErrManagerClosed)
	}
	m.handles[h.id] = h
	m.mu.Unlock()

	return h, nil
}

// Len 返回当前处于 Connected 状态的句柄数
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handles)
}

// forget 句柄释放后从跟踪表中移除
func (m *Manager) forget(h *Handle) {
	m.mu.Lock()
	delete(m.handles, h.id)
	m.mu.Unlock()
}

// Close 关闭管理器和所有遗留句柄
//
// 之后的 Create 返回 ErrManagerClosed。重复调用返回 nil。
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	leftover := make([]*Handle, 0, len(m.handles))
	for _, h := range m.handles {
		leftover = append(leftover, h)
	}
	m.mu.Unlock()

	if len(leftover) > 0 {
		logger.Debug("关闭遗留连接", "count", len(leftover))
	}

	var errs error
	for _, h := range leftover {
		errs = multierr.Append(errs, h.Close())
	}
	return errs
}
