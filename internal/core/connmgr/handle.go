package connmgr

import (
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Handle 一条 TCP 连接的句柄
//
// 句柄由调用 Create 的组件独占，必须最终调用 Close。
type Handle struct {
	id    uuid.UUID
	conn  net.Conn
	mgr   *Manager
	state atomic.Int32

	releaseOnce sync.Once
}

func newHandle(conn net.Conn, mgr *Manager) *Handle {
	h := &Handle{
		id:   uuid.New(),
		conn: conn,
		mgr:  mgr,
	}
	h.state.Store(int32(StateConnected))
	return h
}

// ID 返回句柄 ID
func (h *Handle) ID() string {
	return h.id.String()
}

// State 返回当前状态
func (h *Handle) State() State {
	return State(h.state.Load())
}

// RemoteAddr 返回对端地址
func (h *Handle) RemoteAddr() string {
	return h.conn.RemoteAddr().String()
}

// SetDeadline 设置读写截止时间
//
// 截止时间到达后阻塞中的 Read/Write 返回 *IOError，句柄进入 Closed。
func (h *Handle) SetDeadline(t time.Time) error {
	if h.State() == StateClosed {
		return ErrInvalidState
	}
	return h.conn.SetDeadline(t)
}

// Write 写入数据
//
// 不做重试。传输错误返回 *IOError，句柄随之进入 Closed。
func (h *Handle) Write(p []byte) (int, error) {
	if h.State() == StateClosed {
		return 0, ErrInvalidState
	}

	n, err := h.conn.Write(p)
	h.mgr.metrics.AddBytesWritten(n)
	if err != nil {
		return n, h.fail("write", err)
	}
	return n, nil
}

// Read 读取数据
//
// 对端关闭时返回 (0, io.EOF)，句柄随之进入 Closed。
// 传输错误返回 *IOError，句柄同样进入 Closed。len(p) 为 0 时直接返回 (0, nil)。
func (h *Handle) Read(p []byte) (int, error) {
	if h.State() == StateClosed {
		return 0, ErrInvalidState
	}
	if len(p) == 0 {
		return 0, nil
	}

	n, err := h.conn.Read(p)
	h.mgr.metrics.AddBytesRead(n)

	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF):
		if n > 0 {
			// 先交付数据，下一次 Read 再报告 EOF
			return n, nil
		}
		logger.Debug("对端已关闭连接", "handle", h.ID())
		h.release()
		return 0, io.EOF
	default:
		return n, h.fail("read", err)
	}
}

// CloseWrite 关闭写方向（TCP 半关闭）
//
// 对端随后读到 EOF；本端仍可继续 Read，直到对端关闭。
// 之后的 Write 返回 *IOError。
func (h *Handle) CloseWrite() error {
	if h.State() == StateClosed {
		return ErrInvalidState
	}
	cw, ok := h.conn.(interface{ CloseWrite() error })
	if !ok {
		return h.fail("close_write", errors.ErrUnsupported)
	}
	if err := cw.CloseWrite(); err != nil {
		return h.fail("close_write", err)
	}
	logger.Debug("写方向已关闭", "handle", h.ID())
	return nil
}

// fail 传输错误后关闭句柄
func (h *Handle) fail(op string, err error) error {
	// 本端 Close 打断了阻塞中的读写
	if errors.Is(err, net.ErrClosed) && h.State() == StateClosed {
		return ErrInvalidState
	}
	logger.Debug("传输错误，关闭连接", "handle", h.ID(), "op", op, "error", err)
	h.release()
	return &IOError{Op: op, Handle: h.ID(), Err: err}
}

// Close 关闭句柄
//
// 幂等：底层 socket 只释放一次，之后的调用返回 nil。
func (h *Handle) Close() error {
	return h.release()
}

func (h *Handle) release() error {
	var err error
	h.releaseOnce.Do(func() {
		h.state.Store(int32(StateClosed))
		if cerr := h.conn.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			err = cerr
		}
		h.mgr.forget(h)
		h.mgr.metrics.HandleClosed()
	})
	return err
}
