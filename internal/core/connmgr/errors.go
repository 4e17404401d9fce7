package connmgr

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// 连接管理器错误定义
var (
	// ErrConnect 建立连接失败（*ConnectError 匹配此错误）
	ErrConnect = errors.New("connmgr: connect failed")

	// ErrIO 读写传输错误（*IOError 匹配此错误）
	ErrIO = errors.New("connmgr: transport error")

	// ErrInvalidState 在已关闭的句柄上操作
	ErrInvalidState = errors.New("connmgr: handle is closed")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("connmgr: invalid config")

	// ErrManagerClosed 管理器已关闭
	ErrManagerClosed = errors.New("connmgr: manager closed")
)

// ConnectError 建立连接失败
//
// errors.Is(err, ErrConnect) 为真；Reason 可以继续通过 errors.Is/As 检查，
// 例如 context.DeadlineExceeded。
type ConnectError struct {
	Address string // 目标地址
	Port    int    // 目标端口
	Reason  error  // 失败原因
}

// Error 实现 error 接口
func (e *ConnectError) Error() string {
	return fmt.Sprintf("connmgr: connect %s: %v", net.JoinHostPort(e.Address, strconv.Itoa(e.Port)), e.Reason)
}

// Is 匹配 ErrConnect
func (e *ConnectError) Is(target error) bool {
	return target == ErrConnect
}

// Unwrap 支持 errors.Unwrap
func (e *ConnectError) Unwrap() error {
	return e.Reason
}

// IOError 读写传输错误，发生后句柄已进入 Closed
type IOError struct {
	Op     string // "read" 或 "write"
	Handle string // 句柄 ID
	Err    error  // 底层错误
}

// Error 实现 error 接口
func (e *IOError) Error() string {
	return fmt.Sprintf("connmgr: %s on handle %s: %v", e.Op, e.Handle, e.Err)
}

// Is 匹配 ErrIO
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// Unwrap 支持 errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}
