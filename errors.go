package bunker

import (
	"errors"

	"github.com/dep2p/go-bunker/internal/core/connmgr"
	"github.com/dep2p/go-bunker/internal/core/registry"
	"github.com/dep2p/go-bunker/internal/core/resolver"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 客户端生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotStarted 客户端未启动
	ErrNotStarted = errors.New("client not started")

	// ErrAlreadyStarted 客户端已启动
	ErrAlreadyStarted = errors.New("client already started")

	// ErrClientClosed 客户端已关闭
	ErrClientClosed = errors.New("client closed")

	// ────────────────────────────────────────────────────────────────────────
	// 注册表错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrMalformedRecord 注册表中无法解析的行（加载时跳过并计入告警）
	ErrMalformedRecord = registry.ErrMalformedRecord

	// ErrInvalidRecord 无法编码的记录
	ErrInvalidRecord = registry.ErrInvalidRecord

	// ErrNotFound 注册表中没有该名字
	ErrNotFound = registry.ErrNotFound

	// ErrStorage 注册表读写失败
	ErrStorage = registry.ErrStorage

	// ────────────────────────────────────────────────────────────────────────
	// 解析与连接错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrUnresolvable 令牌无法解析
	ErrUnresolvable = resolver.ErrUnresolvable

	// ErrConnect 建立连接失败
	ErrConnect = connmgr.ErrConnect

	// ErrIO 读写传输错误
	ErrIO = connmgr.ErrIO

	// ErrInvalidState 在已关闭的句柄上操作
	ErrInvalidState = connmgr.ErrInvalidState
)

// ConnectError 建立连接失败的详细信息
type ConnectError = connmgr.ConnectError

// IOError 读写传输错误的详细信息
type IOError = connmgr.IOError
