// Package connmgr 实现连接管理器
//
// 连接管理器负责 TCP 连接句柄的完整生命周期：建立、读、写、关闭。
//
// # 状态机
//
//	Unconnected --Create--> Connected --Read(EOF)/IO 错误/Close--> Closed
//
// Create 失败时不产生句柄。句柄进入 Closed 后，Read/Write 返回 ErrInvalidState；
// Close 幂等，底层 socket 只释放一次。
//
// # 超时与取消
//
// 连接管理器不设置任何隐式超时。拨号受 ctx 和可选的 DialTimeout 约束；
// 读写需要超时的调用方使用 SetDeadline，或在另一个 goroutine 中调用 Close。
//
// # 快速开始
//
//	mgr, err := connmgr.New(connmgr.DefaultConfig(), nil)
//	if err != nil {
//	    return err
//	}
//	defer mgr.Close()
//
//	h, err := mgr.Create(ctx, "10.0.0.5", 9001)
//	if err != nil {
//	    return err // *ConnectError
//	}
//	defer h.Close()
//
//	_, err = h.Write([]byte("hello"))
//
// # 并发
//
// 一个句柄属于一个逻辑会话。Read 与 Write 各自可以在独立的 goroutine 中调用，
// 但不要让多个调用方同时 Read（或同时 Write）同一个句柄。
// Close 可以在任意 goroutine 中调用。
package connmgr
