package main

import (
	"context"
	"errors"
	"io"

	"github.com/dep2p/go-bunker"
)

// relay 在本地输入输出与连接之间双向转发原始字节
//
// stdin 读到 EOF 时只关闭写方向，继续把对端数据写到 out，直到对端关闭。
// 对端关闭、传输错误或 ctx 取消时关闭句柄。返回前总是等待 连接→out 方向结束，
// stdin 方向可能阻塞在读取上，不等待。正常结束返回 nil。
func relay(ctx context.Context, h *bunker.Handle, in io.Reader, out io.Writer) error {
	inDone := make(chan error, 1)
	outDone := make(chan error, 1)

	go func() {
		_, err := io.Copy(h, in)
		inDone <- err
	}()
	go func() {
		_, err := io.Copy(out, h)
		outDone <- err
	}()

	var err error
	select {
	case err = <-inDone:
		if err == nil {
			err = h.CloseWrite()
		}
		if err != nil {
			_ = h.Close()
		}
		err = joinOutput(ctx, h, outDone, err)
	case err = <-outDone:
	case <-ctx.Done():
		logger.Debug("会话被中断", "handle", h.ID())
		_ = h.Close()
		err = joinOutput(ctx, h, outDone, nil)
	}

	if cerr := h.Close(); cerr != nil && err == nil {
		err = cerr
	}
	// 本端关闭句柄打断了另一个方向
	if errors.Is(err, bunker.ErrInvalidState) {
		err = nil
	}
	logger.Debug("会话结束", "handle", h.ID(), "error", err)
	return err
}

// joinOutput 等待 连接→out 方向结束，ctx 取消时关闭句柄以打断读取
func joinOutput(ctx context.Context, h *bunker.Handle, outDone <-chan error, err error) error {
	var oerr error
	select {
	case oerr = <-outDone:
	case <-ctx.Done():
		_ = h.Close()
		oerr = <-outDone
	}
	if err == nil {
		err = oerr
	}
	return err
}
