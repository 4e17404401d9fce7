// Package main 提供 bunker 命令行入口
//
// 用法:
//
//	bunker [-n NAME] [-r ROOM] [-connect] [-config FILE] [-registry PATH] [-backend file|badger] TOKEN
//
// TOKEN 可以是已登记的房间名，也可以是 host:port 字面量。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dep2p/go-bunker"
	"github.com/dep2p/go-bunker/pkg/lib/log"
)

var logger = log.Logger("bunker/cmd")

// 退出码
const (
	exitOK           = 0  // 已解析（需要连接时已连接）
	exitUnresolvable = 1  // 令牌无法解析
	exitConnect      = 2  // 连接失败或传输中断
	exitRegistry     = 3  // 注册表读写失败
	exitUsage        = 64 // 参数或配置错误
)

// cliFlags 命令行参数
type cliFlags struct {
	name        string
	room        string
	connect     bool
	configFile  string
	registry    string
	backend     string
	dataDir     string
	dialTimeout string
	logLevel    string
	showVersion bool

	token string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

// parseFlags 解析命令行参数
func parseFlags(args []string, stderr io.Writer) (*cliFlags, map[string]bool, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("bunker", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.name, "n", "", "你在房间中的昵称")
	fs.StringVar(&f.name, "name", "", "你在房间中的昵称")
	fs.StringVar(&f.room, "r", "", "把解析结果登记为新的房间名")
	fs.StringVar(&f.room, "room", "", "把解析结果登记为新的房间名")
	fs.BoolVar(&f.connect, "connect", false, "连接到房间并在 stdin/stdout 之间转发原始字节")
	fs.StringVar(&f.configFile, "config", "", "JSON 配置文件路径")
	fs.StringVar(&f.registry, "registry", "", "注册表文件路径（file 后端）")
	fs.StringVar(&f.backend, "backend", "", "注册表存储后端 (file/badger)")
	fs.StringVar(&f.dataDir, "data-dir", "", "数据目录（badger 后端）")
	fs.StringVar(&f.dialTimeout, "dial-timeout", "", "拨号超时，例如 10s（默认不设超时）")
	fs.StringVar(&f.logLevel, "log-level", "", "日志级别 (debug/info/warn/error)")
	fs.BoolVar(&f.showVersion, "version", false, "显示版本信息")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "bunker - a secure chat room")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "用法:")
		fmt.Fprintln(stderr, "  bunker [选项] TOKEN")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "TOKEN 为已登记的房间名或 host:port。")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "选项:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if f.showVersion {
		return f, set, nil
	}

	switch fs.NArg() {
	case 1:
		f.token = fs.Arg(0)
	case 0:
		fs.Usage()
		return nil, nil, errors.New("missing room token")
	default:
		fs.Usage()
		return nil, nil, fmt.Errorf("expected one room token, got %d", fs.NArg())
	}
	return f, set, nil
}

// run 执行一次 解析 → 连接 → 登记 → 转发 流程，返回退出码
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	flags, set, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "bunker: %v\n", err)
		return exitUsage
	}

	if flags.showVersion {
		fmt.Fprintln(stdout, bunker.VersionInfo())
		return exitOK
	}

	cfg, err := buildConfig(flags, set, getenv)
	if err != nil {
		fmt.Fprintf(stderr, "bunker: %v\n", err)
		return exitUsage
	}

	closeLog, err := setupLogging(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "bunker: %v\n", err)
		return exitUsage
	}
	defer closeLog()

	// ═══════════════════════════════════════════════════════════════════
	// 1. 加载注册表
	// ═══════════════════════════════════════════════════════════════════
	client, err := bunker.New(ctx, bunker.WithConfig(cfg))
	if err != nil {
		fmt.Fprintf(stderr, "bunker: %v\n", err)
		return exitRegistry
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("关闭客户端失败", "error", err)
		}
	}()

	if err := client.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "bunker: %v\n", err)
		return exitRegistry
	}
	if n := client.Warnings(); n > 0 {
		logger.Warn("注册表中有无法解析的行已被跳过", "count", n)
	}

	if flags.name != "" {
		fmt.Fprintf(stdout, "Name: %s\n", flags.name)
	}

	// ═══════════════════════════════════════════════════════════════════
	// 2. 解析令牌
	// ═══════════════════════════════════════════════════════════════════
	fmt.Fprintf(stdout, "Room: %s\n", flags.token)

	ep, err := client.Resolve(flags.token)
	if err != nil {
		fmt.Fprintln(stdout, "bunker: No room was found")
		return exitUnresolvable
	}
	fmt.Fprintf(stdout, "Address: %s\n", ep.Address)
	fmt.Fprintf(stdout, "Port: %d\n", ep.Port)
	logger.Info("房间已解析", "token", flags.token, "endpoint", ep.String(), "kind", ep.Kind.String())

	// ═══════════════════════════════════════════════════════════════════
	// 3. 连接（可选）
	// ═══════════════════════════════════════════════════════════════════
	var h *bunker.Handle
	if flags.connect {
		h, err = client.Connect(ctx, ep)
		if err != nil {
			fmt.Fprintf(stderr, "bunker: %v\n", err)
			return exitConnect
		}
		defer h.Close()
		logger.Info("已连接", "handle", h.ID(), "remote", h.RemoteAddr(), "name", flags.name)
	}

	// ═══════════════════════════════════════════════════════════════════
	// 4. 登记新房间名（可选）
	// ═══════════════════════════════════════════════════════════════════
	if flags.room != "" {
		fmt.Fprintf(stdout, "New name of room: %s\n", flags.room)
		if err := client.Register(flags.room, ep); err != nil {
			fmt.Fprintf(stderr, "bunker: %v\n", err)
			return exitRegistry
		}
	}

	// ═══════════════════════════════════════════════════════════════════
	// 5. 转发原始字节
	// ═══════════════════════════════════════════════════════════════════
	if h != nil {
		if err := relay(ctx, h, stdin, stdout); err != nil {
			fmt.Fprintf(stderr, "bunker: %v\n", err)
			return exitConnect
		}
	}

	return exitOK
}
