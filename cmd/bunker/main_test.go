package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-bunker/config"
)

func noEnv(string) string { return "" }

// invoke 运行一次命令行，返回退出码和输出
func invoke(t *testing.T, stdin io.Reader, args ...string) (int, string, string) {
	t.Helper()
	if stdin == nil {
		stdin = bytes.NewReader(nil)
	}
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, stdin, &stdout, &stderr, noEnv)
	return code, stdout.String(), stderr.String()
}

func registryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rooms.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestRun_LookedUp 测试按房间名解析
func TestRun_LookedUp(t *testing.T) {
	path := registryFile(t, "lobby,10.0.0.5:9001\ngames,10.0.0.6:9002")

	code, out, _ := invoke(t, nil, "-registry", path, "-n", "alice", "lobby")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Name: alice\nRoom: lobby\nAddress: 10.0.0.5\nPort: 9001\n", out)
}

// TestRun_Parsed 测试字面量解析
func TestRun_Parsed(t *testing.T) {
	path := registryFile(t, "")

	code, out, _ := invoke(t, nil, "-registry", path, "10.0.0.9:7000")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "Address: 10.0.0.9\nPort: 7000\n")
}

// TestRun_Unresolvable 测试无法解析
func TestRun_Unresolvable(t *testing.T) {
	path := registryFile(t, "lobby,10.0.0.5:9001")

	code, out, _ := invoke(t, nil, "-registry", path, "nope")
	assert.Equal(t, exitUnresolvable, code)
	assert.Equal(t, "Room: nope\nbunker: No room was found\n", out)
}

// TestRun_RegisterRoom 测试登记新房间名
func TestRun_RegisterRoom(t *testing.T) {
	path := registryFile(t, "lobby,10.0.0.5:9001")

	code, out, _ := invoke(t, nil, "-registry", path, "-r", "music", "10.0.0.8:9100")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "New name of room: music\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "lobby,10.0.0.5:9001\nmusic,10.0.0.8:9100", string(data))

	code, out, _ = invoke(t, nil, "-registry", path, "music")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "Port: 9100\n")
}

// TestRun_RegisterInvalid 测试登记无法编码的名字
func TestRun_RegisterInvalid(t *testing.T) {
	path := registryFile(t, "")

	code, _, errOut := invoke(t, nil, "-registry", path, "-room", "a:b", "10.0.0.8:9100")
	assert.Equal(t, exitRegistry, code)
	assert.Contains(t, errOut, "invalid record")
}

// TestRun_RegistryUnreadable 测试注册表无法读取
func TestRun_RegistryUnreadable(t *testing.T) {
	// 目录不能作为注册表文件读取
	code, _, errOut := invoke(t, nil, "-registry", t.TempDir(), "lobby")
	assert.Equal(t, exitRegistry, code)
	assert.NotEmpty(t, errOut)
}

// TestRun_ConnectRefused 测试连接失败
func TestRun_ConnectRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	code, out, errOut := invoke(t, nil, "-registry", registryFile(t, ""), "-connect", "127.0.0.1:"+strconv.Itoa(port))
	assert.Equal(t, exitConnect, code)
	assert.Contains(t, out, "Address: 127.0.0.1\n")
	assert.Contains(t, errOut, "connect")
}

// TestRun_ConnectRelay 测试连接并转发对端数据
func TestRun_ConnectRelay(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		_, _ = conn.Write([]byte("welcome\n"))
		conn.Close()
	}()

	// stdin 一直阻塞，会话由对端关闭结束
	pr, pw := io.Pipe()
	defer pw.Close()

	path := registryFile(t, "")
	code, out, errOut := invoke(t, pr, "-registry", path, "-connect", "-r", "local", ln.Addr().String())
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "welcome\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "local,127.0.0.1:")
}

// TestRun_ConnectStdinEOF 测试 stdin 结束后仍接收对端回复
func TestRun_ConnectStdinEOF(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		// 读到半关闭产生的 EOF 后再回复
		data, err := io.ReadAll(conn)
		if err != nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
		_, _ = conn.Write([]byte(strings.ToUpper(string(data))))
	}()

	code, out, errOut := invoke(t, strings.NewReader("hello\n"), "-registry", registryFile(t, ""), "-connect", ln.Addr().String())
	require.Equal(t, exitOK, code, errOut)
	assert.True(t, strings.HasSuffix(out, "HELLO\n"), out)
}

// TestRun_Usage 测试参数错误
func TestRun_Usage(t *testing.T) {
	code, _, _ := invoke(t, nil)
	assert.Equal(t, exitUsage, code)

	code, _, _ = invoke(t, nil, "a", "b")
	assert.Equal(t, exitUsage, code)

	code, _, _ = invoke(t, nil, "-unknown", "lobby")
	assert.Equal(t, exitUsage, code)

	code, _, _ = invoke(t, nil, "-backend", "sqlite", "lobby")
	assert.Equal(t, exitUsage, code)

	code, _, _ = invoke(t, nil, "-dial-timeout", "soon", "lobby")
	assert.Equal(t, exitUsage, code)

	code, _, _ = invoke(t, nil, "-h")
	assert.Equal(t, exitOK, code)
}

// TestRun_Version 测试版本信息
func TestRun_Version(t *testing.T) {
	code, out, _ := invoke(t, nil, "-version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "bunker")
}

// TestBuildConfig_Precedence 测试配置优先级
func TestBuildConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bunker.json")
	require.NoError(t, os.WriteFile(file, []byte(`{
		"registry": {"path": "from-file.csv"},
		"connection": {"dial_timeout": "3s"},
		"log": {"level": "info"}
	}`), 0o644))

	env := map[string]string{
		config.EnvPrefix + config.EnvRegistryPath: "from-env.csv",
		config.EnvPrefix + config.EnvLogLevel:     "debug",
	}
	getenv := func(k string) string { return env[k] }

	f, set, err := parseFlags([]string{"-config", file, "-registry", "from-flag.csv", "lobby"}, io.Discard)
	require.NoError(t, err)

	cfg, err := buildConfig(f, set, getenv)
	require.NoError(t, err)

	assert.Equal(t, "from-flag.csv", cfg.Registry.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "3s", cfg.Connection.DialTimeout.String())

	f, set, err = parseFlags([]string{"-config", file, "lobby"}, io.Discard)
	require.NoError(t, err)
	cfg, err = buildConfig(f, set, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "from-file.csv", cfg.Registry.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}
