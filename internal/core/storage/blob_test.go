package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-bunker/config"
	"github.com/dep2p/go-bunker/internal/core/storage/engine"
	"github.com/dep2p/go-bunker/internal/core/storage/engine/badger"
)

// blobContract 对任意 BlobIO 实现执行的公共契约测试
func blobContract(t *testing.T, io BlobIO, path string) {
	t.Run("MissingIsNotExist", func(t *testing.T) {
		_, err := io.ReadAll(path)
		assert.ErrorIs(t, err, ErrNotExist)

		_, err = io.Size(path)
		assert.ErrorIs(t, err, ErrNotExist)
	})

	t.Run("WriteThenRead", func(t *testing.T) {
		blob := []byte("lobby,10.0.0.5:9001\ngames,10.0.0.6:9002")
		require.NoError(t, io.WriteAll(path, blob))

		got, err := io.ReadAll(path)
		require.NoError(t, err)
		assert.Equal(t, blob, got)

		size, err := io.Size(path)
		require.NoError(t, err)
		assert.Equal(t, int64(len(blob)), size)
	})

	t.Run("OverwriteReplacesWhole", func(t *testing.T) {
		require.NoError(t, io.WriteAll(path, []byte("a much longer previous content line")))
		require.NoError(t, io.WriteAll(path, []byte("short")))

		got, err := io.ReadAll(path)
		require.NoError(t, err)
		assert.Equal(t, "short", string(got))
	})

	t.Run("EmptyBlob", func(t *testing.T) {
		require.NoError(t, io.WriteAll(path, nil))

		got, err := io.ReadAll(path)
		require.NoError(t, err)
		assert.Empty(t, got)

		size, err := io.Size(path)
		require.NoError(t, err)
		assert.Zero(t, size)
	})

	t.Run("EmptyPath", func(t *testing.T) {
		assert.ErrorIs(t, io.WriteAll("", []byte("x")), ErrEmptyPath)
		_, err := io.ReadAll("")
		assert.ErrorIs(t, err, ErrEmptyPath)
	})
}

func TestFileIO(t *testing.T) {
	dir := t.TempDir()
	blobContract(t, NewFileIO(), filepath.Join(dir, "assets", "rooms.csv"))
}

func TestFileIO_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rooms.csv")
	f := NewFileIO()

	for i := 0; i < 3; i++ {
		require.NoError(t, f.WriteAll(path, []byte("lobby,10.0.0.5:9001")))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rooms.csv", entries[0].Name())
}

func TestFileIO_FailedWriteKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rooms.csv")
	f := NewFileIO()
	require.NoError(t, f.WriteAll(path, []byte("original")))

	// 目标是一个非空目录时 rename 必然失败
	bad := filepath.Join(dir, "occupied")
	require.NoError(t, os.MkdirAll(filepath.Join(bad, "child"), 0o755))
	assert.Error(t, f.WriteAll(bad, []byte("new")))

	got, err := f.ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "失败的写入不应留下临时文件")
}

func TestKVIO(t *testing.T) {
	cfg := engine.DefaultConfig(filepath.Join(t.TempDir(), "bunker.db"))
	cfg.SyncWrites = false
	eng, err := badger.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })

	blobContract(t, NewKVIO(eng), "rooms")
}

func TestNewBackend(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		cfg := config.DefaultRegistryConfig()
		cfg.Path = filepath.Join(t.TempDir(), "rooms.csv")

		b, err := NewBackend(cfg)
		require.NoError(t, err)
		assert.IsType(t, &FileIO{}, b.IO)
		assert.Equal(t, cfg.Path, b.Location)
		assert.Nil(t, b.Engine)
		assert.NoError(t, b.Close())
	})

	t.Run("Badger", func(t *testing.T) {
		cfg := config.DefaultRegistryConfig()
		cfg.Backend = config.BackendBadger
		cfg.DataDir = t.TempDir()

		b, err := NewBackend(cfg)
		require.NoError(t, err)
		assert.IsType(t, &KVIO{}, b.IO)
		assert.Equal(t, "rooms", b.Location)
		require.NotNil(t, b.Engine)
		assert.NoError(t, b.Close())
	})

	t.Run("BadgerNoSyncWrites", func(t *testing.T) {
		cfg := config.DefaultRegistryConfig()
		cfg.Backend = config.BackendBadger
		cfg.DataDir = t.TempDir()
		cfg.SyncWrites = false

		b, err := NewBackend(cfg)
		require.NoError(t, err)
		assert.True(t, b.syncOnClose)
		require.NoError(t, b.IO.WriteAll(b.Location, []byte("lobby,10.0.0.5:9001")))
		require.NoError(t, b.Close())
		assert.NoError(t, b.Close())

		// 关闭前已刷盘，重新打开后内容仍在
		reopened, err := NewBackend(cfg)
		require.NoError(t, err)
		defer reopened.Close()
		got, err := reopened.IO.ReadAll(reopened.Location)
		require.NoError(t, err)
		assert.Equal(t, "lobby,10.0.0.5:9001", string(got))
	})

	t.Run("Unknown", func(t *testing.T) {
		cfg := config.DefaultRegistryConfig()
		cfg.Backend = "tape"
		_, err := NewBackend(cfg)
		assert.Error(t, err)
	})
}
