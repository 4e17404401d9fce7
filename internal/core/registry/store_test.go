package registry

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-bunker/internal/core/metrics"
	"github.com/dep2p/go-bunker/internal/core/storage"
)

// failingIO 读写都按配置失败的 BlobIO
type failingIO struct {
	storage.BlobIO
	readErr  error
	writeErr error
}

func (f *failingIO) Size(path string) (int64, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	return f.BlobIO.Size(path)
}

func (f *failingIO) WriteAll(path string, blob []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.BlobIO.WriteAll(path, blob)
}

func newFileStore(t *testing.T, content string) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rooms.csv")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return NewStore(storage.NewFileIO(), path, nil), path
}

// TestStore_LoadMissing 测试注册表不存在时得到空注册表
func TestStore_LoadMissing(t *testing.T) {
	s, _ := newFileStore(t, "")

	warnings, err := s.Load()
	require.NoError(t, err)
	assert.Zero(t, warnings)
	assert.Zero(t, s.Snapshot().Len())
}

// TestStore_LoadWarnings 测试加载告警
func TestStore_LoadWarnings(t *testing.T) {
	s, _ := newFileStore(t, "lobby,10.0.0.5:9001\nnope\n")

	warnings, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, warnings)
	assert.Equal(t, 1, s.Warnings())

	room, err := s.Find("lobby")
	require.NoError(t, err)
	assert.Equal(t, 9001, room.Port)
}

// TestStore_Register 测试登记后立即持久化
func TestStore_Register(t *testing.T) {
	s, path := newFileStore(t, "lobby,10.0.0.5:9001\ngames,10.0.0.6:9002")
	_, err := s.Load()
	require.NoError(t, err)

	require.NoError(t, s.Register("lobby", "10.0.0.5", 9050))
	require.NoError(t, s.Register("music", "10.0.0.8", 9100))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "lobby,10.0.0.5:9050\ngames,10.0.0.6:9002\nmusic,10.0.0.8:9100", string(data))

	// 新 Store 重新加载
	reloaded := NewStore(storage.NewFileIO(), path, nil)
	_, err = reloaded.Load()
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot().Rooms(), reloaded.Snapshot().Rooms())
}

// TestStore_RegisterInvalid 测试无法编码的记录不会写入
func TestStore_RegisterInvalid(t *testing.T) {
	s, path := newFileStore(t, "")

	err := s.Register("v6", "::1", 80)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	assert.Zero(t, s.Snapshot().Len())
}

// TestStore_RegisterWriteFailure 测试写入失败时内存状态不变
func TestStore_RegisterWriteFailure(t *testing.T) {
	cause := errors.New("disk full")
	fio := &failingIO{BlobIO: storage.NewFileIO()}
	path := filepath.Join(t.TempDir(), "rooms.csv")
	m := metrics.NewCollector(nil)
	s := NewStore(fio, path, m)

	require.NoError(t, s.Register("lobby", "10.0.0.5", 9001))

	fio.writeErr = cause
	err := s.Register("games", "10.0.0.6", 9002)
	require.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, 1, s.Snapshot().Len())
	_, err = s.Find("games")
	assert.ErrorIs(t, err, ErrNotFound)

	snap := m.Snapshot()
	assert.Equal(t, float64(1), snap[`bunker_registry_saves_total{result=ok}`])
	assert.Equal(t, float64(1), snap[`bunker_registry_saves_total{result=error}`])
}

// TestStore_LoadFailure 测试读取失败
func TestStore_LoadFailure(t *testing.T) {
	cause := errors.New("permission denied")
	s := NewStore(&failingIO{BlobIO: storage.NewFileIO(), readErr: cause}, "rooms.csv", nil)

	_, err := s.Load()
	require.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
}

// TestStore_SnapshotIsolation 测试快照不受后续写入影响
func TestStore_SnapshotIsolation(t *testing.T) {
	s, _ := newFileStore(t, "lobby,10.0.0.5:9001")
	_, err := s.Load()
	require.NoError(t, err)

	snap := s.Snapshot()
	require.NoError(t, s.Register("lobby", "10.0.0.5", 9050))

	room, err := snap.Find("lobby")
	require.NoError(t, err)
	assert.Equal(t, 9001, room.Port)
}

// TestStore_ConcurrentRegister 测试并发登记互不丢失
func TestStore_ConcurrentRegister(t *testing.T) {
	s, path := newFileStore(t, "")

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(port int) {
			defer wg.Done()
			assert.NoError(t, s.Register("room-"+string(rune('a'+port)), "h", port))
		}(i)
	}
	wg.Wait()

	reloaded := NewStore(storage.NewFileIO(), path, nil)
	_, err := reloaded.Load()
	require.NoError(t, err)
	assert.Equal(t, 20, reloaded.Snapshot().Len())
}

// TestStore_Save 测试重写整个字节块
func TestStore_Save(t *testing.T) {
	s, path := newFileStore(t, "lobby,10.0.0.5:9001\r\nbroken\r\n")
	_, err := s.Load()
	require.NoError(t, err)

	require.NoError(t, s.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "lobby,10.0.0.5:9001", string(data))
}
