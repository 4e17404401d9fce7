package registry

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/dep2p/go-bunker/internal/util/textutil"
	"github.com/dep2p/go-bunker/pkg/lib/log"
	"github.com/dep2p/go-bunker/pkg/types"
)

var logger = log.Logger("core/registry")

// LineDelimiter 记录之间的分隔符
const LineDelimiter = "\n"

// ============================================================================
//                              Registry
// ============================================================================

// Registry 有序的房间记录集合
//
// 零值即空注册表。Registry 不可变：Upsert 返回新值，
// 内部切片从不与调用方共享。
type Registry struct {
	rooms []types.Room
}

// New 用给定记录创建注册表，按名字去重（保留第一条）
func New(rooms ...types.Room) Registry {
	out := make([]types.Room, 0, len(rooms))
	seen := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		out = append(out, r)
	}
	return Registry{rooms: out}
}

// Len 返回记录数
func (r Registry) Len() int {
	return len(r.rooms)
}

// Rooms 返回记录的拷贝，按插入顺序排列
func (r Registry) Rooms() []types.Room {
	out := make([]types.Room, len(r.rooms))
	copy(out, r.rooms)
	return out
}

// Find 按名字精确查找（大小写敏感）
func (r Registry) Find(name string) (types.Room, error) {
	if i := r.index(name); i >= 0 {
		return r.rooms[i], nil
	}
	return types.Room{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Upsert 插入或更新一条记录
//
// 名字已存在时原位替换地址和端口，其余记录保持不变；
// 否则追加到末尾。永远无法编码的记录会被提前拒绝。
// 不做持久化，持久化由 Save 显式完成。
func (r Registry) Upsert(name, address string, port int) (Registry, error) {
	if err := Validate(name, address, port); err != nil {
		return r, err
	}

	room := types.Room{Name: name, Address: address, Port: port}
	i := r.index(name)

	capacity := len(r.rooms)
	if i < 0 {
		capacity++
	}
	rooms := make([]types.Room, len(r.rooms), capacity)
	copy(rooms, r.rooms)

	if i >= 0 {
		rooms[i] = room
	} else {
		rooms = append(rooms, room)
	}
	return Registry{rooms: rooms}, nil
}

func (r Registry) index(name string) int {
	for i := range r.rooms {
		if r.rooms[i].Name == name {
			return i
		}
	}
	return -1
}

// ============================================================================
//                              加载 / 保存
// ============================================================================

// Load 把文本解码为注册表
//
// 返回注册表和告警数。空行被忽略；无法解析的行和重复名字的行被跳过，
// 各计一条告警。空输入得到空注册表。
// 能解析但无法编码的记录（例如名字含 ':'）照常加载，只输出 Warn 日志。
func Load(blob []byte) (Registry, int) {
	lines := textutil.Lines(string(blob))

	rooms := make([]types.Room, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	warnings := 0

	for n, line := range lines {
		if line == "" {
			continue
		}

		room, err := Decode(line)
		if err != nil {
			warnings++
			logger.Debug("跳过无法解析的记录", "line", n+1, "error", err)
			continue
		}
		if _, ok := seen[room.Name]; ok {
			warnings++
			logger.Debug("跳过重复的记录", "line", n+1, "name", room.Name, "error", ErrDuplicateName)
			continue
		}

		// 能读取但无法重新编码的记录会让之后的每次保存失败
		if err := Validate(room.Name, room.Address, room.Port); err != nil {
			logger.Warn("记录无法重新写入，登记前需手动修正注册表", "line", n+1, "name", room.Name, "error", err)
		}

		seen[room.Name] = struct{}{}
		rooms = append(rooms, room)
	}

	return Registry{rooms: rooms}, warnings
}

// Save 把注册表编码为文本
//
// 任何一条记录无法编码时整体失败，返回的错误汇总所有问题记录，
// 且全部匹配 ErrInvalidRecord。
func Save(reg Registry) ([]byte, error) {
	lines := make([]string, 0, len(reg.rooms))
	var errs error
	for _, room := range reg.rooms {
		line, err := Encode(room)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		lines = append(lines, line)
	}
	if errs != nil {
		return nil, errs
	}
	return []byte(strings.Join(lines, LineDelimiter)), nil
}
