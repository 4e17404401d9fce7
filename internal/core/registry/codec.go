package registry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dep2p/go-bunker/internal/util/addrutil"
	"github.com/dep2p/go-bunker/internal/util/textutil"
	"github.com/dep2p/go-bunker/pkg/types"
)

// RecordDelimiter 名字与端点之间的分隔符
const RecordDelimiter = ","

// Decode 把一行文本解码为 Room
//
// 行必须恰好包含两个以 ',' 分隔的字段；第二个字段按 addrutil.SplitEndpoint
// 的规则解析。字段两侧的空白不会被裁剪，需要时由调用方预先处理。
func Decode(line string) (types.Room, error) {
	fields := textutil.Split(line, RecordDelimiter)
	if len(fields) != 2 {
		return types.Room{}, fmt.Errorf("%w: want 2 fields, got %d", ErrMalformedRecord, len(fields))
	}

	name := fields[0]
	if name == "" {
		return types.Room{}, fmt.Errorf("%w: empty name", ErrMalformedRecord)
	}

	address, port, err := addrutil.SplitEndpoint(fields[1])
	if err != nil {
		return types.Room{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	return types.Room{Name: name, Address: address, Port: port}, nil
}

// Encode 把 Room 编码为一行文本 name,address:port
func Encode(room types.Room) (string, error) {
	if err := Validate(room.Name, room.Address, room.Port); err != nil {
		return "", err
	}
	return room.Name + RecordDelimiter + room.Address + addrutil.EndpointDelimiter + strconv.Itoa(room.Port), nil
}

// Validate 检查一条记录能否被编码
func Validate(name, address string, port int) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidRecord)
	}
	if address == "" {
		return fmt.Errorf("%w: empty address for %q", ErrInvalidRecord, name)
	}
	if hasDelimiter(name) {
		return fmt.Errorf("%w: name %q contains a delimiter", ErrInvalidRecord, name)
	}
	if hasDelimiter(address) {
		return fmt.Errorf("%w: address %q contains a delimiter", ErrInvalidRecord, address)
	}
	if strings.ContainsAny(name+address, "\r\n") {
		return fmt.Errorf("%w: line break in %q", ErrInvalidRecord, name)
	}
	if !types.ValidPort(port) {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidRecord, port)
	}
	return nil
}

func hasDelimiter(s string) bool {
	return strings.Contains(s, RecordDelimiter) || strings.Contains(s, addrutil.EndpointDelimiter)
}
