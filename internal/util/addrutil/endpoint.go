// Package addrutil 提供地址解析工具
package addrutil

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dep2p/go-bunker/pkg/types"
)

// EndpointDelimiter 地址与端口之间的分隔符
const EndpointDelimiter = ":"

var (
	// ErrMissingDelimiter 缺少地址与端口分隔符
	ErrMissingDelimiter = errors.New("addrutil: missing endpoint delimiter")

	// ErrEmptyAddress 地址为空
	ErrEmptyAddress = errors.New("addrutil: empty address")

	// ErrInvalidPort 端口不是 [1, 65535] 范围内的十进制整数
	ErrInvalidPort = errors.New("addrutil: invalid port")
)

// SplitEndpoint 把 "address:port" 解析为地址和端口
//
// 只在第一个冒号处切分一次，因此 "a:b:c" 的端口部分为 "b:c"，解析失败。
// 不做任何空白裁剪。
func SplitEndpoint(s string) (string, int, error) {
	address, portStr, ok := strings.Cut(s, EndpointDelimiter)
	if !ok {
		return "", 0, ErrMissingDelimiter
	}
	if address == "" {
		return "", 0, ErrEmptyAddress
	}

	port, err := ParsePort(portStr)
	if err != nil {
		return "", 0, err
	}

	return address, port, nil
}

// ParsePort 解析十进制端口号
//
// 只接受纯数字（不接受符号、空白或进制前缀），且必须在 [1, 65535] 内。
func ParsePort(s string) (int, error) {
	if s == "" {
		return 0, ErrInvalidPort
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidPort
		}
	}

	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil || !types.ValidPort(int(n)) {
		return 0, ErrInvalidPort
	}
	return int(n), nil
}
