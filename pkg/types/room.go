package types

import (
	"net"
	"strconv"
)

// ============================================================================
//                              Room - 房间记录
// ============================================================================

// MinPort 最小合法端口
const MinPort = 1

// MaxPort 最大合法端口
const MaxPort = 65535

// Room 房间记录
//
// Name 在一个注册表内唯一，唯一性由注册表存储在每次修改时保证，
// 而不是由调用方保证。
type Room struct {
	// Name 房间名（非空）
	Name string `json:"name"`

	// Address 主机名或 IP 字面量（非空）
	Address string `json:"address"`

	// Port 端口，范围 [1, 65535]
	Port int `json:"port"`
}

// Endpoint 返回房间对应的网络端点
func (r Room) Endpoint() Endpoint {
	return Endpoint{Address: r.Address, Port: r.Port}
}

// ValidPort 检查端口是否在 [1, 65535] 范围内
func ValidPort(port int) bool {
	return port >= MinPort && port <= MaxPort
}

// ============================================================================
//                              ResolutionKind - 解析方式
// ============================================================================

// ResolutionKind 令牌的解析方式
type ResolutionKind int

const (
	// ResolutionUnknown 未解析
	ResolutionUnknown ResolutionKind = iota
	// ResolutionLookedUp 通过注册表查找得到
	ResolutionLookedUp
	// ResolutionParsed 直接按 host:port 解析得到
	ResolutionParsed
)

// String 返回解析方式的字符串表示
func (k ResolutionKind) String() string {
	switch k {
	case ResolutionLookedUp:
		return "looked-up"
	case ResolutionParsed:
		return "parsed"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              Endpoint - 网络端点
// ============================================================================

// Endpoint 解析后的网络端点
type Endpoint struct {
	Address string
	Port    int

	// Kind 端点的来源（仅解析器填写）
	Kind ResolutionKind
}

// String 返回 address:port 形式
//
// IPv6 字面量会被加上方括号，可直接用于 net.Dial。
func (e Endpoint) String() string {
	return net.JoinHostPort(e.Address, strconv.Itoa(e.Port))
}
