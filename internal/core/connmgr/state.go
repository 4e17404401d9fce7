package connmgr

// State 句柄状态
type State int32

const (
	// StateUnconnected 尚未建立连接
	StateUnconnected State = iota
	// StateConnected 已连接，可读写
	StateConnected
	// StateClosed 已关闭（本端关闭、对端关闭或传输错误）
	StateClosed
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
