package resolver

import "errors"

// ErrUnresolvable 令牌既不是已登记的房间名，也不是合法的 host:port
var ErrUnresolvable = errors.New("resolver: no room was found")
