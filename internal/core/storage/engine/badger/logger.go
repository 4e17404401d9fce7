package badger

import (
	"fmt"
	"strings"
)

// Logger 把 BadgerDB 内部日志转发到 storage/badger 组件 logger
//
// BadgerDB 的 Info 日志非常频繁，这里降为 Debug。
type Logger struct{}

// Errorf 实现 engine.Logger
func (Logger) Errorf(format string, args ...interface{}) {
	logger.Error(format1(format, args))
}

// Warningf 实现 engine.Logger
func (Logger) Warningf(format string, args ...interface{}) {
	logger.Warn(format1(format, args))
}

// Infof 实现 engine.Logger
func (Logger) Infof(format string, args ...interface{}) {
	logger.Debug(format1(format, args))
}

// Debugf 实现 engine.Logger
func (Logger) Debugf(format string, args ...interface{}) {
	logger.Debug(format1(format, args))
}

// format1 格式化并去掉 BadgerDB 消息末尾的换行
func format1(format string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
