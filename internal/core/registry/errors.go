package registry

import "errors"

var (
	// ErrMalformedRecord 单行记录无法解析（加载时跳过并计入告警）
	ErrMalformedRecord = errors.New("registry: malformed record")

	// ErrInvalidRecord 记录无法编码（名字或地址含分隔符、为空或端口越界）
	ErrInvalidRecord = errors.New("registry: invalid record")

	// ErrNotFound 注册表中没有该名字
	ErrNotFound = errors.New("registry: room not found")

	// ErrDuplicateName 加载时遇到重复的名字（保留第一条）
	ErrDuplicateName = errors.New("registry: duplicate room name")

	// ErrStorage 注册表读写失败
	ErrStorage = errors.New("registry: storage failure")
)
