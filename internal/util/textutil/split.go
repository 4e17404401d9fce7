// Package textutil 提供纯函数式的字符串切分工具
//
// 所有函数只读取输入，返回新分配的切片，不修改也不别名调用方的缓冲区。
package textutil

import "strings"

// Split 按分隔符把字符串切分为有序序列
//
// 与 strings.Split 不同，空输入返回空序列而不是包含一个空串的序列。
// 连续分隔符之间的空字段会被保留，由调用方决定如何处理。
func Split(s, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}

// Lines 把文本切分为行
//
// 行终止符为 "\n"，行尾的 "\r" 视为终止符的一部分被去掉。
// 末尾换行不会产生额外的空行。
func Lines(s string) []string {
	lines := Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
