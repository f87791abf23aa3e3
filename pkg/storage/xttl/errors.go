package xttl

import "errors"

// ErrInvalidArgument 表示调用参数无效。
//
// 以下情况返回此错误（可能经 %w 包装附带细节）：
//   - key 为其类型的零值（如空字符串）
//   - value 为 nil（nil 接口、指针、map、slice、chan、func）
//   - TTL 为负数
//   - WithOnExpired 回调签名与缓存类型不匹配
//
// 键不存在、条目已过期都不是错误，分别以 false / 零值表达。
var ErrInvalidArgument = errors.New("xttl: invalid argument")
