// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xttl: 进程内 TTL 键值缓存，泛型支持、惰性过期与批量回收
//
// 设计原则：
//   - 零值不可用，统一通过构造函数创建
//   - 时间来源可注入，便于测试
package storage
