// Package xlog 基于 log/slog 的结构化日志库。
//
// # 核心功能
//
//   - Builder 模式配置（输出目标、级别、格式、文件轮转）
//   - 强制 context 传递，方法签名只接受 slog.Attr
//   - 动态级别调整（运行时热更新，配置热重载时使用）
//   - 文件输出基于 lumberjack 自动轮转
//
// # 创建 Logger
//
// 使用 Builder 模式（first-error-wins：遇到第一个配置错误后，后续 Set 操作被跳过）：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetFile("/var/log/xttl/xttl.log").
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// 不需要日志输出时使用 [Discard]。
//
// # 日志级别
//
// LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)。
// Level 实现 encoding.TextMarshaler/TextUnmarshaler，可直接用于配置结构体。
//
// # 便捷属性
//
// [Err]、[Component]、[Operation]、[Count]、[Key]、[TTL]、[Duration]。
package xlog
