package xmetrics

import "go.opentelemetry.io/otel/attribute"

// 属性键。component/operation/status 是指标维度，其余只出现在追踪跨度上。
const (
	KeyComponent  = "component"
	KeyOperation  = "operation"
	KeyStatus     = "status"
	KeyItems      = "xttl.items"
	KeySweeper    = "xttl.sweeper"
	KeyRemaining  = "xttl.remaining"
	KeyConfigPath = "xconf.path"
)

// Sweeper 回收器名称。
func Sweeper(name string) attribute.KeyValue {
	return attribute.String(KeySweeper, name)
}

// Remaining 回收后缓存中剩余的条目数。
func Remaining(n int) attribute.KeyValue {
	return attribute.Int(KeyRemaining, n)
}

// ConfigPath 被重载的配置文件路径。
func ConfigPath(path string) attribute.KeyValue {
	return attribute.String(KeyConfigPath, path)
}
