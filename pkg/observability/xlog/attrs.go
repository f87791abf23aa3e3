package xlog

import (
	"fmt"
	"log/slog"
	"time"
)

// 属性键。
const (
	KeyError     = "error"
	KeyDuration  = "duration"
	KeyCount     = "count"
	KeyComponent = "component"
	KeyOperation = "operation"
	KeyCacheKey  = "cache_key"
	KeyTTL       = "ttl"
)

// Err 错误属性。err 为 nil 时返回空 Attr，slog 输出时会跳过。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 耗时属性，以 time.Duration.String 的形式输出。
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

func Count(n int64) slog.Attr {
	return slog.Int64(KeyCount, n)
}

// Key 缓存键属性。缓存键可以是任意 comparable 类型，统一格式化为字符串。
func Key[K comparable](key K) slog.Attr {
	var s string
	switch v := any(key).(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprint(v)
	}
	return slog.String(KeyCacheKey, s)
}

// TTL 存活时间属性。0 表示永不过期，输出 "none"。
func TTL(d time.Duration) slog.Attr {
	if d == 0 {
		return slog.String(KeyTTL, "none")
	}
	return slog.String(KeyTTL, d.String())
}
