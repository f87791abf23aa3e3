package xlog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrUnknownLevel 表示无法识别的日志级别名称。
var ErrUnknownLevel = errors.New("xlog: unknown level")

// Level 日志级别，取值与 slog.Level 相同，可直接互转。
type Level slog.Level

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// levelNames 按严重程度升序排列。
var levelNames = [...]struct {
	level Level
	name  string
}{
	{LevelDebug, "debug"},
	{LevelInfo, "info"},
	{LevelWarn, "warn"},
	{LevelError, "error"},
}

// String 标准级别返回大写名称，其他值沿用 slog 的写法（如 "INFO+2"）。
func (l Level) String() string {
	for _, n := range levelNames {
		if n.level == l {
			return strings.ToUpper(n.name)
		}
	}
	return slog.Level(l).String()
}

// Level 实现 slog.Leveler。
func (l Level) Level() slog.Level {
	return slog.Level(l)
}

// MarshalText 实现 encoding.TextMarshaler。
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler，配置文件中的级别字段可直接使用 Level 类型。
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 解析级别名称。
// 大小写不敏感并忽略首尾空白；"warning" 视为 "warn"。
// 失败时返回 LevelInfo 和包装 ErrUnknownLevel 的错误。
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		name = "warn"
	}
	for _, n := range levelNames {
		if n.name == name {
			return n.level, nil
		}
	}
	return LevelInfo, fmt.Errorf("%w %q (want one of %s)", ErrUnknownLevel, s, strings.Join(LevelNames(), "|"))
}

// LevelNames 返回 ParseLevel 接受的规范名称，按严重程度升序。
func LevelNames() []string {
	out := make([]string, len(levelNames))
	for i, n := range levelNames {
		out[i] = n.name
	}
	return out
}
