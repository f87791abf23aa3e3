package xconf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/omeyang/xttl/pkg/observability/xlog"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// 默认值
const (
	// DefaultSchedule 默认回收周期。
	DefaultSchedule = "@every 1m"

	// DefaultLogLevel 默认日志级别。
	DefaultLogLevel = "info"

	// DefaultLogFormat 默认日志格式。
	DefaultLogFormat = "text"
)

// Config 缓存服务的完整配置。
type Config struct {
	Cache   CacheConfig   `koanf:"cache" json:"cache"`
	Sweeper SweeperConfig `koanf:"sweeper" json:"sweeper"`
	Log     LogConfig     `koanf:"log" json:"log"`
}

// CacheConfig 缓存配置。
type CacheConfig struct {
	// DefaultTTL 默认存活时间，0 表示永不过期。
	DefaultTTL time.Duration `koanf:"default_ttl" json:"default_ttl"`

	// Seed 启动时写入缓存的条目。
	Seed []SeedEntry `koanf:"seed" json:"seed,omitempty"`
}

// SeedEntry 预置条目。TTL 为 0 时使用 Cache.DefaultTTL。
type SeedEntry struct {
	Key   string        `koanf:"key" json:"key"`
	Value string        `koanf:"value" json:"value"`
	TTL   time.Duration `koanf:"ttl" json:"ttl,omitempty"`
}

// SweeperConfig 定期回收配置。
type SweeperConfig struct {
	Enabled bool `koanf:"enabled" json:"enabled"`

	// Schedule cron 表达式或 "@every <duration>"。
	Schedule string `koanf:"schedule" json:"schedule"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level  string `koanf:"level" json:"level"`
	Format string `koanf:"format" json:"format"`

	// File 非空时写入该文件并自动轮转。
	File string `koanf:"file" json:"file,omitempty"`
}

// Default 返回默认配置。
func Default() Config {
	return Config{
		Sweeper: SweeperConfig{
			Enabled:  true,
			Schedule: DefaultSchedule,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Validate 校验配置，返回包装 ErrInvalidConfig 的错误（可能包含多个问题）。
func (c *Config) Validate() error {
	var errs []error

	if c.Cache.DefaultTTL < 0 {
		errs = append(errs, fmt.Errorf("cache.default_ttl %s is negative", c.Cache.DefaultTTL))
	}
	for i, s := range c.Cache.Seed {
		if s.Key == "" {
			errs = append(errs, fmt.Errorf("cache.seed[%d]: key is empty", i))
		}
		if s.TTL < 0 {
			errs = append(errs, fmt.Errorf("cache.seed[%d]: ttl %s is negative", i, s.TTL))
		}
	}

	if c.Sweeper.Enabled {
		if strings.TrimSpace(c.Sweeper.Schedule) == "" {
			errs = append(errs, errors.New("sweeper.schedule is empty"))
		} else if _, err := cron.ParseStandard(c.Sweeper.Schedule); err != nil {
			// 与 xcron 默认解析器一致：5 字段或描述符
			errs = append(errs, fmt.Errorf("sweeper.schedule: %w", err))
		}
	}

	if _, err := xlog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not text or json", c.Log.Format))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
