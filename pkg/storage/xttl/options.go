package xttl

import "github.com/jonboulle/clockwork"

// Option 定义缓存可选配置函数类型。
type Option func(*options)

// options 内部可选配置。
type options struct {
	clock     clockwork.Clock
	onExpired any
}

func defaultOptions() *options {
	return &options{
		clock: clockwork.NewRealClock(),
	}
}

// WithClock 设置缓存使用的时钟。
// 默认使用系统时钟；测试中可传入 clockwork.NewFakeClock() 精确推进时间。
// clock 为 nil 时忽略。
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithOnExpired 设置条目因过期被删除时的回调。
//
// 惰性过期（Fetch/Valid）和批量清理（Sweep）都会触发回调；
// Remove、Clear 和覆盖写不会触发。
//
// 回调类型必须是 func(K, V)，与缓存的类型参数一致，否则 New 返回 ErrInvalidArgument。
// 回调同步执行，不应做耗时操作，也不应回调缓存自身方法。
func WithOnExpired[K comparable, V any](fn func(key K, value V)) Option {
	return func(o *options) {
		if fn != nil {
			o.onExpired = fn
		}
	}
}
