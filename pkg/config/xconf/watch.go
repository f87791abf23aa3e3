package xconf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 默认防抖时间。
const DefaultDebounce = 100 * time.Millisecond

// WatchCallback 配置变更回调。
// 重新加载成功时 cfg 非 nil、err 为 nil；失败时 cfg 为 nil。
type WatchCallback func(cfg *Config, err error)

// WatchOption 配置监视选项。
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

// WithDebounce 设置防抖时间，非正数使用 DefaultDebounce。
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// Watcher 配置文件监视器。
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	closeErr  error
}

// Watch 创建配置文件监视器，调用 Run 后开始监视。
func Watch(path string, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if _, err := DetectFormat(path); err != nil {
		return nil, err
	}

	options := &watchOptions{debounce: DefaultDebounce}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xconf: failed to create watcher: %w", err)
	}

	// 监视目录而非文件：编辑器原子写入会替换 inode
	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		closeErr := fsWatcher.Close()
		return nil, errors.Join(
			fmt.Errorf("xconf: failed to watch directory %s: %w", dir, err),
			closeErr,
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     path,
		watcher:  fsWatcher,
		callback: callback,
		debounce: options.debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Path 返回被监视的配置文件路径。
func (w *Watcher) Path() string {
	return w.path
}

// Run 阻塞监视，直到 ctx 取消或调用 Stop，返回时释放 fsnotify 资源。
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.close() }()

	filename := filepath.Base(w.path)
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-w.ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, filename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			if w.ctx.Err() != nil {
				return nil
			}
			cfg, err := Load(w.path)
			w.notify(cfg, err)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.notify(nil, fmt.Errorf("xconf: watch error: %w", err))
		}
	}
}

// Stop 停止监视。可重复调用，也可在回调中调用。
func (w *Watcher) Stop() error {
	w.cancel()
	return w.close()
}

func (w *Watcher) close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.watcher.Close()
	})
	return w.closeErr
}

func (w *Watcher) notify(cfg *Config, err error) {
	if w.callback != nil {
		w.callback(cfg, err)
	}
}

func relevant(event fsnotify.Event, filename string) bool {
	if filepath.Base(event.Name) != filename {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
