package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/omeyang/xttl/pkg/storage/xttl"
)

const (
	demoDefaultTTL = 4 * time.Second
	demoLongTTL    = 10 * time.Second
)

// runDemo 写入两个条目，在第 5s 和第 11s 读取，展示默认 TTL 与单条 TTL 的区别。
func runDemo(ctx context.Context, w io.Writer, fast bool) error {
	var (
		clock   clockwork.Clock = clockwork.NewRealClock()
		advance func(time.Duration) error
	)
	if fast {
		fake := clockwork.NewFakeClock()
		clock = fake
		advance = func(d time.Duration) error {
			fake.Advance(d)
			return nil
		}
	} else {
		advance = func(d time.Duration) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-clock.After(d):
				return nil
			}
		}
	}

	cache, err := xttl.New[string, string](demoDefaultTTL, xttl.WithClock(clock))
	if err != nil {
		return err
	}
	if err := cache.Add("key", "value"); err != nil {
		return err
	}
	if err := cache.AddWithTTL("key 2", "value 2", demoLongTTL); err != nil {
		return err
	}
	fmt.Fprintf(w, "t=0s   add %q (ttl %s), %q (ttl %s)\n", "key", demoDefaultTTL, "key 2", demoLongTTL)

	fetch := func(at, key string) error {
		v, ok, err := cache.Fetch(key)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintf(w, "t=%-4s fetch %q -> %q\n", at, key, v)
		} else {
			fmt.Fprintf(w, "t=%-4s fetch %q -> expired\n", at, key)
		}
		return nil
	}

	if err := advance(5 * time.Second); err != nil {
		return err
	}
	if err := fetch("5s", "key"); err != nil {
		return err
	}
	if err := fetch("5s", "key 2"); err != nil {
		return err
	}

	if err := advance(6 * time.Second); err != nil {
		return err
	}
	if err := fetch("11s", "key 2"); err != nil {
		return err
	}

	st := cache.Stats()
	fmt.Fprintf(w, "entries=%d hits=%d misses=%d expired=%d\n", cache.Len(), st.Hits, st.Misses, st.Expired)
	return nil
}
