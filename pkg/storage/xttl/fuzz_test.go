package xttl

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func FuzzCache(f *testing.F) {
	f.Add("key1", 100, int64(time.Second), uint8(0))
	f.Add("", 0, int64(0), uint8(1))
	f.Add("key2", -1, int64(-time.Second), uint8(2))
	f.Add("key3", 42, int64(time.Hour), uint8(3))
	f.Add("key4", 7, int64(time.Millisecond), uint8(4))

	clock := clockwork.NewFakeClock()
	cache, err := New[string, int](time.Second, WithClock(clock))
	if err != nil {
		f.Fatalf("New failed: %v", err)
	}

	f.Fuzz(func(t *testing.T, key string, value int, ttlNanos int64, op uint8) {
		ttl := time.Duration(ttlNanos)
		switch op % 7 {
		case 0:
			err := cache.AddWithTTL(key, value, ttl)
			if (key == "" || ttl < 0) != errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("AddWithTTL(%q, %d, %s) err = %v", key, value, ttl, err)
			}
		case 1:
			_, ok, err := cache.Fetch(key)
			if key == "" && (ok || !errors.Is(err, ErrInvalidArgument)) {
				t.Fatalf("Fetch(\"\") = %v, %v", ok, err)
			}
		case 2:
			cache.Remove(key)
			if _, ok := cache.ToMap()[key]; ok {
				t.Fatalf("key %q still present after Remove", key)
			}
		case 3:
			_, _ = cache.Valid(key)
		case 4:
			if ttl > 0 {
				clock.Advance(ttl % time.Hour)
			}
		case 5:
			before := cache.Len()
			removed := cache.Sweep()
			if cache.Len() != before-removed {
				t.Fatalf("Sweep removed %d but Len went %d -> %d", removed, before, cache.Len())
			}
		case 6:
			if len(cache.Keys()) != len(cache.ToList()) {
				t.Fatal("Keys and ToList length mismatch")
			}
		}
	})
}

func FuzzNew(f *testing.F) {
	f.Add(int64(time.Minute))
	f.Add(int64(0))
	f.Add(int64(-time.Second))

	f.Fuzz(func(t *testing.T, ttlNanos int64) {
		ttl := time.Duration(ttlNanos)
		cache, err := New[string, int](ttl)
		if ttl < 0 {
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("New(%s) err = %v, want ErrInvalidArgument", ttl, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("New(%s) failed: %v", ttl, err)
		}
		// 基本操作不应 panic
		_ = cache.Add("k", 1)
		_, _, _ = cache.Fetch("k")
		_, _ = cache.Valid("k")
		cache.Sweep()
		cache.Remove("k")
	})
}
