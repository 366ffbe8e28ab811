package ratelimit

import (
	"context"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestKeyedRateLimiter_Burst(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	krl := newLimiter(1, 3, time.Minute, clock.now)

	passed := 0
	for range 5 {
		if krl.Allow("10.0.0.1") {
			passed++
		}
	}
	if passed != 3 {
		t.Errorf("expected 3 allowed in burst, got %d", passed)
	}

	clock.advance(time.Second)
	if !krl.Allow("10.0.0.1") {
		t.Error("expected a token to refill after one second")
	}
}

func TestKeyedRateLimiter_KeysIndependent(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	krl := newLimiter(1, 1, time.Minute, clock.now)

	if !krl.Allow("a") {
		t.Fatal("first request for a should pass")
	}
	if krl.Allow("a") {
		t.Error("second request for a should be limited")
	}
	if !krl.Allow("b") {
		t.Error("b must not share a's bucket")
	}
}

func TestKeyedRateLimiter_EvictIdle(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	krl := newLimiter(1, 1, time.Minute, clock.now)

	krl.Allow("old")
	clock.advance(45 * time.Second)
	krl.Allow("fresh")
	clock.advance(30 * time.Second)

	if n := krl.evictIdle(); n != 1 {
		t.Errorf("expected 1 eviction, got %d", n)
	}
	if krl.Len() != 1 {
		t.Errorf("expected 1 tracked key, got %d", krl.Len())
	}
}

func TestKeyedRateLimiter_WaitHonoursContext(t *testing.T) {
	krl := New(0.001, 1)
	defer krl.Stop()

	krl.Allow("k")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := krl.Wait(ctx, "k"); err == nil {
		t.Error("expected Wait to fail when the bucket cannot refill before the deadline")
	}
}

func TestKeyedRateLimiter_StopTwice(t *testing.T) {
	krl := New(1, 1)
	krl.Stop()
	krl.Stop()
}
