package cache

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func newTestCache(ttl time.Duration) (*TTLCache[string, int], *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)}
	c := New[string, int](ttl, time.Hour)
	c.now = clock.now
	return c, clock
}

func TestGetExpires(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	defer c.Close()

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get = %d, %v", v, ok)
	}

	clock.t = clock.t.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expired entry returned")
	}

	c.evictExpired()
	if c.Len() != 0 {
		t.Errorf("Len after evict = %d", c.Len())
	}
}

func TestTouchExtendsLifetime(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	defer c.Close()

	c.Set("a", 1)
	clock.t = clock.t.Add(50 * time.Second)
	if !c.Touch("a") {
		t.Fatal("Touch returned false")
	}
	clock.t = clock.t.Add(50 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("touched entry expired early")
	}
	if c.Touch("missing") {
		t.Error("Touch on missing key returned true")
	}
}

func TestGetOrCreate(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	defer c.Close()

	calls := 0
	create := func() int { calls++; return calls * 10 }

	v, created := c.GetOrCreate("k", create)
	if v != 10 || !created {
		t.Fatalf("first = %d, %v", v, created)
	}
	v, created = c.GetOrCreate("k", create)
	if v != 10 || created {
		t.Fatalf("second = %d, %v", v, created)
	}

	clock.t = clock.t.Add(2 * time.Minute)
	v, created = c.GetOrCreate("k", create)
	if v != 20 || !created {
		t.Fatalf("after expiry = %d, %v", v, created)
	}
}

func TestRangeAndDeleteFunc(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	defer c.Close()

	c.Set("u1:gallery", 1)
	c.Set("u2:gallery", 2)
	c.Set("u1:menu", 3)

	sum := 0
	c.Range(func(_ string, v int) bool { sum += v; return true })
	if sum != 6 {
		t.Errorf("Range sum = %d, want 6", sum)
	}

	c.DeleteFunc(func(k string) bool { return k[:2] == "u1" })
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	c.Close()
	c.Close()
}
