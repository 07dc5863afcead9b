package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(max int, window, cooldown time.Duration) (*Limiter, *time.Time) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	rl := New(max, window, cooldown)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestAllowWindow(t *testing.T) {
	rl, now := newTestLimiter(3, time.Minute, 0)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("attempt %d rejected", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("4th attempt allowed")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatal("other key rejected")
	}
	if got := rl.RetryAfterSeconds("1.2.3.4"); got != 61 {
		t.Errorf("RetryAfterSeconds = %d, want 61", got)
	}

	*now = now.Add(61 * time.Second)
	if !rl.Allow("1.2.3.4") {
		t.Fatal("attempt after window rejected")
	}
}

func TestAllowCooldown(t *testing.T) {
	rl, now := newTestLimiter(2, 10*time.Second, 30*time.Second)
	defer rl.Close()

	rl.Allow("k")
	rl.Allow("k")
	if rl.Allow("k") {
		t.Fatal("over-limit attempt allowed")
	}

	*now = now.Add(15 * time.Second)
	if rl.Allow("k") {
		t.Fatal("attempt during cooldown allowed")
	}
	if got := rl.RetryAfterSeconds("k"); got != 16 {
		t.Errorf("RetryAfterSeconds = %d, want 16", got)
	}

	*now = now.Add(16 * time.Second)
	if !rl.Allow("k") {
		t.Fatal("attempt after cooldown rejected")
	}
}

func TestResetAndCleanup(t *testing.T) {
	rl, now := newTestLimiter(1, time.Minute, 0)
	defer rl.Close()

	rl.Allow("a")
	if rl.Allow("a") {
		t.Fatal("second attempt allowed")
	}
	rl.Reset("a")
	if !rl.Allow("a") {
		t.Fatal("attempt after reset rejected")
	}

	*now = now.Add(2 * time.Minute)
	rl.cleanup()
	if len(rl.buckets) != 0 {
		t.Errorf("buckets after cleanup = %d", len(rl.buckets))
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "9.9.9.9, 10.0.0.1"}, "10.0.0.1:1234", "9.9.9.9"},
		{"real ip", map[string]string{"X-Real-IP": "8.8.8.8"}, "10.0.0.1:1234", "8.8.8.8"},
		{"remote", nil, "7.7.7.7:5555", "7.7.7.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			if got := ExtractIP(r); got != tt.want {
				t.Errorf("ExtractIP = %q, want %q", got, tt.want)
			}
		})
	}
}
