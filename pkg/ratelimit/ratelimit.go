// Package ratelimit, key bazlı (IP, e-posta vb.) in-memory rate limiting sağlar.
//
// Sabit pencere: window içinde maxAttempts'e kadar istek kabul edilir.
// Cooldown sıfırdan büyükse limit aşıldığında key cooldown süresi boyunca
// tamamen bloklanır, sıfırsa pencere bitene kadar bekler.
//
// pkg/ratelimit hiçbir proje içi pakete bağımlı değildir.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

type bucket struct {
	count         int
	windowStart   time.Time
	cooldownUntil time.Time
}

// Limiter, key bazlı rate limiter.
//
//	login := ratelimit.New(5, 2*time.Minute, 0)
//	if !login.Allow(ip) { return 429 }
//	login.Reset(ip) // başarılı girişte
type Limiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	maxAttempts int
	window      time.Duration
	cooldown    time.Duration
	now         func() time.Time

	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// New, yeni bir Limiter oluşturur ve arka plan temizleme goroutine'ini başlatır.
func New(maxAttempts int, window, cooldown time.Duration) *Limiter {
	rl := &Limiter{
		buckets:     make(map[string]*bucket),
		maxAttempts: maxAttempts,
		window:      window,
		cooldown:    cooldown,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow, key için isteğe izin verilip verilmediğini döner.
// Her çağrı sayacı artırır.
func (rl *Limiter) Allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[key]
	if !exists {
		rl.buckets[key] = &bucket{count: 1, windowStart: now}
		return true
	}

	if now.Before(b.cooldownUntil) {
		return false
	}

	if now.Sub(b.windowStart) > rl.window || !b.cooldownUntil.IsZero() {
		b.count = 1
		b.windowStart = now
		b.cooldownUntil = time.Time{}
		return true
	}

	b.count++
	if b.count <= rl.maxAttempts {
		return true
	}
	if rl.cooldown > 0 {
		b.cooldownUntil = now.Add(rl.cooldown)
	}
	return false
}

// Reset, key'in sayacını siler.
func (rl *Limiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, key)
}

// RetryAfterSeconds, key tekrar istek atabilene kadar kalan süreyi saniye
// cinsinden döner. Retry-After header'ı için kullanılır.
func (rl *Limiter) RetryAfterSeconds(key string) int {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[key]
	if !exists {
		return 0
	}

	var remaining time.Duration
	if !b.cooldownUntil.IsZero() {
		remaining = b.cooldownUntil.Sub(now)
	} else {
		remaining = rl.window - now.Sub(b.windowStart)
	}
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

// Close, temizleme goroutine'ini durdurur.
func (rl *Limiter) Close() {
	rl.closeOnce.Do(func() { close(rl.stopCleanup) })
}

func (rl *Limiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *Limiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, b := range rl.buckets {
		if now.Sub(b.windowStart) > rl.window && now.After(b.cooldownUntil) {
			delete(rl.buckets, key)
		}
	}
}

// ExtractIP, HTTP request'ten client IP adresini çıkarır.
// Sıra: X-Forwarded-For (ilk değer), X-Real-IP, RemoteAddr.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
