package middleware

import (
	"net/http"
	"strconv"

	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/pkg/ratelimit"
)

// FormRateLimit, public form gönderimlerini IP başına sınırlar.
// Sınır aşılırsa 429 ve Retry-After header'ı döner.
func FormRateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ratelimit.ExtractIP(r)
			if !limiter.Allow(ip) {
				retryAfter := limiter.RetryAfterSeconds(ip)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				pkg.ErrorFor(w, r, pkg.NewUserError(pkg.ErrTooManyRequests, "form.tooManySubmissions", map[string]string{
					"seconds": strconv.Itoa(retryAfter),
				}))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
