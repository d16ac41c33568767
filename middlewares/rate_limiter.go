package middlewares

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/kantinku/kantin-app/utils"
)

// AuthRateLimiter membatasi endpoint login/register per alamat IP.
type AuthRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	burst    int
}

func NewAuthRateLimiter(r rate.Limit, burst int) *AuthRateLimiter {
	return &AuthRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		burst:    burst,
	}
}

func (a *AuthRateLimiter) limiterFor(ip string) *rate.Limiter {
	a.mu.Lock()
	defer a.mu.Unlock()

	limiter, exists := a.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(a.r, a.burst)
		a.limiters[ip] = limiter
	}
	return limiter
}

func (a *AuthRateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.limiterFor(c.ClientIP()).Allow() {
			utils.RespondJSON(c, http.StatusTooManyRequests,
				"Terlalu banyak percobaan, silakan tunggu beberapa saat", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
