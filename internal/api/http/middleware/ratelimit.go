package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit throttles per client IP. Used on the auth endpoints so that
// credential guessing hits the limiter before it hits the identity
// provider. Idle limiter entries are dropped after an hour.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	type entry struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*entry)
	)

	go func() {
		for range time.Tick(10 * time.Minute) {
			mu.Lock()
			for ip, e := range clients {
				if time.Since(e.lastSeen) > time.Hour {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		e, ok := clients[ip]
		if !ok {
			e = &entry{limiter: rate.NewLimiter(r, burst)}
			clients[ip] = e
		}
		e.lastSeen = time.Now()
		allowed := e.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, slow down"})
			c.Abort()
			return
		}

		c.Next()
	}
}
