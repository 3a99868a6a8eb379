package http

import (
	"sync"
	"time"
)

const (
	rateLimitWindow   = time.Minute
	rateLimitRequests = 60
	cleanupInterval   = 5 * time.Minute
)

// rateLimiter is a fixed-window per-client limiter. A household service
// sees a handful of clients; a map with periodic pruning is enough.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
}

type clientWindow struct {
	count       int
	windowStart time.Time
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{clients: make(map[string]*clientWindow)}
	go rl.cleanupLoop()
	return rl
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cw, ok := rl.clients[clientIP]
	if !ok || now.Sub(cw.windowStart) >= rateLimitWindow {
		rl.clients[clientIP] = &clientWindow{count: 1, windowStart: now}
		return true
	}
	if cw.count >= rateLimitRequests {
		return false
	}
	cw.count++
	return true
}

func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, cw := range rl.clients {
			if now.Sub(cw.windowStart) >= rateLimitWindow {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}
