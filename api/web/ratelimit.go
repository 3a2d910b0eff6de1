package web

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const BURST = 1

// Per client + endpoint limiters.
type limiterPool struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
}

func newLimiterPool() *limiterPool {
	return &limiterPool{clients: make(map[string]*rate.Limiter)}
}

func (p *limiterPool) get(ip, endpoint string, rpm int) *rate.Limiter {
	key := ip + "|" + endpoint

	p.mu.Lock()
	defer p.mu.Unlock()

	limiter, exists := p.clients[key]
	if !exists {
		r := rate.Every(time.Minute / time.Duration(max(rpm, 1))) // interval per request
		limiter = rate.NewLimiter(r, BURST)
		p.clients[key] = limiter
	}

	return limiter
}

// Reports whether the request may go through. Writes a 429 when it may not.
func (p *limiterPool) allow(w http.ResponseWriter, r *http.Request, endpoint string, rpm int) bool {
	if rpm <= 0 {
		return true // unlimited
	}

	if !p.get(getClientIP(r), endpoint, rpm).Allow() {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return false
	}

	return true
}

// RemoteAddr without the port. Proxy headers are resolved beforehand by the RealIP middleware.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
