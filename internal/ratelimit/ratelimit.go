// Package ratelimit keeps one token bucket per remote address.
package ratelimit

import (
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultPerMinute = 30
	defaultBurst     = 10
	idleTTL          = 10 * time.Minute
)

type visitor struct {
	limiter *rate.Limiter
	seen    time.Time
}

// Limiter hands out per-key buckets refilled at perMinute tokens per minute.
// Buckets idle for longer than idleTTL are swept on access.
type Limiter struct {
	mu        sync.Mutex
	every     rate.Limit
	burst     int
	visitors  map[string]*visitor
	lastSweep time.Time
}

// New builds a limiter; non-positive values fall back to 30/min with a burst of 10.
func New(perMinute, burst int) *Limiter {
	if perMinute <= 0 {
		perMinute = defaultPerMinute
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return &Limiter{
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		visitors: make(map[string]*visitor),
	}
}

// Allow spends one token from key's bucket.
func (l *Limiter) Allow(key string) bool {
	return l.AllowAt(key, time.Now())
}

// AllowAt is Allow with an explicit clock.
func (l *Limiter) AllowAt(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > idleTTL {
		for k, v := range l.visitors {
			if now.Sub(v.seen) > idleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[key] = v
	}
	v.seen = now
	return v.limiter.AllowN(now, 1)
}

// Len reports the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// HostOf reduces a "host:port" address to its host, "unknown" when empty.
func HostOf(addr net.Addr) string {
	if addr == nil {
		return "unknown"
	}
	return HostOfString(addr.String())
}

// HostOfString is HostOf for an address already in string form.
func HostOfString(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(raw)
	if err != nil {
		return raw
	}
	if host == "" {
		return "unknown"
	}
	return host
}
