package server

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"folio/internal/app"
	"folio/internal/ratelimit"
)

// Descriptor names one middleware in the chain. Chains are listed in
// execution order: the first descriptor sees the session first.
type Descriptor struct {
	Name       string
	Middleware wish.Middleware
}

// MiddlewareFromDescriptors returns the chain in the order wish.WithMiddleware
// expects, where the last middleware is the outermost.
func MiddlewareFromDescriptors(chain []Descriptor) []wish.Middleware {
	out := make([]wish.Middleware, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i].Middleware)
	}
	return out
}

// RateLimitMiddleware drops sessions from hosts that exhausted their bucket.
func RateLimitMiddleware(limiter *ratelimit.Limiter, logger *zap.Logger) wish.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			host := ratelimit.HostOf(s.RemoteAddr())
			if !limiter.Allow(host) {
				logger.Warn("rate limit throttled",
					zap.String("remote_ip", host),
					zap.Time("timestamp", time.Now().UTC()),
				)
				_, _ = s.Write([]byte("rate limit exceeded\n"))
				return
			}
			next(s)
		}
	}
}

// MaxSessionsMiddleware caps concurrent sessions. A slot is released once,
// when the session context ends or the handler returns, whichever is first.
// Handler panics are logged and swallowed so the slot is never leaked.
func MaxSessionsMiddleware(limit int, logger *zap.Logger) wish.Middleware {
	if limit <= 0 {
		limit = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	slots := semaphore.NewWeighted(int64(limit))

	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			if !slots.TryAcquire(1) {
				logger.Warn("max sessions exceeded", zap.Int("limit", limit))
				_, _ = s.Write([]byte("max sessions exceeded\n"))
				return
			}

			var once sync.Once
			release := func() { once.Do(func() { slots.Release(1) }) }
			done := make(chan struct{})
			go func() {
				select {
				case <-s.Context().Done():
					release()
				case <-done:
				}
			}()

			defer func() {
				if r := recover(); r != nil {
					logger.Error("session panic", zap.String("panic", fmt.Sprint(r)))
				}
				close(done)
				release()
			}()
			next(s)
		}
	}
}

type contextKey string

const sessionInfoKey contextKey = "folio.session"

// SessionInfo is stored on the session context before the program starts.
type SessionInfo struct {
	Observer    string
	User        string
	RemoteHost  string
	Term        string
	PublicKey   bool
	ConnectedAt time.Time
}

// SessionMetadataMiddleware derives the visitor's observer id and stores
// SessionInfo on the session context.
func SessionMetadataMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			s.Context().SetValue(sessionInfoKey, describe(s))
			next(s)
		}
	}
}

// InfoFromSession returns the SessionInfo stored by SessionMetadataMiddleware,
// deriving it on the spot when the middleware did not run.
func InfoFromSession(s ssh.Session) SessionInfo {
	if info, ok := s.Context().Value(sessionInfoKey).(SessionInfo); ok {
		return info
	}
	return describe(s)
}

func describe(s ssh.Session) SessionInfo {
	var key []byte
	if pk := s.PublicKey(); pk != nil {
		key = pk.Marshal()
	}
	remote := ""
	if addr := s.RemoteAddr(); addr != nil {
		remote = addr.String()
	}
	pty, _, _ := s.Pty()
	return SessionInfo{
		Observer:    app.ObserverID(key, remote),
		User:        s.User(),
		RemoteHost:  ratelimit.HostOf(s.RemoteAddr()),
		Term:        strings.TrimSpace(pty.Term),
		PublicKey:   key != nil,
		ConnectedAt: time.Now().UTC(),
	}
}
