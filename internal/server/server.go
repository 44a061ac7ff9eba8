// Package server runs the SSH front door: wish middleware, per-session
// bubbletea programs and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"
	wishrecover "github.com/charmbracelet/wish/recover"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"folio/internal/config"
	"folio/internal/logging"
	"folio/internal/ratelimit"
)

const (
	version         = "dev"
	shutdownTimeout = 10 * time.Second
)

// Runtime wires config + middleware + the wish server as a testable unit.
type Runtime struct {
	cfg           config.Config
	logger        *zap.Logger
	middlewareIDs []string
	server        *ssh.Server
}

// DefaultChain is the session pipeline in execution order: connection
// logging, per-host rate limiting, the session cap, then the recovered
// application stack (metadata, PTY check, bubbletea program).
func DefaultChain(cfg config.Config, programs *Programs, logger *zap.Logger) []Descriptor {
	logger = logging.OrNop(logger)
	std := zap.NewStdLog(logger.Named("ssh"))

	appChain := []Descriptor{
		{Name: "session-metadata", Middleware: SessionMetadataMiddleware()},
		{Name: "activeterm", Middleware: activeterm.Middleware()},
		{Name: "bubbletea", Middleware: bubbletea.MiddlewareWithProgramHandler(programs.Program, termenv.Ascii)},
	}
	return []Descriptor{
		{Name: "logging", Middleware: wishlogging.MiddlewareWithLogger(std)},
		{Name: "rate-limit", Middleware: RateLimitMiddleware(ratelimit.New(cfg.RateLimitPerMinute, cfg.RateLimitBurst), logger)},
		{Name: "max-sessions", Middleware: MaxSessionsMiddleware(cfg.MaxSessions, logger)},
		{Name: "recover", Middleware: wishrecover.MiddlewareWithLogger(std, MiddlewareFromDescriptors(appChain)...)},
	}
}

func New(cfg config.Config, chain []Descriptor, logger *zap.Logger) (*Runtime, error) {
	logger = logging.OrNop(logger)
	wishServer, err := wish.NewServer(
		wish.WithAddress(cfg.SSHAddress()),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		// Any key or password is accepted; the key only seeds the observer id.
		wish.WithPublicKeyAuth(func(ssh.Context, ssh.PublicKey) bool { return true }),
		wish.WithPasswordAuth(func(ssh.Context, string) bool { return true }),
		wish.WithMiddleware(MiddlewareFromDescriptors(chain)...),
	)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(chain))
	for _, descriptor := range chain {
		ids = append(ids, descriptor.Name)
	}

	return &Runtime{cfg: cfg, logger: logger, middlewareIDs: ids, server: wishServer}, nil
}

func (r *Runtime) MiddlewareIDs() []string {
	out := make([]string, len(r.middlewareIDs))
	copy(out, r.middlewareIDs)
	return out
}

func (r *Runtime) Address() string {
	return r.server.Addr
}

// Run listens on the configured address until ctx ends.
func (r *Runtime) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", r.server.Addr)
	if err != nil {
		return err
	}
	return r.Serve(ctx, l)
}

// Serve accepts sessions on l until ctx ends, then drains open sessions for
// up to shutdownTimeout.
func (r *Runtime) Serve(ctx context.Context, l net.Listener) error {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := r.server.Shutdown(shutdownCtx)
		// Serve may not have registered l yet.
		_ = l.Close()
		if err != nil {
			r.logger.Warn("ssh shutdown", zap.Error(err))
			_ = r.server.Close()
		}
	}()

	r.logger.Info("ssh startup",
		zap.String("version", version),
		zap.String("addr", l.Addr().String()),
		zap.Strings("middleware", r.middlewareIDs),
		zap.String("host_key_path", r.cfg.HostKeyPath),
		zap.Duration("idle_timeout", r.cfg.IdleTimeout),
		zap.Int("max_sessions", r.cfg.MaxSessions),
	)
	err := r.server.Serve(l)
	if errors.Is(err, ssh.ErrServerClosed) || err == nil {
		<-stopped
		return nil
	}
	return err
}
