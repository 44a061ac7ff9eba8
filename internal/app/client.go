// Package app assembles the per-visitor state shared by the SSH page and the
// command runner: locale, theme, scene toggles and the terminal session.
package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"folio/internal/content"
	"folio/internal/events"
	"folio/internal/i18n"
	"folio/internal/logging"
	"folio/internal/prefs"
	"folio/internal/scene"
	"folio/internal/terminal"
	"folio/internal/theme"
)

// HighlightDuration is how long an opened project stays emphasized.
const HighlightDuration = 1500 * time.Millisecond

// DefaultSection is the anchor shown first.
const DefaultSection = "home"

// Deps are the process-wide services every client shares.
type Deps struct {
	Source     content.Source
	Prefs      prefs.Backend
	Translator *i18n.Translator
	Registry   *terminal.Registry
	Logger     *zap.Logger
	// Subscribers are attached to every client's event bus.
	Subscribers []events.Handler
}

// Client is one visitor. It implements terminal.Env.
type Client struct {
	id     string
	logger *zap.Logger
	now    func() time.Time

	Bus        *events.Bus
	Resolver   *content.Resolver
	ThemeState *theme.State
	Scene      *scene.Settings
	Interp     *terminal.Interpreter
	Session    *terminal.Session

	unsubscribe []func()

	mu             sync.Mutex
	section        string
	highlight      string
	highlightUntil time.Time
}

// NewClient restores the visitor's preferences and builds a closed terminal
// session.
func NewClient(ctx context.Context, deps Deps, observer string) *Client {
	logger := logging.OrNop(deps.Logger).With(zap.String("observer", observer))
	store := prefs.Scope(deps.Prefs, observer)
	registry := deps.Registry
	if registry == nil {
		registry = terminal.DefaultRegistry()
	}

	c := &Client{
		id:      observer,
		logger:  logger,
		now:     time.Now,
		Bus:     events.NewBus(logger),
		section: DefaultSection,
	}
	for _, sub := range deps.Subscribers {
		c.unsubscribe = append(c.unsubscribe, c.Bus.Subscribe(sub))
	}
	c.Resolver = content.NewResolver(ctx, deps.Source, store, logger)
	c.ThemeState = theme.NewState(ctx, store, c.Bus, logger)
	c.Scene = scene.Load(ctx, store, logger)
	c.Interp = terminal.NewInterpreter(registry, c.Resolver, deps.Translator, c)
	c.Session = terminal.NewSession(c.Interp)
	return c
}

// Close detaches the shared subscribers.
func (c *Client) Close() {
	for _, fn := range c.unsubscribe {
		fn()
	}
	c.unsubscribe = nil
}

// Section is the anchor of the section in view.
func (c *Client) Section() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.section
}

// SetSection moves the page to anchor.
func (c *Client) SetSection(anchor string) {
	c.mu.Lock()
	c.section = anchor
	c.mu.Unlock()
}

// Highlighted returns the project slug currently emphasized, if any.
func (c *Client) Highlighted() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.highlight == "" || !c.now().Before(c.highlightUntil) {
		c.highlight = ""
		return "", false
	}
	return c.highlight, true
}

func (c *Client) SetTheme(ctx context.Context, mode string) {
	if _, err := c.ThemeState.Set(ctx, mode); err != nil {
		c.logger.Debug("theme unchanged", zap.String("arg", mode), zap.Error(err))
	}
}

func (c *Client) Theme() string { return string(c.ThemeState.Mode()) }

func (c *Client) SetLocale(ctx context.Context, l content.Locale) {
	if err := c.Resolver.SetLocale(ctx, l); err != nil {
		c.logger.Debug("locale unchanged", zap.Error(err))
	}
}

func (c *Client) Goto(section string) { c.SetSection(section) }

func (c *Client) OpenProject(slug string) {
	c.mu.Lock()
	c.section = "projects"
	c.highlight = slug
	c.highlightUntil = c.now().Add(HighlightDuration)
	c.mu.Unlock()
}

func (c *Client) SetBackground(ctx context.Context, on bool) { c.Scene.SetShowBackground(ctx, on) }
func (c *Client) Background() bool                           { return c.Scene.ShowBackground() }
func (c *Client) SetLowPower(ctx context.Context, on bool)   { c.Scene.SetLowPower(ctx, on) }
func (c *Client) LowPower() bool                             { return c.Scene.LowPower() }
func (c *Client) Observer() string                           { return c.id }

// ObserverID derives a stable 12-character id for a visitor. The public key
// wins when present; otherwise the remote host is used, port stripped.
func ObserverID(publicKey []byte, remoteAddr string) string {
	seed := []byte(normalizeRemoteAddr(remoteAddr))
	if len(publicKey) > 0 {
		seed = publicKey
	}
	sum := sha256.Sum256(seed)
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:12]
}

func normalizeRemoteAddr(remoteAddr string) string {
	trimmed := strings.TrimSpace(remoteAddr)
	if host, _, err := net.SplitHostPort(trimmed); err == nil {
		return host
	}
	return strings.Trim(trimmed, "[]")
}
