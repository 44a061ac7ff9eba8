package theme

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"folio/internal/events"
	"folio/internal/prefs"
)

// ToggleArg is the Set argument that flips the current mode.
const ToggleArg = "toggle"

// State holds one client's theme mode.
type State struct {
	store  prefs.Store
	bus    *events.Bus
	logger *zap.Logger

	mu   sync.RWMutex
	mode Mode
}

// NewState restores the persisted mode, defaulting to dark.
func NewState(ctx context.Context, store prefs.Store, bus *events.Bus, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = prefs.Disabled{}
	}

	mode := DefaultMode
	if raw, ok, err := store.Get(ctx, prefs.KeyTheme); err != nil {
		logger.Debug("theme preference unreadable", zap.Error(err))
	} else if ok {
		if parsed, valid := ParseMode(raw); valid {
			mode = parsed
		}
	}
	return &State{store: store, bus: bus, logger: logger, mode: mode}
}

func (s *State) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Set applies "dark", "light" or "toggle", persists the result and
// publishes a ThemeChanged event.
func (s *State) Set(ctx context.Context, arg string) (Mode, error) {
	s.mu.Lock()
	next, ok := ParseMode(arg)
	if !ok {
		if !strings.EqualFold(strings.TrimSpace(arg), ToggleArg) {
			s.mu.Unlock()
			return s.Mode(), fmt.Errorf("%w: %q", ErrUnknownMode, arg)
		}
		next = s.mode.Toggle()
	}
	s.mode = next
	s.mu.Unlock()

	if err := s.store.Set(ctx, prefs.KeyTheme, string(next)); err != nil {
		s.logger.Debug("theme not persisted", zap.String("theme", string(next)), zap.Error(err))
	}
	if s.bus != nil {
		s.bus.Publish(events.ThemeChanged{Theme: string(next)})
	}
	return next, nil
}
