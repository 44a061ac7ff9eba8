// Package scene holds the background toggles of a session: whether the
// animated background is shown and whether low-power mode is on.
package scene

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"folio/internal/prefs"
)

// Settings is one client's scene configuration.
type Settings struct {
	store  prefs.Store
	logger *zap.Logger

	mu             sync.RWMutex
	showBackground bool
	lowPower       bool
}

// Load restores persisted values. Anything other than "1" or "0" is ignored
// and the defaults (background on, low power off) apply.
func Load(ctx context.Context, store prefs.Store, logger *zap.Logger) *Settings {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = prefs.Disabled{}
	}
	s := &Settings{store: store, logger: logger, showBackground: true}
	if v, ok := s.read(ctx, prefs.KeyBackground); ok {
		s.showBackground = v
	}
	if v, ok := s.read(ctx, prefs.KeyLowPower); ok {
		s.lowPower = v
	}
	return s
}

func (s *Settings) read(ctx context.Context, key string) (bool, bool) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Debug("scene preference unreadable", zap.String("key", key), zap.Error(err))
		return false, false
	}
	if !ok {
		return false, false
	}
	switch raw {
	case "1":
		return true, true
	case "0":
		return false, true
	}
	return false, false
}

func (s *Settings) write(ctx context.Context, key string, v bool) {
	raw := "0"
	if v {
		raw = "1"
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		s.logger.Debug("scene preference not persisted", zap.String("key", key), zap.Error(err))
	}
}

func (s *Settings) ShowBackground() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showBackground
}

func (s *Settings) LowPower() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lowPower
}

// Animated reports whether background animation should run.
func (s *Settings) Animated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showBackground && !s.lowPower
}

func (s *Settings) SetShowBackground(ctx context.Context, on bool) {
	s.mu.Lock()
	s.showBackground = on
	s.mu.Unlock()
	s.write(ctx, prefs.KeyBackground, on)
}

func (s *Settings) SetLowPower(ctx context.Context, on bool) {
	s.mu.Lock()
	s.lowPower = on
	s.mu.Unlock()
	s.write(ctx, prefs.KeyLowPower, on)
}
