// Package prefs persists small per-client preference values: locale, theme and
// scene toggles. It is the server-side counterpart of browser local storage.
package prefs

import (
	"context"
	"errors"
)

// Keys shared by the components that persist preferences.
const (
	KeyLocale     = "locale"
	KeyTheme      = "theme"
	KeyBackground = "scene-bg"
	KeyLowPower   = "scene-low"
)

// ErrUnavailable is returned by stores that cannot persist anything.
var ErrUnavailable = errors.New("preference storage unavailable")

// Backend stores values for many clients.
type Backend interface {
	Get(ctx context.Context, client, key string) (string, bool, error)
	Set(ctx context.Context, client, key, value string) error
}

// Store is a Backend bound to one client.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type scoped struct {
	backend Backend
	client  string
}

// Scope binds backend to client. A nil backend yields a store that always
// reports ErrUnavailable.
func Scope(backend Backend, client string) Store {
	if backend == nil {
		return Disabled{}
	}
	return scoped{backend: backend, client: client}
}

func (s scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.backend.Get(ctx, s.client, key)
}

func (s scoped) Set(ctx context.Context, key, value string) error {
	return s.backend.Set(ctx, s.client, key, value)
}

// Disabled is a store for environments without persistent storage.
type Disabled struct{}

func (Disabled) Get(context.Context, string) (string, bool, error) { return "", false, ErrUnavailable }
func (Disabled) Set(context.Context, string, string) error         { return ErrUnavailable }
