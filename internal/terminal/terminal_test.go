package terminal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"folio/internal/content"
	"folio/internal/i18n"
	"folio/internal/prefs"
)

type fakeEnv struct {
	resolver *content.Resolver
	theme    string
	bg       bool
	low      bool
	gotos    []string
	opened   []string
}

func (e *fakeEnv) SetTheme(_ context.Context, mode string) {
	if mode == "toggle" {
		if e.theme == "dark" {
			mode = "light"
		} else {
			mode = "dark"
		}
	}
	e.theme = mode
}

func (e *fakeEnv) Theme() string { return e.theme }

func (e *fakeEnv) SetLocale(ctx context.Context, l content.Locale) {
	_ = e.resolver.SetLocale(ctx, l)
}

func (e *fakeEnv) Goto(section string)                      { e.gotos = append(e.gotos, section) }
func (e *fakeEnv) OpenProject(slug string)                  { e.opened = append(e.opened, slug) }
func (e *fakeEnv) SetBackground(_ context.Context, on bool) { e.bg = on }
func (e *fakeEnv) Background() bool                         { return e.bg }
func (e *fakeEnv) SetLowPower(_ context.Context, on bool)   { e.low = on }
func (e *fakeEnv) LowPower() bool                           { return e.low }
func (e *fakeEnv) Observer() string                         { return "obs-1234" }

type fixture struct {
	resolver *content.Resolver
	env      *fakeEnv
	interp   *Interpreter
	session  *Session
}

func newFixture(t *testing.T, registry *Registry) *fixture {
	t.Helper()
	cat, err := content.LoadEmbedded()
	require.NoError(t, err)
	resolver := content.NewResolver(context.Background(), cat, prefs.Scope(prefs.NewMemoryBackend(), "obs"), nil)
	tr, err := i18n.New(nil)
	require.NoError(t, err)

	if registry == nil {
		registry = DefaultRegistry()
	}
	env := &fakeEnv{resolver: resolver, theme: "dark", bg: true}
	interp := NewInterpreter(registry, resolver, tr, env)
	return &fixture{resolver: resolver, env: env, interp: interp, session: NewSession(interp)}
}

func abcRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(Command{Name: "a"}, Command{Name: "b"}, Command{Name: "c"})
	require.NoError(t, err)
	return r
}
