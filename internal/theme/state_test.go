package theme

import (
	"context"
	"errors"
	"sync"
	"testing"

	"folio/internal/events"
	"folio/internal/prefs"
)

func newState(t *testing.T) (*State, prefs.Store, *[]string) {
	t.Helper()
	store := prefs.Scope(prefs.NewMemoryBackend(), "observer")
	bus := events.NewBus(nil)

	var mu sync.Mutex
	var got []string
	bus.Subscribe(func(ev events.Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, ev.(events.ThemeChanged).Theme)
	})
	return NewState(context.Background(), store, bus, nil), store, &got
}

func TestStateDefaultsToDark(t *testing.T) {
	s, _, _ := newState(t)
	if s.Mode() != Dark {
		t.Fatalf("default mode = %q, want dark", s.Mode())
	}
}

func TestStateToggleSequencePersistsAndPublishes(t *testing.T) {
	ctx := context.Background()
	s, store, got := newState(t)

	steps := []struct {
		arg  string
		want Mode
	}{
		{arg: "toggle", want: Light},
		{arg: "TOGGLE", want: Dark},
		{arg: "light", want: Light},
		{arg: "light", want: Light},
	}
	for _, step := range steps {
		mode, err := s.Set(ctx, step.arg)
		if err != nil {
			t.Fatalf("Set(%q) error: %v", step.arg, err)
		}
		if mode != step.want || s.Mode() != step.want {
			t.Fatalf("Set(%q) = %q, want %q", step.arg, mode, step.want)
		}
	}

	stored, ok, err := store.Get(ctx, prefs.KeyTheme)
	if err != nil || !ok || stored != "light" {
		t.Fatalf("stored theme = %q, %v, %v", stored, ok, err)
	}

	want := []string{"light", "dark", "light", "light"}
	if len(*got) != len(want) {
		t.Fatalf("published %v, want %v", *got, want)
	}
	for i := range want {
		if (*got)[i] != want[i] {
			t.Fatalf("published %v, want %v", *got, want)
		}
	}
}

func TestStateRejectsUnknownArgument(t *testing.T) {
	s, _, got := newState(t)

	_, err := s.Set(context.Background(), "sepia")
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if s.Mode() != Dark || len(*got) != 0 {
		t.Fatalf("rejected argument must not change state")
	}
}

func TestStateRestoresPersistedMode(t *testing.T) {
	ctx := context.Background()
	store := prefs.Scope(prefs.NewMemoryBackend(), "observer")
	if err := store.Set(ctx, prefs.KeyTheme, "light"); err != nil {
		t.Fatal(err)
	}

	s := NewState(ctx, store, nil, nil)
	if s.Mode() != Light {
		t.Fatalf("restored mode = %q, want light", s.Mode())
	}
	if _, err := s.Set(ctx, "toggle"); err != nil {
		t.Fatalf("Set without bus: %v", err)
	}
}

func TestStateSurvivesDisabledStorage(t *testing.T) {
	s := NewState(context.Background(), prefs.Disabled{}, nil, nil)
	mode, err := s.Set(context.Background(), "light")
	if err != nil || mode != Light {
		t.Fatalf("Set with disabled storage = %q, %v", mode, err)
	}
}
