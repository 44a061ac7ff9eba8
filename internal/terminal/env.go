package terminal

import (
	"context"

	"folio/internal/content"
)

// Env is the capability object side-effect commands call into. The
// interpreter knows only that these operations exist; hosts decide what
// scrolling, highlighting or theming mean for them.
type Env interface {
	// SetTheme applies "dark", "light" or "toggle".
	SetTheme(ctx context.Context, mode string)
	Theme() string
	SetLocale(ctx context.Context, l content.Locale)
	// Goto brings the section with the given anchor into view.
	Goto(section string)
	// OpenProject brings a project into view and highlights it briefly.
	OpenProject(slug string)
	SetBackground(ctx context.Context, on bool)
	Background() bool
	SetLowPower(ctx context.Context, on bool)
	LowPower() bool
	// Observer identifies the client for whoami.
	Observer() string
}

// ContentSource yields the active locale and its content tree.
type ContentSource interface {
	Active() (content.Locale, *content.Content)
}
