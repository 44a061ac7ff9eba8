package theme

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode identifies the color scheme.
type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"

	DefaultMode = Dark
)

// ParseMode normalizes raw and reports whether it names a known mode.
func ParseMode(raw string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	switch m {
	case Dark, Light:
		return m, true
	}
	return "", false
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// SemanticRoles defines stable semantic color slots used across the UI.
//
// Components should depend on these roles rather than mode-specific color
// literals.
type SemanticRoles struct {
	Text     string
	Heading  string
	Muted    string
	Accent   string
	Accepted string
	Rejected string
	Error    string
	Border   string
}

// Style describes presentational attributes for a UI element.
type Style struct {
	Foreground string
	Background string
	Bold       bool
	Reverse    bool
}

// Lipgloss converts s into a style bound to r. Empty colors are left unset.
func (s Style) Lipgloss(r *lipgloss.Renderer) lipgloss.Style {
	var st lipgloss.Style
	if r != nil {
		st = r.NewStyle()
	} else {
		st = lipgloss.NewStyle()
	}
	if s.Foreground != "" {
		st = st.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		st = st.Background(lipgloss.Color(s.Background))
	}
	return st.Bold(s.Bold).Reverse(s.Reverse)
}

// StyleSet provides typed styles for the page and terminal surfaces.
type StyleSet struct {
	Header    Style
	NavActive Style
	Body      Style
	Footer    Style
	Overlay   Style
	Prompt    Style
	Highlight Style
}

// Bundle contains all display styles needed by one session.
type Bundle struct {
	StyleSet
	Roles SemanticRoles
	Mono  bool
}

// TermProfileDetector maps a TERM value to the color profile it supports.
type TermProfileDetector func(term string) termenv.Profile

// ErrUnknownMode is returned when a requested mode is not known.
var ErrUnknownMode = errors.New("unknown theme mode")

var (
	profileCache sync.Map
	knownTerms   = map[string]termenv.Profile{
		"dumb":           termenv.Ascii,
		"vt100":          termenv.Ascii,
		"ansi":           termenv.ANSI,
		"linux":          termenv.ANSI,
		"screen":         termenv.ANSI,
		"xterm":          termenv.ANSI,
		"tmux":           termenv.ANSI256,
		"xterm-256color": termenv.ANSI256,
		"alacritty":      termenv.TrueColor,
		"wezterm":        termenv.TrueColor,
		"xterm-kitty":    termenv.TrueColor,
	}
)

var palettes = map[Mode]Bundle{
	Dark: {
		StyleSet: StyleSet{
			Header:    Style{Foreground: "#E2E8F0", Background: "#0A0A12", Bold: true},
			NavActive: Style{Foreground: "#00D4FF", Bold: true},
			Body:      Style{Foreground: "#CBD5E1"},
			Footer:    Style{Foreground: "#64748B"},
			Overlay:   Style{Foreground: "#F8FAFC", Background: "#050508"},
			Prompt:    Style{Foreground: "#A855F7", Bold: true},
			Highlight: Style{Foreground: "#050508", Background: "#00FF88", Bold: true},
		},
		Roles: SemanticRoles{Text: "#E2E8F0", Heading: "#F8FAFC", Muted: "#94A3B8", Accent: "#00D4FF", Accepted: "#16A34A", Rejected: "#EF4444", Error: "#F87171", Border: "#00FF88"},
	},
	Light: {
		StyleSet: StyleSet{
			Header:    Style{Foreground: "#0F172A", Background: "#F1F5F9", Bold: true},
			NavActive: Style{Foreground: "#0369A1", Bold: true},
			Body:      Style{Foreground: "#1E293B"},
			Footer:    Style{Foreground: "#64748B"},
			Overlay:   Style{Foreground: "#0F172A", Background: "#F8FAFC"},
			Prompt:    Style{Foreground: "#7E22CE", Bold: true},
			Highlight: Style{Foreground: "#F8FAFC", Background: "#15803D", Bold: true},
		},
		Roles: SemanticRoles{Text: "#1E293B", Heading: "#0F172A", Muted: "#64748B", Accent: "#0369A1", Accepted: "#15803D", Rejected: "#DC2626", Error: "#B91C1C", Border: "#15803D"},
	},
}

var modes = [...]Mode{Dark, Light}

// ResolveOptions carries the session TERM and optional overrides.
type ResolveOptions struct {
	Term       string
	ForceColor bool
	ForceMono  bool
}

// Resolve returns the bundle for mode on a terminal reporting term.
//
// Terminals without color support get a monochrome bundle that relies on
// bold and reverse video instead of hues.
func Resolve(mode Mode, term string) (Bundle, error) {
	return resolveWith(mode, ResolveOptions{Term: term}, DetectTermProfile)
}

// ResolveWithDetector is Resolve with overrides and a custom detector. A nil
// detector means DetectTermProfile.
func ResolveWithDetector(mode Mode, opts ResolveOptions, detector TermProfileDetector) (Bundle, error) {
	if detector == nil {
		detector = DetectTermProfile
	}
	return resolveWith(mode, opts, detector)
}

func resolveWith(mode Mode, opts ResolveOptions, detector TermProfileDetector) (Bundle, error) {
	base, ok := palettes[mode]
	if !ok {
		return Bundle{}, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
	if monochrome(detector(opts.Term), opts) {
		return monochromeBundle(), nil
	}
	return base, nil
}

func monochrome(profile termenv.Profile, opts ResolveOptions) bool {
	switch {
	case opts.ForceMono:
		return true
	case opts.ForceColor:
		return false
	}
	return profile == termenv.Ascii
}

// DetectTermProfile guesses the color profile from TERM alone. SSH sessions
// carry no COLORTERM, so unknown names fall back to plain ANSI.
func DetectTermProfile(term string) termenv.Profile {
	key := strings.ToLower(strings.TrimSpace(term))
	if cached, ok := profileCache.Load(key); ok {
		return cached.(termenv.Profile)
	}
	profile := profileFor(key)
	profileCache.Store(key, profile)
	return profile
}

func profileFor(term string) termenv.Profile {
	if p, ok := knownTerms[term]; ok {
		return p
	}
	switch {
	case term == "", strings.Contains(term, "dumb"):
		return termenv.Ascii
	case strings.Contains(term, "truecolor"), strings.Contains(term, "24bit"),
		strings.Contains(term, "direct"), strings.Contains(term, "kitty"):
		return termenv.TrueColor
	case strings.Contains(term, "256"):
		return termenv.ANSI256
	}
	return termenv.ANSI
}

func monochromeBundle() Bundle {
	return Bundle{
		StyleSet: StyleSet{
			Header:    Style{Bold: true},
			NavActive: Style{Bold: true},
			Overlay:   Style{},
			Prompt:    Style{Bold: true},
			Highlight: Style{Bold: true, Reverse: true},
		},
		Mono: true,
	}
}
