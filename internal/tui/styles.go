package tui

import (
	"github.com/charmbracelet/lipgloss"

	"folio/internal/content"
	"folio/internal/terminal"
	"folio/internal/theme"
)

// styles is a theme bundle bound to one session's renderer.
type styles struct {
	mode  theme.Mode
	mono  bool
	r     *lipgloss.Renderer
	roles map[terminal.Role]lipgloss.Style

	header    lipgloss.Style
	navActive lipgloss.Style
	nav       lipgloss.Style
	body      lipgloss.Style
	footer    lipgloss.Style
	overlay   lipgloss.Style
	prompt    lipgloss.Style
	highlight lipgloss.Style
	stars     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, mode theme.Mode, term string) styles {
	bundle, err := theme.Resolve(mode, term)
	if err != nil {
		bundle, _ = theme.ResolveWithDetector(theme.DefaultMode, theme.ResolveOptions{Term: term}, nil)
	}

	s := styles{
		mode:      mode,
		mono:      bundle.Mono,
		r:         r,
		header:    bundle.Header.Lipgloss(r),
		navActive: bundle.NavActive.Lipgloss(r),
		body:      bundle.Body.Lipgloss(r),
		footer:    bundle.Footer.Lipgloss(r),
		overlay:   bundle.Overlay.Lipgloss(r),
		prompt:    bundle.Prompt.Lipgloss(r),
		highlight: bundle.Highlight.Lipgloss(r),
	}
	s.nav = fg(r, bundle.Roles.Muted)
	s.stars = fg(r, bundle.Roles.Muted)
	if bundle.Roles.Border != "" {
		s.overlay = s.overlay.BorderForeground(lipgloss.Color(bundle.Roles.Border))
	}
	s.overlay = s.overlay.Border(lipgloss.RoundedBorder())

	s.roles = map[terminal.Role]lipgloss.Style{
		terminal.Plain:    fg(r, bundle.Roles.Text),
		terminal.Heading:  fg(r, bundle.Roles.Heading).Bold(true),
		terminal.Muted:    fg(r, bundle.Roles.Muted),
		terminal.Accent:   fg(r, bundle.Roles.Accent),
		terminal.Accepted: fg(r, bundle.Roles.Accepted),
		terminal.Rejected: fg(r, bundle.Roles.Rejected),
		terminal.Error:    fg(r, bundle.Roles.Error),
	}
	if s.mono {
		// Without color, accepted tokens are bold and rejected ones underlined.
		s.roles[terminal.Accepted] = newStyle(r).Bold(true)
		s.roles[terminal.Rejected] = newStyle(r).Underline(true)
		s.roles[terminal.Error] = newStyle(r).Bold(true)
	}
	return s
}

func newStyle(r *lipgloss.Renderer) lipgloss.Style {
	if r == nil {
		return lipgloss.NewStyle()
	}
	return r.NewStyle()
}

func fg(r *lipgloss.Renderer, color string) lipgloss.Style {
	st := newStyle(r)
	if color != "" {
		st = st.Foreground(lipgloss.Color(color))
	}
	return st
}

func (s styles) role(role terminal.Role) lipgloss.Style {
	if st, ok := s.roles[role]; ok {
		return st
	}
	return s.roles[terminal.Plain]
}

func (s styles) line(l terminal.Line) string {
	out := ""
	for _, sp := range l.Spans {
		out += s.role(sp.Role).Render(sp.Text)
	}
	return out
}

// block renders lines wrapped to width and aligned to the reading direction.
func (s styles) block(lines []string, width int, dir content.Direction) string {
	align := lipgloss.Left
	if dir == content.RTL {
		align = lipgloss.Right
	}
	box := newStyle(s.r).Width(max(width, 1)).Align(align)
	return box.Render(lipgloss.JoinVertical(align, lines...))
}
