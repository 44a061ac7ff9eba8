// Package tui renders one visitor's portfolio page and terminal overlay as a
// bubbletea program.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/internal/app"
	"folio/internal/content"
	"folio/internal/events"
	"folio/internal/i18n"
	"folio/internal/terminal"
	"folio/internal/theme"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	frameInterval = 180 * time.Millisecond
	cursorGlyph   = "█"
)

// Message types consumed by Update.
type (
	// ThemeChangedMsg restyles the page after the visitor's theme changed.
	ThemeChangedMsg struct{ Theme string }

	frameMsg     struct{}
	highlightMsg struct{}
)

// Options configures a Model. Zero values fall back to an 80x24 screen, the
// default renderer and the wall clock.
type Options struct {
	Width      int
	Height     int
	Term       string
	Renderer   *lipgloss.Renderer
	Translator *i18n.Translator
	Context    context.Context
	Now        func() time.Time
	// OnCommand runs once per submitted terminal line.
	OnCommand func()
}

// Model is the page plus the terminal overlay for one client.
type Model struct {
	client    *app.Client
	tr        *i18n.Translator
	ctx       context.Context
	now       func() time.Time
	onCommand func()
	renderer  *lipgloss.Renderer
	term      string

	width  int
	height int
	styles styles

	page    viewport.Model
	log     viewport.Model
	section string

	frame   int
	ticking bool
}

func NewModel(client *app.Client, opts Options) Model {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.Translator == nil {
		opts.Translator = i18n.MustNew(nil)
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := Model{
		client:    client,
		tr:        opts.Translator,
		ctx:       opts.Context,
		now:       opts.Now,
		onCommand: opts.OnCommand,
		renderer:  opts.Renderer,
		term:      opts.Term,
		width:     opts.Width,
		height:    opts.Height,
		styles:    newStyles(opts.Renderer, client.ThemeState.Mode(), opts.Term),
		page:      viewport.New(opts.Width, 1),
		log:       viewport.New(opts.Width, 1),
		ticking:   client.Scene.Animated(),
	}
	m.layout()
	return m
}

// Listen forwards the client's theme changes to send, typically
// (*tea.Program).Send. Events may be published from inside Update, so send
// runs on its own goroutine.
func (m Model) Listen(send func(tea.Msg)) (unsubscribe func()) {
	return m.client.Bus.Subscribe(func(ev events.Event) {
		if tc, ok := ev.(events.ThemeChanged); ok {
			go send(ThemeChangedMsg{Theme: tc.Theme})
		}
	})
}

func (m Model) Init() tea.Cmd {
	if m.ticking {
		return nextFrame()
	}
	return nil
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
	case ThemeChangedMsg:
		m.styles = newStyles(m.renderer, theme.Mode(msg.Theme), m.term)
		m.layout()
	case frameMsg:
		if !m.client.Scene.Animated() {
			m.ticking = false
			return m, nil
		}
		m.frame++
		return m, nextFrame()
	case highlightMsg:
		m.refreshPage()
	case tea.KeyMsg:
		if m.client.Session.IsOpen() {
			return m.updateOverlay(msg)
		}
		return m.updatePage(msg)
	}
	return m, nil
}

func (m Model) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.step(-1)
	case "right", "l":
		m.step(1)
	case "`", ":":
		m.client.Session.Open()
		m.layout()
	default:
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.client.Session
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		s.Close()
		m.layout()
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyTab:
		s.Complete(false)
	case tea.KeyShiftTab:
		s.Complete(true)
	case tea.KeyBackspace:
		buf := []rune(s.Buffer())
		if len(buf) > 0 {
			s.SetInput(string(buf[:len(buf)-1]))
		}
	case tea.KeyCtrlU:
		s.SetInput("")
	case tea.KeySpace:
		s.SetInput(s.Buffer() + " ")
	case tea.KeyRunes:
		if !msg.Alt {
			s.SetInput(s.Buffer() + strings.ToLower(string(msg.Runes)))
		}
	default:
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	res := m.client.Session.Submit(m.ctx)
	if res.Action == terminal.Ignored {
		return m, nil
	}
	if m.onCommand != nil {
		m.onCommand()
	}

	var cmds []tea.Cmd
	if _, ok := m.client.Highlighted(); ok {
		cmds = append(cmds, tea.Tick(app.HighlightDuration, func(time.Time) tea.Msg { return highlightMsg{} }))
	}
	if !m.ticking && m.client.Scene.Animated() {
		m.ticking = true
		cmds = append(cmds, nextFrame())
	}
	m.layout()
	m.log.GotoBottom()
	return m, tea.Batch(cmds...)
}

// step moves to the neighbouring nav section, wrapping at either end.
func (m *Model) step(delta int) {
	items := m.document().Nav.Items
	if len(items) == 0 {
		return
	}
	current := 0
	for i, it := range items {
		if it.Anchor() == m.client.Section() {
			current = i
			break
		}
	}
	next := (current + delta + len(items)) % len(items)
	m.client.SetSection(items[next].Anchor())
	m.refreshPage()
}

func (m Model) document() *content.Content {
	_, c := m.client.Resolver.Active()
	return c
}

func (m Model) chromeHeight() int {
	h := 4
	if m.client.Scene.ShowBackground() {
		h++
	}
	return h
}

// layout sizes both viewports and refreshes their content.
func (m *Model) layout() {
	body := max(m.height-m.chromeHeight(), 1)
	m.page.Width, m.page.Height = m.width, body
	// Overlay border takes two rows and two columns; the prompt one more row.
	m.log.Width, m.log.Height = max(m.width-2, 1), max(body-3, 1)
	m.refreshPage()
	m.refreshLog()
}

func (m *Model) refreshPage() {
	doc := m.client.Resolver.Document()
	highlight, _ := m.client.Highlighted()
	section := m.client.Section()

	rows := renderSection(m.document(), section, highlight)
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.highlight {
			lines = append(lines, m.styles.highlight.Render(r.line.Text()))
			continue
		}
		lines = append(lines, m.styles.line(r.line))
	}
	m.page.SetContent(m.styles.block(lines, m.page.Width, doc.Dir))
	if section != m.section {
		m.section = section
		m.page.GotoTop()
	}
}

func (m *Model) refreshLog() {
	if !m.client.Session.IsOpen() {
		m.log.SetContent("")
		return
	}
	var parts []string
	for _, e := range m.client.Session.Transcript() {
		var lines []string
		if e.Kind == terminal.CommandEntry {
			lines = append(lines, m.promptPrefix()+m.tokens(e.Echo))
		}
		for _, l := range e.Output.Lines {
			lines = append(lines, m.styles.line(l))
		}
		parts = append(parts, m.styles.block(lines, m.log.Width, e.Output.Dir))
	}
	m.log.SetContent(strings.Join(parts, "\n"))
}

func (m Model) promptPrefix() string {
	user := m.tr.T(m.client.Resolver.Locale().String(), "terminal.user", nil)
	return m.styles.prompt.Render(user + "@portfolio:~$ ")
}

func (m Model) tokens(tokens []terminal.Token) string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		role := terminal.Rejected
		if tok.Accepted {
			role = terminal.Accepted
		}
		out[i] = m.styles.role(role).Render(tok.Text)
	}
	return strings.Join(out, " ")
}

func (m Model) t(id string) string {
	return m.tr.T(m.client.Resolver.Locale().String(), id, nil)
}

func (m Model) View() string {
	parts := []string{m.headerView(), m.navView()}
	if m.client.Scene.ShowBackground() {
		parts = append(parts, m.starView())
	}
	if m.client.Session.IsOpen() {
		parts = append(parts, m.overlayView())
	} else {
		parts = append(parts, m.page.View())
	}
	parts = append(parts, m.footerView(), m.hintView())
	return strings.Join(parts, "\n")
}

func (m Model) headerView() string {
	c := m.document()
	observer := fmt.Sprintf("OBSERVER: [%s]", m.client.Observer())
	gap := max(m.width-lipgloss.Width(c.Meta.SiteName)-lipgloss.Width(observer), 1)
	return m.styles.header.Render(c.Meta.SiteName + strings.Repeat(" ", gap) + observer)
}

func (m Model) navView() string {
	section := m.client.Section()
	items := m.document().Nav.Items
	labels := make([]string, len(items))
	for i, it := range items {
		if it.Anchor() == section {
			labels[i] = m.styles.navActive.Render("[" + it.Label + "]")
			continue
		}
		labels[i] = m.styles.nav.Render(" " + it.Label + " ")
	}
	return m.aligned(strings.Join(labels, " "))
}

func (m Model) starView() string {
	frame := m.frame
	if m.client.Scene.LowPower() {
		frame = 0
	}
	return m.styles.stars.Render(starLine(m.width, frame))
}

func (m Model) overlayView() string {
	title := m.styles.role(terminal.Heading).Render(m.t("terminal.title"))
	input := m.promptPrefix() + m.tokens(m.client.Session.EchoTokens()) + cursorGlyph
	box := lipgloss.JoinVertical(lipgloss.Left, title, m.log.View(), input)
	return m.styles.overlay.Width(max(m.width-2, 1)).Render(box)
}

func (m Model) footerView() string {
	return m.aligned(m.styles.footer.Render(footerLine(m.document().Footer, m.now().Year())))
}

func (m Model) hintView() string {
	id := "page.hint"
	if m.client.Session.IsOpen() {
		id = "page.overlay_hint"
	}
	return m.aligned(m.styles.role(terminal.Muted).Render(m.t(id)))
}

// aligned right-aligns s across the screen for right-to-left locales.
func (m Model) aligned(s string) string {
	if m.client.Resolver.Document().Dir != content.RTL {
		return s
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, s)
}
