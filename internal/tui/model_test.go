package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/internal/app"
	"folio/internal/content"
	"folio/internal/i18n"
	"folio/internal/terminal"
	"folio/internal/theme"
)

func newTestModel(t *testing.T) (Model, *app.Client) {
	t.Helper()
	cat, err := content.LoadEmbedded()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	tr, err := i18n.New(nil)
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	client := app.NewClient(context.Background(), app.Deps{Source: cat, Translator: tr}, "ABCDEF123456")
	m := NewModel(client, Options{
		Width:      80,
		Height:     30,
		Renderer:   lipgloss.NewRenderer(io.Discard),
		Translator: tr,
		Now:        func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) },
	})
	return m, client
}

func press(m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestNewModelStartsOnHome(t *testing.T) {
	m, client := newTestModel(t)
	if client.Section() != app.DefaultSection {
		t.Fatalf("expected %s, got %s", app.DefaultSection, client.Section())
	}
	view := m.View()
	for _, want := range []string{"DevPortfolio", "OBSERVER: [ABCDEF123456]", "[Home]", "Alex Chen", "© 2026", "q quit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestSectionKeysTable(t *testing.T) {
	m, client := newTestModel(t)
	items := m.document().Nav.Items
	last := items[len(items)-1].Anchor()

	cases := []struct {
		name string
		keys []tea.KeyMsg
		want string
	}{
		{name: "right", keys: []tea.KeyMsg{key(tea.KeyRight)}, want: "about"},
		{name: "vim-l-twice", keys: []tea.KeyMsg{runes("l"), runes("l")}, want: "skills"},
		{name: "left-wraps", keys: []tea.KeyMsg{key(tea.KeyLeft)}, want: last},
		{name: "there-and-back", keys: []tea.KeyMsg{runes("l"), runes("h")}, want: "home"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client.SetSection(app.DefaultSection)
			press(m, tc.keys...)
			if got := client.Section(); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	for _, k := range []tea.KeyMsg{runes("q"), key(tea.KeyCtrlC)} {
		_, cmd := press(m, k)
		if cmd == nil {
			t.Fatalf("expected quit command for %s", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg for %s", k)
		}
	}
}

func TestOverlayCompletesAndRuns(t *testing.T) {
	m, client := newTestModel(t)
	commands := 0
	m.onCommand = func() { commands++ }

	m, _ = press(m, runes("`"))
	if client.Session.State() != terminal.AwaitingInput {
		t.Fatalf("expected overlay open, got %v", client.Session.State())
	}
	if !strings.Contains(m.View(), "Esc close") {
		t.Fatalf("expected overlay hint")
	}

	m, _ = press(m, runes("th"), key(tea.KeyTab))
	if got := client.Session.Buffer(); got != "theme" {
		t.Fatalf("expected completion to theme, got %q", got)
	}

	m, _ = press(m, key(tea.KeyEnter))
	if client.Theme() != string(theme.Light) {
		t.Fatalf("expected light theme, got %s", client.Theme())
	}
	if commands != 1 {
		t.Fatalf("expected one command, got %d", commands)
	}
	if !strings.Contains(m.View(), "Theme set to light.") {
		t.Fatalf("expected command output in transcript:\n%s", m.View())
	}

	press(m, key(tea.KeyEnter))
	if commands != 1 {
		t.Fatalf("empty submit should not count")
	}
}

func TestOverlayCloses(t *testing.T) {
	cases := []struct {
		name string
		keys []tea.KeyMsg
	}{
		{name: "esc", keys: []tea.KeyMsg{key(tea.KeyEsc)}},
		{name: "exit", keys: []tea.KeyMsg{runes("exit"), key(tea.KeyEnter)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, client := newTestModel(t)
			m, _ = press(m, runes(":"))
			m, _ = press(m, tc.keys...)
			if client.Session.IsOpen() {
				t.Fatalf("expected overlay closed")
			}
			if !strings.Contains(m.View(), "q quit") {
				t.Fatalf("expected page hint after close")
			}
		})
	}
}

func TestBackspaceRemovesWholeRunes(t *testing.T) {
	m, client := newTestModel(t)
	m, _ = press(m, runes("`"), runes("añ"), key(tea.KeySpace), runes("é"))
	if got := client.Session.Buffer(); got != "añ é" {
		t.Fatalf("unexpected buffer %q", got)
	}
	press(m, key(tea.KeyBackspace), key(tea.KeyBackspace))
	if got := client.Session.Buffer(); got != "añ" {
		t.Fatalf("expected rune-safe backspace, got %q", got)
	}
}

func TestTypedInputIsLowerCased(t *testing.T) {
	m, client := newTestModel(t)
	m, _ = press(m, runes("`"), runes("THEME"), key(tea.KeySpace), runes("Ñ"))
	if got := client.Session.Buffer(); got != "theme ñ" {
		t.Fatalf("unexpected buffer %q", got)
	}
	if view := m.View(); !strings.Contains(view, "theme ñ") {
		t.Fatalf("prompt should echo lower-cased input:\n%s", view)
	}
}

func TestOpenSchedulesHighlightExpiry(t *testing.T) {
	m, client := newTestModel(t)
	m, _ = press(m, runes("`"), runes("open 3"))
	_, cmd := press(m, key(tea.KeyEnter))
	if client.Section() != "projects" {
		t.Fatalf("expected projects, got %s", client.Section())
	}
	if cmd == nil {
		t.Fatalf("expected highlight timer")
	}

	rows := renderSection(m.document(), "projects", "collab-tool")
	marked := 0
	for _, r := range rows {
		if r.highlight {
			marked++
			if strings.Contains(r.line.Text(), "[1]") {
				t.Fatalf("wrong project highlighted: %q", r.line.Text())
			}
		}
	}
	if marked == 0 {
		t.Fatalf("expected highlighted rows")
	}
}

func TestArabicIsRightAligned(t *testing.T) {
	m, client := newTestModel(t)
	client.SetLocale(context.Background(), content.Arabic)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)

	lines := strings.Split(m.View(), "\n")
	hint := lines[len(lines)-1]
	if !strings.HasPrefix(hint, " ") || strings.HasSuffix(hint, " ") {
		t.Fatalf("expected right-aligned hint, got %q", hint)
	}
}

func TestThemeChangedMsgRestyles(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(ThemeChangedMsg{Theme: "light"})
	if got := next.(Model).styles.mode; got != theme.Light {
		t.Fatalf("expected light styles, got %s", got)
	}
}

func TestListenForwardsThemeChanges(t *testing.T) {
	m, client := newTestModel(t)
	got := make(chan tea.Msg, 1)
	unsubscribe := m.Listen(func(msg tea.Msg) { got <- msg })
	defer unsubscribe()

	client.SetTheme(context.Background(), "toggle")
	select {
	case msg := <-got:
		if tc, ok := msg.(ThemeChangedMsg); !ok || tc.Theme != "light" {
			t.Fatalf("unexpected message %#v", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("theme change not forwarded")
	}
}

func TestFramesStopInLowPower(t *testing.T) {
	m, client := newTestModel(t)
	if m.Init() == nil {
		t.Fatalf("expected animation tick with background on")
	}
	next, cmd := m.Update(frameMsg{})
	if cmd == nil || next.(Model).frame != 1 {
		t.Fatalf("expected frame to advance")
	}

	client.SetLowPower(context.Background(), true)
	next, cmd = next.Update(frameMsg{})
	if cmd != nil || next.(Model).ticking {
		t.Fatalf("expected ticking to stop")
	}
}

func TestStarLine(t *testing.T) {
	if starLine(0, 3) != "" {
		t.Fatalf("expected empty line for zero width")
	}
	a, b := starLine(40, 0), starLine(40, 1)
	if len([]rune(a)) != 40 || a == b {
		t.Fatalf("expected shifting 40-rune lines")
	}
}

func TestLevelBar(t *testing.T) {
	cases := map[int]string{0: "░░░░░░░░░░", 95: "█████████░", 140: "██████████", -5: "░░░░░░░░░░"}
	for level, want := range cases {
		if got := levelBar(level); got != want {
			t.Fatalf("levelBar(%d)=%q want %q", level, got, want)
		}
	}
}
