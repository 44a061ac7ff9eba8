package server

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish/bubbletea"
	"go.uber.org/zap"

	"folio/internal/app"
	"folio/internal/tui"
)

// SessionObserver is told about session lifecycles and submitted lines.
// *api.Metrics implements it.
type SessionObserver interface {
	SessionOpened()
	SessionClosed()
	CommandSubmitted()
}

type nopObserver struct{}

func (nopObserver) SessionOpened()    {}
func (nopObserver) SessionClosed()    {}
func (nopObserver) CommandSubmitted() {}

// Programs builds one tea.Program per SSH session.
type Programs struct {
	deps     app.Deps
	observer SessionObserver
	logger   *zap.Logger
}

func NewPrograms(deps app.Deps, observer SessionObserver, logger *zap.Logger) *Programs {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Programs{deps: deps, observer: observer, logger: logger}
}

// Program is a bubbletea.ProgramHandler. The client is torn down when the
// session context ends.
func (p *Programs) Program(sess ssh.Session) *tea.Program {
	info := InfoFromSession(sess)
	client := app.NewClient(sess.Context(), p.deps, info.Observer)
	pty, _, _ := sess.Pty()

	model := tui.NewModel(client, tui.Options{
		Width:      pty.Window.Width,
		Height:     pty.Window.Height,
		Term:       pty.Term,
		Renderer:   bubbletea.MakeRenderer(sess),
		Translator: p.deps.Translator,
		Context:    sess.Context(),
		OnCommand:  p.observer.CommandSubmitted,
	})
	program := tea.NewProgram(model, append(bubbletea.MakeOptions(sess), tea.WithAltScreen())...)
	unsubscribe := model.Listen(program.Send)

	p.observer.SessionOpened()
	p.logger.Info("session started",
		zap.String("observer", info.Observer),
		zap.String("user", info.User),
		zap.String("remote_ip", info.RemoteHost),
		zap.String("term", info.Term),
		zap.Bool("public_key", info.PublicKey),
	)
	go func() {
		<-sess.Context().Done()
		unsubscribe()
		client.Close()
		p.observer.SessionClosed()
		p.logger.Info("session ended", zap.String("observer", info.Observer))
	}()
	return program
}
