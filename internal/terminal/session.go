// Package terminal implements the portfolio's command-line overlay: a
// registry of commands, an interpreter that renders their output, and the
// per-client session with Tab completion and a transcript.
package terminal

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// State is the interpreter's position in its lifecycle.
type State uint8

const (
	Idle State = iota
	AwaitingInput
	Cycling
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting-input"
	case Cycling:
		return "cycling"
	default:
		return "idle"
	}
}

// EntryKind distinguishes transcript entries.
type EntryKind uint8

const (
	TipEntry EntryKind = iota
	CommandEntry
)

// Entry is one transcript item: the echoed input and its output.
type Entry struct {
	ID     uuid.UUID `json:"id"`
	Kind   EntryKind `json:"kind"`
	Input  string    `json:"input,omitempty"`
	Echo   []Token   `json:"echo,omitempty"`
	Output Block     `json:"output"`
}

// Action reports what Submit did.
type Action uint8

const (
	Ignored Action = iota
	Appended
	Cleared
	Closed
)

// Result is the outcome of Submit.
type Result struct {
	Action Action
	Entry  Entry
}

// Session is the overlay state of one client. An idle cursor is -1 and a
// nil anchor means no Tab cycle is in progress.
type Session struct {
	interp *Interpreter

	open       bool
	buffer     string
	tokens     []string
	transcript []Entry
	cursor     int
	anchor     *string
}

func NewSession(interp *Interpreter) *Session {
	return &Session{interp: interp, cursor: -1}
}

func (s *Session) State() State {
	switch {
	case !s.open:
		return Idle
	case s.anchor != nil:
		return Cycling
	default:
		return AwaitingInput
	}
}

func (s *Session) IsOpen() bool { return s.open }

func (s *Session) Buffer() string { return s.buffer }

// Tokens is the buffer split on single spaces.
func (s *Session) Tokens() []string { return append([]string(nil), s.tokens...) }

// EchoTokens marks each buffer token that names a command.
func (s *Session) EchoTokens() []Token {
	if s.buffer == "" {
		return nil
	}
	return s.interp.Echo(s.buffer)
}

// Cursor is the index into the current candidate list, -1 when idle.
func (s *Session) Cursor() int { return s.cursor }

// Anchor is the prefix the current Tab cycle runs against.
func (s *Session) Anchor() (string, bool) {
	if s.anchor == nil {
		return "", false
	}
	return *s.anchor, true
}

func (s *Session) Transcript() []Entry { return append([]Entry(nil), s.transcript...) }

// Open starts a fresh session whose transcript holds only the tip.
func (s *Session) Open() {
	if s.open {
		return
	}
	s.open = true
	s.resetInput()
	s.transcript = []Entry{{ID: uuid.New(), Kind: TipEntry, Output: s.interp.Tip()}}
}

// Close discards all session state.
func (s *Session) Close() {
	s.open = false
	s.resetInput()
	s.transcript = nil
}

// SetInput replaces the buffer as typing would, cancelling any Tab cycle.
func (s *Session) SetInput(text string) {
	if !s.open {
		return
	}
	s.setBuffer(text)
	s.cursor = -1
	s.anchor = nil
}

// Complete handles Tab (backward false) and Shift+Tab (backward true).
func (s *Session) Complete(backward bool) {
	if !s.open {
		return
	}

	prefix := strings.ToLower(strings.TrimSpace(s.buffer))
	if s.anchor != nil {
		prefix = *s.anchor
	}
	candidates := s.interp.registry.Candidates(prefix)

	switch len(candidates) {
	case 0:
		return
	case 1:
		s.setBuffer(candidates[0])
		s.cursor = -1
		s.anchor = nil
		return
	}

	if s.anchor == nil {
		s.anchor = &prefix
	}
	n := len(candidates)
	switch {
	case s.cursor < 0 && backward:
		s.cursor = n - 1
	case s.cursor < 0:
		s.cursor = 0
	case backward:
		s.cursor = (s.cursor - 1 + n) % n
	default:
		s.cursor = (s.cursor + 1) % n
	}
	s.setBuffer(candidates[s.cursor])
}

// Submit executes the buffer.
func (s *Session) Submit(ctx context.Context) Result {
	if !s.open {
		return Result{Action: Ignored}
	}
	trimmed := strings.TrimSpace(s.buffer)
	if trimmed == "" {
		return Result{Action: Ignored}
	}

	switch strings.ToLower(trimmed) {
	case "clear", "cls":
		s.transcript = nil
		s.resetInput()
		return Result{Action: Cleared}
	case "exit":
		s.Close()
		return Result{Action: Closed}
	}

	entry := Entry{
		ID:     uuid.New(),
		Kind:   CommandEntry,
		Input:  trimmed,
		Echo:   s.interp.Echo(trimmed),
		Output: s.interp.Execute(ctx, trimmed),
	}
	s.transcript = append(s.transcript, entry)
	s.resetInput()
	return Result{Action: Appended, Entry: entry}
}

func (s *Session) setBuffer(text string) {
	s.buffer = text
	if text == "" {
		s.tokens = nil
		return
	}
	s.tokens = strings.Split(text, " ")
}

func (s *Session) resetInput() {
	s.buffer = ""
	s.tokens = nil
	s.cursor = -1
	s.anchor = nil
}
