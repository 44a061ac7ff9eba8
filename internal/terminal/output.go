package terminal

import (
	"strings"

	"folio/internal/content"
)

// Role is the semantic style of a span. Hosts map roles to colors.
type Role uint8

const (
	Plain Role = iota
	Heading
	Muted
	Accent
	Accepted
	Rejected
	Error
)

var roleNames = [...]string{"plain", "heading", "muted", "accent", "accepted", "rejected", "error"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "plain"
}

// MarshalText encodes a role by name.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Span is a run of text with one role.
type Span struct {
	Text string `json:"text"`
	Role Role   `json:"role"`
}

// Line is a sequence of spans rendered on one row.
type Line struct {
	Spans []Span `json:"spans"`
}

// Text returns the concatenated span texts.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Block is the rendered output of one command.
type Block struct {
	Dir   content.Direction `json:"dir"`
	Lines []Line            `json:"lines"`
}

// Add appends a line made of spans.
func (b *Block) Add(spans ...Span) {
	b.Lines = append(b.Lines, Line{Spans: spans})
}

// Text appends a single-span line.
func (b *Block) Text(text string, role Role) {
	b.Add(Span{Text: text, Role: role})
}

// Blank appends an empty line.
func (b *Block) Blank() {
	b.Lines = append(b.Lines, Line{})
}

// Empty reports whether the block has no lines.
func (b Block) Empty() bool { return len(b.Lines) == 0 }

// String renders the block as plain text, one line per row.
func (b Block) String() string {
	rows := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		rows[i] = l.Text()
	}
	return strings.Join(rows, "\n")
}

func span(text string, role Role) Span { return Span{Text: text, Role: role} }
