package terminal

import (
	"context"
	"strings"

	"folio/internal/content"
	"folio/internal/i18n"
)

// Interpreter dispatches command lines through a registry and renders their
// output against the active content tree.
type Interpreter struct {
	registry *Registry
	source   ContentSource
	tr       *i18n.Translator
	env      Env
}

func NewInterpreter(registry *Registry, source ContentSource, tr *i18n.Translator, env Env) *Interpreter {
	return &Interpreter{registry: registry, source: source, tr: tr, env: env}
}

func (in *Interpreter) Registry() *Registry { return in.registry }

// Token is one echoed input token and whether it names a command.
type Token struct {
	Text     string `json:"text"`
	Accepted bool   `json:"accepted"`
}

// Echo splits input on single spaces and marks each token that exactly
// names a registry command.
func (in *Interpreter) Echo(input string) []Token {
	parts := strings.Split(input, " ")
	tokens := make([]Token, len(parts))
	for i, p := range parts {
		tokens[i] = Token{Text: p, Accepted: in.registry.Has(p)}
	}
	return tokens
}

// HelpEntry is a command name with its localized description.
type HelpEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage,omitempty"`
}

// Help lists every command in registry order, described in locale.
func (in *Interpreter) Help(locale content.Locale) []HelpEntry {
	return Describe(in.registry, in.tr, locale)
}

// Describe is Help without an interpreter.
func Describe(registry *Registry, tr *i18n.Translator, locale content.Locale) []HelpEntry {
	out := make([]HelpEntry, 0, registry.Len())
	for _, c := range registry.commands {
		entry := HelpEntry{Name: c.Name, Description: tr.T(locale.String(), c.DescriptionID(), nil)}
		if c.TakesArgs() {
			entry.Usage = c.Name + " " + c.Usage
		}
		out = append(out, entry)
	}
	return out
}

// Execute runs one line and returns its output. Every input produces a
// block: unknown commands render the not-recognized message and control
// commands render nothing.
func (in *Interpreter) Execute(ctx context.Context, line string) Block {
	locale, tree := in.source.Active()
	normalized := strings.ToLower(strings.TrimSpace(line))
	fields := strings.Fields(normalized)
	if len(fields) == 0 {
		return Block{Dir: locale.Direction()}
	}

	c := &call{
		ctx:    ctx,
		interp: in,
		args:   fields[1:],
		locale: locale,
		tree:   tree,
		t:      in.tr.Bind(locale.String()),
		env:    in.env,
	}

	cmd, ok := in.registry.Lookup(fields[0])
	if !ok || (!cmd.TakesArgs() && len(c.args) > 0) {
		return c.notRecognized(normalized)
	}
	c.cmd = cmd
	if cmd.Kind == Control || cmd.run == nil {
		return Block{Dir: locale.Direction()}
	}

	out := cmd.run(c)
	current, _ := in.source.Active()
	out.Dir = current.Direction()
	return out
}

// Tip renders the session greeting for the active locale.
func (in *Interpreter) Tip() Block {
	locale, _ := in.source.Active()
	var b Block
	b.Dir = locale.Direction()
	b.Text(in.tr.T(locale.String(), "terminal.tip", nil), Muted)
	return b
}

// Translate renders a UI message in the active locale.
func (in *Interpreter) Translate(id string, data map[string]any) string {
	locale, _ := in.source.Active()
	return in.tr.T(locale.String(), id, data)
}

type call struct {
	ctx    context.Context
	interp *Interpreter
	cmd    Command
	args   []string
	locale content.Locale
	tree   *content.Content
	t      i18n.Func
	env    Env
}

func (c *call) notRecognized(input string) Block {
	b := Block{Dir: c.locale.Direction()}
	b.Text(c.t("terminal.not_recognized", map[string]any{"Input": input}), Error)
	return b
}

func (c *call) usage() Block {
	var b Block
	b.Text(c.t("terminal.usage", map[string]any{"Usage": c.cmd.Name + " " + c.cmd.Usage}), Error)
	return b
}
