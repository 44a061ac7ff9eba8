package terminal

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies how a command is carried out.
type Kind uint8

const (
	// Render commands print content from the active tree.
	Render Kind = iota
	// Effect commands call into the host Env.
	Effect
	// Control commands act on the session itself (clear, cls, exit).
	Control
)

// Command is one registry entry. Name, description and behavior are defined
// together so the help listing and the dispatcher cannot drift apart.
type Command struct {
	Name string
	// Usage is the argument syntax. Commands with an empty Usage accept no
	// arguments and only match the bare name.
	Usage string
	Kind  Kind
	run   func(*call) Block
}

// DescriptionID is the message id of the command's one-line description.
func (c Command) DescriptionID() string { return "cmd." + c.Name }

// TakesArgs reports whether the command accepts arguments.
func (c Command) TakesArgs() bool { return c.Usage != "" }

// Registry is an immutable, ordered command table with case-insensitive
// lookup.
type Registry struct {
	commands []Command
	index    map[string]int
}

// ErrDuplicateCommand is returned when two entries share a name.
var ErrDuplicateCommand = errors.New("duplicate command")

// NewRegistry builds a registry preserving the given order. Names are
// stored lower-cased.
func NewRegistry(commands ...Command) (*Registry, error) {
	r := &Registry{
		commands: make([]Command, 0, len(commands)),
		index:    make(map[string]int, len(commands)),
	}
	for _, c := range commands {
		c.Name = strings.ToLower(strings.TrimSpace(c.Name))
		if c.Name == "" || strings.ContainsAny(c.Name, " \t") {
			return nil, fmt.Errorf("invalid command name %q", c.Name)
		}
		if _, dup := r.index[c.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCommand, c.Name)
		}
		r.index[c.Name] = len(r.commands)
		r.commands = append(r.commands, c)
	}
	return r, nil
}

// Commands returns a copy of the table in registry order.
func (r *Registry) Commands() []Command {
	return append([]Command(nil), r.commands...)
}

// Names returns the command names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.commands))
	for i, c := range r.commands {
		names[i] = c.Name
	}
	return names
}

// Lookup finds a command by name, ignoring case.
func (r *Registry) Lookup(name string) (Command, bool) {
	i, ok := r.index[strings.ToLower(name)]
	if !ok {
		return Command{}, false
	}
	return r.commands[i], true
}

// Has reports whether token exactly names a command, ignoring case.
func (r *Registry) Has(token string) bool {
	_, ok := r.index[strings.ToLower(token)]
	return ok
}

// Candidates lists the names starting with prefix in registry order. An
// empty prefix matches every command.
func (r *Registry) Candidates(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var out []string
	for _, c := range r.commands {
		if strings.HasPrefix(c.Name, prefix) {
			out = append(out, c.Name)
		}
	}
	return out
}

// Len reports the number of commands.
func (r *Registry) Len() int { return len(r.commands) }
