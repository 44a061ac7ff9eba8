package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minSubject = 3
	minMessage = 10
	maxName    = 80
	maxSubject = 140
	maxMessage = 5000
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Message is one contact form submission. Website is the honeypot field.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Website string `json:"website,omitempty"`
}

// IsSpam reports whether the honeypot was filled in.
func (m Message) IsSpam() bool {
	return strings.TrimSpace(m.Website) != ""
}

// Validate checks the email shape, then minimum lengths, then maximum lengths,
// returning the first failure. Minimums count trimmed runes, maximums count
// every rune as submitted.
func (m Message) Validate() error {
	if !emailPattern.MatchString(m.Email) {
		return newError(CodeInvalidEmail, nil)
	}
	if trimmedRunes(m.Subject) < minSubject || trimmedRunes(m.Message) < minMessage {
		return newError(CodeContentTooShort, nil)
	}
	if runes(m.Name) > maxName || runes(m.Subject) > maxSubject || runes(m.Message) > maxMessage {
		return newError(CodeContentTooLong, nil)
	}
	return nil
}

func runes(s string) int { return utf8.RuneCountInString(s) }

func trimmedRunes(s string) int { return runes(strings.TrimSpace(s)) }
