package content

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Locale selects a content tree and text direction.
type Locale string

const (
	English Locale = "en"
	Spanish Locale = "es"
	Arabic  Locale = "ar"

	DefaultLocale = English
)

// Direction is the document text direction.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// ErrInvalidLocale is returned when a locale code is outside the supported set.
var ErrInvalidLocale = errors.New("invalid locale")

// Locales lists the supported locales in display order.
var Locales = [...]Locale{English, Spanish, Arabic}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Spanish, language.Arabic})

// ParseLocale normalizes raw and reports whether it names a supported locale.
func ParseLocale(raw string) (Locale, bool) {
	l := Locale(strings.ToLower(strings.TrimSpace(raw)))
	return l, l.Valid()
}

func (l Locale) Valid() bool {
	switch l {
	case English, Spanish, Arabic:
		return true
	}
	return false
}

func (l Locale) Direction() Direction {
	if l == Arabic {
		return RTL
	}
	return LTR
}

func (l Locale) String() string { return string(l) }

// Match picks the best supported locale for an Accept-Language header,
// falling back to the default locale.
func Match(acceptLanguage string) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return Locales[index]
}

func itoa(n int) string { return strconv.Itoa(n) }
