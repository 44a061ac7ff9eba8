// Package i18n renders localized UI strings for the terminal and the page
// chrome. Portfolio copy itself lives in the content package.
package i18n

import (
	"embed"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

var messageFiles = []string{"active.en.toml", "active.es.toml", "active.ar.toml"}

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle     *goi18n.Bundle
	logger     *zap.Logger
	localizers map[string]*goi18n.Localizer
}

// New loads the embedded message files with English as the fallback
// language.
func New(logger *zap.Logger) (*Translator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range messageFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", file, err)
		}
	}

	t := &Translator{
		bundle:     bundle,
		logger:     logger,
		localizers: make(map[string]*goi18n.Localizer),
	}
	for _, tag := range bundle.LanguageTags() {
		t.localizers[tag.String()] = goi18n.NewLocalizer(bundle, tag.String())
	}
	return t, nil
}

// MustNew is New for callers that treat a broken embedded file as fatal.
func MustNew(logger *zap.Logger) *Translator {
	t, err := New(logger)
	if err != nil {
		panic(err)
	}
	return t
}

// T renders the message identified by id for locale. Missing translations
// fall back to English, then to the id itself.
func (t *Translator) T(locale, id string, data map[string]any) string {
	if id == "" {
		return ""
	}

	localizer, ok := t.localizers[locale]
	if !ok {
		localizer = goi18n.NewLocalizer(t.bundle, locale, language.English.String())
	}

	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		t.logger.Debug("localize fallback", zap.String("id", id), zap.String("locale", locale), zap.Error(err))
		if msg == "" {
			return id
		}
	}
	return msg
}

// Bind fixes the locale for repeated lookups.
func (t *Translator) Bind(locale string) Func {
	return func(id string, data map[string]any) string {
		return t.T(locale, id, data)
	}
}

// Func renders one message for a fixed locale.
type Func func(id string, data map[string]any) string
