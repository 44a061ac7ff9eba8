package content

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"folio/internal/prefs"
)

// Source supplies the current catalog. *Catalog and *Watcher implement it.
type Source interface {
	Catalog() *Catalog
}

// Document is the lang/dir attribute pair of the rendered page.
type Document struct {
	Lang Locale    `json:"lang"`
	Dir  Direction `json:"dir"`
}

// Resolver tracks one client's active locale and resolves its content tree.
type Resolver struct {
	source Source
	store  prefs.Store
	logger *zap.Logger

	mu     sync.RWMutex
	locale Locale
	doc    Document
}

// NewResolver restores the persisted locale from store. Missing, invalid or
// unreadable values fall back to the default locale.
func NewResolver(ctx context.Context, source Source, store prefs.Store, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = prefs.Disabled{}
	}

	locale := DefaultLocale
	raw, ok, err := store.Get(ctx, prefs.KeyLocale)
	switch {
	case err != nil:
		logger.Debug("locale preference unreadable", zap.Error(err))
	case ok:
		if parsed, valid := ParseLocale(raw); valid {
			locale = parsed
		} else {
			logger.Debug("ignoring stored locale", zap.String("value", raw))
		}
	}

	return &Resolver{
		source: source,
		store:  store,
		logger: logger,
		locale: locale,
		doc:    Document{Lang: locale, Dir: locale.Direction()},
	}
}

// Get resolves the tree for l without touching the active locale.
func (r *Resolver) Get(l Locale) *Content {
	return r.source.Catalog().Get(l)
}

// Active returns the active locale and its tree.
func (r *Resolver) Active() (Locale, *Content) {
	r.mu.RLock()
	l := r.locale
	r.mu.RUnlock()
	return l, r.Get(l)
}

// Locale returns the active locale.
func (r *Resolver) Locale() Locale {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locale
}

// Document returns the lang/dir pair for the active locale.
func (r *Resolver) Document() Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.doc
}

// SetLocale switches the active locale, persists it and updates the document
// attributes before returning. Unsupported codes are rejected with
// ErrInvalidLocale and leave all state unchanged.
func (r *Resolver) SetLocale(ctx context.Context, l Locale) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, string(l))
	}

	r.mu.Lock()
	r.locale = l
	r.doc = Document{Lang: l, Dir: l.Direction()}
	r.mu.Unlock()

	if err := r.store.Set(ctx, prefs.KeyLocale, l.String()); err != nil {
		r.logger.Debug("locale not persisted", zap.String("locale", l.String()), zap.Error(err))
	}
	return nil
}
