// Package api is the HTTP surface: the contact relay, read-only content and
// command listings, health and metrics.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"folio/internal/content"
	"folio/internal/i18n"
	"folio/internal/logging"
	"folio/internal/terminal"
)

// Config lists what the router serves. Contact may be nil, in which case
// /api/contact is not routed.
type Config struct {
	Source     content.Source
	Registry   *terminal.Registry
	Translator *i18n.Translator
	Contact    http.Handler
	Metrics    *Metrics
	Logger     *zap.Logger
}

type server struct {
	source   content.Source
	registry *terminal.Registry
	tr       *i18n.Translator
}

type contentResponse struct {
	Lang    content.Locale    `json:"lang"`
	Dir     content.Direction `json:"dir"`
	Content *content.Content  `json:"content"`
}

type commandsResponse struct {
	Lang     content.Locale       `json:"lang"`
	Commands []terminal.HelpEntry `json:"commands"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// NewRouter wires every route onto a gorilla/mux router.
func NewRouter(cfg Config) http.Handler {
	logger := logging.OrNop(cfg.Logger)
	registry := cfg.Registry
	if registry == nil {
		registry = terminal.DefaultRegistry()
	}
	s := &server{source: cfg.Source, registry: registry, tr: cfg.Translator}

	r := mux.NewRouter()
	r.Use(instrument(logger, cfg.Metrics))

	if cfg.Contact != nil {
		r.Handle("/api/contact", cfg.Contact)
	}
	r.Methods(http.MethodGet).Path("/api/content").HandlerFunc(s.getContent)
	r.Methods(http.MethodGet).Path("/api/commands").HandlerFunc(s.getCommands)
	r.Methods(http.MethodGet).Path("/healthz").HandlerFunc(healthz)
	if cfg.Metrics != nil {
		r.Methods(http.MethodGet).Path("/metrics").Handler(cfg.Metrics.Handler())
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Code: "NOT_FOUND", Error: "endpoint not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Code: "METHOD_NOT_ALLOWED", Error: "method not allowed"})
	})
	return r
}

// requestLocale picks ?locale= when given, else negotiates Accept-Language.
func requestLocale(r *http.Request) (content.Locale, bool) {
	if raw := r.URL.Query().Get("locale"); raw != "" {
		return content.ParseLocale(raw)
	}
	return content.Match(r.Header.Get("Accept-Language")), true
}

func (s *server) getContent(w http.ResponseWriter, r *http.Request) {
	locale, ok := requestLocale(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "INVALID_LOCALE", Error: "locale must be one of en, es, ar"})
		return
	}
	w.Header().Set("Content-Language", locale.String())
	writeJSON(w, http.StatusOK, contentResponse{
		Lang:    locale,
		Dir:     locale.Direction(),
		Content: s.source.Catalog().Get(locale),
	})
}

func (s *server) getCommands(w http.ResponseWriter, r *http.Request) {
	locale, ok := requestLocale(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "INVALID_LOCALE", Error: "locale must be one of en, es, ar"})
		return
	}
	w.Header().Set("Content-Language", locale.String())
	writeJSON(w, http.StatusOK, commandsResponse{
		Lang:     locale,
		Commands: terminal.Describe(s.registry, s.tr, locale),
	})
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
