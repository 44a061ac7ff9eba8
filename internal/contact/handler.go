// Package contact relays the portfolio contact form to a transactional email
// provider.
package contact

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"folio/internal/config"
	"folio/internal/logging"
	"folio/internal/ratelimit"
)

const maxBodyBytes = 64 * 1024

// Response is the JSON body of every /api/contact answer.
type Response struct {
	OK    bool   `json:"ok"`
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}

// Handler serves POST /api/contact.
type Handler struct {
	mail    config.Mail
	mailer  Mailer
	limiter *ratelimit.Limiter
	logger  *zap.Logger
	observe func(code string)
}

type Option func(*Handler)

// WithLimiter throttles submissions per remote host.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(h *Handler) { h.limiter = l }
}

func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// WithOutcomeObserver is called with the response code of every request.
func WithOutcomeObserver(fn func(code string)) Option {
	return func(h *Handler) { h.observe = fn }
}

// NewHandler builds the endpoint. A nil mailer sends through Resend.
func NewHandler(mail config.Mail, mailer Mailer, opts ...Option) *Handler {
	h := &Handler{mail: mail, mailer: mailer}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = logging.OrNop(h.logger)
	if h.mailer == nil {
		h.mailer = NewResendMailer(mail, nil)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.reject(w, r, newError(CodeMethodNotAllowed, nil))
		return
	}

	if h.limiter != nil && !h.limiter.Allow(ratelimit.HostOfString(r.RemoteAddr)) {
		h.reject(w, r, newError(CodeRateLimited, nil))
		return
	}

	if !h.mail.Complete() {
		h.reject(w, r, newError(CodeConfigMissing, nil))
		return
	}

	msg, err := decodeMessage(w, r)
	if err != nil {
		h.reject(w, r, err)
		return
	}

	if msg.IsSpam() {
		h.logger.Info("contact honeypot filled", zap.String("remote", r.RemoteAddr))
		h.accept(w)
		return
	}

	if err := msg.Validate(); err != nil {
		h.reject(w, r, err)
		return
	}

	if err := h.mailer.Send(r.Context(), msg); err != nil {
		h.reject(w, r, classifyMailError(err))
		return
	}

	h.logger.Info("contact message relayed", zap.String("remote", r.RemoteAddr))
	h.accept(w)
}

func (h *Handler) accept(w http.ResponseWriter) {
	h.record(CodeSent)
	writeJSON(w, http.StatusOK, Response{OK: true, Code: CodeSent})
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, err error) {
	var friendly *FriendlyError
	if !errors.As(err, &friendly) {
		friendly = newError(CodeInternalError, err)
	}

	fields := []zap.Field{
		zap.String("code", friendly.Code),
		zap.String("method", r.Method),
		zap.String("remote", r.RemoteAddr),
	}
	if friendly.Cause != nil {
		fields = append(fields, zap.Error(friendly.Cause))
	}
	if friendly.Status >= http.StatusInternalServerError {
		h.logger.Error("contact request failed", fields...)
	} else {
		h.logger.Warn("contact request rejected", fields...)
	}

	h.record(friendly.Code)
	writeJSON(w, friendly.Status, Response{Code: friendly.Code, Error: friendly.Message})
}

func (h *Handler) record(code string) {
	if h.observe != nil {
		h.observe(code)
	}
}

// decodeMessage reads the body as a JSON object. A filled honeypot returns
// before any field is type checked. Otherwise absent fields are empty strings
// and present fields of any other type are rejected. A non-string website is
// treated as empty.
func decodeMessage(w http.ResponseWriter, r *http.Request) (Message, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return Message{}, newError(CodeBodyTooLarge, err)
		}
		return Message{}, newError(CodeInvalidRequest, err)
	}

	var msg Message
	if website, ok := raw["website"].(string); ok {
		msg.Website = website
	}
	if msg.IsSpam() {
		return msg, nil
	}
	for key, dst := range map[string]*string{
		"name":    &msg.Name,
		"email":   &msg.Email,
		"subject": &msg.Subject,
		"message": &msg.Message,
	} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return Message{}, newError(CodeInvalidRequest, nil)
		}
		*dst = s
	}
	return msg, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
