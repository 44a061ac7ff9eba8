package contact

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Response codes.
const (
	CodeSent              = "SENT"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	CodeConfigMissing     = "CONFIG_MISSING"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeBodyTooLarge      = "BODY_TOO_LARGE"
	CodeInvalidEmail      = "INVALID_EMAIL"
	CodeContentTooShort   = "CONTENT_TOO_SHORT"
	CodeContentTooLong    = "CONTENT_TOO_LONG"
	CodeRateLimited       = "RATE_LIMITED"
	CodeDomainNotVerified = "DOMAIN_NOT_VERIFIED"
	CodeAuthFailed        = "AUTH_FAILED"
	CodeServiceFailure    = "SERVICE_FAILURE"
	CodeInternalError     = "INTERNAL_ERROR"
)

type codeInfo struct {
	status  int
	message string
}

var codes = map[string]codeInfo{
	CodeMethodNotAllowed:  {http.StatusMethodNotAllowed, "Method Not Allowed"},
	CodeConfigMissing:     {http.StatusInternalServerError, "Server email configuration missing."},
	CodeInvalidRequest:    {http.StatusBadRequest, "Invalid request body."},
	CodeBodyTooLarge:      {http.StatusRequestEntityTooLarge, "Request body exceeds max size."},
	CodeInvalidEmail:      {http.StatusBadRequest, "Invalid email address."},
	CodeContentTooShort:   {http.StatusBadRequest, "Subject or message is too short."},
	CodeContentTooLong:    {http.StatusBadRequest, "One or more fields exceed allowed length."},
	CodeRateLimited:       {http.StatusTooManyRequests, "Too many messages. Try again later."},
	CodeDomainNotVerified: {http.StatusBadGateway, "Sender domain not verified. Contact owner."},
	CodeAuthFailed:        {http.StatusBadGateway, "Email service authentication failed."},
	CodeServiceFailure:    {http.StatusBadGateway, "Email service temporarily unavailable."},
	CodeInternalError:     {http.StatusInternalServerError, "Internal server error."},
}

// FriendlyError is a failure with a stable machine-readable code.
type FriendlyError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *FriendlyError) Error() string {
	return e.Message
}

func (e *FriendlyError) Unwrap() error { return e.Cause }

func newError(code string, cause error) *FriendlyError {
	info, ok := codes[code]
	if !ok {
		info = codes[CodeInternalError]
	}
	return &FriendlyError{Code: code, Message: info.message, Status: info.status, Cause: cause}
}

// UpstreamError is a non-2xx answer from the email provider.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("email provider responded %d: %s", e.Status, e.Body)
}

// classifyMailError maps a Mailer failure onto the response taxonomy from the
// provider's status and message text.
func classifyMailError(err error) *FriendlyError {
	if err == nil {
		return nil
	}
	var friendly *FriendlyError
	if errors.As(err, &friendly) {
		return friendly
	}

	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		body := strings.ToLower(upstream.Body)
		switch {
		case strings.Contains(body, "domain") && (strings.Contains(body, "not verified") || strings.Contains(body, "verify")):
			return newError(CodeDomainNotVerified, err)
		case upstream.Status == http.StatusUnauthorized || upstream.Status == http.StatusForbidden,
			strings.Contains(body, "api key"):
			return newError(CodeAuthFailed, err)
		default:
			return newError(CodeServiceFailure, err)
		}
	}

	if errors.Is(err, context.Canceled) {
		return newError(CodeInternalError, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return newError(CodeServiceFailure, err)
	}
	return newError(CodeInternalError, err)
}
