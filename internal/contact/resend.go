package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"folio/internal/config"
)

const (
	subjectPrefix      = "[Portfolio] "
	maxProviderBody    = 4 * 1024
	defaultMailTimeout = 15 * time.Second
)

// Mailer delivers a validated message.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

var mailTemplate = template.Must(template.New("mail").Parse(`
<div style="font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Ubuntu,Cantarell,Noto Sans,sans-serif;">
  <h2>New message from portfolio</h2>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <p><strong>Message:</strong></p>
  <div style="white-space:pre-wrap;border-left:4px solid #ddd;padding:8px 12px;">{{.Message}}</div>
</div>
`))

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to"`
}

// ResendMailer sends through the Resend REST API.
type ResendMailer struct {
	endpoint string
	apiKey   string
	from     string
	to       string
	client   *http.Client
}

// NewResendMailer builds a mailer from the mail settings. A nil client gets a
// 15s timeout.
func NewResendMailer(mail config.Mail, client *http.Client) *ResendMailer {
	if client == nil {
		client = &http.Client{Timeout: defaultMailTimeout}
	}
	return &ResendMailer{
		endpoint: mail.Endpoint,
		apiKey:   mail.APIKey,
		from:     mail.From,
		to:       mail.To,
		client:   client,
	}
}

func (r *ResendMailer) Send(ctx context.Context, m Message) error {
	html, err := renderHTML(m)
	if err != nil {
		return err
	}
	body, err := json.Marshal(resendPayload{
		From:    r.from,
		To:      []string{r.to},
		Subject: subjectPrefix + m.Subject,
		HTML:    html,
		ReplyTo: m.Email,
	})
	if err != nil {
		return fmt.Errorf("encode resend payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxProviderBody))
		return &UpstreamError{Status: resp.StatusCode, Body: string(text)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func renderHTML(m Message) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplate.Execute(&buf, m); err != nil {
		return "", fmt.Errorf("render mail body: %w", err)
	}
	return buf.String(), nil
}
