package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() unexpected error: %v", err)
	}

	if cfg.HTTPAddr != defaultHTTPAddr {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, defaultHTTPAddr)
	}
	if cfg.SSHAddress() != "0.0.0.0:2222" {
		t.Fatalf("SSHAddress() = %q", cfg.SSHAddress())
	}
	if cfg.IdleTimeout != defaultIdleTimeout {
		t.Fatalf("IdleTimeout = %s, want %s", cfg.IdleTimeout, defaultIdleTimeout)
	}
	if cfg.PrefsBackend != PrefsMemory {
		t.Fatalf("PrefsBackend = %q, want memory", cfg.PrefsBackend)
	}
	if cfg.Mail.Endpoint != defaultResendEndpoint {
		t.Fatalf("Mail.Endpoint = %q", cfg.Mail.Endpoint)
	}
	if cfg.ContentDir != "" {
		t.Fatalf("ContentDir = %q, want empty", cfg.ContentDir)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_SSH_PORT", "2200")
	t.Setenv("FOLIO_SSH_IDLE_TIMEOUT", "45s")
	t.Setenv("FOLIO_PREFS_BACKEND", "Redis")
	t.Setenv("FOLIO_CONTENT_DIR", "./content/")
	t.Setenv("RESEND_API_KEY", " re_123 ")
	t.Setenv("CONTACT_TO_EMAIL", "me@example.com")
	t.Setenv("CONTACT_FROM_EMAIL", "Portfolio <noreply@example.com>")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() unexpected error: %v", err)
	}
	if cfg.SSHPort != 2200 {
		t.Fatalf("SSHPort = %d, want 2200", cfg.SSHPort)
	}
	if cfg.IdleTimeout != 45*time.Second {
		t.Fatalf("IdleTimeout = %s, want 45s", cfg.IdleTimeout)
	}
	if cfg.PrefsBackend != PrefsRedis {
		t.Fatalf("PrefsBackend = %q, want redis", cfg.PrefsBackend)
	}
	if cfg.ContentDir != "content" {
		t.Fatalf("ContentDir = %q, want cleaned path", cfg.ContentDir)
	}
	if cfg.Mail.APIKey != "re_123" || !cfg.Mail.Complete() {
		t.Fatalf("Mail = %+v, want complete trimmed settings", cfg.Mail)
	}
}

func TestLoadFromEnvInvalidPort(t *testing.T) {
	t.Setenv("FOLIO_SSH_PORT", "not-a-number")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv() expected error for invalid port")
	}
}

func TestLoadFromEnvPortOutOfRange(t *testing.T) {
	t.Setenv("FOLIO_SSH_PORT", "70000")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv() expected error for out-of-range port")
	}
}

func TestLoadFromEnvWhitespaceHost(t *testing.T) {
	t.Setenv("FOLIO_SSH_HOST", "   ")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv() expected error for whitespace host")
	}
}

func TestLoadFromEnvInvalidHostKeyPath(t *testing.T) {
	t.Setenv("FOLIO_SSH_HOST_KEY_PATH", ".")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv() expected error for host key path resolving to current directory")
	}
}

func TestLoadFromEnvInvalidIdleTimeout(t *testing.T) {
	for _, raw := range []string{"not-duration", "0s", "-5s"} {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("FOLIO_SSH_IDLE_TIMEOUT", raw)
			if _, err := LoadFromEnv(); err == nil {
				t.Fatalf("LoadFromEnv() expected error for idle timeout %q", raw)
			}
		})
	}
}

func TestLoadFromEnvInvalidChoice(t *testing.T) {
	t.Setenv("FOLIO_PREFS_BACKEND", "sqlite")
	_, err := LoadFromEnv()
	if err == nil {
		t.Fatal("LoadFromEnv() expected error for unknown prefs backend")
	}
	if !strings.Contains(err.Error(), "memory|file|redis") {
		t.Fatalf("error = %q, want choices listed", err)
	}
}

func TestMailCompleteRequiresAllValues(t *testing.T) {
	cases := []Mail{
		{},
		{APIKey: "k", To: "to@example.com"},
		{APIKey: "k", From: "from@example.com"},
		{To: "to@example.com", From: "from@example.com"},
	}
	for _, m := range cases {
		if m.Complete() {
			t.Fatalf("Complete() = true for %+v", m)
		}
	}
}
