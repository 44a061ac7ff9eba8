package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"folio/internal/config"
	"folio/internal/contact"
)

func testCommand(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.Config{}
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	return cmd, out
}

func TestExecPrintsCommandOutput(t *testing.T) {
	cmd, out := testCommand(t)
	execLocale, execJSON = "es", false
	defer func() { execLocale = "en" }()

	require.NoError(t, runExec(cmd, []string{"contact"}))
	assert.Contains(t, out.String(), "alex.chen@example.com")
}

func TestExecJSON(t *testing.T) {
	cmd, out := testCommand(t)
	execLocale, execJSON = "en", true
	defer func() { execJSON = false }()

	require.NoError(t, runExec(cmd, []string{"setlocale", "xx"}))
	var entry struct {
		Input string `json:"input"`
		Echo  []struct {
			Text     string `json:"text"`
			Accepted bool   `json:"accepted"`
		} `json:"echo"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "setlocale xx", entry.Input)
	require.Len(t, entry.Echo, 2)
	assert.True(t, entry.Echo[0].Accepted)
	assert.False(t, entry.Echo[1].Accepted)
}

func TestExecRejectsUnknownLocale(t *testing.T) {
	cmd, _ := testCommand(t)
	execLocale = "fr"
	defer func() { execLocale = "en" }()
	assert.Error(t, runExec(cmd, []string{"help"}))
}

func TestContentValidate(t *testing.T) {
	cmd, out := testCommand(t)
	require.NoError(t, runContentValidate(cmd, nil))
	assert.Equal(t, "ok: 3 locales\n", out.String())

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.toml"), []byte("[meta]\nsite_name = 3\n"), 0o644))
	cmd, out = testCommand(t)
	assert.Error(t, runContentValidate(cmd, []string{dir}))
	assert.NotEmpty(t, out.String())
}

func TestContentShowFormats(t *testing.T) {
	for _, format := range []string{"toml", "yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			cmd, out := testCommand(t)
			showLocale, showFormat = "ar", format
			require.NoError(t, runContentShow(cmd, nil))
			assert.Contains(t, out.String(), "مرحباً، أنا")
		})
	}
	showLocale, showFormat = "en", "toml"
}

func TestContactSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var m contact.Message
		_ = json.NewDecoder(r.Body).Decode(&m)
		w.Header().Set("Content-Type", "application/json")
		if m.Subject == "no" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(contact.Response{Code: contact.CodeContentTooShort, Error: "too short"})
			return
		}
		_ = json.NewEncoder(w).Encode(contact.Response{OK: true, Code: contact.CodeSent})
	}))
	defer srv.Close()

	contactEndpoint = srv.URL
	defer func() { contactEndpoint, contactMessage = "", contact.Message{} }()

	cmd, out := testCommand(t)
	contactMessage = contact.Message{Name: "Ada", Email: "ada@example.com", Subject: "Hello", Message: "I would like to talk."}
	require.NoError(t, runContactSend(cmd, nil))
	assert.Contains(t, out.String(), "SENT")

	contactMessage.Subject = "no"
	err := runContactSend(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), contact.CodeContentTooShort)
}

func TestLocalAddr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8080", localAddr("0.0.0.0:8080"))
	assert.Equal(t, "127.0.0.1:8080", localAddr(":8080"))
	assert.Equal(t, "example.com:80", localAddr("example.com:80"))
}
